package claims

import (
	"context"
	"fmt"

	"github.com/idclxvi/identity-store/internal/common"
	"github.com/idclxvi/identity-store/internal/dbx"
	"github.com/idclxvi/identity-store/internal/identity/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, claim *models.UserClaim) (*models.UserClaim, error) {

	query :=
		`INSERT INTO user_claims (user_id, claim_type, claim_value)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		claim.UserID, claim.ClaimType, claim.ClaimValue).Scan(&claim.ID)

	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrUserRequired
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return claim, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID int64, claimType, claimValue string) error {

	query :=
		`DELETE FROM user_claims
		 WHERE user_id = $1 AND claim_type = $2 AND claim_value = $3
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, claimType, claimValue); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Replace(ctx context.Context, userID int64, oldClaim, newClaim models.UserClaim) error {

	query :=
		`UPDATE user_claims
		 SET claim_type = $1, claim_value = $2
		 WHERE user_id = $3 AND claim_type = $4 AND claim_value = $5
		 `

	if _, err := r.db.ExecContext(ctx, query,
		newClaim.ClaimType, newClaim.ClaimValue, userID, oldClaim.ClaimType, oldClaim.ClaimValue); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.UserClaim, error) {

	query :=
		`SELECT id, user_id, claim_type, claim_value
		 FROM user_claims
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.UserClaim
	for rows.Next() {
		claim := &models.UserClaim{}
		if err := rows.Scan(&claim.ID, &claim.UserID, &claim.ClaimType, &claim.ClaimValue); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, claim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
