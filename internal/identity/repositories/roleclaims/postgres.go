package roleclaims

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

func (r *PostgresRepository) Add(ctx context.Context, claim *models.RoleClaim) (*models.RoleClaim, error) {

	query :=
		`INSERT INTO role_claims (role_id, claim_type, claim_value)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		claim.RoleID, claim.ClaimType, claim.ClaimValue).Scan(&claim.ID)

	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrRoleRequired
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return claim, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, roleID int64, claimType, claimValue string) error {

	query :=
		`DELETE FROM role_claims
		 WHERE role_id = $1 AND claim_type = $2 AND claim_value = $3
		 `

	if _, err := r.db.ExecContext(ctx, query, roleID, claimType, claimValue); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByRole(ctx context.Context, roleID int64) ([]*models.RoleClaim, error) {

	query :=
		`SELECT id, role_id, claim_type, claim_value
		 FROM role_claims
		 WHERE role_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, roleID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.RoleClaim
	for rows.Next() {
		claim := &models.RoleClaim{}
		if err := rows.Scan(&claim.ID, &claim.RoleID, &claim.ClaimType, &claim.ClaimValue); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, claim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
