package logins

import (
	"context"
	"database/sql"
	"errors"
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

func (r *PostgresRepository) Add(ctx context.Context, login *models.UserLogin) error {

	query :=
		`INSERT INTO users_login (login_provider, provider_key, provider_display_name, user_id)
		 VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query,
		login.LoginProvider, login.ProviderKey, login.ProviderDisplayName, login.UserID)

	if err != nil {
		switch {
		case dbx.IsUniqueViolation(err, "users_login_pk"):
			return common.ErrDuplicateLogin
		case dbx.IsForeignKeyViolation(err):
			return common.ErrUserRequired
		case dbx.IsTooLong(err):
			return common.ErrValueTooLong
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID int64, loginProvider, providerKey string) error {

	query :=
		`DELETE FROM users_login
		 WHERE user_id = $1 AND login_provider = $2 AND provider_key = $3
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, loginProvider, providerKey); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByProviderKey(ctx context.Context, loginProvider, providerKey string) (*models.UserLogin, error) {

	query :=
		`SELECT login_provider, provider_key, provider_display_name, user_id
		 FROM users_login
		 WHERE login_provider = $1 AND provider_key = $2
		 `

	login := &models.UserLogin{}
	err := r.db.QueryRowContext(ctx, query, loginProvider, providerKey).
		Scan(&login.LoginProvider, &login.ProviderKey, &login.ProviderDisplayName, &login.UserID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return login, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.UserLogin, error) {

	query :=
		`SELECT login_provider, provider_key, provider_display_name, user_id
		 FROM users_login
		 WHERE user_id = $1
		 ORDER BY login_provider, provider_key
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.UserLogin
	for rows.Next() {
		login := &models.UserLogin{}
		if err := rows.Scan(&login.LoginProvider, &login.ProviderKey, &login.ProviderDisplayName, &login.UserID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, login)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
