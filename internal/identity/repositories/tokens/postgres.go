package tokens

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

func translateWriteError(err error) error {
	switch {
	case dbx.IsUniqueViolation(err, "users_tokens_pk"):
		return common.ErrDuplicateToken
	case dbx.IsForeignKeyViolation(err):
		return common.ErrUserRequired
	case dbx.IsTooLong(err):
		return common.ErrValueTooLong
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Add(ctx context.Context, token *models.UserToken) error {

	query :=
		`INSERT INTO users_tokens (user_id, login_provider, name, value)
		 VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query,
		token.UserID, token.LoginProvider, token.Name, token.Value)
	if err != nil {
		return translateWriteError(err)
	}
	return nil
}

func (r *PostgresRepository) Set(ctx context.Context, token *models.UserToken) error {

	// Re-issuing a token for the same purpose is an update, not a second row.
	query :=
		`INSERT INTO users_tokens (user_id, login_provider, name, value)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT ON CONSTRAINT users_tokens_pk
		 DO UPDATE SET value = EXCLUDED.value
		 `

	_, err := r.db.ExecContext(ctx, query,
		token.UserID, token.LoginProvider, token.Name, token.Value)
	if err != nil {
		return translateWriteError(err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID int64, loginProvider, name string) (*models.UserToken, error) {

	query :=
		`SELECT user_id, login_provider, name, value
		 FROM users_tokens
		 WHERE user_id = $1 AND login_provider = $2 AND name = $3
		 `

	token := &models.UserToken{}
	err := r.db.QueryRowContext(ctx, query, userID, loginProvider, name).
		Scan(&token.UserID, &token.LoginProvider, &token.Name, &token.Value)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return token, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID int64, loginProvider, name string) error {

	query :=
		`DELETE FROM users_tokens
		 WHERE user_id = $1 AND login_provider = $2 AND name = $3
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, loginProvider, name); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
