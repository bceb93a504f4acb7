package users

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

const userColumns = `id, user_name, normalized_user_name, email, normalized_email,
		email_confirmed, password_hash, security_stamp, concurrency_stamp,
		phone_number, phone_number_confirmed, two_factor_enabled,
		lockout_end, lockout_enabled, access_failed_count, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.UserName, &user.NormalizedUserName, &user.Email, &user.NormalizedEmail,
		&user.EmailConfirmed, &user.PasswordHash, &user.SecurityStamp, &user.ConcurrencyStamp,
		&user.PhoneNumber, &user.PhoneNumberConfirmed, &user.TwoFactorEnabled,
		&user.LockoutEnd, &user.LockoutEnabled, &user.AccessFailedCount, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// translateWriteError maps driver constraint violations on the users table
// to the sentinel taxonomy. The write is attempted first and the violation
// interpreted afterwards; there is no racy check-then-act step.
func translateWriteError(err error) error {
	switch {
	case dbx.IsUniqueViolation(err, "users_username"):
		return common.ErrDuplicateUserName
	case dbx.IsUniqueViolation(err, "users_email"):
		return common.ErrDuplicateEmail
	case dbx.IsUniqueViolation(err, ""):
		return common.ErrAlreadyExists
	case dbx.IsTooLong(err):
		return common.ErrValueTooLong
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (user_name, normalized_user_name, email, normalized_email,
			email_confirmed, password_hash, security_stamp, concurrency_stamp,
			phone_number, phone_number_confirmed, two_factor_enabled,
			lockout_end, lockout_enabled, access_failed_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.NormalizedUserName, user.Email, user.NormalizedEmail,
		user.EmailConfirmed, user.PasswordHash, user.SecurityStamp, user.ConcurrencyStamp,
		user.PhoneNumber, user.PhoneNumberConfirmed, user.TwoFactorEnabled,
		user.LockoutEnd, user.LockoutEnabled, user.AccessFailedCount,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return nil, translateWriteError(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) GetByNormalizedUserName(ctx context.Context, normalized string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE normalized_user_name = $1`
	return r.getOne(ctx, query, normalized)
}

func (r *PostgresRepository) GetByNormalizedEmail(ctx context.Context, normalized string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE normalized_email = $1`
	return r.getOne(ctx, query, normalized)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User, newStamp string) error {

	query :=
		`UPDATE users
		 SET user_name = $1, normalized_user_name = $2, email = $3, normalized_email = $4,
		     email_confirmed = $5, password_hash = $6, security_stamp = $7,
		     phone_number = $8, phone_number_confirmed = $9, two_factor_enabled = $10,
		     lockout_end = $11, lockout_enabled = $12, access_failed_count = $13,
		     concurrency_stamp = $14
		 WHERE id = $15 AND concurrency_stamp = $16
		 `

	res, err := r.db.ExecContext(ctx, query,
		user.UserName, user.NormalizedUserName, user.Email, user.NormalizedEmail,
		user.EmailConfirmed, user.PasswordHash, user.SecurityStamp,
		user.PhoneNumber, user.PhoneNumberConfirmed, user.TwoFactorEnabled,
		user.LockoutEnd, user.LockoutEnabled, user.AccessFailedCount,
		newStamp, user.ID, user.ConcurrencyStamp,
	)
	if err != nil {
		return translateWriteError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		// Stamp mismatch: another writer updated the row since we read it.
		return common.ErrConcurrencyConflict
	}

	user.ConcurrencyStamp = newStamp
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {

	query := `DELETE FROM users WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
