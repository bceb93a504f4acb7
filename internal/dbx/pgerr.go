package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories care about.
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgStringTooLong       = "22001"
)

// pgError unwraps err into a *pgconn.PgError, or nil.
func pgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
// If constraint is non-empty, the violated constraint must also match it,
// which lets a repository tell its named indexes apart (e.g. users_username
// vs users_email).
func IsUniqueViolation(err error, constraint string) bool {
	pgErr := pgError(err)
	if pgErr == nil || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// IsForeignKeyViolation reports whether err is a foreign-key violation,
// i.e. a dependent row referenced a missing owner.
func IsForeignKeyViolation(err error) bool {
	pgErr := pgError(err)
	return pgErr != nil && pgErr.Code == pgForeignKeyViolation
}

// IsTooLong reports whether err is a string-data-right-truncation error,
// raised when a value exceeds a bounded varchar column.
func IsTooLong(err error) bool {
	pgErr := pgError(err)
	return pgErr != nil && pgErr.Code == pgStringTooLong
}

// ConstraintName returns the name of the violated constraint, if any.
func ConstraintName(err error) string {
	if pgErr := pgError(err); pgErr != nil {
		return pgErr.ConstraintName
	}
	return ""
}
