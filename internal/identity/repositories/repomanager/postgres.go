// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/idclxvi/identity-store/internal/dbx"
	"github.com/idclxvi/identity-store/internal/identity/migrations"
	"github.com/idclxvi/identity-store/internal/identity/repositories/claims"
	"github.com/idclxvi/identity-store/internal/identity/repositories/logins"
	"github.com/idclxvi/identity-store/internal/identity/repositories/roleclaims"
	"github.com/idclxvi/identity-store/internal/identity/repositories/roles"
	"github.com/idclxvi/identity-store/internal/identity/repositories/tokens"
	"github.com/idclxvi/identity-store/internal/identity/repositories/userroles"
	"github.com/idclxvi/identity-store/internal/identity/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Roles returns a roles.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Roles(db dbx.DBTX) roles.Repository {
	return roles.NewPostgresRepository(db)
}

// Claims returns a claims.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Claims(db dbx.DBTX) claims.Repository {
	return claims.NewPostgresRepository(db)
}

// Logins returns a logins.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Logins(db dbx.DBTX) logins.Repository {
	return logins.NewPostgresRepository(db)
}

// Tokens returns a tokens.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Tokens(db dbx.DBTX) tokens.Repository {
	return tokens.NewPostgresRepository(db)
}

// UserRoles returns a userroles.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) UserRoles(db dbx.DBTX) userroles.Repository {
	return userroles.NewPostgresRepository(db)
}

// RoleClaims returns a roleclaims.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) RoleClaims(db dbx.DBTX) roleclaims.Repository {
	return roleclaims.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}
