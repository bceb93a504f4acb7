package repomanager

import (
	"context"
	"database/sql"

	"github.com/idclxvi/identity-store/internal/dbx"
	"github.com/idclxvi/identity-store/internal/identity/repositories/claims"
	"github.com/idclxvi/identity-store/internal/identity/repositories/logins"
	"github.com/idclxvi/identity-store/internal/identity/repositories/roleclaims"
	"github.com/idclxvi/identity-store/internal/identity/repositories/roles"
	"github.com/idclxvi/identity-store/internal/identity/repositories/tokens"
	"github.com/idclxvi/identity-store/internal/identity/repositories/userroles"
	"github.com/idclxvi/identity-store/internal/identity/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// the same repository code runs against a plain connection or inside a
// transaction, and exposes a schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Roles(db dbx.DBTX) roles.Repository
	Claims(db dbx.DBTX) claims.Repository
	Logins(db dbx.DBTX) logins.Repository
	Tokens(db dbx.DBTX) tokens.Repository
	UserRoles(db dbx.DBTX) userroles.Repository
	RoleClaims(db dbx.DBTX) roleclaims.Repository
}
