// Package users declares the repository contract for user account rows.
package users

import (
	"context"

	"github.com/idclxvi/identity-store/internal/identity/models"
)

// Repository defines persistence operations on user accounts.
//
// Lookups take already-normalized values; normalization happens at the
// store boundary. Update performs a compare-and-swap on the concurrency
// stamp and must report a stale stamp distinctly from any other failure.
type Repository interface {
	// Create inserts a new user and fills in its generated ID and creation
	// time. A duplicate normalized name or email is reported via the
	// common.ErrDuplicate* sentinels.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByID returns the user with the given surrogate key, or
	// common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByNormalizedUserName looks a user up by normalized user name.
	GetByNormalizedUserName(ctx context.Context, normalized string) (*models.User, error)

	// GetByNormalizedEmail looks a user up by normalized email.
	GetByNormalizedEmail(ctx context.Context, normalized string) (*models.User, error)

	// Update writes all mutable columns. The row is matched on both ID and
	// user.ConcurrencyStamp (the stamp the caller read); newStamp replaces
	// it. Zero rows affected means another writer got there first and is
	// reported as common.ErrConcurrencyConflict.
	Update(ctx context.Context, user *models.User, newStamp string) error

	// Delete removes a user. Dependent claims, logins, tokens, and role
	// links are removed by the schema's cascade rules.
	Delete(ctx context.Context, id int64) error
}
