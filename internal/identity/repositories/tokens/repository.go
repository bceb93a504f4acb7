// Package tokens declares the repository contract for provider-issued user
// tokens keyed by (user, provider, purpose).
package tokens

import (
	"context"

	"github.com/idclxvi/identity-store/internal/identity/models"
)

// Repository defines persistence operations on user tokens. The composite
// key guarantees at most one token per (user, provider, purpose) tuple.
type Repository interface {
	// Add inserts a token and fails with common.ErrDuplicateToken when the
	// tuple already holds one. Re-issuing must go through Set.
	Add(ctx context.Context, token *models.UserToken) error

	// Set stores the token value for the tuple, updating the existing row
	// in place when one exists.
	Set(ctx context.Context, token *models.UserToken) error

	// Get returns the token for the tuple, or common.ErrorNotFound.
	Get(ctx context.Context, userID int64, loginProvider, name string) (*models.UserToken, error)

	// Remove deletes the token for the tuple. Removing an absent token is
	// not an error.
	Remove(ctx context.Context, userID int64, loginProvider, name string) error
}
