// Package logins declares the repository contract for external-provider
// login links.
package logins

import (
	"context"

	"github.com/idclxvi/identity-store/internal/identity/models"
)

// Repository defines persistence operations on external logins. The
// (provider, key) pair is globally unique: re-linking the same external
// identity is a constraint violation, never a silent duplicate.
type Repository interface {
	// Add links an external identity to a user. A pair already linked to
	// any user is reported as common.ErrDuplicateLogin; a missing user as
	// common.ErrUserRequired.
	Add(ctx context.Context, login *models.UserLogin) error

	// Remove unlinks the pair from the given user. Removing an absent link
	// is not an error.
	Remove(ctx context.Context, userID int64, loginProvider, providerKey string) error

	// GetByProviderKey returns the login row for the pair, or
	// common.ErrorNotFound. The row carries the owning user's ID.
	GetByProviderKey(ctx context.Context, loginProvider, providerKey string) (*models.UserLogin, error)

	// ListByUser returns all external logins linked to the user.
	ListByUser(ctx context.Context, userID int64) ([]*models.UserLogin, error)
}
