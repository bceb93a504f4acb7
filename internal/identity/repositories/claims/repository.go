// Package claims declares the repository contract for user claim rows.
package claims

import (
	"context"

	"github.com/idclxvi/identity-store/internal/identity/models"
)

// Repository defines persistence operations on user claims. Claims have no
// independent lifecycle: every operation is keyed by the owning user, and a
// claim for a nonexistent user is rejected by the schema.
type Repository interface {
	// Add inserts a claim for a user and fills in its generated ID.
	Add(ctx context.Context, claim *models.UserClaim) (*models.UserClaim, error)

	// Remove deletes all claims of the user matching the given type and
	// value. Removing an absent claim is not an error.
	Remove(ctx context.Context, userID int64, claimType, claimValue string) error

	// Replace swaps one claim for another in place for the given user.
	Replace(ctx context.Context, userID int64, oldClaim, newClaim models.UserClaim) error

	// ListByUser returns all claims of the user.
	ListByUser(ctx context.Context, userID int64) ([]*models.UserClaim, error)
}
