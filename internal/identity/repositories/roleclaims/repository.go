// Package roleclaims declares the repository contract for claims attached
// to roles rather than users.
package roleclaims

import (
	"context"

	"github.com/idclxvi/identity-store/internal/identity/models"
)

// Repository defines persistence operations on role claims.
type Repository interface {
	// Add inserts a claim for a role and fills in its generated ID.
	Add(ctx context.Context, claim *models.RoleClaim) (*models.RoleClaim, error)

	// Remove deletes all claims of the role matching the given type and
	// value. Removing an absent claim is not an error.
	Remove(ctx context.Context, roleID int64, claimType, claimValue string) error

	// ListByRole returns all claims of the role.
	ListByRole(ctx context.Context, roleID int64) ([]*models.RoleClaim, error)
}
