// Package userroles declares the repository contract for the user↔role
// join table.
package userroles

import (
	"context"

	"github.com/idclxvi/identity-store/internal/identity/models"
)

// Repository defines persistence operations on user-role links.
type Repository interface {
	// Add links a user to a role. A duplicate link is reported as
	// common.ErrDuplicateUserRole; a missing user or role as
	// common.ErrUserRequired / common.ErrRoleRequired.
	Add(ctx context.Context, userID, roleID int64) error

	// Remove unlinks a user from a role. Removing an absent link is not an
	// error.
	Remove(ctx context.Context, userID, roleID int64) error

	// IsInRole reports whether the link exists.
	IsInRole(ctx context.Context, userID, roleID int64) (bool, error)

	// ListRolesForUser returns all roles the user is linked to, ordered by
	// normalized name.
	ListRolesForUser(ctx context.Context, userID int64) ([]*models.Role, error)

	// ListUserIDsInRole returns the IDs of all users linked to the role.
	ListUserIDsInRole(ctx context.Context, roleID int64) ([]int64, error)
}
