// Package roles declares the repository contract for role rows. Roles
// follow the same normalized-name uniqueness and concurrency-stamp pattern
// as users.
package roles

import (
	"context"

	"github.com/idclxvi/identity-store/internal/identity/models"
)

// Repository defines persistence operations on roles.
type Repository interface {
	// Create inserts a new role and fills in its generated ID. A duplicate
	// normalized name is reported as common.ErrDuplicateRoleName.
	Create(ctx context.Context, role *models.Role) (*models.Role, error)

	// GetByID returns the role with the given surrogate key.
	GetByID(ctx context.Context, id int64) (*models.Role, error)

	// GetByNormalizedName looks a role up by its normalized name.
	GetByNormalizedName(ctx context.Context, normalized string) (*models.Role, error)

	// Update writes the role's name columns with a compare-and-swap on the
	// concurrency stamp, replacing it with newStamp on success.
	Update(ctx context.Context, role *models.Role, newStamp string) error

	// Delete removes a role; role claims and user-role links cascade.
	Delete(ctx context.Context, id int64) error

	// List returns all roles ordered by normalized name.
	List(ctx context.Context) ([]*models.Role, error)
}
