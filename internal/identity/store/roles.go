package store

import (
	"context"
	"errors"

	"github.com/idclxvi/identity-store/internal/common"
	"github.com/idclxvi/identity-store/internal/identity/models"
)

// CreateRole adds a named permission group. Role names follow the same
// normalization and uniqueness pattern as user names.
func (s *Store) CreateRole(ctx context.Context, role *models.Role) (*models.Role, error) {

	role.NormalizedName = Normalize(role.Name)
	role.ConcurrencyStamp = newStamp()

	if err := checkBounded(
		"name", role.Name,
		"normalized_name", role.NormalizedName,
	); err != nil {
		return nil, err
	}

	return s.rm.Roles(s.db).Create(ctx, role)
}

// FindRoleByName looks a role up by name, case-insensitively.
func (s *Store) FindRoleByName(ctx context.Context, name string) (*models.Role, error) {
	return s.rm.Roles(s.db).GetByNormalizedName(ctx, Normalize(name))
}

// UpdateRole renames a role with a compare-and-swap on its concurrency
// stamp, mirroring UpdateUser.
func (s *Store) UpdateRole(ctx context.Context, role *models.Role) error {

	role.NormalizedName = Normalize(role.Name)

	if err := checkBounded(
		"name", role.Name,
		"normalized_name", role.NormalizedName,
	); err != nil {
		return err
	}

	return s.rm.Roles(s.db).Update(ctx, role, newStamp())
}

// DeleteRole removes a role; its claims and user links cascade.
func (s *Store) DeleteRole(ctx context.Context, id int64) error {
	return s.rm.Roles(s.db).Delete(ctx, id)
}

// ListRoles returns all roles.
func (s *Store) ListRoles(ctx context.Context) ([]*models.Role, error) {
	return s.rm.Roles(s.db).List(ctx)
}

// AddToRole links a user to the named role.
func (s *Store) AddToRole(ctx context.Context, userID int64, roleName string) error {
	role, err := s.findRequiredRole(ctx, roleName)
	if err != nil {
		return err
	}
	return s.rm.UserRoles(s.db).Add(ctx, userID, role.ID)
}

// RemoveFromRole unlinks a user from the named role.
func (s *Store) RemoveFromRole(ctx context.Context, userID int64, roleName string) error {
	role, err := s.findRequiredRole(ctx, roleName)
	if err != nil {
		return err
	}
	return s.rm.UserRoles(s.db).Remove(ctx, userID, role.ID)
}

// IsInRole reports whether the user is linked to the named role.
func (s *Store) IsInRole(ctx context.Context, userID int64, roleName string) (bool, error) {
	role, err := s.findRequiredRole(ctx, roleName)
	if err != nil {
		return false, err
	}
	return s.rm.UserRoles(s.db).IsInRole(ctx, userID, role.ID)
}

// ListRolesForUser returns the roles the user is linked to.
func (s *Store) ListRolesForUser(ctx context.Context, userID int64) ([]*models.Role, error) {
	return s.rm.UserRoles(s.db).ListRolesForUser(ctx, userID)
}

// ListUserIDsInRole returns the IDs of users linked to the named role.
func (s *Store) ListUserIDsInRole(ctx context.Context, roleName string) ([]int64, error) {
	role, err := s.findRequiredRole(ctx, roleName)
	if err != nil {
		return nil, err
	}
	return s.rm.UserRoles(s.db).ListUserIDsInRole(ctx, role.ID)
}

// AddRoleClaim attaches a claim to the named role.
func (s *Store) AddRoleClaim(ctx context.Context, roleName, claimType, claimValue string) (*models.RoleClaim, error) {
	role, err := s.findRequiredRole(ctx, roleName)
	if err != nil {
		return nil, err
	}
	claim := &models.RoleClaim{RoleID: role.ID, ClaimType: claimType, ClaimValue: claimValue}
	return s.rm.RoleClaims(s.db).Add(ctx, claim)
}

// RemoveRoleClaim detaches matching claims from the named role.
func (s *Store) RemoveRoleClaim(ctx context.Context, roleName, claimType, claimValue string) error {
	role, err := s.findRequiredRole(ctx, roleName)
	if err != nil {
		return err
	}
	return s.rm.RoleClaims(s.db).Remove(ctx, role.ID, claimType, claimValue)
}

// ListRoleClaims returns the claims attached to the named role.
func (s *Store) ListRoleClaims(ctx context.Context, roleName string) ([]*models.RoleClaim, error) {
	role, err := s.findRequiredRole(ctx, roleName)
	if err != nil {
		return nil, err
	}
	return s.rm.RoleClaims(s.db).ListByRole(ctx, role.ID)
}

func (s *Store) findRequiredRole(ctx context.Context, roleName string) (*models.Role, error) {
	role, err := s.rm.Roles(s.db).GetByNormalizedName(ctx, Normalize(roleName))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrRoleRequired
		}
		return nil, err
	}
	return role, nil
}
