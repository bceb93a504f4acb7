package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/idclxvi/identity-store/internal/common"
	"github.com/idclxvi/identity-store/internal/dbx"
	"github.com/idclxvi/identity-store/internal/identity/models"
)

// CreateUser registers a new account and, when defaultRoles are given,
// links them in the same transaction: either the user and all its role
// links commit, or nothing does. The user's normalized columns and
// concurrency stamp are filled in here; callers supply only the raw
// user name and email.
func (s *Store) CreateUser(ctx context.Context, user *models.User, defaultRoles ...string) (*models.User, error) {

	user.NormalizedUserName = Normalize(user.UserName)
	user.NormalizedEmail = Normalize(user.Email)
	user.ConcurrencyStamp = newStamp()
	if user.SecurityStamp == "" {
		user.SecurityStamp = newStamp()
	}

	if err := checkBounded(
		"user_name", user.UserName,
		"normalized_user_name", user.NormalizedUserName,
		"email", user.Email,
		"normalized_email", user.NormalizedEmail,
	); err != nil {
		return nil, err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.rm.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}

		for _, roleName := range defaultRoles {
			role, err := s.rm.Roles(tx).GetByNormalizedName(ctx, Normalize(roleName))
			if err != nil {
				if errors.Is(err, common.ErrorNotFound) {
					return fmt.Errorf("%s: %w", roleName, common.ErrRoleRequired)
				}
				return err
			}
			if err := s.rm.UserRoles(tx).Add(ctx, created.ID, role.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "user created", "user_id", user.ID, "roles", len(defaultRoles))
	return user, nil
}

// GetUser returns a user by surrogate key.
func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.rm.Users(s.db).GetByID(ctx, id)
}

// FindUserByName looks an account up by user name, case-insensitively.
func (s *Store) FindUserByName(ctx context.Context, userName string) (*models.User, error) {
	return s.rm.Users(s.db).GetByNormalizedUserName(ctx, Normalize(userName))
}

// FindUserByEmail looks an account up by email, case-insensitively.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.rm.Users(s.db).GetByNormalizedEmail(ctx, Normalize(email))
}

// UpdateUser writes the user's mutable columns. user.ConcurrencyStamp must
// hold the stamp from the read that produced this state; a stale stamp
// fails with common.ErrConcurrencyConflict and the caller re-reads and
// retries. On success the user carries a freshly issued stamp.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {

	user.NormalizedUserName = Normalize(user.UserName)
	user.NormalizedEmail = Normalize(user.Email)

	if err := checkBounded(
		"user_name", user.UserName,
		"normalized_user_name", user.NormalizedUserName,
		"email", user.Email,
		"normalized_email", user.NormalizedEmail,
	); err != nil {
		return err
	}

	return s.rm.Users(s.db).Update(ctx, user, newStamp())
}

// DeleteUser removes an account. Claims, logins, tokens, and role links are
// removed by the schema's cascade rules, so no orphaned dependents remain.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	if err := s.rm.Users(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.log.Debug(ctx, "user deleted", "user_id", id)
	return nil
}
