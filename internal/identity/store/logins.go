package store

import (
	"context"

	"github.com/idclxvi/identity-store/internal/identity/models"
)

// AddLogin links an external-provider identity to a user. The composite
// primary key guarantees the (provider, key) pair links to at most one
// local account; re-linking the same pair fails with
// common.ErrDuplicateLogin rather than silently duplicating.
func (s *Store) AddLogin(ctx context.Context, login *models.UserLogin) error {
	if err := checkBounded(
		"login_provider", login.LoginProvider,
		"provider_key", login.ProviderKey,
	); err != nil {
		return err
	}
	return s.rm.Logins(s.db).Add(ctx, login)
}

// RemoveLogin unlinks the pair from the user.
func (s *Store) RemoveLogin(ctx context.Context, userID int64, loginProvider, providerKey string) error {
	return s.rm.Logins(s.db).Remove(ctx, userID, loginProvider, providerKey)
}

// FindUserByLogin resolves an external (provider, key) pair to the local
// account it is linked to, or common.ErrorNotFound.
func (s *Store) FindUserByLogin(ctx context.Context, loginProvider, providerKey string) (*models.User, error) {
	login, err := s.rm.Logins(s.db).GetByProviderKey(ctx, loginProvider, providerKey)
	if err != nil {
		return nil, err
	}
	return s.rm.Users(s.db).GetByID(ctx, login.UserID)
}

// ListLogins returns the user's external logins.
func (s *Store) ListLogins(ctx context.Context, userID int64) ([]*models.UserLogin, error) {
	return s.rm.Logins(s.db).ListByUser(ctx, userID)
}
