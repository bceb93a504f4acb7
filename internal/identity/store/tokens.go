package store

import (
	"context"

	"github.com/idclxvi/identity-store/internal/identity/models"
)

// SetToken stores a provider-issued token for a named purpose. Re-issuing a
// token for the same (user, provider, purpose) tuple updates the single
// existing row.
func (s *Store) SetToken(ctx context.Context, userID int64, loginProvider, name, value string) error {
	if err := checkBounded(
		"login_provider", loginProvider,
		"name", name,
	); err != nil {
		return err
	}
	token := &models.UserToken{UserID: userID, LoginProvider: loginProvider, Name: name, Value: value}
	return s.rm.Tokens(s.db).Set(ctx, token)
}

// GetToken returns the token for the tuple, or common.ErrorNotFound.
func (s *Store) GetToken(ctx context.Context, userID int64, loginProvider, name string) (*models.UserToken, error) {
	return s.rm.Tokens(s.db).Get(ctx, userID, loginProvider, name)
}

// RemoveToken deletes the token for the tuple.
func (s *Store) RemoveToken(ctx context.Context, userID int64, loginProvider, name string) error {
	return s.rm.Tokens(s.db).Remove(ctx, userID, loginProvider, name)
}
