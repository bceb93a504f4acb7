package store

import (
	"context"

	"github.com/idclxvi/identity-store/internal/identity/models"
)

// AddClaim records a key/value assertion about a user. The schema rejects
// claims for nonexistent users.
func (s *Store) AddClaim(ctx context.Context, userID int64, claimType, claimValue string) (*models.UserClaim, error) {
	claim := &models.UserClaim{UserID: userID, ClaimType: claimType, ClaimValue: claimValue}
	return s.rm.Claims(s.db).Add(ctx, claim)
}

// RemoveClaim deletes the user's claims matching type and value.
func (s *Store) RemoveClaim(ctx context.Context, userID int64, claimType, claimValue string) error {
	return s.rm.Claims(s.db).Remove(ctx, userID, claimType, claimValue)
}

// ReplaceClaim swaps one of the user's claims for another in place.
func (s *Store) ReplaceClaim(ctx context.Context, userID int64, oldClaim, newClaim models.UserClaim) error {
	return s.rm.Claims(s.db).Replace(ctx, userID, oldClaim, newClaim)
}

// ListClaims returns the user's claims.
func (s *Store) ListClaims(ctx context.Context, userID int64) ([]*models.UserClaim, error) {
	return s.rm.Claims(s.db).ListByUser(ctx, userID)
}
