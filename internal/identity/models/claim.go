package models

// UserClaim is a key/value assertion about a user. UserID is required; a
// claim cannot outlive its owner.
type UserClaim struct {
	ID         int64
	UserID     int64
	ClaimType  string
	ClaimValue string
}

// RoleClaim mirrors UserClaim for claims attached to a role.
type RoleClaim struct {
	ID         int64
	RoleID     int64
	ClaimType  string
	ClaimValue string
}
