// Package models holds the flat entity records persisted by the identity
// store. Relationships are expressed through foreign-key fields only; there
// are no navigation properties, so loading a user never drags in its
// claims, logins, or tokens.
package models

import "time"

// User is a local account record.
//
// NormalizedUserName and NormalizedEmail hold the canonicalized
// (trimmed, uppercased) forms used for case-insensitive uniqueness and
// lookup. ConcurrencyStamp is an opaque token replaced on every update and
// compared-and-swapped by the update predicate.
type User struct {
	ID                   int64
	UserName             string
	NormalizedUserName   string
	Email                string
	NormalizedEmail      string
	EmailConfirmed       bool
	PasswordHash         string
	SecurityStamp        string
	ConcurrencyStamp     string
	PhoneNumber          string
	PhoneNumberConfirmed bool
	TwoFactorEnabled     bool
	LockoutEnd           *time.Time
	LockoutEnabled       bool
	AccessFailedCount    int
	CreatedAt            time.Time
}
