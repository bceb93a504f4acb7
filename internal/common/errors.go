// Package common defines shared sentinel errors for the identity store.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Uniqueness violations. Each maps to a named database constraint so
	// callers can tell a taken username apart from a taken email without
	// parsing driver messages.
	ErrDuplicateUserName = errors.New("user name already taken")
	ErrDuplicateEmail    = errors.New("email already taken")
	ErrDuplicateRoleName = errors.New("role name already taken")
	ErrDuplicateLogin    = errors.New("external login already linked")
	ErrDuplicateToken    = errors.New("token already set for this purpose")
	ErrDuplicateUserRole = errors.New("user already in role")

	// ErrAlreadyExists is the fallback for a uniqueness violation on a
	// constraint no repository claims.
	ErrAlreadyExists = errors.New("already exists")

	// ErrConcurrencyConflict signals a stale concurrency stamp on update.
	// Distinct from the uniqueness family: the caller should re-read and
	// retry, not report a duplicate.
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	// Referential-integrity violations: a dependent row written for an
	// owner that does not exist.
	ErrUserRequired = errors.New("owning user does not exist")
	ErrRoleRequired = errors.New("role does not exist")

	// ErrValueTooLong signals a value over the 128-character column bound.
	// The store rejects rather than truncates.
	ErrValueTooLong = errors.New("value exceeds column length limit")
)
