// Package store exposes the access contract of the identity model: every
// operation an identity service performs against durable state goes through
// Store. Uniqueness and referential integrity are enforced by the database
// schema; Store's job is normalization, length-bound validation, stamp
// management, and transaction orchestration.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/idclxvi/identity-store/internal/common"
	"github.com/idclxvi/identity-store/internal/identity/repositories/repomanager"
	"github.com/idclxvi/identity-store/internal/logging"
)

// MaxBoundedLen is the width of the varchar columns backing lookup keys
// (user name, email, provider, key, token name). Longer values are rejected
// here with common.ErrValueTooLong rather than truncated by the engine.
const MaxBoundedLen = 128

// Store is the storage contract consumed in-process by an identity service.
// It is safe for concurrent use; conflicting writers are serialized by the
// schema's constraints and the concurrency stamp, not by in-process locks.
type Store struct {
	db  *sql.DB
	rm  repomanager.RepositoryManager
	log logging.Logger
}

// New constructs a Store over the given connection.
func New(db *sql.DB, rm repomanager.RepositoryManager, log logging.Logger) *Store {
	return &Store{db: db, rm: rm, log: log}
}

// Normalize canonicalizes a value for case-insensitive uniqueness and
// lookup: surrounding whitespace is dropped and the rest is uppercased.
// All normalized columns and all lookups go through this one function.
func Normalize(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

// newStamp issues a fresh opaque concurrency token.
func newStamp() string {
	return uuid.NewString()
}

// checkBounded validates that each named value fits the bounded columns.
// The limit counts characters, matching varchar(n) semantics, not bytes.
func checkBounded(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if utf8.RuneCountInString(pairs[i+1]) > MaxBoundedLen {
			return fmt.Errorf("%s: %w", pairs[i], common.ErrValueTooLong)
		}
	}
	return nil
}
