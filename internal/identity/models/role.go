package models

// Role is a named permission group. It follows the same normalized-name
// uniqueness and concurrency-stamp pattern as User.
type Role struct {
	ID               int64
	Name             string
	NormalizedName   string
	ConcurrencyStamp string
}
