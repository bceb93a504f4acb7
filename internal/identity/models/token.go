package models

// UserToken stores a provider-issued token for a named purpose (2FA,
// external refresh, etc). The triple (UserID, LoginProvider, Name) is the
// primary key: re-issuing a token for the same purpose updates the row.
type UserToken struct {
	UserID        int64
	LoginProvider string
	Name          string
	Value         string
}
