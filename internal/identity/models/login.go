package models

// UserLogin links an external-provider identity to a local user. The pair
// (LoginProvider, ProviderKey) is the primary key, so a given external
// identity can belong to at most one local user.
type UserLogin struct {
	LoginProvider       string
	ProviderKey         string
	ProviderDisplayName string
	UserID              int64
}
