package models

// UserRole joins users to roles (many-to-many).
type UserRole struct {
	UserID int64
	RoleID int64
}
