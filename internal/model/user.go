package model

// Role values stored in the users table. Roles are assigned at
// registration and never changed by the application itself.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account. The ID is the identity provider's
// key; the table row is created with the same id at registration so the
// two records stay associated.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
