package model

// Role is the role assigned to a user by the rental platform.
type Role string

const (
	// RoleUser is a regular renter account. It cannot hold a dashboard session.
	RoleUser Role = "USER"
	// RoleAdmin may operate the administrative dashboard.
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is one the platform defines.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}
