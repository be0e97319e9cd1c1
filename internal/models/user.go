// Package models contains domain types for taskflow entities.
// These are the wire shapes exchanged with the backend; business rules
// over them live in internal/core/*.
package models

import "time"

// User represents an account as returned by the backend.
type User struct {
	ID              int        `json:"id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
}

// FullName returns the display name for a user.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Organization-wide role constants
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleIncharge   = "incharge"
	RoleUser       = "user"
)
