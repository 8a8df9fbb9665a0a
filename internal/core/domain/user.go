package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
	RoleViewer  = "viewer"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleUser, RoleViewer:
		return true
	}
	return false
}

// User is the read model for a registered library member. The password hash
// is write-only and never appears here.
type User struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	RegisteredDate time.Time `json:"registered_date"`
}

// FullName joins first and last name. Computed at read time, never stored.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// CreateUser carries every field required to register a new user.
// Password holds the bcrypt hash by the time it reaches the repository; the
// service hashes the plaintext before persisting.
type CreateUser struct {
	FirstName      string
	LastName       string
	Email          string
	Role           string
	Password       string
	RegisteredDate time.Time // zero value means "now" at creation time
}

// UpdateUser is a partial patch; nil fields leave stored values untouched.
type UpdateUser struct {
	FirstName *string
	LastName  *string
	Email     *string
	Role      *string
	Password  *string
}

// Empty reports whether the patch carries no changes at all.
func (u UpdateUser) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil &&
		u.Role == nil && u.Password == nil
}

// NormalizeEmail trims whitespace and lower-cases, so email comparison and
// lookup are case-insensitive even though storage is not.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
