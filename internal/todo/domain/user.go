package domain

import "time"

// Roles known to the service. Registration accepts any role string; only
// RoleAdmin grants extra access.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt; empty for accounts created through Google
	Role         string
	IsActive     bool
	PhoneNumber  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the account can log in with a password.
func (u User) HasPassword() bool { return u.PasswordHash != "" }

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
