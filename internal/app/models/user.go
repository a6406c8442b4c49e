package models

import (
	"time"
)

// RoleType represents the role of a user account
type RoleType string

const (
	RoleStudent   RoleType = "student"
	RoleRecruiter RoleType = "recruiter"
	RoleAdmin     RoleType = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

// User defines an authenticated account independent of role-specific profile data
type User struct {
	ID        string    `json:"id" example:"8b5fca9e-72e0-4d7e-9d14-1f2f3a4b5c6d"` // Unique identifier for the user
	Email     string    `json:"email" example:"student@college.edu"`               // User's email address
	Role      RoleType  `json:"role" example:"student"`                            // User's role (student, recruiter or admin)
	FirstName string    `json:"firstName" example:"John"`                          // User's first name
	LastName  string    `json:"lastName" example:"Doe"`                            // User's last name
	CreatedAt time.Time `json:"createdAt" example:"2024-01-01T10:00:00Z"`          // Timestamp when the account was created
	Verified  bool      `json:"verified" example:"true"`                           // Whether the email address has been verified
}

// Credential stores a user's password hash separately from the public account
// record so the hash never travels with User in API responses.
type Credential struct {
	ID           string `json:"id"` // same value as the owning user id
	PasswordHash string `json:"passwordHash"`
}
