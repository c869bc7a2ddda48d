// Package domain contains the core types shared across modules.
package domain

import "time"

// Role is an open categorical classification of a user.
// Constants cover the common values; new roles may appear without code changes.
type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// EmploymentType classifies the employment arrangement of a user.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "fulltime"
	EmploymentPartTime   EmploymentType = "parttime"
	EmploymentContractor EmploymentType = "contractor"
)

// User is a directory record for a registered account.
// EmailVerifiedAt is nil until the account is activated. It transitions at most
// once, from nil to a timestamp, and is never reset.
type User struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	PasswordHash    string         `json:"-"`
	Role            Role           `json:"role"`
	EmploymentType  EmploymentType `json:"employment_type"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Verified reports whether the account's email has been activated.
func (u *User) Verified() bool {
	return u.EmailVerifiedAt != nil
}
