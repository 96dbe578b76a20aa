package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the access level attached to a platform account.
type Role string

const (
	RoleSuperAdmin   Role = "SUPER_ADMIN"
	RoleAdmin        Role = "ADMIN"
	RoleLaundryOwner Role = "LAUNDRY_OWNER"
	RoleCustomer     Role = "CUSTOMER"
)

var (
	ErrEmptyEmail    = errors.New("email is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrEmptyPassword = errors.New("password is required")
)

// User represents a platform account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the account invariants.
func (u *User) Validate() error {
	email := strings.TrimSpace(u.Email)
	if email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(u.PasswordHash) == "" {
		return ErrEmptyPassword
	}
	return nil
}

// DisplayName returns the name, falling back to the email address.
func (u *User) DisplayName() string {
	if strings.TrimSpace(u.Name) != "" {
		return u.Name
	}
	return u.Email
}
