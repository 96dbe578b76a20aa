// Package ports declares the boundary interfaces of the identity context.
package ports

import (
	"context"
	"errors"

	"github.com/laundromart/admin-api/internal/domains/identity/domain"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")
)

// Repository persists users.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}

// LoginResult is what a successful credential exchange yields.
type LoginResult struct {
	Token string
	User  *domain.User
}

// Service exposes the identity use cases.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
