package repository

import (
	"context"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
)

type CreateUserInput struct {
	Fullname     string
	Email        string
	PasswordHash string
}

type UserRepository interface {
	// Create inserts an unverified user. Returns domain.ErrUserExists on a duplicate email.
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	MarkVerified(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
