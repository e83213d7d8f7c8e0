package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists user accounts.
type Repository interface {
	// Create stores a new user. A duplicate email fails with ErrEmailTaken.
	Create(ctx context.Context, user User) error
	// FindByEmail returns the user or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByID returns the user or ErrUserNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}
