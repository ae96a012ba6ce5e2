package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository - data access cho users
type Repository interface {
	// Create returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
