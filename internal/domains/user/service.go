package user

import (
	"context"

	"github.com/google/uuid"

	"wishlist-backend/pkg/jwt"
)

// Service - identity: signup, signin, signout, profile.
type Service interface {
	SignUp(ctx context.Context, req SignUpRequest) (*Session, error)
	SignIn(ctx context.Context, req SignInRequest) (*Session, error)
	// SignOut revokes the token the claims were parsed from.
	SignOut(ctx context.Context, claims *jwt.Claims) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
}
