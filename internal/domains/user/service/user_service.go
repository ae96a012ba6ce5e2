package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"wishlist-backend/internal/domains/user"
	"wishlist-backend/pkg/cache"
	"wishlist-backend/pkg/jwt"
)

const defaultBcryptCost = 12

// userService implement user.Service interface
type userService struct {
	repo       user.Repository
	jwtManager *jwt.Manager
	revoked    cache.Cache
	bcryptCost int
}

// NewUserService - revoked là cache lưu token id đã signout.
func NewUserService(repo user.Repository, jwtManager *jwt.Manager, revoked cache.Cache) user.Service {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
		revoked:    revoked,
		bcryptCost: defaultBcryptCost,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) SignUp(ctx context.Context, req user.SignUpRequest) (*user.Session, error) {
	req.Email = user.NormalizeEmail(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		FullName:     req.FullName,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Msg("User signed up")
	return s.issueSession(u)
}

func (s *userService) SignIn(ctx context.Context, req user.SignInRequest) (*user.Session, error) {
	req.Email = user.NormalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	return s.issueSession(u)
}

// SignOut đưa token id vào blacklist cho tới khi token hết hạn.
func (s *userService) SignOut(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" {
		return user.ErrInvalidSession
	}

	ttl := s.jwtManager.RemainingTTL(claims)
	if ttl <= 0 {
		return nil
	}
	if err := s.revoked.Set(ctx, jwt.RevocationKey(claims.ID), true, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	log.Info().Str("user_id", claims.UserID).Msg("User signed out")
	return nil
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) issueSession(u *user.User) (*user.Session, error) {
	token, claims, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &user.Session{
		AccessToken: token,
		ExpiresAt:   claims.ExpiresAt.Time,
		User:        u.ToDTO(),
	}, nil
}
