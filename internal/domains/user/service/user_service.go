package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	user "book-catalog-backend/internal/domains/user"
	"book-catalog-backend/pkg/jwt"
)

// PasswordHasher derives and checks password digests.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, digest string) (bool, error)
}

// TokenIssuer signs access tokens for an authenticated identity.
type TokenIssuer interface {
	Issue(id jwt.Identity) (string, error)
}

// userService implements user.Service. It is stateless beyond its dependencies.
type userService struct {
	repo   user.Repository
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
}

func NewUserService(repo user.Repository, hasher PasswordHasher, tokens TokenIssuer) user.Service {
	return &userService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register creates an identity with a hashed password.
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	// 1. BUSINESS RULE: email must be unused
	_, err := s.repo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, user.ErrDuplicateIdentity
	case !errors.Is(err, user.ErrIdentityNotFound):
		return nil, fmt.Errorf("check email exists: %w", err)
	}

	// 2. HASH PASSWORD
	digest, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. CREATE USER ENTITY
	now := s.now().UTC()
	newUser := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: digest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 4. PERSIST; a concurrent register surfaces as ErrDuplicateIdentity here
	if err := s.repo.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrDuplicateIdentity) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info().Str("user_id", newUser.ID.String()).Msg("user registered")

	dto := newUser.ToDTO()
	return &dto, nil
}

// Login verifies credentials and issues a token. No session state is kept.
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrIdentityNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, req.Password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, user.ErrInvalidCredential
	}

	token, err := s.tokens.Issue(jwt.Identity{
		Subject: u.ID.String(),
		Email:   u.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &user.LoginResponse{
		Token: token,
		User:  u.ToDTO(),
	}, nil
}
