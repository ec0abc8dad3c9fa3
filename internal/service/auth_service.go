package service

import (
	"context"
	"fmt"

	"github.com/vedran77/userhub/internal/auth"
	"github.com/vedran77/userhub/internal/domain"
)

// AuthService layers token issuance over the user directory.
type AuthService struct {
	users  *UserService
	tokens *auth.TokenCodec
}

func NewAuthService(users *UserService, tokens *auth.TokenCodec) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	return s.users.Register(ctx, input)
}

// Login authenticates and issues a bearer token for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	user, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Refresh re-issues a token for an already authenticated principal, after
// re-checking that the account is still active.
func (s *AuthService) Refresh(ctx context.Context, user *domain.User) (*TokenResponse, error) {
	current, err := s.users.GetWithProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if !current.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.issue(current)
}

func (s *AuthService) issue(user *domain.User) (*TokenResponse, error) {
	token, err := s.tokens.Issue(user.Email, user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}
