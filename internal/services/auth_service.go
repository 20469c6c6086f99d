package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/teamly-api/internal/constants"
	"github.com/yukikurage/teamly-api/internal/models"
	"github.com/yukikurage/teamly-api/internal/repository"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrNameRequired       = errors.New("name is required")
	ErrPasswordRequired   = errors.New("password is required")
)

// Identity hashes credentials and signs bearer tokens.
type Identity interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
	IssueToken(subject string, ttl time.Duration) (string, error)
	ResolveToken(token string) (string, error)
}

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	identity Identity
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, identity Identity, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		identity: identity,
		tokenTTL: tokenTTL,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Register creates a new user. Emails are unique and compared exactly.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := s.identity.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:             uuid.NewString(),
		Email:          email,
		Name:           input.Name,
		CreatedAt:      time.Now().UTC(),
		HashedPassword: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Token is an issued bearer token.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
}

// Login verifies credentials and issues a bearer token for the user's email.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*Token, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.identity.Verify(input.Password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.identity.IssueToken(user.Email, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &Token{
		AccessToken: accessToken,
		TokenType:   constants.TokenType,
		ExpiresIn:   s.tokenTTL,
	}, nil
}

// CurrentUser resolves a bearer token to its user. A valid token whose
// subject no longer matches a user is rejected like a bad token.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	email, err := s.identity.ResolveToken(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
