package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/livejourney/api/internal/model"
	"github.com/livejourney/api/internal/repository"
	"github.com/livejourney/api/pkg/jwt"
)

const (
	// bcrypt cost factor (10-14 recommended for production)
	bcryptCost = 12

	// Password constraints
	minPasswordLength = 8
	maxPasswordLength = 128
)

// UserRepositoryInterface defines the repository interface.
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByID(ctx context.Context, id string) (*model.User, error)
}

// AuthService handles account registration and login.
type AuthService struct {
	userRepo   UserRepositoryInterface
	jwtService *jwt.Service
}

// AuthServiceConfig holds configuration for the auth service.
type AuthServiceConfig struct {
	UserRepo   UserRepositoryInterface
	JWTService *jwt.Service
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{userRepo: cfg.UserRepo, jwtService: cfg.JWTService}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email    string
	Password string
	Nickname string
}

// AuthResult represents a successful registration or login.
type AuthResult struct {
	User        *model.User
	AccessToken string
	ExpiresIn   int
}

// Register creates an account and issues an access token.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &model.User{
		Email:    email,
		Nickname: strings.TrimSpace(req.Nickname),
		Hash:     &hashStr,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return s.result(user)
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.ByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Hash == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.Hash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.result(user)
}

// User returns the account for an authenticated subject.
func (s *AuthService) User(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ValidateAccessToken validates a bearer token. Exposed for the auth
// middleware.
func (s *AuthService) ValidateAccessToken(token string) (*jwt.Claims, error) {
	return s.jwtService.Validate(token)
}

func (s *AuthService) result(user *model.User) (*AuthResult, error) {
	token, err := s.jwtService.Sign(jwt.Claims{
		Subject: user.ID,
		UserID:  user.ID,
		Email:   user.Email,
	})
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:        user,
		AccessToken: token,
		ExpiresIn:   int(s.jwtService.GetExpiration().Seconds()),
	}, nil
}

func validateEmail(email string) error {
	if email == "" {
		return ErrInvalidEmail
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ErrInvalidEmail
	}
	if !strings.Contains(email[at:], ".") {
		return ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	switch {
	case password == "":
		return ErrPasswordRequired
	case len(password) < minPasswordLength:
		return ErrPasswordTooShort
	case len(password) > maxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}
