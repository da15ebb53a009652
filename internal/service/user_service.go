package service

import (
	"context"
	"errors"
	"time"

	"github.com/yjpark/sns-service/internal/domain"
	"github.com/yjpark/sns-service/internal/repository"
	"github.com/yjpark/sns-service/internal/token"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateUsername = errors.New("username already joined")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidPassword   = errors.New("invalid password")
)

// UserService defines user account operations
type UserService interface {
	// Join registers a new account
	Join(ctx context.Context, username, password string) (*domain.User, error)
	// Login verifies credentials and mints an access token
	Login(ctx context.Context, username, password string) (string, error)
	// LoadByUsername resolves a token subject to a user. Returns
	// (nil, nil) when the subject no longer exists.
	LoadByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserServiceConfig holds configuration for UserService
type UserServiceConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

type userService struct {
	users  repository.UserRepository
	config *UserServiceConfig
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository, config *UserServiceConfig) UserService {
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	if config.TokenTTL == 0 {
		config.TokenTTL = 30 * time.Minute
	}
	return &userService{users: users, config: config}
}

// Join registers a new account
func (s *userService) Join(ctx context.Context, username, password string) (*domain.User, error) {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUsername
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and mints an access token
func (s *userService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidPassword
	}

	return token.Mint(user.Username, s.config.JWTSecret, s.config.TokenTTL)
}

// LoadByUsername resolves a token subject to a user
func (s *userService) LoadByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}
