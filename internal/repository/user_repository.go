package repository

import (
	"context"

	"github.com/yjpark/sns-service/internal/domain"
)

// UserRepository defines the interface for user data access.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	// Create persists a new user and fills in its generated fields
	Create(ctx context.Context, user *domain.User) error
	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
