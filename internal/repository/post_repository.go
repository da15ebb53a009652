package repository

import (
	"context"

	"github.com/yjpark/sns-service/internal/domain"
)

// PostRepository defines the interface for post data access.
// Lookups return (nil, nil) when no row matches.
type PostRepository interface {
	// Create persists a new post and fills in its generated fields
	Create(ctx context.Context, post *domain.Post) error
	// GetByID retrieves a post by id
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	// Update saves title and body changes
	Update(ctx context.Context, post *domain.Post) error
	// SoftDelete marks a post deleted
	SoftDelete(ctx context.Context, id int64) error
	// List retrieves posts newest first, with the total count
	List(ctx context.Context, page, size int) ([]*domain.Post, int64, error)
	// ListByUser retrieves one user's posts newest first, with the total count
	ListByUser(ctx context.Context, userID int64, page, size int) ([]*domain.Post, int64, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create persists a new comment and fills in its generated fields
	Create(ctx context.Context, comment *domain.Comment) error
	// ListByPost retrieves a post's comments newest first, with the total count
	ListByPost(ctx context.Context, postID int64, page, size int) ([]*domain.Comment, int64, error)
}

// LikeRepository defines the interface for like data access
type LikeRepository interface {
	// Create records that userID liked postID
	Create(ctx context.Context, postID, userID int64) error
	// Exists reports whether userID already liked postID
	Exists(ctx context.Context, postID, userID int64) (bool, error)
	// CountByPost returns the number of likes on a post
	CountByPost(ctx context.Context, postID int64) (int64, error)
}
