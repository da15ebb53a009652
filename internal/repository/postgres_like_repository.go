package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLikeRepository implements LikeRepository using PostgreSQL
type PostgresLikeRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(pool *pgxpool.Pool) *PostgresLikeRepository {
	return &PostgresLikeRepository{pool: pool}
}

// Create records that userID liked postID
func (r *PostgresLikeRepository) Create(ctx context.Context, postID, userID int64) error {
	query := `
		INSERT INTO likes (post_id, user_id)
		VALUES ($1, $2)
	`
	_, err := r.pool.Exec(ctx, query, postID, userID)
	return err
}

// Exists reports whether userID already liked postID
func (r *PostgresLikeRepository) Exists(ctx context.Context, postID, userID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM likes WHERE post_id = $1 AND user_id = $2
		)
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, postID, userID).Scan(&exists)
	return exists, err
}

// CountByPost returns the number of likes on a post
func (r *PostgresLikeRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	query := `
		SELECT COUNT(*) FROM likes WHERE post_id = $1
	`
	var count int64
	err := r.pool.QueryRow(ctx, query, postID).Scan(&count)
	return count, err
}
