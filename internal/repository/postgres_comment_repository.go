package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yjpark/sns-service/internal/domain"
)

// PostgresCommentRepository implements CommentRepository using PostgreSQL
type PostgresCommentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(pool *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

// Create persists a new comment
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (post_id, user_id, comment)
		VALUES ($1, $2, $3)
		RETURNING id, registered_at
	`
	return r.pool.QueryRow(ctx, query,
		comment.PostID,
		comment.UserID,
		comment.Comment,
	).Scan(&comment.ID, &comment.RegisteredAt)
}

// ListByPost retrieves a post's comments newest first
func (r *PostgresCommentRepository) ListByPost(ctx context.Context, postID int64, page, size int) ([]*domain.Comment, int64, error) {
	query := `
		SELECT c.id, c.post_id, c.user_id, u.username, c.comment, c.registered_at,
		       COUNT(*) OVER() AS total
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.registered_at DESC, c.id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, postID, size, page*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var comments []*domain.Comment
	var total int64
	for rows.Next() {
		comment := &domain.Comment{}
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.UserID,
			&comment.Username,
			&comment.Comment,
			&comment.RegisteredAt,
			&total,
		); err != nil {
			return nil, 0, err
		}
		comments = append(comments, comment)
	}
	return comments, total, rows.Err()
}
