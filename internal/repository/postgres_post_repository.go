package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yjpark/sns-service/internal/domain"
)

// PostgresPostRepository implements PostRepository using PostgreSQL
type PostgresPostRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(pool *pgxpool.Pool) *PostgresPostRepository {
	return &PostgresPostRepository{pool: pool}
}

// Create persists a new post
func (r *PostgresPostRepository) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (title, body, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, registered_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		post.Title,
		post.Body,
		post.UserID,
	).Scan(&post.ID, &post.RegisteredAt, &post.UpdatedAt)
}

// GetByID retrieves a post by id
func (r *PostgresPostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	query := `
		SELECT p.id, p.title, p.body, p.user_id, u.username, p.registered_at, p.updated_at, p.deleted_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1 AND p.deleted_at IS NULL
	`
	post := &domain.Post{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.Title,
		&post.Body,
		&post.UserID,
		&post.Username,
		&post.RegisteredAt,
		&post.UpdatedAt,
		&post.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

// Update saves title and body changes
func (r *PostgresPostRepository) Update(ctx context.Context, post *domain.Post) error {
	query := `
		UPDATE posts
		SET title = $2, body = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	_, err := r.pool.Exec(ctx, query, post.ID, post.Title, post.Body)
	return err
}

// SoftDelete marks a post deleted
func (r *PostgresPostRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE posts
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// List retrieves posts newest first
func (r *PostgresPostRepository) List(ctx context.Context, page, size int) ([]*domain.Post, int64, error) {
	query := `
		SELECT p.id, p.title, p.body, p.user_id, u.username, p.registered_at, p.updated_at,
		       COUNT(*) OVER() AS total
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.deleted_at IS NULL
		ORDER BY p.registered_at DESC, p.id DESC
		LIMIT $1 OFFSET $2
	`
	return r.queryPosts(ctx, query, size, page*size)
}

// ListByUser retrieves one user's posts newest first
func (r *PostgresPostRepository) ListByUser(ctx context.Context, userID int64, page, size int) ([]*domain.Post, int64, error) {
	query := `
		SELECT p.id, p.title, p.body, p.user_id, u.username, p.registered_at, p.updated_at,
		       COUNT(*) OVER() AS total
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1 AND p.deleted_at IS NULL
		ORDER BY p.registered_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryPosts(ctx, query, userID, size, page*size)
}

func (r *PostgresPostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]*domain.Post, int64, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var posts []*domain.Post
	var total int64
	for rows.Next() {
		post := &domain.Post{}
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Body,
			&post.UserID,
			&post.Username,
			&post.RegisteredAt,
			&post.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, err
		}
		posts = append(posts, post)
	}
	return posts, total, rows.Err()
}
