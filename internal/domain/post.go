package domain

import (
	"time"
)

// Post represents a user's post
type Post struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Body         string     `json:"body"`
	UserID       int64      `json:"user_id"`
	Username     string     `json:"username"`
	RegisteredAt time.Time  `json:"registered_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Comment represents a comment on a post
type Comment struct {
	ID           int64     `json:"id"`
	PostID       int64     `json:"post_id"`
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	Comment      string    `json:"comment"`
	RegisteredAt time.Time `json:"registered_at"`
}
