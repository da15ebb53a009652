package dto

import (
	"time"

	"github.com/yjpark/sns-service/internal/domain"
)

// PostCreateRequest is the request body for creating a post
type PostCreateRequest struct {
	Title string `json:"title" binding:"required,max=200"`
	Body  string `json:"body" binding:"required"`
}

// PostModifyRequest is the request body for modifying a post
type PostModifyRequest struct {
	Title string `json:"title" binding:"required,max=200"`
	Body  string `json:"body" binding:"required"`
}

// CommentRequest is the request body for commenting on a post
type CommentRequest struct {
	Comment string `json:"comment" binding:"required,max=1000"`
}

// PostResponse is the public view of a post
type PostResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	RegisteredAt time.Time `json:"registered_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewPostResponse builds a PostResponse from a post
func NewPostResponse(post *domain.Post) *PostResponse {
	return &PostResponse{
		ID:           post.ID,
		Title:        post.Title,
		Body:         post.Body,
		UserID:       post.UserID,
		Username:     post.Username,
		RegisteredAt: post.RegisteredAt,
		UpdatedAt:    post.UpdatedAt,
	}
}

// NewPostResponses builds PostResponses from posts
func NewPostResponses(posts []*domain.Post) []*PostResponse {
	out := make([]*PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostResponse(p))
	}
	return out
}

// CommentResponse is the public view of a comment
type CommentResponse struct {
	ID           int64     `json:"id"`
	PostID       int64     `json:"post_id"`
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	Comment      string    `json:"comment"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewCommentResponse builds a CommentResponse from a comment
func NewCommentResponse(comment *domain.Comment) *CommentResponse {
	return &CommentResponse{
		ID:           comment.ID,
		PostID:       comment.PostID,
		UserID:       comment.UserID,
		Username:     comment.Username,
		Comment:      comment.Comment,
		RegisteredAt: comment.RegisteredAt,
	}
}

// NewCommentResponses builds CommentResponses from comments
func NewCommentResponses(comments []*domain.Comment) []*CommentResponse {
	out := make([]*CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentResponse(c))
	}
	return out
}

// LikeCountResponse carries the number of likes on a post
type LikeCountResponse struct {
	Count int64 `json:"count"`
}
