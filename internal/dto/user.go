package dto

import (
	"errors"
	"time"

	"github.com/yjpark/sns-service/internal/domain"
)

// JoinRequest is the request body for user registration
type JoinRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// Validate checks request constraints beyond field tags
func (r *JoinRequest) Validate() error {
	for _, c := range r.Username {
		if c == ' ' || c == '\t' || c == '\n' {
			return errors.New("username must not contain whitespace")
		}
	}
	return nil
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// JoinResponse is returned after a successful registration
type JoinResponse struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewJoinResponse builds a JoinResponse from a user
func NewJoinResponse(user *domain.User) *JoinResponse {
	return &JoinResponse{
		ID:           user.ID,
		Username:     user.Username,
		Role:         string(user.Role),
		RegisteredAt: user.RegisteredAt,
	}
}

// LoginResponse carries the minted access token
type LoginResponse struct {
	Token string `json:"token"`
}
