package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yjpark/sns-service/internal/dto"
	"github.com/yjpark/sns-service/internal/middleware"
	"github.com/yjpark/sns-service/internal/service"
	"github.com/yjpark/sns-service/pkg/logger"
	"github.com/yjpark/sns-service/pkg/response"
	"go.uber.org/zap"
)

// UserHandler handles user account HTTP requests
type UserHandler struct {
	users  service.UserService
	alarms service.AlarmService
	log    *logger.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users service.UserService, alarms service.AlarmService, log *logger.Logger) *UserHandler {
	return &UserHandler{users: users, alarms: alarms, log: log}
}

// Join handles POST /api/v1/users/join
func (h *UserHandler) Join(c *gin.Context) {
	var req dto.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.Join(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUsername) {
			response.Conflict(c, "DUPLICATED_USER_NAME", "username is already taken")
			return
		}
		h.log.Error("join failed", zap.String("username", req.Username), zap.Error(err))
		response.InternalError(c)
		return
	}

	response.Created(c, dto.NewJoinResponse(user))
}

// Login handles POST /api/v1/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tok, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "USER_NOT_FOUND", "user not found")
		case errors.Is(err, service.ErrInvalidPassword):
			response.Error(c, http.StatusUnauthorized, "INVALID_PASSWORD", "invalid password")
		default:
			h.log.Error("login failed", zap.String("username", req.Username), zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.Success(c, dto.LoginResponse{Token: tok})
}

// Alarms handles GET /api/v1/users/alarm
func (h *UserHandler) Alarms(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	page, size := dto.Pagination(c)
	alarms, total, err := h.alarms.List(c.Request.Context(), principal.UserID, page, size)
	if err != nil {
		h.log.Error("alarm list failed", zap.Int64("user_id", principal.UserID), zap.Error(err))
		response.InternalError(c)
		return
	}

	response.Success(c, dto.NewPage(dto.NewAlarmResponses(alarms), page, size, total))
}
