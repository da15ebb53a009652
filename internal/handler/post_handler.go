package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yjpark/sns-service/internal/dto"
	"github.com/yjpark/sns-service/internal/middleware"
	"github.com/yjpark/sns-service/internal/service"
	"github.com/yjpark/sns-service/pkg/logger"
	"github.com/yjpark/sns-service/pkg/response"
	"go.uber.org/zap"
)

// PostHandler handles post, comment and like HTTP requests
type PostHandler struct {
	posts service.PostService
	log   *logger.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts service.PostService, log *logger.Logger) *PostHandler {
	return &PostHandler{posts: posts, log: log}
}

// Create handles POST /api/v1/posts
func (h *PostHandler) Create(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req dto.PostCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.posts.Create(c.Request.Context(), req.Title, req.Body, principal.Username); err != nil {
		h.handleError(c, err, "post create failed")
		return
	}

	response.Created(c, nil)
}

// Modify handles PUT /api/v1/posts/:postId
func (h *PostHandler) Modify(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	var req dto.PostModifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.posts.Modify(c.Request.Context(), postID, req.Title, req.Body, principal.Username)
	if err != nil {
		h.handleError(c, err, "post modify failed")
		return
	}

	response.Success(c, dto.NewPostResponse(post))
}

// Delete handles DELETE /api/v1/posts/:postId
func (h *PostHandler) Delete(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), postID, principal.Username); err != nil {
		h.handleError(c, err, "post delete failed")
		return
	}

	response.Success(c, nil)
}

// List handles GET /api/v1/posts
func (h *PostHandler) List(c *gin.Context) {
	page, size := dto.Pagination(c)
	posts, total, err := h.posts.List(c.Request.Context(), page, size)
	if err != nil {
		h.handleError(c, err, "post list failed")
		return
	}

	response.Success(c, dto.NewPage(dto.NewPostResponses(posts), page, size, total))
}

// My handles GET /api/v1/posts/my
func (h *PostHandler) My(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	page, size := dto.Pagination(c)
	posts, total, err := h.posts.My(c.Request.Context(), principal.Username, page, size)
	if err != nil {
		h.handleError(c, err, "my post list failed")
		return
	}

	response.Success(c, dto.NewPage(dto.NewPostResponses(posts), page, size, total))
}

// Like handles POST /api/v1/posts/:postId/likes
func (h *PostHandler) Like(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	if err := h.posts.Like(c.Request.Context(), postID, principal.Username); err != nil {
		h.handleError(c, err, "like failed")
		return
	}

	response.Success(c, nil)
}

// LikeCount handles GET /api/v1/posts/:postId/likes
func (h *PostHandler) LikeCount(c *gin.Context) {
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	count, err := h.posts.LikeCount(c.Request.Context(), postID)
	if err != nil {
		h.handleError(c, err, "like count failed")
		return
	}

	response.Success(c, dto.LikeCountResponse{Count: count})
}

// Comment handles POST /api/v1/posts/:postId/comments
func (h *PostHandler) Comment(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.posts.Comment(c.Request.Context(), postID, principal.Username, req.Comment); err != nil {
		h.handleError(c, err, "comment failed")
		return
	}

	response.Created(c, nil)
}

// GetComments handles GET /api/v1/posts/:postId/comments
func (h *PostHandler) GetComments(c *gin.Context) {
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	page, size := dto.Pagination(c)
	comments, total, err := h.posts.GetComments(c.Request.Context(), postID, page, size)
	if err != nil {
		h.handleError(c, err, "comment list failed")
		return
	}

	response.Success(c, dto.NewPage(dto.NewCommentResponses(comments), page, size, total))
}

func (h *PostHandler) postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid post id")
		return 0, false
	}
	return id, true
}

func (h *PostHandler) handleError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		response.NotFound(c, "POST_NOT_FOUND", "post not found")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, "USER_NOT_FOUND", "user not found")
	case errors.Is(err, service.ErrInvalidPermission):
		response.Forbidden(c, "INVALID_PERMISSION", "no permission over this post")
	case errors.Is(err, service.ErrAlreadyLiked):
		response.Conflict(c, "ALREADY_LIKED", "post already liked")
	default:
		h.log.Error(msg, zap.Error(err))
		response.InternalError(c)
	}
}
