package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yjpark/sns-service/pkg/database"
	redisclient "github.com/yjpark/sns-service/pkg/redis"
	"github.com/yjpark/sns-service/pkg/response"
)

// HealthHandler handles liveness and readiness probes
type HealthHandler struct {
	db    *database.PostgresDB
	redis *redisclient.Client
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *database.PostgresDB, redis *redisclient.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

// Ready handles GET /ready; checks backing stores
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.db.Ping(ctx); err != nil {
		response.Error(c, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "database not reachable")
		return
	}
	if err := h.redis.Ping(ctx); err != nil {
		response.Error(c, http.StatusServiceUnavailable, "REDIS_UNAVAILABLE", "redis not reachable")
		return
	}

	response.Success(c, gin.H{"status": "ready"})
}
