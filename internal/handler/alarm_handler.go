package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yjpark/sns-service/internal/middleware"
	"github.com/yjpark/sns-service/internal/realtime"
	"github.com/yjpark/sns-service/internal/service"
	"github.com/yjpark/sns-service/pkg/logger"
	"github.com/yjpark/sns-service/pkg/response"
	"go.uber.org/zap"
)

// AlarmHandler handles the live alarm subscription stream
type AlarmHandler struct {
	alarms service.AlarmService
	log    *logger.Logger
}

// NewAlarmHandler creates a new AlarmHandler
func NewAlarmHandler(alarms service.AlarmService, log *logger.Logger) *AlarmHandler {
	return &AlarmHandler{alarms: alarms, log: log}
}

// Subscribe handles GET /api/v1/users/alarm/subscribe. It holds the
// connection open as a server-sent event stream until the client goes
// away, the channel is displaced by a reconnect, or the maximum
// stream lifetime elapses.
func (h *AlarmHandler) Subscribe(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	ch, err := h.alarms.Connect(principal.UserID)
	if err != nil {
		h.log.Error("alarm subscribe failed", zap.Int64("user_id", principal.UserID), zap.Error(err))
		response.InternalError(c)
		return
	}
	defer h.alarms.Disconnect(principal.UserID, ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Writer.WriteHeaderNow()

	// Fixed maximum lifetime for the whole stream; not reset per event.
	lifetime := time.NewTimer(h.alarms.ChannelTimeout())
	defer lifetime.Stop()

	for {
		select {
		case ev := <-ch.Events():
			if err := writeEvent(c, ev); err != nil {
				h.log.Debug("alarm stream write failed",
					zap.Int64("user_id", principal.UserID),
					zap.Error(err),
				)
				return
			}
		case <-ch.Done():
			// Evicted or displaced by a reconnect.
			return
		case <-lifetime.C:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}

func writeEvent(c *gin.Context, ev realtime.Event) error {
	if ev.ID != "" {
		if _, err := fmt.Fprintf(c.Writer, "id: %s\n", ev.ID); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", ev.Name, ev.Data); err != nil {
		return err
	}
	c.Writer.Flush()
	return nil
}
