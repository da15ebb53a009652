package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Rate:            rate.Limit(1),
		Burst:           2,
		CleanupInterval: time.Minute,
	})
	defer rl.Stop()

	router := newLimitedRouter(rl)

	doGet := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":12345"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("allows up to burst then rejects", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if w := doGet("10.0.0.1"); w.Code != http.StatusOK {
				t.Fatalf("request %d: got %d, want 200", i, w.Code)
			}
		}
		w := doGet("10.0.0.1")
		if w.Code != http.StatusTooManyRequests {
			t.Errorf("got %d, want 429", w.Code)
		}
		if w.Header().Get("Retry-After") == "" {
			t.Error("missing Retry-After header")
		}
	})

	t.Run("clients are limited independently", func(t *testing.T) {
		if w := doGet("10.0.0.2"); w.Code != http.StatusOK {
			t.Errorf("got %d, want 200 for a fresh client", w.Code)
		}
	})
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Rate:            rate.Limit(1),
		Burst:           1,
		CleanupInterval: 20 * time.Millisecond,
	})
	defer rl.Stop()

	rl.getOrCreate("10.0.0.1")
	if rl.LimiterCount() != 1 {
		t.Fatalf("LimiterCount() = %d, want 1", rl.LimiterCount())
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if rl.LimiterCount() == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("stale limiter was never cleaned up")
}
