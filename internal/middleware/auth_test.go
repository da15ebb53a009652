package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yjpark/sns-service/internal/domain"
	"github.com/yjpark/sns-service/internal/token"
	"github.com/yjpark/sns-service/pkg/logger"
)

const testSecret = "test-secret"

type mockUserResolver struct {
	users   map[string]*domain.User
	loadErr error
}

func (r *mockUserResolver) LoadByUsername(ctx context.Context, username string) (*domain.User, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.users[username], nil
}

func newAuthRouter(resolver *mockUserResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Authenticate(resolver, testSecret, logger.Get()))

	router.GET("/open", func(c *gin.Context) {
		if p, ok := PrincipalFromContext(c); ok {
			c.String(http.StatusOK, p.Username)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	router.GET("/protected", RequireAuth(), func(c *gin.Context) {
		p, _ := PrincipalFromContext(c)
		c.String(http.StatusOK, p.Username)
	})
	return router
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	resolver := &mockUserResolver{users: map[string]*domain.User{
		"alice": {ID: 1, Username: "alice", Role: domain.RoleUser},
	}}
	router := newAuthRouter(resolver)

	validToken, err := token.Mint("alice", testSecret, time.Minute)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	t.Run("valid token resolves principal", func(t *testing.T) {
		w := doRequest(router, "/open", "Bearer "+validToken)
		if w.Code != http.StatusOK || w.Body.String() != "alice" {
			t.Errorf("got %d %q, want 200 alice", w.Code, w.Body.String())
		}
	})

	t.Run("missing header continues unauthenticated", func(t *testing.T) {
		w := doRequest(router, "/open", "")
		if w.Code != http.StatusOK || w.Body.String() != "anonymous" {
			t.Errorf("got %d %q, want 200 anonymous", w.Code, w.Body.String())
		}
	})

	t.Run("malformed header continues unauthenticated", func(t *testing.T) {
		for _, header := range []string{"Bearer", "Basic abc", validToken} {
			w := doRequest(router, "/open", header)
			if w.Code != http.StatusOK || w.Body.String() != "anonymous" {
				t.Errorf("header %q: got %d %q, want 200 anonymous", header, w.Code, w.Body.String())
			}
		}
	})

	t.Run("expired token continues unauthenticated", func(t *testing.T) {
		expired, err := token.Mint("alice", testSecret, -time.Minute)
		if err != nil {
			t.Fatalf("Mint() error = %v", err)
		}
		w := doRequest(router, "/open", "Bearer "+expired)
		if w.Code != http.StatusOK || w.Body.String() != "anonymous" {
			t.Errorf("got %d %q, want 200 anonymous", w.Code, w.Body.String())
		}
	})

	t.Run("token signed with other secret continues unauthenticated", func(t *testing.T) {
		forged, err := token.Mint("alice", "other-secret", time.Minute)
		if err != nil {
			t.Fatalf("Mint() error = %v", err)
		}
		w := doRequest(router, "/open", "Bearer "+forged)
		if w.Code != http.StatusOK || w.Body.String() != "anonymous" {
			t.Errorf("got %d %q, want 200 anonymous", w.Code, w.Body.String())
		}
	})

	t.Run("unknown subject continues unauthenticated", func(t *testing.T) {
		ghost, err := token.Mint("ghost", testSecret, time.Minute)
		if err != nil {
			t.Fatalf("Mint() error = %v", err)
		}
		w := doRequest(router, "/open", "Bearer "+ghost)
		if w.Code != http.StatusOK || w.Body.String() != "anonymous" {
			t.Errorf("got %d %q, want 200 anonymous", w.Code, w.Body.String())
		}
	})

	t.Run("resolver failure continues unauthenticated", func(t *testing.T) {
		failing := newAuthRouter(&mockUserResolver{loadErr: errors.New("connection refused")})
		w := doRequest(failing, "/open", "Bearer "+validToken)
		if w.Code != http.StatusOK || w.Body.String() != "anonymous" {
			t.Errorf("got %d %q, want 200 anonymous", w.Code, w.Body.String())
		}
	})
}

func TestRequireAuth(t *testing.T) {
	resolver := &mockUserResolver{users: map[string]*domain.User{
		"alice": {ID: 1, Username: "alice", Role: domain.RoleUser},
	}}
	router := newAuthRouter(resolver)

	t.Run("rejects anonymous request", func(t *testing.T) {
		w := doRequest(router, "/protected", "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("got %d, want 401", w.Code)
		}
	})

	t.Run("admits authenticated request", func(t *testing.T) {
		tok, err := token.Mint("alice", testSecret, time.Minute)
		if err != nil {
			t.Fatalf("Mint() error = %v", err)
		}
		w := doRequest(router, "/protected", "Bearer "+tok)
		if w.Code != http.StatusOK || w.Body.String() != "alice" {
			t.Errorf("got %d %q, want 200 alice", w.Code, w.Body.String())
		}
	})
}
