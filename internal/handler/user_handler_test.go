package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/yjpark/sns-service/internal/domain"
	"github.com/yjpark/sns-service/internal/service"
	"github.com/yjpark/sns-service/pkg/logger"
)

type stubUserService struct {
	joinUser *domain.User
	joinErr  error
	loginTok string
	loginErr error
}

func (s *stubUserService) Join(ctx context.Context, username, password string) (*domain.User, error) {
	return s.joinUser, s.joinErr
}

func (s *stubUserService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginTok, s.loginErr
}

func (s *stubUserService) LoadByUsername(ctx context.Context, username string) (*domain.User, error) {
	return nil, nil
}

func newUserRouter(users *stubUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(users, nil, logger.Get())
	router := gin.New()
	router.POST("/join", h.Join)
	router.POST("/login", h.Login)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUserHandlerJoin(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router := newUserRouter(&stubUserService{
			joinUser: &domain.User{ID: 1, Username: "alice", Role: domain.RoleUser},
		})
		w := postJSON(router, "/join", `{"username":"alice","password":"password123"}`)
		if w.Code != http.StatusCreated {
			t.Errorf("got %d, want 201: %s", w.Code, w.Body.String())
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		router := newUserRouter(&stubUserService{joinErr: service.ErrDuplicateUsername})
		w := postJSON(router, "/join", `{"username":"alice","password":"password123"}`)
		if w.Code != http.StatusConflict {
			t.Errorf("got %d, want 409", w.Code)
		}
		if !strings.Contains(w.Body.String(), "DUPLICATED_USER_NAME") {
			t.Errorf("body = %s, want DUPLICATED_USER_NAME code", w.Body.String())
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		router := newUserRouter(&stubUserService{})
		w := postJSON(router, "/join", `{"username":"al","password":"short"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("got %d, want 400", w.Code)
		}
	})
}

func TestUserHandlerLogin(t *testing.T) {
	t.Run("returns token", func(t *testing.T) {
		router := newUserRouter(&stubUserService{loginTok: "some-token"})
		w := postJSON(router, "/login", `{"username":"alice","password":"password123"}`)
		if w.Code != http.StatusOK {
			t.Errorf("got %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), "some-token") {
			t.Errorf("body = %s, want token", w.Body.String())
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		router := newUserRouter(&stubUserService{loginErr: service.ErrUserNotFound})
		w := postJSON(router, "/login", `{"username":"ghost","password":"password123"}`)
		if w.Code != http.StatusNotFound {
			t.Errorf("got %d, want 404", w.Code)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		router := newUserRouter(&stubUserService{loginErr: service.ErrInvalidPassword})
		w := postJSON(router, "/login", `{"username":"alice","password":"wrong"}`)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("got %d, want 401", w.Code)
		}
	})
}
