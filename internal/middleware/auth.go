package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yjpark/sns-service/internal/domain"
	"github.com/yjpark/sns-service/internal/token"
	"github.com/yjpark/sns-service/pkg/logger"
	"github.com/yjpark/sns-service/pkg/response"
	"go.uber.org/zap"
)

// principalKey is the gin context key holding the resolved principal
const principalKey = "auth.principal"

// UserResolver resolves a verified token subject to a user record.
// Returns (nil, nil) when the subject no longer exists.
type UserResolver interface {
	LoadByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Authenticate resolves the bearer token on each request and, when it
// verifies, attaches the principal to the context. Any failure —
// missing header, bad scheme, invalid or expired token, unknown
// subject — leaves the request unauthenticated and lets it continue;
// protected routes reject downstream via RequireAuth.
func Authenticate(users UserResolver, secret string, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			log.Debug("malformed authorization header", zap.String("path", c.Request.URL.Path))
			c.Next()
			return
		}

		username, err := token.Verify(parts[1], secret)
		if err != nil {
			log.Debug("token rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.Next()
			return
		}

		user, err := users.LoadByUsername(c.Request.Context(), username)
		if err != nil || user == nil {
			if err != nil {
				log.Warn("principal lookup failed",
					zap.String("username", username),
					zap.Error(err),
				)
			}
			c.Next()
			return
		}

		c.Set(principalKey, &domain.Principal{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
		})
		c.Next()
	}
}

// RequireAuth rejects requests that carry no authenticated principal
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := PrincipalFromContext(c); !ok {
			response.AbortError(c, 401, "UNAUTHORIZED", "authentication required")
			return
		}
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, if any
func PrincipalFromContext(c *gin.Context) (*domain.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*domain.Principal)
	return p, ok
}
