package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kobo/backend/internal/infrastructure/auth"
	"github.com/kobo/backend/internal/interfaces/http/dto"
)

// Context keys set by the session middleware
const (
	// SessionUsernameKey holds the authenticated admin username
	SessionUsernameKey = "session_username"
	// SessionTokenKey holds the raw bearer token, used by logout
	SessionTokenKey = "session_token"
)

// SessionValidator validates a session token and returns its claims
type SessionValidator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// SessionAuth rejects requests without a valid, unrevoked session token.
// Every failure produces the same 401 envelope; the reason is not exposed.
func SessionAuth(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := validator.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(SessionUsernameKey, claims.Username)
		c.Set(SessionTokenKey, token)
		c.Next()
	}
}

// BearerToken extracts the token from the Authorization header, or ""
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// GetSessionUsername returns the authenticated username set by SessionAuth
func GetSessionUsername(c *gin.Context) string {
	if username, exists := c.Get(SessionUsernameKey); exists {
		if name, ok := username.(string); ok {
			return name
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
}
