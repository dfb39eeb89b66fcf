package middleware

import (
	"strings"

	"github.com/Rugved7/URL-shortener-backend/internal/domain"
	"github.com/Rugved7/URL-shortener-backend/internal/logger"
	"github.com/Rugved7/URL-shortener-backend/internal/token"
	"github.com/Rugved7/URL-shortener-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Auth is the access guard. It runs on every request under the group
// it is mounted on: no Authorization header lets the request continue
// anonymously, a present but invalid token is rejected outright. It
// never touches storage; verification is pure.
func Auth(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			response.Unauthorized(c, "Invalid authorization header")
			c.Abort()
			return
		}

		identity, err := codec.Verify(raw)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		ctx := logger.WithUsername(c.Request.Context(), identity.Username)
		c.Request = c.Request.WithContext(ctx)
		SetIdentity(c, identity)

		c.Next()
	}
}

func SetIdentity(c *gin.Context, identity *domain.Identity) {
	c.Set(identityKey, identity)
}

// RequireAuth rejects requests that reached a protected route without
// a verified identity.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFrom(c); !ok {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (*domain.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*domain.Identity)
	return identity, ok
}
