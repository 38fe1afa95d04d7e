// Package middleware holds gin middleware shared by HTTP servers of the
// platform API.
package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/momentroom/pkg/jwt"
	"github.com/weiawesome/momentroom/pkg/response"
)

const (
	UserIDKey     = "user_id"
	EmailKey      = "email"
	NicknameKey   = "nickname"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthMiddleware reads bearer tokens. It only checks token shape and
// expiry; signatures are the issuer's business.
type AuthMiddleware struct {
	now func() time.Time
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{now: time.Now}
}

// OptionalAuth sets the user info when a usable token is present and lets
// anonymous requests through.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := m.claims(c); ok {
			setUser(c, claims)
		}
		c.Next()
	}
}

// RequireAuth rejects requests without a usable token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Unauthorized(c, "invalid authorization format")
			return
		}

		claims, ok := m.claims(c)
		if !ok {
			response.Unauthorized(c, "invalid or expired token")
			return
		}

		setUser(c, claims)
		c.Next()
	}
}

func (m *AuthMiddleware) claims(c *gin.Context) (*jwt.Claims, bool) {
	token, ok := strings.CutPrefix(c.GetHeader(AuthHeaderKey), BearerPrefix)
	if !ok || token == "" {
		return nil, false
	}

	claims, err := jwt.Inspect(token)
	if err != nil || claims.Expired(m.now(), 0) || claims.User() == "" {
		return nil, false
	}
	return claims, true
}

func setUser(c *gin.Context, claims *jwt.Claims) {
	c.Set(UserIDKey, claims.User())
	c.Set(EmailKey, claims.Email)
	c.Set(NicknameKey, claims.Nickname)
}

// GetUserID extracts user ID from Gin context.
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// GetNickname extracts the nickname from Gin context.
func GetNickname(c *gin.Context) string {
	return c.GetString(NicknameKey)
}
