package middleware

import (
	"net/http"
	"strings"

	"gallery-api/config"
	"gallery-api/internal/domain/access"
	"gallery-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

const (
	KeyUserID = "user_id"
	KeyEmail  = "email"
	KeyRole   = "role"
	KeyUser   = "user"
)

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func setClaims(c *gin.Context, claims *users.Claims) {
	c.Set(KeyUserID, claims.UserID)
	c.Set(KeyEmail, claims.Email)
	c.Set(KeyRole, claims.Role)
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.JWT_SECRET == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "JWT secret not configured"})
			return
		}
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}
		raw, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Bearer token malformed"})
			return
		}

		claims, err := users.VerifyAccessToken(raw, config.JWT_SECRET)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and lets
// everyone else through as anonymous.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(KeyUserID, uint(0))
		if raw, ok := bearerToken(c); ok && config.JWT_SECRET != "" {
			if claims, err := users.VerifyAccessToken(raw, config.JWT_SECRET); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(KeyRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Role not found in token"})
			return
		}
		if value != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

// Viewer returns the caller as seen by the visibility rules.
func Viewer(c *gin.Context) access.Viewer {
	return access.As(c.GetUint(KeyUserID))
}
