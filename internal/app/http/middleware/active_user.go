package middleware

import (
	"errors"
	"net/http"

	"gallery-api/database"
	"gallery-api/internal/api/httperr"
	"gallery-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// RequireActiveUser loads the authenticated account and stores it under
// KeyUser. Deleted and disabled accounts are rejected even with a valid token.
func RequireActiveUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetUint(KeyUserID)
		if id == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := users.GetUserByID(database.DB.WithContext(c.Request.Context()), id)
		if errors.Is(err, users.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			httperr.Write(c, err)
			return
		}
		if !user.IsActive {
			httperr.Write(c, users.ErrInactive)
			return
		}

		c.Set(KeyUser, user)
		c.Set(KeyRole, user.Role)
		c.Next()
	}
}

// CurrentUser returns the account loaded by RequireActiveUser.
func CurrentUser(c *gin.Context) *users.User {
	u, _ := c.Get(KeyUser)
	user, _ := u.(*users.User)
	return user
}
