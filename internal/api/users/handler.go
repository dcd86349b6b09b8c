package users

import (
	"net/http"

	"gallery-api/database"
	"gallery-api/internal/api/httperr"
	"gallery-api/internal/app/http/middleware"
	"gallery-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GET /api/auth/me
func GetCurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, BuildUserDTO(middleware.CurrentUser(c)))
}

// GET /api/auth/verify-email?token=
func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	user, err := users.VerifyEmailToken(database.DB.WithContext(c.Request.Context()), token)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email verified successfully",
		"user":    BuildLoginUserDTO(user),
	})
}

// POST /api/auth/check-slug
func CheckSlug(c *gin.Context) {
	var body struct {
		Slug string `json:"slug" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BindError(c, err)
		return
	}

	slug := users.MakeSlug(body.Slug)
	taken, err := users.SlugTaken(database.DB.WithContext(c.Request.Context()), slug, 0)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	msg := "Slug is available"
	if taken {
		msg = "Slug is already taken"
	}
	c.JSON(http.StatusOK, gin.H{
		"slug":      slug,
		"available": !taken,
		"message":   msg,
	})
}
