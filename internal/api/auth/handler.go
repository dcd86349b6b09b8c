package auth

import (
	"errors"
	"net/http"
	"strings"

	"gallery-api/config"
	"gallery-api/database"
	"gallery-api/internal/api/httperr"
	usersapi "gallery-api/internal/api/users"
	"gallery-api/internal/app/http/middleware"
	"gallery-api/internal/domain/account"
	"gallery-api/internal/domain/media"
	"gallery-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type TokenResponse struct {
	AccessToken  string                `json:"access_token"`
	RefreshToken string                `json:"refresh_token"`
	TokenType    string                `json:"token_type"`
	User         usersapi.LoginUserDTO `json:"user"`
}

func issueTokens(c *gin.Context, user *users.User) (*TokenResponse, error) {
	access, err := users.CreateAccessToken(user, config.JWT_SECRET, config.ACCESS_TOKEN_TTL)
	if err != nil {
		return nil, err
	}
	refresh, err := users.IssueRefreshToken(database.DB.WithContext(c.Request.Context()), user.ID, config.REFRESH_TOKEN_TTL)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		User:         usersapi.BuildLoginUserDTO(user),
	}, nil
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required,max=100"`
		Slug     string `json:"slug" binding:"max=100"`
		Bio      string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httperr.BindError(c, err)
		return
	}

	ctx := c.Request.Context()
	db := database.DB.WithContext(ctx)

	user, err := users.CreateUser(db, users.NewUser{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Slug:     input.Slug,
	})
	if err != nil {
		httperr.Write(c, err)
		return
	}

	if bio := strings.TrimSpace(input.Bio); bio != "" {
		if err := db.Model(&users.User{}).Where("id = ?", user.ID).Update("bio", bio).Error; err != nil {
			httperr.Write(c, err)
			return
		}
		user.Bio = bio
	}

	if err := sendVerificationEmail(ctx, db, user); err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully. Please check your email to verify your account.",
		"user":    usersapi.BuildUserDTO(user),
	})
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httperr.BindError(c, err)
		return
	}

	user, err := users.Authenticate(database.DB.WithContext(c.Request.Context()), input.Email, input.Password)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	resp, err := issueTokens(c, user)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/auth/refresh
func Refresh(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httperr.BindError(c, err)
		return
	}

	user, next, err := users.RotateRefreshToken(database.DB.WithContext(c.Request.Context()), input.RefreshToken, config.REFRESH_TOKEN_TTL)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	access, err := users.CreateAccessToken(user, config.JWT_SECRET, config.ACCESS_TOKEN_TTL)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken:  access,
		RefreshToken: next,
		TokenType:    "bearer",
		User:         usersapi.BuildLoginUserDTO(user),
	})
}

// POST /api/auth/logout
func Logout(c *gin.Context) {
	if err := users.RevokeRefreshTokens(database.DB.WithContext(c.Request.Context()), c.GetUint(middleware.KeyUserID)); err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// POST /api/auth/resend-verification
func ResendVerification(c *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BindError(c, err)
		return
	}

	ctx := c.Request.Context()
	db := database.DB.WithContext(ctx)

	user, err := users.GetUserByEmail(db, body.Email)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	if user.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already verified"})
		return
	}

	if err := sendVerificationEmail(ctx, db, user); err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification email resent"})
}

const resetRequestedMessage = "If your email exists, you'll receive a reset link."

// POST /api/auth/request-password-reset
func RequestPasswordReset(c *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BindError(c, err)
		return
	}

	ctx := c.Request.Context()
	db := database.DB.WithContext(ctx)

	user, err := users.GetUserByEmail(db, body.Email)
	if errors.Is(err, users.ErrUserNotFound) {
		// don't expose whether the email exists
		c.JSON(http.StatusOK, gin.H{"message": resetRequestedMessage})
		return
	}
	if err != nil {
		httperr.Write(c, err)
		return
	}

	if err := sendPasswordResetEmail(ctx, db, user); err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": resetRequestedMessage})
}

// POST /api/auth/reset-password
func ResetPassword(c *gin.Context) {
	var body struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BindError(c, err)
		return
	}

	if err := users.ResetPassword(database.DB.WithContext(c.Request.Context()), body.Token, body.NewPassword); err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}

// PUT /api/auth/password
func ChangePassword(c *gin.Context) {
	var body struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BindError(c, err)
		return
	}

	err := users.ChangePassword(database.DB.WithContext(c.Request.Context()), c.GetUint(middleware.KeyUserID), body.CurrentPassword, body.NewPassword)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// DELETE /api/auth/account
//
// Local accounts confirm with their password, Google-only accounts by
// repeating their email address.
func DeleteAccount(c *gin.Context) {
	var body struct {
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BindError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	if user.HasPassword() {
		if !users.VerifyPassword(*user.Password, body.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Password is incorrect"})
			return
		}
	} else if !strings.EqualFold(strings.TrimSpace(body.Email), user.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Confirm the deletion with your email address"})
		return
	}

	ctx := c.Request.Context()
	db := database.DB.WithContext(ctx)
	if err := account.Purge(ctx, db, media.DefaultCleaner(db), user); err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
