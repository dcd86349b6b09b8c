package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"gallery-api/config"
	"gallery-api/database"
	"gallery-api/internal/api/httperr"
	"gallery-api/internal/domain/users"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleIssuer    = "https://accounts.google.com"
	stateCookie     = "oauth_state"
	stateCookieSecs = 300
)

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.GOOGLE_CLIENT_ID,
		ClientSecret: config.GOOGLE_CLIENT_SECRET,
		RedirectURL:  config.GOOGLE_REDIRECT_URL,
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /api/auth/google
func GoogleStart(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		httperr.Write(c, err)
		return
	}

	secure := c.Request.TLS != nil
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, stateCookieSecs, "/", "", secure, true)

	c.Redirect(http.StatusFound, googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// GET /api/auth/google/callback
func GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing code or state"})
		return
	}

	cookieState, err := c.Cookie(stateCookie)
	if err != nil || cookieState != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}

	ctx := c.Request.Context()
	tok, err := googleOAuthConfig().Exchange(ctx, code)
	if err != nil {
		slog.WarnContext(ctx, "google code exchange failed", "err", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to exchange code"})
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing id_token"})
		return
	}

	claims, err := verifyGoogleIDToken(c, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, err := users.FindOrCreateGoogleUser(database.DB.WithContext(ctx), users.GoogleProfile{
		Sub:     claims.Sub,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	})
	if err != nil {
		httperr.Write(c, err)
		return
	}
	if !user.IsActive {
		httperr.Write(c, users.ErrInactive)
		return
	}

	resp, err := issueTokens(c, user)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	if config.GOOGLE_FRONTEND_REDIRECT == "" {
		c.JSON(http.StatusOK, resp)
		return
	}
	q := url.Values{}
	q.Set("access_token", resp.AccessToken)
	q.Set("refresh_token", resp.RefreshToken)
	c.Redirect(http.StatusFound, config.GOOGLE_FRONTEND_REDIRECT+"#"+q.Encode())
}

/* ---------------- helpers ---------------- */

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func verifyGoogleIDToken(c *gin.Context, rawIDToken string) (*googleIDClaims, error) {
	ctx := c.Request.Context()

	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, errors.New("failed to init google oidc provider")
	}

	idToken, err := provider.Verifier(&oidc.Config{ClientID: config.GOOGLE_CLIENT_ID}).Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.New("invalid id_token")
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.New("failed to decode token claims")
	}
	if claims.Email == "" || claims.Sub == "" {
		return nil, errors.New("token missing required claims")
	}
	if !claims.EmailVerified {
		return nil, errors.New("google email is not verified")
	}
	return &claims, nil
}
