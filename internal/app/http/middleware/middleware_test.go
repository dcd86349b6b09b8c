package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gallery-api/config"
	"gallery-api/database"
	"gallery-api/internal/domain/users"
	"gallery-api/internal/logger"
	"gallery-api/internal/testutil/testdb"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

func init() { gin.SetMode(gin.TestMode) }

func token(t *testing.T, u *users.User) string {
	t.Helper()
	raw, err := users.CreateAccessToken(u, testSecret, time.Minute)
	require.NoError(t, err)
	return "Bearer " + raw
}

func serve(r *gin.Engine, method, path, auth string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	config.JWT_SECRET = testSecret
	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetUint(KeyUserID), "role": c.GetString(KeyRole)})
	})

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", "Token abc", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", "Bearer not-a-jwt", nil).Code)

	w := serve(r, http.MethodGet, "/me", token(t, &users.User{ID: 7, Email: "a@b.co", Role: users.RoleArtist}), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"role":"artist"}`, w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	config.JWT_SECRET = testSecret
	r := gin.New()
	r.GET("/x", OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"viewer": Viewer(c).UserID})
	})

	assert.JSONEq(t, `{"viewer":0}`, serve(r, http.MethodGet, "/x", "", nil).Body.String())
	assert.JSONEq(t, `{"viewer":0}`, serve(r, http.MethodGet, "/x", "Bearer junk", nil).Body.String())
	assert.JSONEq(t, `{"viewer":3}`, serve(r, http.MethodGet, "/x", token(t, &users.User{ID: 3, Email: "c@d.co"}), nil).Body.String())
}

func TestRequireRole(t *testing.T) {
	config.JWT_SECRET = testSecret
	r := gin.New()
	r.GET("/admin", AuthMiddleware(), RequireRole(users.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/admin", token(t, &users.User{ID: 1, Role: users.RoleArtist}), nil).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/admin", token(t, &users.User{ID: 1, Role: users.RoleAdmin}), nil).Code)
}

func TestRequireActiveUser(t *testing.T) {
	config.JWT_SECRET = testSecret
	database.DB = testdb.Open(t, &users.User{})

	active := &users.User{Email: "on@x.co", Name: "on", Slug: "on", IsActive: true}
	disabled := &users.User{Email: "off@x.co", Name: "off", Slug: "off"}
	require.NoError(t, database.DB.Create(active).Error)
	require.NoError(t, database.DB.Create(disabled).Error)

	r := gin.New()
	r.GET("/me", AuthMiddleware(), RequireActiveUser(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"slug": CurrentUser(c).Slug})
	})

	w := serve(r, http.MethodGet, "/me", token(t, active), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"slug":"on"}`, w.Body.String())

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/me", token(t, disabled), nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", token(t, &users.User{ID: 999}), nil).Code)
}

func TestSanitizeNested(t *testing.T) {
	r := gin.New()
	r.POST("/echo", SanitizeAndCleanInputMiddleware(), func(c *gin.Context) {
		var body map[string]any
		require.NoError(t, c.ShouldBindJSON(&body))
		c.JSON(http.StatusOK, body)
	})

	in := `{"name":"<b>Kim</b>","password":"a<b>1","tags":["<i>x</i>"],"nested":{"bio":"<script>x</script>hi"},"n":3}`
	w := serve(r, http.MethodPost, "/echo", "", strings.NewReader(in))
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Kim", out["name"])
	assert.Equal(t, "a<b>1", out["password"])
	assert.Equal(t, []any{"x"}, out["tags"])
	assert.Equal(t, map[string]any{"bio": "hi"}, out["nested"])
	assert.EqualValues(t, 3, out["n"])

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/echo", "", strings.NewReader("{")).Code)
}

func TestTrace(t *testing.T) {
	r := gin.New()
	r.GET("/t", Trace(), func(c *gin.Context) {
		c.String(http.StatusOK, logger.TraceID(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set(TraceHeader, "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
	assert.Equal(t, "abc", w.Header().Get(TraceHeader))

	w = serve(r, http.MethodGet, "/t", "", nil)
	assert.Len(t, w.Body.String(), 36)
}
