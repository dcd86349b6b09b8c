package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"gallery-api/internal/app/http/middleware"
	"gallery-api/internal/domain/media"
	"gallery-api/internal/domain/users"
	"gallery-api/internal/testutil/apitest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func router() *gin.Engine {
	r := gin.New()
	g := r.Group("/api/admin", middleware.AuthMiddleware(), middleware.RequireActiveUser(), middleware.RequireRole(users.RoleAdmin))
	g.GET("/stats", GetAdminStats)
	g.GET("/users", ListAllUsers)
	g.GET("/users/:id", GetUserDetails)
	g.POST("/cleanup/unverified", CleanupUnverified)
	g.GET("/storage/pending", ListPendingDeletions)
	return r
}

func adminToken(t *testing.T, env *apitest.Env) string {
	t.Helper()
	u := env.User(t, "boss")
	require.NoError(t, env.DB.Model(&users.User{}).Where("id = ?", u.ID).Update("role", users.RoleAdmin).Error)
	u.Role = users.RoleAdmin
	return apitest.Bearer(t, u)
}

func TestAdminRequiresRole(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	artist := apitest.Bearer(t, env.User(t, "kim"))

	assert.Equal(t, http.StatusUnauthorized, apitest.Do(t, r, http.MethodGet, "/api/admin/users", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, apitest.Do(t, r, http.MethodGet, "/api/admin/users", artist, nil).Code)
}

func TestAdminAccessFollowsAccountState(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := adminToken(t, env)
	require.Equal(t, http.StatusOK, apitest.Do(t, r, http.MethodGet, "/api/admin/stats", auth, nil).Code)

	boss, err := users.GetUserBySlug(env.DB, "boss")
	require.NoError(t, err)

	require.NoError(t, env.DB.Model(&users.User{}).Where("id = ?", boss.ID).Update("role", users.RoleArtist).Error)
	assert.Equal(t, http.StatusForbidden, apitest.Do(t, r, http.MethodGet, "/api/admin/stats", auth, nil).Code, "demoted with a live admin token")

	require.NoError(t, env.DB.Model(&users.User{}).Where("id = ?", boss.ID).Updates(map[string]any{
		"role": users.RoleAdmin, "is_active": false,
	}).Error)
	w := apitest.Do(t, r, http.MethodGet, "/api/admin/stats", auth, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, users.ErrInactive.Msg, apitest.JSON(t, w)["error"])
}

func TestListAndDetails(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := adminToken(t, env)
	kim := env.User(t, "kim")
	require.NoError(t, env.DB.Create(&media.PendingDeletion{Key: "artworks/kim/x.png", Reason: "test"}).Error)

	w := apitest.Do(t, r, http.MethodGet, "/api/admin/users", auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []AdminUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "admin", list[0].Role)
	assert.Equal(t, "kim", list[1].Slug)

	w = apitest.Do(t, r, http.MethodGet, fmt.Sprintf("/api/admin/users/%d", kim.ID), auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := apitest.JSON(t, w)
	assert.Equal(t, "kim@example.com", body["user"].(map[string]any)["email"])
	assert.EqualValues(t, 1, body["pending_deletions"])

	assert.Equal(t, http.StatusNotFound, apitest.Do(t, r, http.MethodGet, "/api/admin/users/999", auth, nil).Code)
	assert.Equal(t, http.StatusBadRequest, apitest.Do(t, r, http.MethodGet, "/api/admin/users/abc", auth, nil).Code)

	w = apitest.Do(t, r, http.MethodGet, "/api/admin/stats", auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := apitest.JSON(t, w)
	assert.EqualValues(t, 2, stats["total_users"])
	assert.EqualValues(t, 1, stats["pending_deletions"])

	w = apitest.Do(t, r, http.MethodGet, "/api/admin/storage/pending", auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, apitest.JSON(t, w)["count"])
}

func TestCleanupUnverified(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := adminToken(t, env)

	stale, err := users.CreateUser(env.DB, users.NewUser{Email: "old@example.com", Password: "secret123", Name: "Old", Slug: "old"})
	require.NoError(t, err)
	require.NoError(t, env.DB.Model(&users.User{}).Where("id = ?", stale.ID).
		Update("created_at", time.Now().Add(-48*time.Hour)).Error)
	_, err = users.CreateUser(env.DB, users.NewUser{Email: "new@example.com", Password: "secret123", Name: "New", Slug: "new"})
	require.NoError(t, err)
	env.Store.Seed("artworks/old/a.png", time.Now())

	w := apitest.Do(t, r, http.MethodPost, "/api/admin/cleanup/unverified", auth, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, apitest.JSON(t, w)["deleted"])
	assert.Empty(t, env.Store.Keys("artworks/old/"))

	_, err = users.GetUserBySlug(env.DB, "new")
	assert.NoError(t, err)
	_, err = users.GetUserBySlug(env.DB, "old")
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}
