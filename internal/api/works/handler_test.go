package works

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"gallery-api/internal/app/http/middleware"
	"gallery-api/internal/domain/users"
	"gallery-api/internal/domain/works"
	"gallery-api/internal/infra/storage/storagetest"
	"gallery-api/internal/testutil/apitest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func router() *gin.Engine {
	r := gin.New()
	g := r.Group("/api/artworks")

	optional := g.Group("", middleware.OptionalAuth())
	optional.GET("/:id", GetArtwork)
	optional.GET("/:id/adjacent", GetAdjacent)
	optional.POST("/:id/like", LikeArtwork)
	optional.GET("/user/:slug", ListUserArtworks)
	optional.GET("/user/:slug/stats", GetUserStats)
	optional.GET("/:id/histories", ListHistories)
	optional.GET("/:id/histories/:history_id", GetHistory)

	authed := g.Group("", middleware.AuthMiddleware(), middleware.RequireActiveUser())
	authed.POST("", CreateArtwork)
	authed.GET("/my", ListMyArtworks)
	authed.GET("/stats", GetMyStats)
	authed.PUT("/reorder", ReorderArtworks)
	authed.PUT("/:id", UpdateArtwork)
	authed.DELETE("/:id", DeleteArtwork)
	authed.POST("/:id/histories", CreateHistory)
	authed.PUT("/:id/histories/reorder", ReorderHistories)
	authed.PUT("/:id/histories/:history_id", UpdateHistory)
	authed.DELETE("/:id/histories/:history_id", DeleteHistory)
	return r
}

func createArtwork(t *testing.T, r *gin.Engine, auth string, body gin.H) uint {
	t.Helper()
	w := apitest.Do(t, r, http.MethodPost, "/api/artworks", auth, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return uint(apitest.JSON(t, w)["id"].(float64))
}

func TestArtworkLifecycle(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	owner := env.User(t, "kim")
	auth := apitest.Bearer(t, owner)

	w := apitest.Do(t, r, http.MethodPost, "/api/artworks", auth, gin.H{"title": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	id := createArtwork(t, r, auth, gin.H{"title": "Night", "medium": "oil"})

	w = apitest.Do(t, r, http.MethodGet, fmt.Sprintf("/api/artworks/%d", id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := apitest.JSON(t, w)
	assert.Equal(t, "Night", body["title"])
	assert.Equal(t, "kim", body["artist_name"])
	assert.Equal(t, map[string]any{"id": float64(owner.ID), "name": "kim", "slug": "kim", "bio": "", "thumbnail_url": ""}, body["artist"])
	assert.EqualValues(t, 1, body["view_count"])

	apitest.Do(t, r, http.MethodGet, fmt.Sprintf("/api/artworks/%d", id), auth, nil)
	var a works.Artwork
	require.NoError(t, env.DB.First(&a, id).Error)
	assert.Equal(t, 1, a.ViewCount, "owner views are not counted")

	w = apitest.Do(t, r, http.MethodPut, fmt.Sprintf("/api/artworks/%d", id), auth, gin.H{"status": "completed", "privacy": "private"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotNil(t, apitest.JSON(t, w)["completed_at"])

	w = apitest.Do(t, r, http.MethodGet, fmt.Sprintf("/api/artworks/%d", id), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = apitest.Do(t, r, http.MethodGet, fmt.Sprintf("/api/artworks/%d", id), auth, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	other := env.User(t, "lee")
	w = apitest.Do(t, r, http.MethodPut, fmt.Sprintf("/api/artworks/%d", id), apitest.Bearer(t, other), gin.H{"title": "Mine"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = apitest.Do(t, r, http.MethodPut, "/api/artworks/abc", auth, gin.H{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteArtworkRemovesFiles(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	owner := env.User(t, "kim")
	auth := apitest.Bearer(t, owner)

	env.Store.Seed("artworks/kim/a.jpg", time.Now())
	env.Store.Seed("histories/kim/h.jpg", time.Now())
	id := createArtwork(t, r, auth, gin.H{"title": "A", "thumbnail_url": storagetest.BaseURL + "/artworks/kim/a.jpg"})

	w := apitest.Do(t, r, http.MethodPost, fmt.Sprintf("/api/artworks/%d/histories", id), auth, gin.H{
		"title":  "sketch",
		"images": []gin.H{{"image_url": storagetest.BaseURL + "/histories/kim/h.jpg"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = apitest.Do(t, r, http.MethodDelete, fmt.Sprintf("/api/artworks/%d", id), auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.Store.Keys(""))

	w = apitest.Do(t, r, http.MethodGet, fmt.Sprintf("/api/artworks/%d/histories", id), auth, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var u users.User
	require.NoError(t, env.DB.First(&u, owner.ID).Error)
	assert.Zero(t, u.TotalArtworks)
}

func TestUserGallery(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	owner := env.User(t, "kim")
	auth := apitest.Bearer(t, owner)

	createArtwork(t, r, auth, gin.H{"title": "Public"})
	createArtwork(t, r, auth, gin.H{"title": "Hidden", "privacy": "private"})

	w := apitest.Do(t, r, http.MethodGet, "/api/artworks/user/kim", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, apitest.JSON(t, w)["total"])

	w = apitest.Do(t, r, http.MethodGet, "/api/artworks/user/kim", auth, nil)
	assert.EqualValues(t, 2, apitest.JSON(t, w)["total"])

	w = apitest.Do(t, r, http.MethodGet, "/api/artworks/my?privacy=private", auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := apitest.JSON(t, w)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Hidden", items[0].(map[string]any)["title"])

	w = apitest.Do(t, r, http.MethodGet, "/api/artworks/user/kim/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, apitest.JSON(t, w)["total_artworks"])

	w = apitest.Do(t, r, http.MethodGet, "/api/artworks/stats", auth, nil)
	assert.EqualValues(t, 2, apitest.JSON(t, w)["total_artworks"])

	assert.Equal(t, http.StatusNotFound, apitest.Do(t, r, http.MethodGet, "/api/artworks/user/nobody", "", nil).Code)

	require.NoError(t, env.DB.Model(&users.User{}).Where("id = ?", owner.ID).Update("is_public_gallery", false).Error)
	assert.Equal(t, http.StatusForbidden, apitest.Do(t, r, http.MethodGet, "/api/artworks/user/kim", "", nil).Code)
	assert.Equal(t, http.StatusOK, apitest.Do(t, r, http.MethodGet, "/api/artworks/user/kim", auth, nil).Code)
}

func TestLikeAdjacentReorder(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := apitest.Bearer(t, env.User(t, "kim"))

	first := createArtwork(t, r, auth, gin.H{"title": "one"})
	second := createArtwork(t, r, auth, gin.H{"title": "two"})
	third := createArtwork(t, r, auth, gin.H{"title": "three"})

	w := apitest.Do(t, r, http.MethodPost, fmt.Sprintf("/api/artworks/%d/like", first), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, apitest.JSON(t, w)["like_count"])

	w = apitest.Do(t, r, http.MethodGet, fmt.Sprintf("/api/artworks/%d/adjacent", second), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	adj := apitest.JSON(t, w)
	assert.Equal(t, "one", adj["previous"].(map[string]any)["title"])
	assert.Equal(t, "three", adj["next"].(map[string]any)["title"])

	w = apitest.Do(t, r, http.MethodPut, "/api/artworks/reorder", auth, gin.H{"artwork_ids": []uint{third, first, second}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = apitest.Do(t, r, http.MethodGet, fmt.Sprintf("/api/artworks/%d/adjacent", first), "", nil)
	adj = apitest.JSON(t, w)
	assert.Equal(t, "three", adj["previous"].(map[string]any)["title"])
	assert.Equal(t, "two", adj["next"].(map[string]any)["title"])
}

func TestHistoryEndpoints(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := apitest.Bearer(t, env.User(t, "kim"))
	id := createArtwork(t, r, auth, gin.H{"title": "A"})
	base := fmt.Sprintf("/api/artworks/%d/histories", id)

	w := apitest.Do(t, r, http.MethodPost, base, auth, gin.H{"title": "video", "external_url": "https://youtu.be/dQw4w9WgXcQ"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	yt := apitest.JSON(t, w)
	assert.Equal(t, "youtube", yt["history_type"])
	ytID := uint(yt["id"].(float64))

	w = apitest.Do(t, r, http.MethodPost, base, auth, gin.H{"title": "sketch"})
	require.Equal(t, http.StatusCreated, w.Code)
	sketchID := uint(apitest.JSON(t, w)["id"].(float64))

	w = apitest.Do(t, r, http.MethodPost, base, "", gin.H{"title": "anon"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = apitest.Do(t, r, http.MethodPut, fmt.Sprintf("%s/%d", base, sketchID), auth, gin.H{"title": "sketch 2"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sketch 2", apitest.JSON(t, w)["title"])

	w = apitest.Do(t, r, http.MethodPut, base+"/reorder", auth, gin.H{"history_ids": []uint{sketchID, ytID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = apitest.Do(t, r, http.MethodGet, fmt.Sprintf("%s/%d", base, ytID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = apitest.Do(t, r, http.MethodDelete, fmt.Sprintf("%s/%d", base, ytID), auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusNotFound, apitest.Do(t, r, http.MethodGet, fmt.Sprintf("%s/%d", base, ytID), "", nil).Code)

	var a works.Artwork
	require.NoError(t, env.DB.First(&a, id).Error)
	assert.Equal(t, 1, a.HistoryCount)
}

func TestCleanupSkipsOtherArtistsFiles(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	env.User(t, "kim")
	auth := apitest.Bearer(t, env.User(t, "mallory"))

	victim := []string{"artworks/kim/a.jpg", "histories/kim/b.jpg", "histories/kim/c.jpg", "histories/kim/d.jpg"}
	for _, k := range victim {
		env.Store.Seed(k, time.Now())
	}
	env.Store.Seed("artworks/mallory/own.jpg", time.Now())
	url := func(key string) string { return storagetest.BaseURL + "/" + key }

	id := createArtwork(t, r, auth, gin.H{
		"title":                "bait",
		"thumbnail_url":        url("artworks/kim/a.jpg"),
		"work_in_progress_url": url("artworks/mallory/own.jpg"),
	})
	base := fmt.Sprintf("/api/artworks/%d/histories", id)

	w := apitest.Do(t, r, http.MethodPost, base, auth, gin.H{"title": "h1", "images": []gin.H{{"image_url": url("histories/kim/b.jpg")}}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	h1 := uint(apitest.JSON(t, w)["id"].(float64))
	w = apitest.Do(t, r, http.MethodPost, base, auth, gin.H{"title": "h2", "media_url": url("histories/kim/c.jpg")})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	h2 := uint(apitest.JSON(t, w)["id"].(float64))
	w = apitest.Do(t, r, http.MethodPost, base, auth, gin.H{"title": "h3", "thumbnail_url": url("histories/kim/d.jpg")})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = apitest.Do(t, r, http.MethodPut, fmt.Sprintf("%s/%d", base, h1), auth, gin.H{"images": []gin.H{}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = apitest.Do(t, r, http.MethodDelete, fmt.Sprintf("%s/%d", base, h2), auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = apitest.Do(t, r, http.MethodDelete, fmt.Sprintf("/api/artworks/%d", id), auth, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, victim, env.Store.Keys(""), "only mallory's own upload is removed")
}

func TestDeleteYouTubeHistoryKeepsFiles(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := apitest.Bearer(t, env.User(t, "kim"))
	env.Store.Seed("histories/kim/thumb.jpg", time.Now())
	id := createArtwork(t, r, auth, gin.H{"title": "A"})
	base := fmt.Sprintf("/api/artworks/%d/histories", id)

	w := apitest.Do(t, r, http.MethodPost, base, auth, gin.H{"title": "clip", "media_url": "https://youtu.be/dQw4w9WgXcQ"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	hid := uint(apitest.JSON(t, w)["id"].(float64))

	w = apitest.Do(t, r, http.MethodPut, fmt.Sprintf("%s/%d", base, hid), auth, gin.H{"media_url": storagetest.BaseURL + "/histories/kim/thumb.jpg"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"histories/kim/thumb.jpg"}, env.Store.Keys(""))

	w = apitest.Do(t, r, http.MethodDelete, fmt.Sprintf("%s/%d", base, hid), auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.Store.Keys(""))
}
