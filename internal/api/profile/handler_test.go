package profile

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"gallery-api/internal/app/http/middleware"
	"gallery-api/internal/domain/users"
	"gallery-api/internal/infra/storage/storagetest"
	"gallery-api/internal/testutil/apitest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func router() *gin.Engine {
	r := gin.New()
	g := r.Group("/api/profile")
	g.GET("/public/:slug", middleware.OptionalAuth(), GetPublicProfile)

	authed := g.Group("", middleware.AuthMiddleware(), middleware.RequireActiveUser())
	authed.GET("", GetProfile)
	authed.GET("/main", GetMainProfile)
	authed.PUT("/basic", UpdateBasic)
	authed.PUT("/about", UpdateAbout)
	authed.PUT("/studio", UpdateStudio)
	authed.PUT("/artist-statement", UpdateStatement)
	authed.PUT("/qa", ReplaceQA)

	authed.GET("/videos", ListVideos)
	authed.POST("/videos", AddVideo)
	authed.PUT("/videos/:id", UpdateVideo)
	authed.DELETE("/videos/:id", DeleteVideo)

	authed.GET("/exhibitions", ListExhibitions)
	authed.POST("/exhibitions", AddExhibition)
	authed.PUT("/exhibitions/:id", UpdateExhibition)
	authed.DELETE("/exhibitions/:id", DeleteExhibition)

	authed.GET("/awards", ListAwards)
	authed.POST("/awards", AddAward)
	authed.PUT("/awards/:id", UpdateAward)
	authed.DELETE("/awards/:id", DeleteAward)
	return r
}

func list(t *testing.T, w interface{ Bytes() []byte }) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Bytes(), &out))
	return out
}

func TestBasicAndSlug(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := apitest.Bearer(t, env.User(t, "kim"))
	env.User(t, "lee")

	w := apitest.Do(t, r, http.MethodPut, "/api/profile/basic", auth, gin.H{"slug": "lee"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = apitest.Do(t, r, http.MethodPut, "/api/profile/basic", auth, gin.H{"slug": "Bad Slug"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = apitest.Do(t, r, http.MethodPut, "/api/profile/basic", auth, gin.H{
		"slug":          "kim-studio",
		"bio":           "  painter ",
		"gallery_title": "Works",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := apitest.JSON(t, w)["user"].(map[string]any)
	assert.Equal(t, "kim-studio", user["slug"])
	assert.Equal(t, "painter", user["bio"])

	w = apitest.Do(t, r, http.MethodGet, "/api/profile/main", auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	main := apitest.JSON(t, w)
	assert.Equal(t, "Works", main["basic"].(map[string]any)["gallery_title"])
	assert.Equal(t, []any{}, main["qa_list"])
}

func TestAboutReplacesOldImage(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := apitest.Bearer(t, env.User(t, "kim"))
	env.Store.Seed("profile/kim/old.jpg", time.Now())
	env.Store.Seed("profile/kim/new.jpg", time.Now())

	w := apitest.Do(t, r, http.MethodPut, "/api/profile/about", auth, gin.H{
		"about_text":  "hello",
		"about_image": storagetest.BaseURL + "/profile/kim/old.jpg",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = apitest.Do(t, r, http.MethodPut, "/api/profile/about", auth, gin.H{
		"about_image": storagetest.BaseURL + "/profile/kim/new.jpg",
	})
	require.Equal(t, http.StatusOK, w.Code)
	user := apitest.JSON(t, w)["user"].(map[string]any)
	assert.Equal(t, "hello", user["about_text"])
	assert.Equal(t, []string{"profile/kim/new.jpg"}, env.Store.Keys(""))

	w = apitest.Do(t, r, http.MethodPut, "/api/profile/studio", auth, gin.H{"studio_description": "a loft"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a loft", apitest.JSON(t, w)["user"].(map[string]any)["studio_description"])
}

func TestStatementAndQA(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := apitest.Bearer(t, env.User(t, "kim"))

	w := apitest.Do(t, r, http.MethodPut, "/api/profile/artist-statement", auth, gin.H{"statement_ko": "first"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = apitest.Do(t, r, http.MethodPut, "/api/profile/artist-statement", auth, gin.H{"statement_en": "second"})
	require.Equal(t, http.StatusOK, w.Code)
	st := apitest.JSON(t, w)["statement"].(map[string]any)
	assert.Equal(t, "first", st["statement_ko"])
	assert.Equal(t, "second", st["statement_en"])

	w = apitest.Do(t, r, http.MethodPut, "/api/profile/qa", auth, []gin.H{
		{"question": "Why paint?", "answer": "Because."},
		{"question": "No answer"},
		{"question_ko": "Where?", "answer_ko": "Seoul"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, apitest.JSON(t, w)["qa_list"], 2)

	w = apitest.Do(t, r, http.MethodGet, "/api/profile/main", auth, nil)
	qa := apitest.JSON(t, w)["qa_list"].([]any)
	require.Len(t, qa, 2)
	assert.Equal(t, "Why paint?", qa[0].(map[string]any)["question"])
	assert.Equal(t, "Seoul", qa[1].(map[string]any)["answer"])

	w = apitest.Do(t, r, http.MethodGet, "/api/profile", auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	full := apitest.JSON(t, w)
	assert.Equal(t, "first", full["artist_statement"].(map[string]any)["statement_ko"])
	assert.Len(t, full["qa_list"], 2)
	assert.Equal(t, "kim", full["basic"].(map[string]any)["slug"])
}

func TestVideos(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := apitest.Bearer(t, env.User(t, "kim"))

	w := apitest.Do(t, r, http.MethodPost, "/api/profile/videos", auth, gin.H{"video_url": "https://vimeo.com/123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = apitest.Do(t, r, http.MethodPost, "/api/profile/videos", auth, gin.H{
		"video_url": "https://youtu.be/dQw4w9WgXcQ",
		"title_ko":  "Process",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	video := apitest.JSON(t, w)["video"].(map[string]any)
	assert.Equal(t, "dQw4w9WgXcQ", video["video_id"])
	id := video["id"]

	w = apitest.Do(t, r, http.MethodPut, fmt.Sprintf("/api/profile/videos/%v", id), auth, gin.H{"title_en": "Process EN"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Process EN", apitest.JSON(t, w)["video"].(map[string]any)["title_en"])

	other := apitest.Bearer(t, env.User(t, "lee"))
	w = apitest.Do(t, r, http.MethodDelete, fmt.Sprintf("/api/profile/videos/%v", id), other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = apitest.Do(t, r, http.MethodDelete, fmt.Sprintf("/api/profile/videos/%v", id), auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = apitest.Do(t, r, http.MethodGet, "/api/profile/videos", auth, nil)
	assert.Empty(t, list(t, w.Body))
}

func TestExhibitionsAndAwards(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := apitest.Bearer(t, env.User(t, "kim"))
	env.Store.Seed("exhibitions/kim/poster.jpg", time.Now())
	env.Store.Seed("awards/kim/medal.jpg", time.Now())

	for _, year := range []string{"2019", "2023"} {
		w := apitest.Do(t, r, http.MethodPost, "/api/profile/exhibitions", auth, gin.H{"title_ko": "Show " + year, "year": year})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w := apitest.Do(t, r, http.MethodPost, "/api/profile/exhibitions", auth, gin.H{
		"title_ko":  "Poster",
		"year":      "2021",
		"image_url": storagetest.BaseURL + "/exhibitions/kim/poster.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	posterID := apitest.JSON(t, w)["exhibition"].(map[string]any)["id"]

	w = apitest.Do(t, r, http.MethodGet, "/api/profile/exhibitions", auth, nil)
	years := []any{}
	for _, e := range list(t, w.Body) {
		years = append(years, e["year"])
	}
	assert.Equal(t, []any{"2023", "2021", "2019"}, years)

	w = apitest.Do(t, r, http.MethodDelete, fmt.Sprintf("/api/profile/exhibitions/%v", posterID), auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.Store.Has("exhibitions/kim/poster.jpg"))

	w = apitest.Do(t, r, http.MethodPost, "/api/profile/awards", auth, gin.H{
		"title_ko":  "Prize",
		"year":      "2022",
		"image_url": storagetest.BaseURL + "/awards/kim/medal.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	awardID := apitest.JSON(t, w)["award"].(map[string]any)["id"]

	w = apitest.Do(t, r, http.MethodPut, fmt.Sprintf("/api/profile/awards/%v", awardID), auth, gin.H{"image_url": ""})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, env.Store.Has("awards/kim/medal.jpg"))

	w = apitest.Do(t, r, http.MethodGet, "/api/profile/awards", auth, nil)
	awards := list(t, w.Body)
	require.Len(t, awards, 1)
	assert.Equal(t, "Prize", awards[0]["title_en"])

	assert.Equal(t, http.StatusBadRequest, apitest.Do(t, r, http.MethodDelete, "/api/profile/awards/abc", auth, nil).Code)
}

func TestPublicProfile(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	owner := env.User(t, "kim")
	auth := apitest.Bearer(t, owner)

	w := apitest.Do(t, r, http.MethodGet, "/api/profile/public/kim", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := apitest.JSON(t, w)
	basic := body["basic"].(map[string]any)
	assert.Equal(t, "kim", basic["slug"])
	_, hasEmail := basic["email"]
	assert.False(t, hasEmail)
	assert.Nil(t, body["artist_statement"])

	assert.Equal(t, http.StatusNotFound, apitest.Do(t, r, http.MethodGet, "/api/profile/public/nobody", "", nil).Code)

	w = apitest.Do(t, r, http.MethodPut, "/api/profile/basic", auth, gin.H{"is_public_gallery": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusForbidden, apitest.Do(t, r, http.MethodGet, "/api/profile/public/kim", "", nil).Code)
	assert.Equal(t, http.StatusOK, apitest.Do(t, r, http.MethodGet, "/api/profile/public/kim", auth, nil).Code)
}

func TestSectionCleanupSkipsOtherArtists(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	env.User(t, "kim")
	auth := apitest.Bearer(t, env.User(t, "mallory"))
	env.Store.Seed("profile/kim/portrait.jpg", time.Now())
	env.Store.Seed("exhibitions/kim/poster.jpg", time.Now())

	w := apitest.Do(t, r, http.MethodPut, "/api/profile/about", auth, gin.H{"about_image": storagetest.BaseURL + "/profile/kim/portrait.jpg"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = apitest.Do(t, r, http.MethodPut, "/api/profile/about", auth, gin.H{"about_image": ""})
	require.Equal(t, http.StatusOK, w.Code)

	w = apitest.Do(t, r, http.MethodPost, "/api/profile/exhibitions", auth, gin.H{
		"title_ko": "Borrowed", "year": "2020", "image_url": storagetest.BaseURL + "/exhibitions/kim/poster.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := apitest.JSON(t, w)["exhibition"].(map[string]any)["id"]
	w = apitest.Do(t, r, http.MethodDelete, fmt.Sprintf("/api/profile/exhibitions/%v", id), auth, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []string{"exhibitions/kim/poster.jpg", "profile/kim/portrait.jpg"}, env.Store.Keys(""))
}

func TestSlugChangeKeepsFileOwnership(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := apitest.Bearer(t, env.User(t, "kim"))
	env.Store.Seed("profile/kim/old.jpg", time.Now())
	env.Store.Seed("profile/kim-art/new.jpg", time.Now())

	w := apitest.Do(t, r, http.MethodPut, "/api/profile/about", auth, gin.H{"about_image": storagetest.BaseURL + "/profile/kim/old.jpg"})
	require.Equal(t, http.StatusOK, w.Code)
	w = apitest.Do(t, r, http.MethodPut, "/api/profile/basic", auth, gin.H{"slug": "kim-art"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	_, err := users.CreateUser(env.DB, users.NewUser{Email: "new@example.com", Password: "secret123", Name: "Kim", Slug: "kim"})
	assert.ErrorIs(t, err, users.ErrSlugTaken, "a retired slug stays reserved")

	w = apitest.Do(t, r, http.MethodPut, "/api/profile/about", auth, gin.H{"about_image": storagetest.BaseURL + "/profile/kim-art/new.jpg"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"profile/kim-art/new.jpg"}, env.Store.Keys(""), "files under the old slug are still the owner's")

	w = apitest.Do(t, r, http.MethodPut, "/api/profile/basic", auth, gin.H{"slug": "kim"})
	require.Equal(t, http.StatusOK, w.Code, "the owner may take back a retired slug")
	var retired []string
	require.NoError(t, env.DB.Model(&users.RetiredSlug{}).Order("slug").Pluck("slug", &retired).Error)
	assert.Equal(t, []string{"kim-art"}, retired)
}
