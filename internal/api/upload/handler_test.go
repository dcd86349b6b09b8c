package upload

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"gallery-api/internal/app/http/middleware"
	"gallery-api/internal/domain/users"
	"gallery-api/internal/infra/storage"
	"gallery-api/internal/infra/storage/storagetest"
	"gallery-api/internal/testutil/apitest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func router() *gin.Engine {
	r := gin.New()
	g := r.Group("/api/upload", middleware.AuthMiddleware(), middleware.RequireActiveUser())
	g.POST("", Generic)
	g.POST("/image", Image)
	g.POST("/artwork", Artwork)
	g.POST("/history", History)
	g.POST("/temp", Temp)
	g.DELETE("", Delete)
	g.POST("/move-temp", MoveTemp)
	g.POST("/cleanup-temp", CleanupTemp)
	return r
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func send(t *testing.T, r http.Handler, path, auth, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", auth)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenericUpload(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := apitest.Bearer(t, env.User(t, "kim"))

	w := send(t, r, "/api/upload", auth, "photo.PNG", "image/png", pngBytes(t, 10, 10))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := apitest.JSON(t, w)
	key := body["key"].(string)
	assert.True(t, strings.HasPrefix(key, "uploads/kim/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Equal(t, storagetest.BaseURL+"/"+key, body["url"])
	assert.Equal(t, "image/png", body["content_type"])
	assert.True(t, env.Store.Has(key))
}

func TestUploadRejections(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := apitest.Bearer(t, env.User(t, "kim"))

	cases := []struct {
		name        string
		path        string
		filename    string
		contentType string
		data        []byte
	}{
		{"bad extension", "/api/upload", "notes.txt", "text/plain", []byte("hello")},
		{"lying content", "/api/upload/history", "fake.png", "image/png", []byte("plain text, not an image")},
		{"video on image endpoint", "/api/upload/history", "clip.mp4", "video/mp4", []byte("x")},
		{"unknown folder", "/api/upload/image?folder=artworks", "a.png", "image/png", pngBytes(t, 4, 4)},
		{"too large for temp", "/api/upload/temp", "big.png", "image/png", bytes.Repeat([]byte{0}, 5<<20+1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := send(t, r, tc.path, auth, tc.filename, tc.contentType, tc.data)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
	assert.Empty(t, env.Store.Keys(""))

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	req.Header.Set("Authorization", auth)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImageFolder(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := apitest.Bearer(t, env.User(t, "kim"))

	w := send(t, r, "/api/upload/image?folder=blog", auth, "cover.png", "image/png", pngBytes(t, 8, 8))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, strings.HasPrefix(apitest.JSON(t, w)["key"].(string), "blog/kim/"))

	w = send(t, r, "/api/upload/image", auth, "me.png", "image/png", pngBytes(t, 8, 8))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(apitest.JSON(t, w)["key"].(string), "profile/kim/"))
}

func TestArtworkUploadMakesDerivatives(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := apitest.Bearer(t, env.User(t, "kim"))

	w := send(t, r, "/api/upload/artwork", auth, "canvas.png", "image/png", pngBytes(t, 800, 600))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := apitest.JSON(t, w)

	keys := env.Store.Keys("artworks/kim/")
	require.Len(t, keys, 3)
	assert.True(t, strings.HasSuffix(body["display_url"].(string), "_display.png"))
	assert.True(t, strings.HasSuffix(body["thumbnail_url"].(string), "_thumb.png"))
	assert.NotEqual(t, body["url"], body["thumbnail_url"])
}

func TestDeleteByURL(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := apitest.Bearer(t, env.User(t, "kim"))
	env.Store.Seed("uploads/kim/mine.png", time.Now())
	env.Store.Seed("uploads/lee/theirs.png", time.Now())

	del := func(raw string) int {
		return apitest.Do(t, r, http.MethodDelete, "/api/upload?url="+url.QueryEscape(raw), auth, nil).Code
	}

	assert.Equal(t, http.StatusBadRequest, del("https://elsewhere.example/uploads/kim/mine.png"))
	assert.Equal(t, http.StatusForbidden, del(storagetest.BaseURL+"/uploads/lee/theirs.png"))
	assert.Equal(t, http.StatusOK, del(storagetest.BaseURL+"/uploads/kim/mine.png"))
	assert.Equal(t, []string{"uploads/lee/theirs.png"}, env.Store.Keys(""))
}

func TestDeleteAfterSlugChange(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	kim := env.User(t, "kim")
	auth := apitest.Bearer(t, kim)
	env.Store.Seed("uploads/kim/before.png", time.Now())
	require.NoError(t, env.DB.Transaction(func(tx *gorm.DB) error {
		return users.ChangeSlug(tx, kim.ID, "kim", "kim-art")
	}))

	w := apitest.Do(t, r, http.MethodDelete, "/api/upload?url="+url.QueryEscape(storagetest.BaseURL+"/uploads/kim/before.png"), auth, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, env.Store.Keys(""))
}

func TestMoveAndCleanupTemp(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := apitest.Bearer(t, env.User(t, "kim"))
	env.Store.Seed("temp/kim/a.png", time.Now())
	env.Store.Seed("temp/kim/b.png", time.Now())
	env.Store.Seed("temp/lee/c.png", time.Now())

	w := apitest.Do(t, r, http.MethodPost, "/api/upload/move-temp", auth, gin.H{
		"temp_urls": []string{storagetest.BaseURL + "/temp/lee/c.png"},
		"folder":    "artworks",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = apitest.Do(t, r, http.MethodPost, "/api/upload/move-temp", auth, gin.H{
		"temp_urls": []string{storagetest.BaseURL + "/temp/kim/a.png"},
		"folder":    "artworks",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []any{storagetest.BaseURL + "/artworks/kim/a.png"}, apitest.JSON(t, w)["urls"])
	assert.True(t, env.Store.Has("artworks/kim/a.png"))
	assert.False(t, env.Store.Has("temp/kim/a.png"))

	w = apitest.Do(t, r, http.MethodPost, "/api/upload/cleanup-temp", auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, apitest.JSON(t, w)["deleted"])
	assert.Equal(t, []string{"artworks/kim/a.png", "temp/lee/c.png"}, env.Store.Keys(""))
}

func TestUploadWithoutStorage(t *testing.T) {
	env := apitest.Setup(t)
	r := router()
	auth := apitest.Bearer(t, env.User(t, "kim"))
	storage.Default = nil

	w := send(t, r, "/api/upload", auth, "photo.png", "image/png", pngBytes(t, 4, 4))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, http.StatusServiceUnavailable, apitest.Do(t, r, http.MethodPost, "/api/upload/cleanup-temp", auth, nil).Code)
}
