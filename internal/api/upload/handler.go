package upload

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"gallery-api/database"
	"gallery-api/internal/api/httperr"
	"gallery-api/internal/app/http/middleware"
	"gallery-api/internal/domain/media"
	"gallery-api/internal/infra/storage"

	"github.com/gin-gonic/gin"
)

const formField = "file"

// bucket returns the configured store, or answers 503 when there is none.
func bucket(c *gin.Context) (storage.Store, bool) {
	if storage.Default == nil {
		httperr.Abort(c, http.StatusServiceUnavailable, "File storage is not configured")
		return nil, false
	}
	return storage.Default, true
}

type file struct {
	Name        string
	Ext         string
	ContentType string
	Data        []byte
}

// receive reads the multipart file and checks it against rule. It writes the
// error response itself and reports false when the upload is rejected.
func receive(c *gin.Context, rule media.Rule) (*file, bool) {
	fh, err := c.FormFile(formField)
	if err != nil {
		httperr.Abort(c, http.StatusBadRequest, "No file uploaded")
		return nil, false
	}

	ext, err := rule.Validate(fh.Filename, fh.Header.Get("Content-Type"), fh.Size)
	if err != nil {
		httperr.Write(c, err)
		return nil, false
	}

	r, err := fh.Open()
	if err != nil {
		httperr.Write(c, fmt.Errorf("open upload: %w", err))
		return nil, false
	}
	defer func() { _ = r.Close() }()

	data, err := io.ReadAll(io.LimitReader(r, rule.MaxBytes+1))
	if err != nil {
		httperr.Write(c, fmt.Errorf("read upload: %w", err))
		return nil, false
	}
	if int64(len(data)) > rule.MaxBytes {
		httperr.Write(c, media.ErrTooLarge(rule.MaxBytes))
		return nil, false
	}

	contentType, err := media.Sniff(data, ext)
	if err != nil {
		httperr.Write(c, err)
		return nil, false
	}
	return &file{Name: fh.Filename, Ext: ext, ContentType: contentType, Data: data}, true
}

func store(c *gin.Context, rule media.Rule) {
	bkt, ok := bucket(c)
	if !ok {
		return
	}
	f, ok := receive(c, rule)
	if !ok {
		return
	}
	slug := middleware.CurrentUser(c).Slug
	key := media.ObjectKey(rule.Folder, slug, f.Ext, time.Now())

	up, err := media.Put(c.Request.Context(), bkt, key, f.Data, f.ContentType)
	if err != nil {
		httperr.Write(c, fmt.Errorf("put %s: %w", key, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "File uploaded",
		"url":          up.URL,
		"key":          up.Key,
		"filename":     f.Name,
		"size":         up.Size,
		"content_type": up.ContentType,
	})
}

// POST /api/upload
func Generic(c *gin.Context) { store(c, media.RuleGeneric) }

// POST /api/upload/history
func History(c *gin.Context) { store(c, media.RuleHistory) }

// POST /api/upload/temp
func Temp(c *gin.Context) { store(c, media.RuleTemp) }

// POST /api/upload/image?folder=
func Image(c *gin.Context) {
	rule, err := media.ImageRuleFor(c.Query("folder"))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	store(c, rule)
}

// POST /api/upload/artwork
func Artwork(c *gin.Context) {
	bkt, ok := bucket(c)
	if !ok {
		return
	}
	f, ok := receive(c, media.RuleArtwork)
	if !ok {
		return
	}
	slug := middleware.CurrentUser(c).Slug

	img, err := media.PutArtworkImage(c.Request.Context(), bkt, slug, f.Ext, f.Data, f.ContentType, time.Now())
	if err != nil {
		httperr.Write(c, fmt.Errorf("artwork upload: %w", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Artwork image uploaded",
		"url":           img.Original.URL,
		"display_url":   img.Display.URL,
		"thumbnail_url": img.Thumbnail.URL,
		"filename":      f.Name,
		"size":          img.Original.Size,
		"content_type":  f.ContentType,
		"files":         img,
	})
}

// DELETE /api/upload?url=
func Delete(c *gin.Context) {
	bkt, ok := bucket(c)
	if !ok {
		return
	}
	raw := c.Query("url")
	if raw == "" {
		httperr.Abort(c, http.StatusBadRequest, "url is required")
		return
	}
	key, ok := bkt.KeyFromURL(raw)
	if !ok {
		httperr.Write(c, media.ErrForeignURL)
		return
	}
	owner := media.OwnerOf(database.DB.WithContext(c.Request.Context()), middleware.CurrentUser(c))
	if !owner.Owns(key) {
		httperr.Write(c, media.ErrNotYourFile)
		return
	}

	if err := bkt.Remove(c.Request.Context(), key); err != nil {
		httperr.Write(c, fmt.Errorf("remove %s: %w", key, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}

type moveTempRequest struct {
	TempURLs []string `json:"temp_urls" binding:"required,min=1,max=50"`
	Folder   string   `json:"folder" binding:"required"`
}

// POST /api/upload/move-temp
func MoveTemp(c *gin.Context) {
	bkt, ok := bucket(c)
	if !ok {
		return
	}
	var req moveTempRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}
	slug := middleware.CurrentUser(c).Slug
	cleaner := media.NewCleaner(database.DB.WithContext(c.Request.Context()), bkt)

	urls := make([]string, 0, len(req.TempURLs))
	for _, u := range req.TempURLs {
		moved, err := cleaner.MoveTemp(c.Request.Context(), slug, req.Folder, u)
		if err != nil {
			if httperr.Status(err) == http.StatusInternalServerError && len(urls) > 0 {
				slog.ErrorContext(c.Request.Context(), "move temp failed", "url", u, "err", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move file", "urls": urls})
				return
			}
			httperr.Write(c, err)
			return
		}
		urls = append(urls, moved)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Files moved", "urls": urls})
}

// POST /api/upload/cleanup-temp
func CleanupTemp(c *gin.Context) {
	bkt, ok := bucket(c)
	if !ok {
		return
	}
	prefix := media.UserPrefix(media.FolderTemp, middleware.CurrentUser(c).Slug)
	n, err := bkt.RemovePrefix(c.Request.Context(), prefix)
	if err != nil {
		httperr.Write(c, fmt.Errorf("cleanup %s: %w", prefix, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Temporary files removed", "deleted": n})
}
