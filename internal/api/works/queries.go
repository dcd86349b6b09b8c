package works

import (
	"net/http"
	"strconv"

	"gallery-api/database"
	"gallery-api/internal/api/httperr"
	"gallery-api/internal/app/http/middleware"
	"gallery-api/internal/domain/access"
	"gallery-api/internal/domain/errs"
	"gallery-api/internal/domain/media"
	"gallery-api/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var ErrGalleryPrivate = errs.Forbidden("This gallery is private")

func db(c *gin.Context) *gorm.DB {
	return database.DB.WithContext(c.Request.Context())
}

// cleanup removes the caller's files among urls after their rows are gone.
func cleanup(c *gin.Context, reason string, urls []string) {
	user := middleware.CurrentUser(c)
	if user == nil || len(urls) == 0 {
		return
	}
	media.DefaultCleaner(db(c)).RemoveURLs(c.Request.Context(), reason, media.OwnerOf(db(c), user), urls...)
}

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint(middleware.KeyUserID)
	if userID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// uintParam reads a numeric path parameter and answers 400 when it is not one.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// galleryOwner resolves :slug and checks the viewer may browse that gallery.
func galleryOwner(c *gin.Context, viewer access.Viewer) (*users.User, bool) {
	owner, err := users.GetUserBySlug(db(c), c.Param("slug"))
	if err != nil {
		httperr.Write(c, err)
		return nil, false
	}
	if !access.GalleryVisible(viewer, owner) {
		httperr.Write(c, ErrGalleryPrivate)
		return nil, false
	}
	return owner, true
}
