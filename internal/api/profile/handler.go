package profile

import (
	"net/http"
	"strconv"

	"gallery-api/database"
	"gallery-api/internal/api/httperr"
	usersapi "gallery-api/internal/api/users"
	"gallery-api/internal/app/http/middleware"
	"gallery-api/internal/domain/media"
	"gallery-api/internal/domain/profile"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func db(c *gin.Context) *gorm.DB {
	return database.DB.WithContext(c.Request.Context())
}

func entryID(c *gin.Context) (uint, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || v == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(v), true
}

func cleanup(c *gin.Context, reason string, urls []string) {
	if len(urls) == 0 {
		return
	}
	owner := media.OwnerOf(db(c), middleware.CurrentUser(c))
	media.DefaultCleaner(db(c)).RemoveURLs(c.Request.Context(), reason, owner, urls...)
}

// GET /api/profile
func GetProfile(c *gin.Context) {
	p, err := profile.Load(db(c), middleware.CurrentUser(c))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, toFullProfileDTO(p))
}

// GET /api/profile/main
func GetMainProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	qa, err := profile.ListQA(db(c), user.ID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, MainProfileDTO{
		Basic:  usersapi.BuildProfileDTO(user),
		QAList: toMainQA(qa),
	})
}

// GET /api/profile/public/:slug
func GetPublicProfile(c *gin.Context) {
	p, err := profile.LoadPublic(db(c), c.Param("slug"), middleware.Viewer(c))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, toPublicProfileDTO(p))
}

/* ---------- SECTIONS ---------- */

// PUT /api/profile/basic
func UpdateBasic(c *gin.Context) {
	var upd profile.BasicUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		httperr.BindError(c, err)
		return
	}

	u, err := profile.UpdateBasic(db(c), middleware.CurrentUser(c), upd)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": usersapi.BuildProfileDTO(u)})
}

// PUT /api/profile/about
func UpdateAbout(c *gin.Context) {
	var upd profile.AboutUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		httperr.BindError(c, err)
		return
	}

	u, replaced, err := profile.UpdateAbout(db(c), middleware.CurrentUser(c), upd)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	cleanup(c, "about section replaced", replaced)
	c.JSON(http.StatusOK, gin.H{"message": "About section updated", "user": usersapi.BuildProfileDTO(u)})
}

// PUT /api/profile/studio
func UpdateStudio(c *gin.Context) {
	var upd profile.StudioUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		httperr.BindError(c, err)
		return
	}

	u, replaced, err := profile.UpdateStudio(db(c), middleware.CurrentUser(c), upd)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	cleanup(c, "studio section replaced", replaced)
	c.JSON(http.StatusOK, gin.H{"message": "Studio section updated", "user": usersapi.BuildProfileDTO(u)})
}

// PUT /api/profile/artist-statement
func UpdateStatement(c *gin.Context) {
	var in profile.StatementInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BindError(c, err)
		return
	}

	st, err := profile.UpsertStatement(db(c), middleware.CurrentUser(c).ID, in)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Artist statement updated", "statement": st})
}

// PUT /api/profile/qa
func ReplaceQA(c *gin.Context) {
	var items []profile.QAInput
	if err := c.ShouldBindJSON(&items); err != nil {
		httperr.BindError(c, err)
		return
	}

	list, err := profile.ReplaceQA(db(c), middleware.CurrentUser(c).ID, items)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Q&A updated", "qa_list": list})
}
