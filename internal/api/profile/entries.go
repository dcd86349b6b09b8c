package profile

import (
	"net/http"

	"gallery-api/internal/api/httperr"
	"gallery-api/internal/app/http/middleware"
	"gallery-api/internal/domain/profile"

	"github.com/gin-gonic/gin"
)

/* ---------- VIDEOS ---------- */

// GET /api/profile/videos
func ListVideos(c *gin.Context) {
	list, err := profile.ListVideos(db(c), middleware.CurrentUser(c).ID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/profile/videos
func AddVideo(c *gin.Context) {
	var in profile.VideoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BindError(c, err)
		return
	}

	v, err := profile.AddVideo(db(c), middleware.CurrentUser(c).ID, in)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Video added", "video": v})
}

// PUT /api/profile/videos/:id
func UpdateVideo(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}
	var upd profile.VideoUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		httperr.BindError(c, err)
		return
	}

	v, err := profile.UpdateVideo(db(c), middleware.CurrentUser(c).ID, id, upd)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Video updated", "video": v})
}

// DELETE /api/profile/videos/:id
func DeleteVideo(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}
	if err := profile.DeleteVideo(db(c), middleware.CurrentUser(c).ID, id); err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Video deleted"})
}

/* ---------- EXHIBITIONS ---------- */

// GET /api/profile/exhibitions
func ListExhibitions(c *gin.Context) {
	list, err := profile.ListExhibitions(db(c), middleware.CurrentUser(c).ID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/profile/exhibitions
func AddExhibition(c *gin.Context) {
	var in profile.ExhibitionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BindError(c, err)
		return
	}

	e, err := profile.AddExhibition(db(c), middleware.CurrentUser(c).ID, in)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Exhibition added", "exhibition": e})
}

// PUT /api/profile/exhibitions/:id
func UpdateExhibition(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}
	var upd profile.ExhibitionUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		httperr.BindError(c, err)
		return
	}

	e, replaced, err := profile.UpdateExhibition(db(c), middleware.CurrentUser(c).ID, id, upd)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	cleanup(c, "exhibition file replaced", replaced)
	c.JSON(http.StatusOK, gin.H{"message": "Exhibition updated", "exhibition": e})
}

// DELETE /api/profile/exhibitions/:id
func DeleteExhibition(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}
	urls, err := profile.DeleteExhibition(db(c), middleware.CurrentUser(c).ID, id)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	cleanup(c, "exhibition delete", urls)
	c.JSON(http.StatusOK, gin.H{"message": "Exhibition deleted"})
}

/* ---------- AWARDS ---------- */

// GET /api/profile/awards
func ListAwards(c *gin.Context) {
	list, err := profile.ListAwards(db(c), middleware.CurrentUser(c).ID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/profile/awards
func AddAward(c *gin.Context) {
	var in profile.AwardInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BindError(c, err)
		return
	}

	a, err := profile.AddAward(db(c), middleware.CurrentUser(c).ID, in)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Award added", "award": a})
}

// PUT /api/profile/awards/:id
func UpdateAward(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}
	var upd profile.AwardUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		httperr.BindError(c, err)
		return
	}

	a, replaced, err := profile.UpdateAward(db(c), middleware.CurrentUser(c).ID, id, upd)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	cleanup(c, "award file replaced", replaced)
	c.JSON(http.StatusOK, gin.H{"message": "Award updated", "award": a})
}

// DELETE /api/profile/awards/:id
func DeleteAward(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}
	urls, err := profile.DeleteAward(db(c), middleware.CurrentUser(c).ID, id)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	cleanup(c, "award delete", urls)
	c.JSON(http.StatusOK, gin.H{"message": "Award deleted"})
}
