package works

import (
	"log/slog"
	"net/http"

	"gallery-api/internal/api/httperr"
	"gallery-api/internal/app/http/middleware"
	"gallery-api/internal/domain/works"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// POST /api/artworks
// ------------------------------
func CreateArtwork(c *gin.Context) {
	var in works.ArtworkInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BindError(c, err)
		return
	}

	a, err := works.CreateArtwork(db(c), middleware.CurrentUser(c), in)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, toArtworkDTO(a))
}

// ------------------------------
// GET /api/artworks/my
// ------------------------------
func ListMyArtworks(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var f works.ListFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		httperr.BindError(c, err)
		return
	}

	page, err := works.ListUserArtworks(db(c), userID, middleware.Viewer(c), f)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ------------------------------
// GET /api/artworks/stats
// ------------------------------
func GetMyStats(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	stats, err := works.UserArtworkStats(db(c), userID, middleware.Viewer(c))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ------------------------------
// PUT /api/artworks/reorder
// ------------------------------
func ReorderArtworks(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req ReorderArtworksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	if err := works.ReorderArtworks(db(c), userID, req.ArtworkIDs); err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Artworks reordered"})
}

// ------------------------------
// GET /api/artworks/:id
// ------------------------------
func GetArtwork(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	a, err := works.GetArtwork(db(c), id, viewer)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	if err := works.IncrementViewCount(db(c), a, viewer); err != nil {
		slog.WarnContext(c.Request.Context(), "failed to count artwork view", "artwork_id", id, "err", err)
	}
	c.JSON(http.StatusOK, toArtworkDTO(a))
}

// ------------------------------
// GET /api/artworks/:id/adjacent
// ------------------------------
func GetAdjacent(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	adj, err := works.AdjacentArtworks(db(c), id, middleware.Viewer(c))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, toAdjacentDTO(adj))
}

// ------------------------------
// PUT /api/artworks/:id
// ------------------------------
func UpdateArtwork(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var upd works.ArtworkUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		httperr.BindError(c, err)
		return
	}

	a, err := works.UpdateArtwork(db(c), id, userID, upd)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, toArtworkDTO(a))
}

// ------------------------------
// DELETE /api/artworks/:id
// ------------------------------
func DeleteArtwork(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	urls, err := works.DeleteArtwork(db(c), id, userID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	cleanup(c, "artwork delete", urls)

	c.JSON(http.StatusOK, gin.H{"message": "Artwork deleted"})
}

// ------------------------------
// POST /api/artworks/:id/like
// ------------------------------
func LikeArtwork(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	count, err := works.ToggleLike(db(c), id, middleware.Viewer(c))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"like_count": count})
}

// ------------------------------
// GET /api/artworks/user/:slug
// ------------------------------
func ListUserArtworks(c *gin.Context) {
	viewer := middleware.Viewer(c)
	owner, ok := galleryOwner(c, viewer)
	if !ok {
		return
	}

	var f works.ListFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		httperr.BindError(c, err)
		return
	}

	page, err := works.ListUserArtworks(db(c), owner.ID, viewer, f)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ------------------------------
// GET /api/artworks/user/:slug/stats
// ------------------------------
func GetUserStats(c *gin.Context) {
	viewer := middleware.Viewer(c)
	owner, ok := galleryOwner(c, viewer)
	if !ok {
		return
	}

	stats, err := works.UserArtworkStats(db(c), owner.ID, viewer)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
