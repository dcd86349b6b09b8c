package works

import (
	"net/http"

	"gallery-api/internal/api/httperr"
	"gallery-api/internal/app/http/middleware"
	"gallery-api/internal/domain/works"

	"github.com/gin-gonic/gin"
)

// GET /api/artworks/:id/histories
func ListHistories(c *gin.Context) {
	artworkID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	items, err := works.ListHistories(db(c), artworkID, middleware.Viewer(c))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /api/artworks/:id/histories
func CreateHistory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	artworkID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var in works.HistoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BindError(c, err)
		return
	}

	h, err := works.CreateHistory(db(c), artworkID, userID, in)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, h)
}

// PUT /api/artworks/:id/histories/reorder
func ReorderHistories(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	artworkID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req ReorderHistoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	if err := works.ReorderHistories(db(c), artworkID, userID, req.HistoryIDs); err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Histories reordered"})
}

// GET /api/artworks/:id/histories/:history_id
func GetHistory(c *gin.Context) {
	artworkID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	historyID, ok := uintParam(c, "history_id")
	if !ok {
		return
	}

	h, err := works.GetHistory(db(c), artworkID, historyID, middleware.Viewer(c))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, h)
}

// PUT /api/artworks/:id/histories/:history_id
func UpdateHistory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	artworkID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	historyID, ok := uintParam(c, "history_id")
	if !ok {
		return
	}

	var upd works.HistoryUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		httperr.BindError(c, err)
		return
	}

	h, orphaned, err := works.UpdateHistory(db(c), artworkID, historyID, userID, upd)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	cleanup(c, "history images replaced", orphaned)

	c.JSON(http.StatusOK, h)
}

// DELETE /api/artworks/:id/histories/:history_id
func DeleteHistory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	artworkID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	historyID, ok := uintParam(c, "history_id")
	if !ok {
		return
	}

	urls, err := works.DeleteHistory(db(c), artworkID, historyID, userID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	cleanup(c, "history delete", urls)

	c.JSON(http.StatusOK, gin.H{"message": "History deleted"})
}
