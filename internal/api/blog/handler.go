package blog

import (
	"log/slog"
	"net/http"
	"strconv"

	"gallery-api/database"
	"gallery-api/internal/api/httperr"
	"gallery-api/internal/app/http/middleware"
	"gallery-api/internal/domain/blog"
	"gallery-api/internal/domain/media"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func db(c *gin.Context) *gorm.DB {
	return database.DB.WithContext(c.Request.Context())
}

func postID(c *gin.Context) (uint, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || v == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return 0, false
	}
	return uint(v), true
}

// GET /api/blog/posts
func ListPosts(c *gin.Context) {
	var q blog.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BindError(c, err)
		return
	}

	page, err := blog.ListPosts(db(c), middleware.Viewer(c), q)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostPageDTO(page))
}

// GET /api/blog/my
func ListMyPosts(c *gin.Context) {
	var q blog.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BindError(c, err)
		return
	}

	page, err := blog.ListMine(db(c), middleware.CurrentUser(c).ID, q)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostPageDTO(page))
}

// POST /api/blog/posts
func CreatePost(c *gin.Context) {
	var in blog.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BindError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	p, err := blog.CreatePost(db(c), user.ID, in)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	p.User = user
	c.JSON(http.StatusCreated, toPostDTO(p))
}

// GET /api/blog/posts/:id
func GetPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	p, err := blog.GetPost(db(c), id, viewer)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	if err := blog.IncrementView(db(c), p, viewer); err != nil {
		slog.WarnContext(c.Request.Context(), "failed to count post view", "post_id", id, "err", err)
	}
	c.JSON(http.StatusOK, toPostDTO(p))
}

// PUT /api/blog/posts/:id
func UpdatePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var upd blog.PostUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		httperr.BindError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	p, err := blog.UpdatePost(db(c), id, user.ID, upd)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	p.User = user
	c.JSON(http.StatusOK, toPostDTO(p))
}

// DELETE /api/blog/posts/:id
func DeletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	urls, err := blog.DeletePost(db(c), id, middleware.CurrentUser(c))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	author := middleware.CurrentUser(c)
	media.DefaultCleaner(db(c)).RemoveURLs(c.Request.Context(), "blog post delete", media.OwnerOf(db(c), author), urls...)

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// GET /api/blog/:slug/studio
func GetStudioPost(c *gin.Context) {
	p, err := blog.StudioPost(db(c), c.Param("slug"), middleware.Viewer(c))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	if p == nil {
		c.JSON(http.StatusOK, gin.H{"post": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": toPostDTO(p)})
}
