package admin

import (
	"net/http"
	"strconv"
	"time"

	"gallery-api/config"
	"gallery-api/database"
	"gallery-api/internal/api/httperr"
	"gallery-api/internal/domain/blog"
	"gallery-api/internal/domain/media"
	"gallery-api/internal/domain/users"
	"gallery-api/internal/domain/works"
	"gallery-api/internal/jobs"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminUser struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	AuthProvider  string    `json:"auth_provider"`
	IsVerified    bool      `json:"is_verified"`
	IsActive      bool      `json:"is_active"`
	TotalArtworks int       `json:"total_artworks"`
	TotalViews    int       `json:"total_views"`
	CreatedAt     time.Time `json:"created_at"`
}

type AdminStats struct {
	TotalUsers       int64 `json:"total_users"`
	UnverifiedUsers  int64 `json:"unverified_users"`
	TotalArtworks    int64 `json:"total_artworks"`
	TotalPosts       int64 `json:"total_posts"`
	PendingDeletions int64 `json:"pending_deletions"`
}

func db(c *gin.Context) *gorm.DB {
	return database.DB.WithContext(c.Request.Context())
}

func toAdminUser(u users.User) AdminUser {
	return AdminUser{
		ID:            u.ID,
		Name:          u.Name,
		Slug:          u.Slug,
		Email:         u.Email,
		Role:          u.Role,
		AuthProvider:  u.AuthProvider,
		IsVerified:    u.IsVerified,
		IsActive:      u.IsActive,
		TotalArtworks: u.TotalArtworks,
		TotalViews:    u.TotalViews,
		CreatedAt:     u.CreatedAt,
	}
}

func ListAllUsers(c *gin.Context) {
	var list []users.User
	if err := db(c).Order("id ASC").Find(&list).Error; err != nil {
		httperr.Write(c, err)
		return
	}

	adminUsers := make([]AdminUser, 0, len(list))
	for _, u := range list {
		adminUsers = append(adminUsers, toAdminUser(u))
	}
	c.JSON(http.StatusOK, adminUsers)
}

func GetUserDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.Abort(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	u, err := users.GetUserByID(db(c), uint(id))
	if err != nil {
		httperr.Write(c, err)
		return
	}

	var posts, pending int64
	if err := db(c).Model(&blog.BlogPost{}).Where("user_id = ?", u.ID).Count(&posts).Error; err != nil {
		httperr.Write(c, err)
		return
	}
	if err := db(c).Model(&media.PendingDeletion{}).Where("key LIKE ?", "%/"+u.Slug+"/%").Count(&pending).Error; err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":              toAdminUser(*u),
		"total_posts":       posts,
		"pending_deletions": pending,
	})
}

func GetAdminStats(c *gin.Context) {
	var stats AdminStats
	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, db(c).Model(&users.User{})},
		{&stats.UnverifiedUsers, db(c).Model(&users.User{}).Where("is_verified = ?", false)},
		{&stats.TotalArtworks, db(c).Model(&works.Artwork{})},
		{&stats.TotalPosts, db(c).Model(&blog.BlogPost{})},
		{&stats.PendingDeletions, db(c).Model(&media.PendingDeletion{})},
	}
	for _, q := range counts {
		if err := q.query.Count(q.dst).Error; err != nil {
			httperr.Write(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, stats)
}

// POST /api/admin/cleanup/unverified runs the unverified-account sweep now.
func CleanupUnverified(c *gin.Context) {
	job := jobs.NewUnverifiedUserCleanupJob(database.DB, media.DefaultCleaner(database.DB), config.UNVERIFIED_ACCOUNT_TTL)
	n, err := job.RunOnce(c.Request.Context())
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unverified accounts removed", "deleted": n})
}

// GET /api/admin/storage/pending lists storage keys still waiting for deletion.
func ListPendingDeletions(c *gin.Context) {
	var rows []media.PendingDeletion
	if err := db(c).Order("created_at ASC").Limit(500).Find(&rows).Error; err != nil {
		httperr.Write(c, err)
		return
	}
	if rows == nil {
		rows = []media.PendingDeletion{}
	}
	c.JSON(http.StatusOK, gin.H{"items": rows, "count": len(rows)})
}
