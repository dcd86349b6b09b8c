package blog

import (
	"time"

	"gallery-api/internal/domain/users"

	"gorm.io/datatypes"
)

const (
	TypeBlog       = "BLOG"
	TypeNotice     = "NOTICE"
	TypeNews       = "NEWS"
	TypeExhibition = "EXHIBITION"
	TypeAward      = "AWARD"
	// TypeStudio is the single per-user post shown on the studio page.
	TypeStudio = "STUDIO"
)

type BlogPost struct {
	ID     uint        `gorm:"primaryKey" json:"id"`
	UserID uint        `gorm:"not null;index" json:"user_id"`
	User   *users.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Title         string                      `gorm:"size:200;not null" json:"title"`
	Content       string                      `gorm:"type:text;not null" json:"content"`
	Excerpt       string                      `gorm:"type:text" json:"excerpt"`
	PostType      string                      `gorm:"size:50;not null;default:'BLOG';index" json:"post_type"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`
	FeaturedImage string                      `gorm:"size:500" json:"featured_image"`

	IsPublished bool `gorm:"not null;index" json:"is_published"`
	IsPublic    bool `gorm:"not null" json:"is_public"`
	IsPinned    bool `gorm:"not null" json:"is_pinned"`

	ViewCount int `gorm:"not null;default:0" json:"view_count"`
	LikeCount int `gorm:"not null;default:0" json:"like_count"`

	PublishedAt   *time.Time `json:"published_at"`
	ScheduledDate *time.Time `json:"scheduled_date"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
