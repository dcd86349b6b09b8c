package works

import (
	"time"

	"gallery-api/internal/domain/access"
	"gallery-api/internal/domain/users"
)

type Status string

const (
	StatusWorkInProgress Status = "work_in_progress"
	StatusCompleted      Status = "completed"
	StatusArchived       Status = "archived"
)

type Artwork struct {
	ID     uint        `gorm:"primaryKey" json:"id"`
	UserID uint        `gorm:"not null;index:idx_artworks_user_order,priority:1" json:"user_id"`
	User   *users.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Title             string `gorm:"size:200;not null" json:"title"`
	Description       string `gorm:"type:text" json:"description"`
	ArtistName        string `gorm:"size:100" json:"artist_name"`
	ThumbnailURL      string `gorm:"size:500" json:"thumbnail_url"`
	WorkInProgressURL string `gorm:"size:500" json:"work_in_progress_url"`

	Medium string `gorm:"size:100" json:"medium"`
	Size   string `gorm:"size:100" json:"size"`
	Year   string `gorm:"size:20" json:"year"`

	Status  Status         `gorm:"size:20;not null;default:'work_in_progress';index" json:"status"`
	Privacy access.Privacy `gorm:"size:20;not null;default:'public';index" json:"privacy"`

	StartedAt           *time.Time `json:"started_at"`
	CompletedAt         *time.Time `json:"completed_at"`
	EstimatedCompletion *time.Time `json:"estimated_completion"`

	ViewCount    int `gorm:"not null;default:0" json:"view_count"`
	LikeCount    int `gorm:"not null;default:0" json:"like_count"`
	HistoryCount int `gorm:"not null;default:0" json:"history_count"`
	DisplayOrder int `gorm:"not null;default:0;index:idx_artworks_user_order,priority:2" json:"display_order"`

	Histories []ArtworkHistory `gorm:"constraint:OnDelete:CASCADE" json:"histories,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileURLs lists the stored files the artwork row points at.
func (a *Artwork) FileURLs() []string {
	return nonEmpty(a.ThumbnailURL, a.WorkInProgressURL)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
