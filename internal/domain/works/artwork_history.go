package works

import (
	"time"

	"gallery-api/internal/domain/media"
)

type HistoryType string

const (
	HistoryManual    HistoryType = "manual"
	HistoryInstagram HistoryType = "instagram"
	HistoryYouTube   HistoryType = "youtube"
	HistoryFacebook  HistoryType = "facebook"
)

// ArtworkHistory is one work-in-progress entry of an artwork.
type ArtworkHistory struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ArtworkID uint `gorm:"not null;index:idx_histories_artwork_order,priority:1" json:"artwork_id"`

	Title        string `gorm:"size:200" json:"title"`
	Content      string `gorm:"type:text" json:"content"`
	MediaURL     string `gorm:"size:500" json:"media_url"`
	ThumbnailURL string `gorm:"size:500" json:"thumbnail_url"`
	MediaType    string `gorm:"size:50;not null;default:'image'" json:"media_type"`

	HistoryType HistoryType `gorm:"size:20;not null;default:'manual'" json:"history_type"`
	ExternalURL string      `gorm:"size:500" json:"external_url"`
	ExternalID  string      `gorm:"size:100" json:"external_id"`

	YoutubeVideoID  string `gorm:"size:50" json:"youtube_video_id"`
	YoutubeTitle    string `gorm:"size:200" json:"youtube_title"`
	YoutubeDuration *int   `json:"youtube_duration"`

	InstagramPostID  string `gorm:"size:100" json:"instagram_post_id"`
	InstagramCaption string `gorm:"type:text" json:"instagram_caption"`

	IconEmoji  string     `gorm:"size:16" json:"icon_emoji"`
	OrderIndex int        `gorm:"not null;default:0;index:idx_histories_artwork_order,priority:2" json:"order_index"`
	WorkDate   *time.Time `json:"work_date"`
	ImportedAt *time.Time `json:"imported_at"`

	Images []ArtworkHistoryImage `gorm:"foreignKey:HistoryID;constraint:OnDelete:CASCADE" json:"images"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ArtworkHistoryImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	HistoryID  uint      `gorm:"not null;index" json:"history_id"`
	ImageURL   string    `gorm:"size:500;not null" json:"image_url"`
	AltText    string    `gorm:"size:200" json:"alt_text"`
	Caption    string    `gorm:"type:text" json:"caption"`
	OrderIndex int       `gorm:"not null;default:0" json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}

// FileURLs lists the uploaded files of the entry. Linked media (YouTube or
// imported posts) is not ours to delete.
func (h *ArtworkHistory) FileURLs() []string {
	urls := nonEmpty(h.storedMediaURL(), h.ThumbnailURL)
	for _, img := range h.Images {
		urls = append(urls, nonEmpty(img.ImageURL)...)
	}
	return urls
}

func (h *ArtworkHistory) storedMediaURL() string {
	if media.ExtractYouTubeID(h.MediaURL) != "" || h.MediaURL == h.ExternalURL {
		return ""
	}
	return h.MediaURL
}
