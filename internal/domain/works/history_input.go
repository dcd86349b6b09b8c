package works

import (
	"time"

	"gallery-api/internal/domain/errs"
)

type HistoryImageInput struct {
	ImageURL   string `json:"image_url" validate:"required,max=500"`
	AltText    string `json:"alt_text" validate:"max=200"`
	Caption    string `json:"caption"`
	OrderIndex *int   `json:"order_index"`
}

type HistoryInput struct {
	Title            string              `json:"title" validate:"max=200"`
	Content          string              `json:"content"`
	MediaURL         string              `json:"media_url" validate:"max=500"`
	ThumbnailURL     string              `json:"thumbnail_url" validate:"max=500"`
	MediaType        string              `json:"media_type" validate:"max=50"`
	HistoryType      HistoryType         `json:"history_type" validate:"omitempty,oneof=manual instagram youtube facebook"`
	ExternalURL      string              `json:"external_url" validate:"max=500"`
	ExternalID       string              `json:"external_id" validate:"max=100"`
	YoutubeTitle     string              `json:"youtube_title" validate:"max=200"`
	YoutubeDuration  *int                `json:"youtube_duration"`
	InstagramPostID  string              `json:"instagram_post_id" validate:"max=100"`
	InstagramCaption string              `json:"instagram_caption"`
	IconEmoji        string              `json:"icon_emoji" validate:"max=16"`
	WorkDate         *time.Time          `json:"work_date"`
	Images           []HistoryImageInput `json:"images" validate:"dive"`
}

type HistoryUpdate struct {
	Title            *string              `json:"title" validate:"omitempty,max=200"`
	Content          *string              `json:"content"`
	MediaURL         *string              `json:"media_url" validate:"omitempty,max=500"`
	ThumbnailURL     *string              `json:"thumbnail_url" validate:"omitempty,max=500"`
	MediaType        *string              `json:"media_type" validate:"omitempty,max=50"`
	HistoryType      *HistoryType         `json:"history_type" validate:"omitempty,oneof=manual instagram youtube facebook"`
	ExternalURL      *string              `json:"external_url" validate:"omitempty,max=500"`
	ExternalID       *string              `json:"external_id" validate:"omitempty,max=100"`
	YoutubeTitle     *string              `json:"youtube_title" validate:"omitempty,max=200"`
	YoutubeDuration  *int                 `json:"youtube_duration"`
	InstagramPostID  *string              `json:"instagram_post_id" validate:"omitempty,max=100"`
	InstagramCaption *string              `json:"instagram_caption"`
	IconEmoji        *string              `json:"icon_emoji" validate:"omitempty,max=16"`
	WorkDate         *time.Time           `json:"work_date"`
	Images           *[]HistoryImageInput `json:"images"`
}

func (u HistoryUpdate) validate() error {
	if err := errs.Validate(u); err != nil {
		return err
	}
	if u.Images != nil {
		for _, img := range *u.Images {
			if err := errs.Validate(img); err != nil {
				return err
			}
		}
	}
	return nil
}

func (u HistoryUpdate) changes() map[string]any {
	m := map[string]any{}
	setString(m, "title", u.Title)
	setString(m, "content", u.Content)
	setString(m, "media_url", u.MediaURL)
	setString(m, "thumbnail_url", u.ThumbnailURL)
	setString(m, "media_type", u.MediaType)
	if u.HistoryType != nil && *u.HistoryType != "" {
		m["history_type"] = *u.HistoryType
	}
	setString(m, "external_url", u.ExternalURL)
	setString(m, "external_id", u.ExternalID)
	setString(m, "youtube_title", u.YoutubeTitle)
	if u.YoutubeDuration != nil {
		m["youtube_duration"] = *u.YoutubeDuration
	}
	setString(m, "instagram_post_id", u.InstagramPostID)
	setString(m, "instagram_caption", u.InstagramCaption)
	setString(m, "icon_emoji", u.IconEmoji)
	setTime(m, "work_date", u.WorkDate)
	return m
}

func buildImages(in []HistoryImageInput) []ArtworkHistoryImage {
	out := make([]ArtworkHistoryImage, 0, len(in))
	for i, img := range in {
		order := i
		if img.OrderIndex != nil {
			order = *img.OrderIndex
		}
		out = append(out, ArtworkHistoryImage{
			ImageURL:   img.ImageURL,
			AltText:    img.AltText,
			Caption:    img.Caption,
			OrderIndex: order,
		})
	}
	return out
}
