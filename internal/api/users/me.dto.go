package users

import "time"

/* ---------- USER ---------- */

// UserDTO is the account as returned to its owner.
type UserDTO struct {
	ID              uint      `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Role            string    `json:"role"`
	AuthProvider    string    `json:"auth_provider"`
	CustomDomain    *string   `json:"custom_domain"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	Bio             string    `json:"bio"`
	GalleryTitle    string    `json:"gallery_title"`
	IsPublicGallery bool      `json:"is_public_gallery"`
	IsVerified      bool      `json:"is_verified"`
	TotalArtworks   int       `json:"total_artworks"`
	TotalViews      int       `json:"total_views"`
	CreatedAt       time.Time `json:"created_at"`
}

// LoginUserDTO is the short form embedded in token responses.
type LoginUserDTO struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
}

/* ---------- PROFILE ---------- */

// ProfileDTO carries every editable profile field of the owner.
type ProfileDTO struct {
	UserDTO

	GalleryDescription    string `json:"gallery_description"`
	ShowWorkInProgress    bool   `json:"show_work_in_progress"`
	DefaultArtworkPrivacy string `json:"default_artwork_privacy"`

	InstagramUsername string `json:"instagram_username"`
	YoutubeChannelID  string `json:"youtube_channel_id"`
	FacebookPageID    string `json:"facebook_page_id"`

	EmailNotifications bool   `json:"email_notifications"`
	MarketingEmails    bool   `json:"marketing_emails"`
	Timezone           string `json:"timezone"`
	Language           string `json:"language"`

	AboutText  string `json:"about_text"`
	AboutImage string `json:"about_image"`
	AboutVideo string `json:"about_video"`

	StudioDescription string `json:"studio_description"`
	StudioImage       string `json:"studio_image"`
	ProcessVideo      string `json:"process_video"`
}

/* ---------- PUBLIC ---------- */

// PublicUserDTO is what visitors of a gallery may see.
type PublicUserDTO struct {
	Name               string `json:"name"`
	Slug               string `json:"slug"`
	Bio                string `json:"bio"`
	ThumbnailURL       string `json:"thumbnail_url"`
	GalleryTitle       string `json:"gallery_title"`
	GalleryDescription string `json:"gallery_description"`
	TotalArtworks      int    `json:"total_artworks"`
	TotalViews         int    `json:"total_views"`

	AboutText         string `json:"about_text"`
	AboutImage        string `json:"about_image"`
	AboutVideo        string `json:"about_video"`
	StudioDescription string `json:"studio_description"`
	StudioImage       string `json:"studio_image"`
	ProcessVideo      string `json:"process_video"`
}

// ArtistDTO is the owner block attached to artworks and posts.
type ArtistDTO struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Bio          string `json:"bio"`
	ThumbnailURL string `json:"thumbnail_url"`
}
