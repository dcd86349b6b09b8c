package profile

import (
	"errors"
	"regexp"
	"strings"

	"gallery-api/internal/domain/errs"
	"gallery-api/internal/domain/users"

	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type BasicUpdate struct {
	Name                  *string `json:"name" validate:"omitempty,max=100"`
	Slug                  *string `json:"slug" validate:"omitempty,max=100"`
	Bio                   *string `json:"bio"`
	ThumbnailURL          *string `json:"thumbnail_url" validate:"omitempty,max=500"`
	GalleryTitle          *string `json:"gallery_title" validate:"omitempty,max=200"`
	GalleryDescription    *string `json:"gallery_description"`
	IsPublicGallery       *bool   `json:"is_public_gallery"`
	ShowWorkInProgress    *bool   `json:"show_work_in_progress"`
	DefaultArtworkPrivacy *string `json:"default_artwork_privacy" validate:"omitempty,oneof=public private unlisted"`
	InstagramUsername     *string `json:"instagram_username" validate:"omitempty,max=100"`
	YoutubeChannelID      *string `json:"youtube_channel_id" validate:"omitempty,max=100"`
	FacebookPageID        *string `json:"facebook_page_id" validate:"omitempty,max=100"`
	CustomDomain          *string `json:"custom_domain" validate:"omitempty,max=255"`
	EmailNotifications    *bool   `json:"email_notifications"`
	MarketingEmails       *bool   `json:"marketing_emails"`
	Timezone              *string `json:"timezone" validate:"omitempty,max=50"`
	Language              *string `json:"language" validate:"omitempty,max=10"`
}

type AboutUpdate struct {
	AboutText  *string `json:"about_text"`
	AboutImage *string `json:"about_image" validate:"omitempty,max=500"`
	AboutVideo *string `json:"about_video" validate:"omitempty,max=500"`
}

type StudioUpdate struct {
	StudioDescription *string `json:"studio_description"`
	StudioImage       *string `json:"studio_image" validate:"omitempty,max=500"`
	ProcessVideo      *string `json:"process_video" validate:"omitempty,max=500"`
}

var (
	ErrInvalidSlug = errs.Invalid("Slug may only contain lowercase letters, numbers and single dashes")
	ErrEmptyName   = errs.Invalid("name must not be empty")
)

// UpdateBasic edits the account's public identity. A new slug must be free.
func UpdateBasic(db *gorm.DB, u *users.User, upd BasicUpdate) (*users.User, error) {
	if err := errs.Validate(upd); err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		changes["name"] = name
	}
	if upd.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*upd.Slug))
		if !slugPattern.MatchString(slug) {
			return nil, ErrInvalidSlug
		}
		if slug != u.Slug {
			changes["slug"] = slug
		}
	}
	setText(changes, "bio", upd.Bio)
	setText(changes, "thumbnail_url", upd.ThumbnailURL)
	setText(changes, "gallery_title", upd.GalleryTitle)
	setText(changes, "gallery_description", upd.GalleryDescription)
	setBool(changes, "is_public_gallery", upd.IsPublicGallery)
	setBool(changes, "show_work_in_progress", upd.ShowWorkInProgress)
	setText(changes, "default_artwork_privacy", upd.DefaultArtworkPrivacy)
	setText(changes, "instagram_username", upd.InstagramUsername)
	setText(changes, "youtube_channel_id", upd.YoutubeChannelID)
	setText(changes, "facebook_page_id", upd.FacebookPageID)
	if upd.CustomDomain != nil {
		if d := strings.TrimSpace(*upd.CustomDomain); d != "" {
			changes["custom_domain"] = d
		} else {
			changes["custom_domain"] = nil
		}
	}
	setBool(changes, "email_notifications", upd.EmailNotifications)
	setBool(changes, "marketing_emails", upd.MarketingEmails)
	setText(changes, "timezone", upd.Timezone)
	setText(changes, "language", upd.Language)

	return applyUserChanges(db, u, changes)
}

// UpdateAbout edits the about section and returns the file URLs it replaced.
func UpdateAbout(db *gorm.DB, u *users.User, upd AboutUpdate) (*users.User, []string, error) {
	if err := errs.Validate(upd); err != nil {
		return nil, nil, err
	}
	changes := map[string]any{}
	setText(changes, "about_text", upd.AboutText)
	setText(changes, "about_image", upd.AboutImage)
	setText(changes, "about_video", upd.AboutVideo)

	replaced := replacedURLs(
		[2]string{u.AboutImage, deref(upd.AboutImage, u.AboutImage)},
		[2]string{u.AboutVideo, deref(upd.AboutVideo, u.AboutVideo)},
	)
	out, err := applyUserChanges(db, u, changes)
	if err != nil {
		return nil, nil, err
	}
	return out, replaced, nil
}

// UpdateStudio edits the studio section and returns the file URLs it replaced.
func UpdateStudio(db *gorm.DB, u *users.User, upd StudioUpdate) (*users.User, []string, error) {
	if err := errs.Validate(upd); err != nil {
		return nil, nil, err
	}
	changes := map[string]any{}
	setText(changes, "studio_description", upd.StudioDescription)
	setText(changes, "studio_image", upd.StudioImage)
	setText(changes, "process_video", upd.ProcessVideo)

	replaced := replacedURLs(
		[2]string{u.StudioImage, deref(upd.StudioImage, u.StudioImage)},
		[2]string{u.ProcessVideo, deref(upd.ProcessVideo, u.ProcessVideo)},
	)
	out, err := applyUserChanges(db, u, changes)
	if err != nil {
		return nil, nil, err
	}
	return out, replaced, nil
}

func applyUserChanges(db *gorm.DB, u *users.User, changes map[string]any) (*users.User, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if slug, ok := changes["slug"].(string); ok {
			if err := users.ChangeSlug(tx, u.ID, u.Slug, slug); err != nil {
				return err
			}
			delete(changes, "slug")
		}
		if len(changes) == 0 {
			return nil
		}
		err := tx.Model(&users.User{}).Where("id = ?", u.ID).Updates(changes).Error
		if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
			return users.ErrSlugTaken
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return users.GetUserByID(db, u.ID)
}

func setText(m map[string]any, col string, v *string) {
	if v != nil {
		m[col] = strings.TrimSpace(*v)
	}
}

func setBool(m map[string]any, col string, v *bool) {
	if v != nil {
		m[col] = *v
	}
}

func deref(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return strings.TrimSpace(*v)
}

// replacedURLs picks the old values of (old, new) pairs that changed.
func replacedURLs(pairs ...[2]string) []string {
	var out []string
	for _, p := range pairs {
		if p[0] != "" && p[0] != p[1] {
			out = append(out, p[0])
		}
	}
	return out
}
