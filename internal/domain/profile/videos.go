package profile

import (
	"errors"
	"strings"

	"gallery-api/internal/domain/errs"
	"gallery-api/internal/domain/media"

	"gorm.io/gorm"
)

var (
	ErrInvalidYouTube = errs.Invalid("Not a valid YouTube URL")
	ErrVideoNotFound  = errs.NotFound("Video not found")
)

type VideoInput struct {
	VideoURL      string `json:"video_url" validate:"required,max=500"`
	TitleKo       string `json:"title_ko" validate:"max=200"`
	TitleEn       string `json:"title_en" validate:"max=200"`
	DescriptionKo string `json:"description_ko"`
	DescriptionEn string `json:"description_en"`
	IsFeatured    bool   `json:"is_featured"`
}

type VideoUpdate struct {
	VideoURL      *string `json:"video_url" validate:"omitempty,max=500"`
	TitleKo       *string `json:"title_ko" validate:"omitempty,max=200"`
	TitleEn       *string `json:"title_en" validate:"omitempty,max=200"`
	DescriptionKo *string `json:"description_ko"`
	DescriptionEn *string `json:"description_en"`
	IsFeatured    *bool   `json:"is_featured"`
	IsActive      *bool   `json:"is_active"`
	OrderIndex    *int    `json:"order_index"`
}

func ListVideos(db *gorm.DB, userID uint) ([]ArtistVideo, error) {
	videos := []ArtistVideo{}
	err := db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("order_index ASC, id ASC").
		Find(&videos).Error
	return videos, err
}

// AddVideo stores a YouTube video; anything that is not a YouTube link is
// rejected.
func AddVideo(db *gorm.DB, userID uint, in VideoInput) (*ArtistVideo, error) {
	if err := errs.Validate(in); err != nil {
		return nil, err
	}
	id := media.ExtractYouTubeID(in.VideoURL)
	if id == "" {
		return nil, ErrInvalidYouTube
	}

	v := &ArtistVideo{
		UserID:        userID,
		VideoURL:      strings.TrimSpace(in.VideoURL),
		VideoID:       id,
		TitleKo:       in.TitleKo,
		TitleEn:       in.TitleEn,
		DescriptionKo: in.DescriptionKo,
		DescriptionEn: in.DescriptionEn,
		ThumbnailURL:  "https://img.youtube.com/vi/" + id + "/hqdefault.jpg",
		IsFeatured:    in.IsFeatured,
		IsActive:      true,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		order, err := nextOrder(tx, &ArtistVideo{}, userID)
		if err != nil {
			return err
		}
		v.OrderIndex = order
		return tx.Create(v).Error
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func findVideo(tx *gorm.DB, userID, id uint) (*ArtistVideo, error) {
	var v ArtistVideo
	if err := tx.Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return &v, nil
}

func UpdateVideo(db *gorm.DB, userID, id uint, upd VideoUpdate) (*ArtistVideo, error) {
	if err := errs.Validate(upd); err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if upd.VideoURL != nil {
		vid := media.ExtractYouTubeID(*upd.VideoURL)
		if vid == "" {
			return nil, ErrInvalidYouTube
		}
		changes["video_url"] = strings.TrimSpace(*upd.VideoURL)
		changes["video_id"] = vid
		changes["thumbnail_url"] = "https://img.youtube.com/vi/" + vid + "/hqdefault.jpg"
	}
	setText(changes, "title_ko", upd.TitleKo)
	setText(changes, "title_en", upd.TitleEn)
	setText(changes, "description_ko", upd.DescriptionKo)
	setText(changes, "description_en", upd.DescriptionEn)
	setBool(changes, "is_featured", upd.IsFeatured)
	setBool(changes, "is_active", upd.IsActive)
	if upd.OrderIndex != nil {
		changes["order_index"] = *upd.OrderIndex
	}

	var out ArtistVideo
	err := db.Transaction(func(tx *gorm.DB) error {
		v, err := findVideo(tx, userID, id)
		if err != nil {
			return err
		}
		if len(changes) > 0 {
			if err := tx.Model(&ArtistVideo{}).Where("id = ?", v.ID).Updates(changes).Error; err != nil {
				return err
			}
		}
		return tx.First(&out, v.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteVideo hides the video; the row is kept.
func DeleteVideo(db *gorm.DB, userID, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		v, err := findVideo(tx, userID, id)
		if err != nil {
			return err
		}
		return tx.Model(&ArtistVideo{}).Where("id = ?", v.ID).Update("is_active", false).Error
	})
}

// nextOrder is the order_index for a new row of model owned by userID.
func nextOrder(tx *gorm.DB, model any, userID uint) (int, error) {
	var n int64
	if err := tx.Model(model).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}
