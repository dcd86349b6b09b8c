package profile

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"gallery-api/internal/domain/errs"

	"gorm.io/gorm"
)

var ErrExhibitionNotFound = errs.NotFound("Exhibition not found")

type ExhibitionInput struct {
	TitleKo        string `json:"title_ko" validate:"required,max=200"`
	TitleEn        string `json:"title_en" validate:"max=200"`
	VenueKo        string `json:"venue_ko" validate:"max=200"`
	VenueEn        string `json:"venue_en" validate:"max=200"`
	Year           string `json:"year" validate:"max=10"`
	ExhibitionType string `json:"exhibition_type" validate:"omitempty,oneof=solo group fair"`
	DescriptionKo  string `json:"description_ko"`
	DescriptionEn  string `json:"description_en"`
	ImageURL       string `json:"image_url" validate:"max=500"`
	VideoURL       string `json:"video_url" validate:"max=500"`
	IsFeatured     bool   `json:"is_featured"`
}

type ExhibitionUpdate struct {
	TitleKo        *string `json:"title_ko" validate:"omitempty,max=200"`
	TitleEn        *string `json:"title_en" validate:"omitempty,max=200"`
	VenueKo        *string `json:"venue_ko" validate:"omitempty,max=200"`
	VenueEn        *string `json:"venue_en" validate:"omitempty,max=200"`
	Year           *string `json:"year" validate:"omitempty,max=10"`
	ExhibitionType *string `json:"exhibition_type" validate:"omitempty,oneof=solo group fair"`
	DescriptionKo  *string `json:"description_ko"`
	DescriptionEn  *string `json:"description_en"`
	ImageURL       *string `json:"image_url" validate:"omitempty,max=500"`
	VideoURL       *string `json:"video_url" validate:"omitempty,max=500"`
	IsFeatured     *bool   `json:"is_featured"`
	IsActive       *bool   `json:"is_active"`
	OrderIndex     *int    `json:"order_index"`
}

func currentYear() string {
	return strconv.Itoa(time.Now().Year())
}

// byYear orders career entries newest first, then by the user's ordering.
func byYear(db *gorm.DB) *gorm.DB {
	return db.Order("year DESC, order_index ASC, id ASC")
}

func ListExhibitions(db *gorm.DB, userID uint) ([]Exhibition, error) {
	list := []Exhibition{}
	err := byYear(db.Where("user_id = ? AND is_active = ?", userID, true)).Find(&list).Error
	return list, err
}

func AddExhibition(db *gorm.DB, userID uint, in ExhibitionInput) (*Exhibition, error) {
	in.TitleKo = strings.TrimSpace(in.TitleKo)
	if err := errs.Validate(in); err != nil {
		return nil, err
	}

	e := &Exhibition{
		UserID:         userID,
		TitleKo:        in.TitleKo,
		TitleEn:        firstNonEmpty(in.TitleEn, in.TitleKo),
		VenueKo:        strings.TrimSpace(in.VenueKo),
		VenueEn:        strings.TrimSpace(in.VenueEn),
		Year:           firstNonEmpty(in.Year, currentYear()),
		ExhibitionType: firstNonEmpty(in.ExhibitionType, "group"),
		DescriptionKo:  in.DescriptionKo,
		DescriptionEn:  in.DescriptionEn,
		ImageURL:       in.ImageURL,
		VideoURL:       in.VideoURL,
		IsFeatured:     in.IsFeatured,
		IsActive:       true,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		order, err := nextOrder(tx, &Exhibition{}, userID)
		if err != nil {
			return err
		}
		e.OrderIndex = order
		return tx.Create(e).Error
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func findExhibition(tx *gorm.DB, userID, id uint) (*Exhibition, error) {
	var e Exhibition
	if err := tx.Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExhibitionNotFound
		}
		return nil, err
	}
	return &e, nil
}

// UpdateExhibition returns the updated row and the media URLs it replaced.
func UpdateExhibition(db *gorm.DB, userID, id uint, upd ExhibitionUpdate) (*Exhibition, []string, error) {
	if err := errs.Validate(upd); err != nil {
		return nil, nil, err
	}
	if upd.TitleKo != nil && strings.TrimSpace(*upd.TitleKo) == "" {
		return nil, nil, errs.Invalid("title_ko must not be empty")
	}

	changes := map[string]any{}
	setText(changes, "title_ko", upd.TitleKo)
	setText(changes, "title_en", upd.TitleEn)
	setText(changes, "venue_ko", upd.VenueKo)
	setText(changes, "venue_en", upd.VenueEn)
	setText(changes, "year", upd.Year)
	setText(changes, "exhibition_type", upd.ExhibitionType)
	setText(changes, "description_ko", upd.DescriptionKo)
	setText(changes, "description_en", upd.DescriptionEn)
	setText(changes, "image_url", upd.ImageURL)
	setText(changes, "video_url", upd.VideoURL)
	setBool(changes, "is_featured", upd.IsFeatured)
	setBool(changes, "is_active", upd.IsActive)
	if upd.OrderIndex != nil {
		changes["order_index"] = *upd.OrderIndex
	}

	var (
		out      Exhibition
		replaced []string
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		e, err := findExhibition(tx, userID, id)
		if err != nil {
			return err
		}
		replaced = replacedURLs(
			[2]string{e.ImageURL, deref(upd.ImageURL, e.ImageURL)},
			[2]string{e.VideoURL, deref(upd.VideoURL, e.VideoURL)},
		)
		if len(changes) > 0 {
			if err := tx.Model(&Exhibition{}).Where("id = ?", e.ID).Updates(changes).Error; err != nil {
				return err
			}
		}
		return tx.First(&out, e.ID).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &out, replaced, nil
}

// DeleteExhibition hides the entry and returns its media URLs for cleanup.
func DeleteExhibition(db *gorm.DB, userID, id uint) ([]string, error) {
	var urls []string
	err := db.Transaction(func(tx *gorm.DB) error {
		e, err := findExhibition(tx, userID, id)
		if err != nil {
			return err
		}
		urls = replacedURLs([2]string{e.ImageURL, ""}, [2]string{e.VideoURL, ""})
		return tx.Model(&Exhibition{}).Where("id = ?", e.ID).Update("is_active", false).Error
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}
