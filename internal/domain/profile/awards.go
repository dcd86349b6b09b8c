package profile

import (
	"errors"
	"strings"

	"gallery-api/internal/domain/errs"

	"gorm.io/gorm"
)

var ErrAwardNotFound = errs.NotFound("Award not found")

type AwardInput struct {
	TitleKo        string `json:"title_ko" validate:"required,max=200"`
	TitleEn        string `json:"title_en" validate:"max=200"`
	OrganizationKo string `json:"organization_ko" validate:"max=200"`
	OrganizationEn string `json:"organization_en" validate:"max=200"`
	Year           string `json:"year" validate:"max=10"`
	AwardType      string `json:"award_type" validate:"max=50"`
	DescriptionKo  string `json:"description_ko"`
	DescriptionEn  string `json:"description_en"`
	ImageURL       string `json:"image_url" validate:"max=500"`
	VideoURL       string `json:"video_url" validate:"max=500"`
	IsFeatured     bool   `json:"is_featured"`
}

type AwardUpdate struct {
	TitleKo        *string `json:"title_ko" validate:"omitempty,max=200"`
	TitleEn        *string `json:"title_en" validate:"omitempty,max=200"`
	OrganizationKo *string `json:"organization_ko" validate:"omitempty,max=200"`
	OrganizationEn *string `json:"organization_en" validate:"omitempty,max=200"`
	Year           *string `json:"year" validate:"omitempty,max=10"`
	AwardType      *string `json:"award_type" validate:"omitempty,max=50"`
	DescriptionKo  *string `json:"description_ko"`
	DescriptionEn  *string `json:"description_en"`
	ImageURL       *string `json:"image_url" validate:"omitempty,max=500"`
	VideoURL       *string `json:"video_url" validate:"omitempty,max=500"`
	IsFeatured     *bool   `json:"is_featured"`
	IsActive       *bool   `json:"is_active"`
	OrderIndex     *int    `json:"order_index"`
}

func ListAwards(db *gorm.DB, userID uint) ([]Award, error) {
	list := []Award{}
	err := byYear(db.Where("user_id = ? AND is_active = ?", userID, true)).Find(&list).Error
	return list, err
}

func AddAward(db *gorm.DB, userID uint, in AwardInput) (*Award, error) {
	in.TitleKo = strings.TrimSpace(in.TitleKo)
	if err := errs.Validate(in); err != nil {
		return nil, err
	}

	a := &Award{
		UserID:         userID,
		TitleKo:        in.TitleKo,
		TitleEn:        firstNonEmpty(in.TitleEn, in.TitleKo),
		OrganizationKo: strings.TrimSpace(in.OrganizationKo),
		OrganizationEn: strings.TrimSpace(in.OrganizationEn),
		Year:           firstNonEmpty(in.Year, currentYear()),
		AwardType:      firstNonEmpty(in.AwardType, "recognition"),
		DescriptionKo:  in.DescriptionKo,
		DescriptionEn:  in.DescriptionEn,
		ImageURL:       in.ImageURL,
		VideoURL:       in.VideoURL,
		IsFeatured:     in.IsFeatured,
		IsActive:       true,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		order, err := nextOrder(tx, &Award{}, userID)
		if err != nil {
			return err
		}
		a.OrderIndex = order
		return tx.Create(a).Error
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func findAward(tx *gorm.DB, userID, id uint) (*Award, error) {
	var a Award
	if err := tx.Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAwardNotFound
		}
		return nil, err
	}
	return &a, nil
}

func UpdateAward(db *gorm.DB, userID, id uint, upd AwardUpdate) (*Award, []string, error) {
	if err := errs.Validate(upd); err != nil {
		return nil, nil, err
	}
	if upd.TitleKo != nil && strings.TrimSpace(*upd.TitleKo) == "" {
		return nil, nil, errs.Invalid("title_ko must not be empty")
	}

	changes := map[string]any{}
	setText(changes, "title_ko", upd.TitleKo)
	setText(changes, "title_en", upd.TitleEn)
	setText(changes, "organization_ko", upd.OrganizationKo)
	setText(changes, "organization_en", upd.OrganizationEn)
	setText(changes, "year", upd.Year)
	setText(changes, "award_type", upd.AwardType)
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
		out      Award
		replaced []string
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		a, err := findAward(tx, userID, id)
		if err != nil {
			return err
		}
		replaced = replacedURLs(
			[2]string{a.ImageURL, deref(upd.ImageURL, a.ImageURL)},
			[2]string{a.VideoURL, deref(upd.VideoURL, a.VideoURL)},
		)
		if len(changes) > 0 {
			if err := tx.Model(&Award{}).Where("id = ?", a.ID).Updates(changes).Error; err != nil {
				return err
			}
		}
		return tx.First(&out, a.ID).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &out, replaced, nil
}

func DeleteAward(db *gorm.DB, userID, id uint) ([]string, error) {
	var urls []string
	err := db.Transaction(func(tx *gorm.DB) error {
		a, err := findAward(tx, userID, id)
		if err != nil {
			return err
		}
		urls = replacedURLs([2]string{a.ImageURL, ""}, [2]string{a.VideoURL, ""})
		return tx.Model(&Award{}).Where("id = ?", a.ID).Update("is_active", false).Error
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}
