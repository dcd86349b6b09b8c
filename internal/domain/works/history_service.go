package works

import (
	"errors"
	"time"

	"gallery-api/internal/domain/access"
	"gallery-api/internal/domain/errs"
	"gallery-api/internal/domain/media"

	"gorm.io/gorm"
)

var ErrHistoryNotFound = errs.NotFound("History not found")

func youtubeID(urls ...string) string {
	for _, u := range urls {
		if id := media.ExtractYouTubeID(u); id != "" {
			return id
		}
	}
	return ""
}

// CreateHistory appends a history entry to an artwork the caller owns.
func CreateHistory(db *gorm.DB, artworkID, ownerID uint, in HistoryInput) (*ArtworkHistory, error) {
	if err := errs.Validate(in); err != nil {
		return nil, err
	}

	h := &ArtworkHistory{
		ArtworkID:        artworkID,
		Title:            in.Title,
		Content:          in.Content,
		MediaURL:         in.MediaURL,
		ThumbnailURL:     in.ThumbnailURL,
		MediaType:        in.MediaType,
		HistoryType:      in.HistoryType,
		ExternalURL:      in.ExternalURL,
		ExternalID:       in.ExternalID,
		YoutubeTitle:     in.YoutubeTitle,
		YoutubeDuration:  in.YoutubeDuration,
		InstagramPostID:  in.InstagramPostID,
		InstagramCaption: in.InstagramCaption,
		IconEmoji:        in.IconEmoji,
		WorkDate:         in.WorkDate,
		Images:           buildImages(in.Images),
	}
	if id := youtubeID(in.MediaURL, in.ExternalURL); id != "" {
		h.YoutubeVideoID = id
		if h.HistoryType == "" {
			h.HistoryType = HistoryYouTube
		}
		if h.MediaType == "" {
			h.MediaType = "youtube"
		}
	}
	if h.HistoryType == "" {
		h.HistoryType = HistoryManual
	}
	if h.MediaType == "" {
		h.MediaType = "image"
	}
	if h.WorkDate == nil {
		now := time.Now()
		h.WorkDate = &now
	}
	if h.HistoryType != HistoryManual {
		now := time.Now()
		h.ImportedAt = &now
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadOwned(tx, artworkID, ownerID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&ArtworkHistory{}).Where("artwork_id = ?", artworkID).Count(&count).Error; err != nil {
			return err
		}
		h.OrderIndex = int(count)

		if err := tx.Create(h).Error; err != nil {
			return err
		}
		return tx.Model(&Artwork{}).Where("id = ?", artworkID).
			UpdateColumn("history_count", gorm.Expr("history_count + ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC, id ASC")
}

// ListHistories returns an artwork's timeline, if viewer can see the artwork.
func ListHistories(db *gorm.DB, artworkID uint, viewer access.Viewer) ([]ArtworkHistory, error) {
	if _, err := GetArtwork(db, artworkID, viewer); err != nil {
		return nil, err
	}

	histories := []ArtworkHistory{}
	err := db.Preload("Images", orderedImages).
		Where("artwork_id = ?", artworkID).
		Order("order_index ASC, created_at ASC, id ASC").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}

func GetHistory(db *gorm.DB, artworkID, historyID uint, viewer access.Viewer) (*ArtworkHistory, error) {
	if _, err := GetArtwork(db, artworkID, viewer); err != nil {
		return nil, err
	}
	return findHistory(db, artworkID, historyID)
}

func findHistory(tx *gorm.DB, artworkID, historyID uint) (*ArtworkHistory, error) {
	var h ArtworkHistory
	err := tx.Preload("Images", orderedImages).
		Where("id = ? AND artwork_id = ?", historyID, artworkID).
		First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHistoryNotFound
		}
		return nil, err
	}
	return &h, nil
}

// UpdateHistory applies upd and returns the refreshed entry along with the
// file URLs that are no longer referenced.
func UpdateHistory(db *gorm.DB, artworkID, historyID, ownerID uint, upd HistoryUpdate) (*ArtworkHistory, []string, error) {
	if err := upd.validate(); err != nil {
		return nil, nil, err
	}

	var (
		out      *ArtworkHistory
		orphaned []string
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadOwned(tx, artworkID, ownerID); err != nil {
			return err
		}
		h, err := findHistory(tx, artworkID, historyID)
		if err != nil {
			return err
		}

		changes := upd.changes()
		if upd.MediaURL != nil && *upd.MediaURL != h.MediaURL {
			changes["youtube_video_id"] = media.ExtractYouTubeID(*upd.MediaURL)
			if old := h.storedMediaURL(); old != "" {
				orphaned = append(orphaned, old)
			}
		}
		if upd.ThumbnailURL != nil && *upd.ThumbnailURL != h.ThumbnailURL && h.ThumbnailURL != "" {
			orphaned = append(orphaned, h.ThumbnailURL)
		}
		if len(changes) > 0 {
			if err := tx.Model(&ArtworkHistory{}).Where("id = ?", h.ID).Updates(changes).Error; err != nil {
				return err
			}
		}

		if upd.Images != nil {
			kept := make(map[string]bool, len(*upd.Images))
			for _, img := range *upd.Images {
				kept[img.ImageURL] = true
			}
			for _, img := range h.Images {
				if !kept[img.ImageURL] {
					orphaned = append(orphaned, img.ImageURL)
				}
			}

			if err := tx.Where("history_id = ?", h.ID).Delete(&ArtworkHistoryImage{}).Error; err != nil {
				return err
			}
			images := buildImages(*upd.Images)
			for i := range images {
				images[i].HistoryID = h.ID
			}
			if len(images) > 0 {
				if err := tx.Create(&images).Error; err != nil {
					return err
				}
			}
		}

		out, err = findHistory(tx, artworkID, historyID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return out, orphaned, nil
}

// DeleteHistory removes one history entry and its images, returning their
// file URLs.
func DeleteHistory(db *gorm.DB, artworkID, historyID, ownerID uint) ([]string, error) {
	var urls []string
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadOwned(tx, artworkID, ownerID); err != nil {
			return err
		}
		h, err := findHistory(tx, artworkID, historyID)
		if err != nil {
			return err
		}
		urls = h.FileURLs()

		if err := tx.Where("history_id = ?", h.ID).Delete(&ArtworkHistoryImage{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&ArtworkHistory{}, h.ID).Error; err != nil {
			return err
		}
		return tx.Model(&Artwork{}).Where("id = ? AND history_count > 0", artworkID).
			UpdateColumn("history_count", gorm.Expr("history_count - ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}

// ReorderHistories sets order_index from the position of each id in ids.
func ReorderHistories(db *gorm.DB, artworkID, ownerID uint, ids []uint) error {
	if len(ids) == 0 {
		return errs.Invalid("history_ids must not be empty")
	}
	if hasDuplicates(ids) {
		return errs.Invalid("history_ids must not repeat")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadOwned(tx, artworkID, ownerID); err != nil {
			return err
		}

		var found int64
		if err := tx.Model(&ArtworkHistory{}).Where("id IN ? AND artwork_id = ?", ids, artworkID).Count(&found).Error; err != nil {
			return err
		}
		if int(found) != len(ids) {
			return errs.Invalid("history_ids must all belong to this artwork")
		}
		for i, id := range ids {
			if err := tx.Model(&ArtworkHistory{}).Where("id = ?", id).UpdateColumn("order_index", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
