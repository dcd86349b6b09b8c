package works

import (
	"errors"
	"strings"
	"time"

	"gallery-api/internal/domain/access"
	"gallery-api/internal/domain/errs"
	"gallery-api/internal/domain/textsearch"
	"gallery-api/internal/domain/users"

	"gorm.io/gorm"
)

var (
	ErrArtworkNotFound = errs.NotFound("Artwork not found")
	ErrNotOwner        = errs.Forbidden("You do not have permission to modify this artwork")
)

// CreateArtwork appends a new artwork to the end of owner's gallery.
func CreateArtwork(db *gorm.DB, owner *users.User, in ArtworkInput) (*Artwork, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := errs.Validate(in); err != nil {
		return nil, err
	}

	a := &Artwork{
		UserID:              owner.ID,
		Title:               in.Title,
		Description:         in.Description,
		ArtistName:          strings.TrimSpace(in.ArtistName),
		ThumbnailURL:        in.ThumbnailURL,
		WorkInProgressURL:   in.WorkInProgressURL,
		Medium:              strings.TrimSpace(in.Medium),
		Size:                strings.TrimSpace(in.Size),
		Year:                strings.TrimSpace(in.Year),
		Status:              in.Status,
		Privacy:             in.Privacy,
		StartedAt:           in.StartedAt,
		EstimatedCompletion: in.EstimatedCompletion,
	}
	if a.ArtistName == "" {
		a.ArtistName = owner.Name
	}
	if a.Status == "" {
		a.Status = StatusWorkInProgress
	}
	if a.Status == StatusCompleted {
		now := time.Now()
		a.CompletedAt = &now
	}
	if a.Privacy == "" {
		a.Privacy = access.Privacy(owner.DefaultArtworkPrivacy)
	}
	if !a.Privacy.Valid() {
		a.Privacy = access.PrivacyPublic
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Artwork{}).Where("user_id = ?", owner.ID).Count(&count).Error; err != nil {
			return err
		}
		a.DisplayOrder = int(count)

		if err := tx.Create(a).Error; err != nil {
			return err
		}
		return tx.Model(&users.User{}).Where("id = ?", owner.ID).
			UpdateColumn("total_artworks", gorm.Expr("total_artworks + ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetArtwork loads an artwork with its owner. Artworks the viewer may not
// see are reported as missing.
func GetArtwork(db *gorm.DB, id uint, viewer access.Viewer) (*Artwork, error) {
	var a Artwork
	if err := db.Preload("User").First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, err
	}
	if !access.CanView(viewer, a.UserID, a.Privacy) {
		return nil, ErrArtworkNotFound
	}
	return &a, nil
}

func loadOwned(tx *gorm.DB, id, ownerID uint) (*Artwork, error) {
	var a Artwork
	if err := tx.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, err
	}
	if a.UserID != ownerID {
		return nil, ErrNotOwner
	}
	return &a, nil
}

func UpdateArtwork(db *gorm.DB, id, ownerID uint, upd ArtworkUpdate) (*Artwork, error) {
	if err := upd.validate(); err != nil {
		return nil, err
	}

	var out *Artwork
	err := db.Transaction(func(tx *gorm.DB) error {
		a, err := loadOwned(tx, id, ownerID)
		if err != nil {
			return err
		}

		changes := upd.changes()
		// completed_at is stamped once, on the first move to completed.
		if upd.Status != nil && *upd.Status == StatusCompleted && a.CompletedAt == nil && upd.CompletedAt == nil {
			changes["completed_at"] = time.Now()
		}
		if len(changes) > 0 {
			if err := tx.Model(&Artwork{}).Where("id = ?", a.ID).Updates(changes).Error; err != nil {
				return err
			}
		}

		out = &Artwork{}
		return tx.Preload("User").First(out, a.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteArtwork removes the artwork with its histories and history images,
// returning the file URLs they referenced.
func DeleteArtwork(db *gorm.DB, id, ownerID uint) ([]string, error) {
	var urls []string
	err := db.Transaction(func(tx *gorm.DB) error {
		a, err := loadOwned(tx, id, ownerID)
		if err != nil {
			return err
		}
		urls = a.FileURLs()

		var histories []ArtworkHistory
		if err := tx.Preload("Images").Where("artwork_id = ?", a.ID).Find(&histories).Error; err != nil {
			return err
		}
		ids := make([]uint, 0, len(histories))
		for i := range histories {
			ids = append(ids, histories[i].ID)
			urls = append(urls, histories[i].FileURLs()...)
		}

		if len(ids) > 0 {
			if err := tx.Where("history_id IN ?", ids).Delete(&ArtworkHistoryImage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", ids).Delete(&ArtworkHistory{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(a).Error; err != nil {
			return err
		}
		return tx.Model(&users.User{}).Where("id = ? AND total_artworks > 0", ownerID).
			UpdateColumn("total_artworks", gorm.Expr("total_artworks - ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}

// visibleTo scopes an artwork query to what viewer may list from ownerID.
func visibleTo(db *gorm.DB, ownerID uint, viewer access.Viewer, requested access.Privacy) *gorm.DB {
	q := db.Model(&Artwork{}).Where("user_id = ?", ownerID)
	if p := access.ListPrivacy(viewer, ownerID, requested); p != "" {
		q = q.Where("privacy = ?", p)
	}
	return q
}

func ListUserArtworks(db *gorm.DB, ownerID uint, viewer access.Viewer, f ListFilter) (*Page, error) {
	f.normalize()

	q := visibleTo(db, ownerID, viewer, f.Privacy)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if y := strings.TrimSpace(f.Year); y != "" {
		q = q.Where("year = ?", y)
	}
	if m := strings.TrimSpace(f.Medium); m != "" {
		q = textsearch.Where(q, m, "medium")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q = textsearch.Where(q, s, "title", "description")
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var items []Artwork
	err := q.Session(&gorm.Session{}).
		Order(f.orderClause()).
		Offset((f.Page - 1) * f.Size).
		Limit(f.Size).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return newPage(items, total, f.Page, f.Size), nil
}

// ToggleLike bumps the like counter and returns the new value. Likes are not
// deduplicated per viewer.
func ToggleLike(db *gorm.DB, id uint, viewer access.Viewer) (int, error) {
	a, err := GetArtwork(db, id, viewer)
	if err != nil {
		return 0, err
	}
	if err := db.Model(&Artwork{}).Where("id = ?", a.ID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error; err != nil {
		return 0, err
	}

	var count int
	if err := db.Model(&Artwork{}).Where("id = ?", a.ID).Pluck("like_count", &count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementViewCount records a view by someone other than the owner, on both
// the artwork and the owner's total.
func IncrementViewCount(db *gorm.DB, a *Artwork, viewer access.Viewer) error {
	if viewer.Owns(a.UserID) {
		return nil
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Artwork{}).Where("id = ?", a.ID).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&users.User{}).Where("id = ?", a.UserID).
			UpdateColumn("total_views", gorm.Expr("total_views + ?", 1)).Error
	})
	if err != nil {
		return err
	}
	a.ViewCount++
	return nil
}

type Adjacent struct {
	Previous *Artwork `json:"previous"`
	Next     *Artwork `json:"next"`
}

// AdjacentArtworks finds the neighbours of an artwork in its owner's gallery
// order, limited to what viewer can see.
func AdjacentArtworks(db *gorm.DB, id uint, viewer access.Viewer) (*Adjacent, error) {
	a, err := GetArtwork(db, id, viewer)
	if err != nil {
		return nil, err
	}

	out := &Adjacent{}

	var prev []Artwork
	err = visibleTo(db, a.UserID, viewer, "").
		Where("display_order < ? OR (display_order = ? AND id < ?)", a.DisplayOrder, a.DisplayOrder, a.ID).
		Order("display_order DESC, id DESC").
		Limit(1).
		Find(&prev).Error
	if err != nil {
		return nil, err
	}
	if len(prev) == 1 {
		out.Previous = &prev[0]
	}

	var next []Artwork
	err = visibleTo(db, a.UserID, viewer, "").
		Where("display_order > ? OR (display_order = ? AND id > ?)", a.DisplayOrder, a.DisplayOrder, a.ID).
		Order("display_order ASC, id ASC").
		Limit(1).
		Find(&next).Error
	if err != nil {
		return nil, err
	}
	if len(next) == 1 {
		out.Next = &next[0]
	}
	return out, nil
}

// ReorderArtworks sets display_order from the position of each id. Every id
// must belong to ownerID.
func ReorderArtworks(db *gorm.DB, ownerID uint, ids []uint) error {
	if len(ids) == 0 {
		return errs.Invalid("artwork_ids must not be empty")
	}
	if hasDuplicates(ids) {
		return errs.Invalid("artwork_ids must not repeat")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var owned int64
		if err := tx.Model(&Artwork{}).Where("id IN ? AND user_id = ?", ids, ownerID).Count(&owned).Error; err != nil {
			return err
		}
		if int(owned) != len(ids) {
			return ErrNotOwner
		}
		for i, id := range ids {
			if err := tx.Model(&Artwork{}).Where("id = ?", id).UpdateColumn("display_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func hasDuplicates(ids []uint) bool {
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
