package users

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug generates a URL-safe base slug.
// Example: "Ji Park" -> "ji-park"
func MakeSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.Join(strings.Fields(base), "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "artist"
	}
	return base
}

// GenerateUniqueSlug returns base, base-1, base-2, ... whichever is free first.
func GenerateUniqueSlug(db *gorm.DB, name string) (string, error) {
	base := MakeSlug(name)
	candidate := base
	for i := 1; ; i++ {
		taken, err := SlugTaken(db, candidate, 0)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// SlugTaken reports whether another user (not exceptUserID) holds slug, as
// their current slug or a retired one.
func SlugTaken(db *gorm.DB, slug string, exceptUserID uint) (bool, error) {
	current := db.Model(&User{}).Where("slug = ?", slug)
	retired := db.Model(&RetiredSlug{}).Where("slug = ?", slug)
	if exceptUserID != 0 {
		current = current.Where("id <> ?", exceptUserID)
		retired = retired.Where("user_id <> ?", exceptUserID)
	}

	var n int64
	if err := current.Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	if err := retired.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ChangeSlug moves userID from oldSlug to newSlug inside tx. The old slug is
// kept as retired; taking back one of your own retired slugs frees it.
func ChangeSlug(tx *gorm.DB, userID uint, oldSlug, newSlug string) error {
	taken, err := SlugTaken(tx, newSlug, userID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	if err := tx.Where("user_id = ? AND slug = ?", userID, newSlug).Delete(&RetiredSlug{}).Error; err != nil {
		return err
	}
	if oldSlug != "" {
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&RetiredSlug{UserID: userID, Slug: oldSlug}).Error
		if err != nil {
			return err
		}
	}
	err = tx.Model(&User{}).Where("id = ?", userID).Update("slug", newSlug).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlugTaken
	}
	return err
}

// StorageSlugs lists every slug whose folders hold u's files: the current
// one first, then retired ones.
func StorageSlugs(db *gorm.DB, u *User) ([]string, error) {
	var retired []string
	err := db.Model(&RetiredSlug{}).Where("user_id = ?", u.ID).Order("id ASC").Pluck("slug", &retired).Error
	if err != nil {
		return []string{u.Slug}, err
	}
	return append([]string{u.Slug}, retired...), nil
}
