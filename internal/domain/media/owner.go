package media

import (
	"log/slog"

	"gallery-api/internal/domain/users"

	"gorm.io/gorm"
)

// Owner lists the slugs whose folders hold one user's files.
type Owner []string

// OwnerOf resolves u's current and retired slugs. When the retired slugs
// cannot be read it falls back to the current slug alone.
func OwnerOf(db *gorm.DB, u *users.User) Owner {
	slugs, err := users.StorageSlugs(db, u)
	if err != nil {
		slog.Error("failed to load retired slugs", "user_id", u.ID, "err", err)
	}
	return Owner(slugs)
}

// OwnsURL is Owns for a stored URL whose key is not resolved yet.
func (o Owner) OwnsURL(rawURL string) bool {
	for _, slug := range o {
		if URLOwnedBy(rawURL, slug) {
			return true
		}
	}
	return false
}

func (o Owner) Owns(key string) bool {
	for _, slug := range o {
		if OwnedBy(key, slug) {
			return true
		}
	}
	return false
}
