// Package account removes users together with everything they own.
package account

import (
	"context"
	"log/slog"
	"time"

	"gallery-api/internal/domain/blog"
	"gallery-api/internal/domain/media"
	"gallery-api/internal/domain/profile"
	"gallery-api/internal/domain/users"
	"gallery-api/internal/domain/works"

	"gorm.io/gorm"
)

// Purge deletes u's stored files, then every row that belongs to u. Storage
// failures are queued by the cleaner and do not stop the database delete.
func Purge(ctx context.Context, db *gorm.DB, cleaner *media.Cleaner, u *users.User) error {
	removed := cleaner.RemoveUserFiles(ctx, media.OwnerOf(db.WithContext(ctx), u))

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var artworkIDs []uint
		if err := tx.Model(&works.Artwork{}).Where("user_id = ?", u.ID).Pluck("id", &artworkIDs).Error; err != nil {
			return err
		}
		if len(artworkIDs) > 0 {
			var historyIDs []uint
			if err := tx.Model(&works.ArtworkHistory{}).Where("artwork_id IN ?", artworkIDs).Pluck("id", &historyIDs).Error; err != nil {
				return err
			}
			if len(historyIDs) > 0 {
				if err := tx.Where("history_id IN ?", historyIDs).Delete(&works.ArtworkHistoryImage{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", historyIDs).Delete(&works.ArtworkHistory{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("id IN ?", artworkIDs).Delete(&works.Artwork{}).Error; err != nil {
				return err
			}
		}

		owned := append([]any{&blog.BlogPost{}, &users.RefreshToken{}, &users.RetiredSlug{}}, profile.Models()...)
		for _, model := range owned {
			if err := tx.Where("user_id = ?", u.ID).Delete(model).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("email = ?", u.Email).Delete(&users.VerificationToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&users.User{}, u.ID).Error
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "account purged", "user_id", u.ID, "slug", u.Slug, "files_removed", removed)
	return nil
}

// SweepUnverified purges accounts that stayed unverified for longer than ttl.
// One failing account does not stop the rest.
func SweepUnverified(ctx context.Context, db *gorm.DB, cleaner *media.Cleaner, ttl time.Duration, now time.Time) (int, error) {
	var stale []users.User
	err := db.WithContext(ctx).
		Where("is_verified = ? AND created_at <= ?", false, now.Add(-ttl)).
		Order("id ASC").
		Find(&stale).Error
	if err != nil {
		return 0, err
	}

	purged := 0
	for i := range stale {
		if err := ctx.Err(); err != nil {
			return purged, err
		}
		if err := Purge(ctx, db, cleaner, &stale[i]); err != nil {
			slog.ErrorContext(ctx, "failed to purge unverified account", "user_id", stale[i].ID, "err", err)
			continue
		}
		purged++
	}
	return purged, nil
}
