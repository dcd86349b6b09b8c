package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gallery-api/internal/infra/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const MaxDeleteAttempts = 10

// Cleaner removes stored files that belonged to deleted rows. Every method is
// best effort: failures are logged and queued as PendingDeletion rows, never
// returned to the caller whose database delete already committed.
type Cleaner struct {
	DB    *gorm.DB
	Store storage.Store
}

func NewCleaner(db *gorm.DB, store storage.Store) *Cleaner {
	return &Cleaner{DB: db, Store: store}
}

// RemoveURLs deletes the objects behind urls that sit in owner's folders.
// URLs that do not point into the bucket, or into someone else's folders, are
// skipped. It returns how many objects were deleted.
func (c *Cleaner) RemoveURLs(ctx context.Context, reason string, owner Owner, urls ...string) int {
	if c == nil || c.Store == nil {
		return 0
	}
	seen := map[string]bool{}
	removed := 0
	for _, u := range urls {
		key, ok := c.Store.KeyFromURL(u)
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		if !owner.Owns(key) {
			slog.WarnContext(ctx, "skipping delete of file outside owner folders", "key", key, "reason", reason)
			continue
		}
		if c.removeKey(ctx, key, reason) {
			removed++
		}
	}
	return removed
}

func (c *Cleaner) removeKey(ctx context.Context, key, reason string) bool {
	err := c.Store.Remove(ctx, key)
	if err == nil {
		return true
	}
	slog.ErrorContext(ctx, "storage delete failed, queued for retry", "key", key, "reason", reason, "err", err)
	c.enqueue(ctx, key, reason, err)
	return false
}

func (c *Cleaner) enqueue(ctx context.Context, key, reason string, cause error) {
	if c.DB == nil {
		return
	}
	row := PendingDeletion{Key: key, Reason: reason, LastError: cause.Error()}
	err := c.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_error", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to queue storage delete", "key", key, "err", err)
	}
}

// RemoveUserFiles deletes everything under every folder of each of owner's
// slugs.
func (c *Cleaner) RemoveUserFiles(ctx context.Context, owner Owner) int {
	if c == nil || c.Store == nil {
		return 0
	}
	total := 0
	for _, slug := range owner {
		if slug == "" {
			continue
		}
		for _, folder := range Folders {
			prefix := UserPrefix(folder, slug)
			n, err := c.Store.RemovePrefix(ctx, prefix)
			total += n
			if err != nil {
				slog.ErrorContext(ctx, "failed to clean user files", "prefix", prefix, "err", err)
				c.queueRemaining(ctx, prefix)
			}
		}
	}
	return total
}

func (c *Cleaner) queueRemaining(ctx context.Context, prefix string) {
	left, err := c.Store.List(ctx, prefix)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list remaining user files", "prefix", prefix, "err", err)
		return
	}
	for _, o := range left {
		c.enqueue(ctx, o.Key, "account purge", errors.New("bulk delete failed"))
	}
}

type SweepResult struct {
	Deleted int
	Retried int
	Dropped int
}

// SweepPending retries queued deletions. Rows that keep failing are dropped
// after MaxDeleteAttempts.
func (c *Cleaner) SweepPending(ctx context.Context, batch int) (SweepResult, error) {
	var res SweepResult
	var rows []PendingDeletion
	if err := c.DB.WithContext(ctx).Order("id ASC").Limit(batch).Find(&rows).Error; err != nil {
		return res, err
	}

	for _, row := range rows {
		err := c.Store.Remove(ctx, row.Key)
		if err == nil {
			if err := c.DB.WithContext(ctx).Delete(&PendingDeletion{}, row.ID).Error; err != nil {
				return res, err
			}
			res.Deleted++
			continue
		}

		if row.Attempts+1 >= MaxDeleteAttempts {
			slog.ErrorContext(ctx, "giving up on storage delete", "key", row.Key, "attempts", row.Attempts+1, "err", err)
			if err := c.DB.WithContext(ctx).Delete(&PendingDeletion{}, row.ID).Error; err != nil {
				return res, err
			}
			res.Dropped++
			continue
		}

		if err := c.DB.WithContext(ctx).Model(&PendingDeletion{}).Where("id = ?", row.ID).Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + ?", 1),
			"last_error": err.Error(),
		}).Error; err != nil {
			return res, err
		}
		res.Retried++
	}
	return res, nil
}

// SweepTemp deletes temp uploads last modified before cutoff.
func (c *Cleaner) SweepTemp(ctx context.Context, cutoff time.Time) (int, error) {
	objects, err := c.Store.List(ctx, FolderTemp+"/")
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, o := range objects {
		if !o.LastModified.Before(cutoff) {
			continue
		}
		if err := c.Store.Remove(ctx, o.Key); err != nil {
			slog.WarnContext(ctx, "failed to delete expired temp upload", "key", o.Key, "err", err)
			continue
		}
		removed++
	}
	return removed, nil
}

// MoveTemp copies a temp upload of slug into folder and removes the temp
// object. It returns the new public URL.
func (c *Cleaner) MoveTemp(ctx context.Context, slug, folder, tempURL string) (string, error) {
	key, ok := c.Store.KeyFromURL(tempURL)
	if !ok {
		return "", ErrForeignURL
	}
	if !TempKeyOwnedBy(key, slug) {
		return "", ErrNotYourFile
	}
	if folder == FolderTemp || !isFolder(folder) {
		return "", ErrUnknownFolder
	}

	dst := UserPrefix(folder, slug) + key[len(UserPrefix(FolderTemp, slug)):]
	if err := c.Store.Copy(ctx, key, dst); err != nil {
		return "", fmt.Errorf("move %s: %w", key, err)
	}
	c.removeKey(ctx, key, "temp move")
	return c.Store.URL(dst), nil
}

func isFolder(name string) bool {
	for _, f := range Folders {
		if f == name {
			return true
		}
	}
	return false
}

// DefaultCleaner works against the process-wide store.
func DefaultCleaner(db *gorm.DB) *Cleaner {
	return NewCleaner(db, storage.Default)
}
