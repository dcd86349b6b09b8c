package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"gallery-api/internal/domain/blog"
	"gallery-api/internal/domain/media"
	"gallery-api/internal/domain/profile"
	"gallery-api/internal/domain/users"
	"gallery-api/internal/domain/works"
	"gallery-api/internal/infra/storage/storagetest"
	"gallery-api/internal/testutil/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnverifiedUserCleanupJob(t *testing.T) {
	models := []any{
		&users.User{}, &users.VerificationToken{}, &users.RefreshToken{}, &users.RetiredSlug{},
		&works.Artwork{}, &works.ArtworkHistory{}, &works.ArtworkHistoryImage{},
		&blog.BlogPost{}, &media.PendingDeletion{},
	}
	db := testdb.Open(t, append(models, profile.Models()...)...)
	store := storagetest.NewMemory()

	stale := &users.User{Email: "stale@example.com", Name: "stale", Slug: "stale", Role: users.RoleArtist, IsActive: true}
	fresh := &users.User{Email: "fresh@example.com", Name: "fresh", Slug: "fresh", Role: users.RoleArtist, IsActive: true}
	require.NoError(t, db.Create(stale).Error)
	require.NoError(t, db.Create(fresh).Error)
	require.NoError(t, db.Model(&users.User{}).Where("id = ?", stale.ID).Update("created_at", time.Now().Add(-25*time.Hour)).Error)
	store.Seed("profile/stale/me.png", time.Now())

	job := NewUnverifiedUserCleanupJob(db, media.NewCleaner(db, store), 24*time.Hour)
	n, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, store.Keys(""))

	_, err = users.GetUserByID(db, fresh.ID)
	assert.NoError(t, err)

	assert.NotPanics(t, job.Run)
}

func TestPendingDeletionSweepJob(t *testing.T) {
	db := testdb.Open(t, &media.PendingDeletion{})
	store := storagetest.NewMemory()
	store.Seed("blog/ji/a.png", time.Now())
	store.Seed("blog/ji/b.png", time.Now())
	store.FailRemove["blog/ji/b.png"] = errors.New("boom")
	require.NoError(t, db.Create(&media.PendingDeletion{Key: "blog/ji/a.png"}).Error)
	require.NoError(t, db.Create(&media.PendingDeletion{Key: "blog/ji/b.png"}).Error)

	NewPendingDeletionSweepJob(media.NewCleaner(db, store)).Run()

	assert.False(t, store.Has("blog/ji/a.png"))
	var left []media.PendingDeletion
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "blog/ji/b.png", left[0].Key)
	assert.Equal(t, 1, left[0].Attempts)
}

func TestTempUploadSweepJob(t *testing.T) {
	store := storagetest.NewMemory()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.Seed("temp/ji/old.png", now.Add(-25*time.Hour))
	store.Seed("temp/ji/new.png", now.Add(-23*time.Hour))

	job := NewTempUploadSweepJob(media.NewCleaner(nil, store))
	job.Now = func() time.Time { return now }
	job.Run()

	assert.Equal(t, []string{"temp/ji/new.png"}, store.Keys("temp/"))
}
