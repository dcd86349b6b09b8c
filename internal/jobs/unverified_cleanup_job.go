package jobs

import (
	"context"
	"log/slog"
	"time"

	"gallery-api/internal/domain/account"
	"gallery-api/internal/domain/media"

	"gorm.io/gorm"
)

// UnverifiedUserCleanupJob purges accounts that never confirmed their email.
type UnverifiedUserCleanupJob struct {
	DB      *gorm.DB
	Cleaner *media.Cleaner
	TTL     time.Duration
	Now     func() time.Time
}

func NewUnverifiedUserCleanupJob(db *gorm.DB, cleaner *media.Cleaner, ttl time.Duration) *UnverifiedUserCleanupJob {
	return &UnverifiedUserCleanupJob{DB: db, Cleaner: cleaner, TTL: ttl, Now: time.Now}
}

func (j *UnverifiedUserCleanupJob) Run() {
	ctx := context.Background()
	if _, err := j.RunOnce(ctx); err != nil {
		slog.ErrorContext(ctx, "unverified user cleanup failed", "err", err)
	}
}

func (j *UnverifiedUserCleanupJob) RunOnce(ctx context.Context) (int, error) {
	n, err := account.SweepUnverified(ctx, j.DB, j.Cleaner, j.TTL, j.Now())
	if n > 0 {
		slog.InfoContext(ctx, "unverified users removed", "count", n, "ttl", j.TTL.String())
	}
	return n, err
}
