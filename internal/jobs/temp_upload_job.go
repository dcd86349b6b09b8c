package jobs

import (
	"context"
	"log/slog"
	"time"

	"gallery-api/internal/domain/media"
)

const TempUploadMaxAge = 24 * time.Hour

// TempUploadSweepJob removes temp/ uploads that were never moved.
type TempUploadSweepJob struct {
	Cleaner *media.Cleaner
	MaxAge  time.Duration
	Now     func() time.Time
}

func NewTempUploadSweepJob(cleaner *media.Cleaner) *TempUploadSweepJob {
	return &TempUploadSweepJob{Cleaner: cleaner, MaxAge: TempUploadMaxAge, Now: time.Now}
}

func (j *TempUploadSweepJob) Run() {
	ctx := context.Background()
	n, err := j.Cleaner.SweepTemp(ctx, j.Now().Add(-j.MaxAge))
	if err != nil {
		slog.ErrorContext(ctx, "temp upload sweep failed", "err", err)
		return
	}
	if n > 0 {
		slog.InfoContext(ctx, "expired temp uploads removed", "count", n)
	}
}
