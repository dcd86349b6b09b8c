package jobs

import (
	"context"
	"log/slog"

	"gallery-api/internal/domain/media"
)

const pendingBatch = 200

// PendingDeletionSweepJob retries storage deletes that failed earlier.
type PendingDeletionSweepJob struct {
	Cleaner *media.Cleaner
}

func NewPendingDeletionSweepJob(cleaner *media.Cleaner) *PendingDeletionSweepJob {
	return &PendingDeletionSweepJob{Cleaner: cleaner}
}

func (j *PendingDeletionSweepJob) Run() {
	ctx := context.Background()
	res, err := j.Cleaner.SweepPending(ctx, pendingBatch)
	if err != nil {
		slog.ErrorContext(ctx, "pending deletion sweep failed", "err", err)
		return
	}
	if res.Deleted+res.Retried+res.Dropped > 0 {
		slog.InfoContext(ctx, "pending deletion sweep finished",
			"deleted", res.Deleted, "retried", res.Retried, "dropped", res.Dropped)
	}
}
