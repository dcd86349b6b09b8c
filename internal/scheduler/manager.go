// Package scheduler runs the periodic maintenance jobs.
package scheduler

import (
	"log/slog"

	"gallery-api/internal/jobs"

	"github.com/robfig/cron/v3"
)

const (
	SpecUnverifiedCleanup = "@hourly"
	SpecPendingDeletion   = "@every 15m"
	SpecTempUploads       = "@hourly"
)

type Manager struct {
	engine            *cron.Cron
	unverifiedCleanup *jobs.UnverifiedUserCleanupJob
	pendingDeletion   *jobs.PendingDeletionSweepJob
	tempUploads       *jobs.TempUploadSweepJob
}

func NewManager(
	unverifiedCleanup *jobs.UnverifiedUserCleanupJob,
	pendingDeletion *jobs.PendingDeletionSweepJob,
	tempUploads *jobs.TempUploadSweepJob,
) *Manager {
	return &Manager{
		engine: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
		unverifiedCleanup: unverifiedCleanup,
		pendingDeletion:   pendingDeletion,
		tempUploads:       tempUploads,
	}
}

// RegisterJobs adds every job to the engine. Nil jobs are skipped.
func (m *Manager) RegisterJobs() error {
	entries := []struct {
		spec string
		job  cron.Job
		ok   bool
	}{
		{SpecUnverifiedCleanup, m.unverifiedCleanup, m.unverifiedCleanup != nil},
		{SpecPendingDeletion, m.pendingDeletion, m.pendingDeletion != nil},
		{SpecTempUploads, m.tempUploads, m.tempUploads != nil},
	}
	for _, e := range entries {
		if !e.ok {
			continue
		}
		if _, err := m.engine.AddJob(e.spec, e.job); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) Entries() int {
	return len(m.engine.Entries())
}

func (m *Manager) Start() {
	slog.Info("scheduler started", "jobs", m.Entries())
	m.engine.Start()
}

// Stop halts the engine and waits for running jobs to finish.
func (m *Manager) Stop() {
	slog.Info("scheduler stopping")
	<-m.engine.Stop().Done()
}

// Init registers the jobs and starts the engine.
func Init(m *Manager) error {
	if err := m.RegisterJobs(); err != nil {
		return err
	}
	m.Start()
	return nil
}
