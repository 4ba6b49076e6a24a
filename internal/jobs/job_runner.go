package jobs

import (
	"context"
	"time"

	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/service"
)

// SnapshotSource provides a consistent copy of the current state.
// *store.Store implements it, as does RepositorySource.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
}

// RepositorySource reads the latest saved snapshot straight from the
// persistence back-end. Jobs running outside the server use it.
type RepositorySource struct {
	Repo repository.SnapshotRepository
}

func (s RepositorySource) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap, err := s.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return domain.NewSnapshot(), nil
	}
	return snap, nil
}

// JobRunner coordinates all scheduled jobs. Jobs only read state.
type JobRunner struct {
	source SnapshotSource
	email  service.EmailService
	config *config.Config
	now    func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(source SnapshotSource, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		source: source,
		email:  email,
		config: cfg,
		now:    time.Now,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	start := time.Now()
	jobFunc()
	logger.Info("Job completed", "job", jobName, "duration_ms", time.Since(start).Milliseconds())
}

// RunAllDailyJobs runs every job once (for manual execution)
func (jr *JobRunner) RunAllDailyJobs() {
	jr.SendOverdueReminders()
	jr.LogFleetSummary()
}
