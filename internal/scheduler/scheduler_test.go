package scheduler

import (
	"testing"

	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduler(t *testing.T) {
	t.Run("Registers all jobs", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{
			SendOverdueReminders: "0 0 3 * * *",
			LogFleetSummary:      "0 0 6 * * *",
		}}
		s, err := NewScheduler(jobs.NewJobRunner(nil, nil, cfg))
		require.NoError(t, err)
		assert.Equal(t, 2, s.Entries())

		s.Start()
		s.Stop()
	})

	t.Run("Rejects a bad schedule", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{
			SendOverdueReminders: "every night",
			LogFleetSummary:      "0 0 6 * * *",
		}}
		_, err := NewScheduler(jobs.NewJobRunner(nil, nil, cfg))
		assert.Error(t, err)
	})

	t.Run("Five field specs need seconds", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{
			SendOverdueReminders: "0 3 * * *",
			LogFleetSummary:      "0 0 6 * * *",
		}}
		_, err := NewScheduler(jobs.NewJobRunner(nil, nil, cfg))
		assert.Error(t, err)
	})
}
