package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"orderbot-backend/internal/config"
	"orderbot-backend/internal/shared"
	"orderbot-backend/pkg/logger"
)

// NewScheduler registers the cron entries and returns the scheduler,
// ready to Run. Times are in the business's local timezone.
func NewScheduler(cfg config.RedisConfig, loc *time.Location) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(RedisOpt(cfg), &asynq.SchedulerOpts{
		Location: loc,
	})

	entries := []struct {
		spec string
		task *asynq.Task
	}{
		// Daily sales summary shortly after midnight.
		{"5 0 * * *", asynq.NewTask(shared.TypeDailySalesSummary, nil)},
		// Stale cart cleanup in the quiet early morning.
		{"0 4 * * *", asynq.NewTask(shared.TypeCleanupStaleCarts, nil)},
	}

	for _, e := range entries {
		entryID, err := scheduler.Register(e.spec, e.task, asynq.Queue(shared.QueueMaintenance))
		if err != nil {
			return nil, err
		}
		logger.Info("scheduled task registered", map[string]interface{}{
			"entry_id": entryID,
			"type":     e.task.Type(),
			"spec":     e.spec,
		})
	}

	return scheduler, nil
}
