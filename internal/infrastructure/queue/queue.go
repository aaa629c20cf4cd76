package queue

import (
	"github.com/hibiken/asynq"

	"orderbot-backend/internal/config"
	"orderbot-backend/internal/shared"
)

// RedisOpt builds the asynq connection options from the redis config.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewClient creates the producer-side asynq client.
func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(RedisOpt(cfg))
}

// ServerConfig is the worker-side queue configuration. Notifications get
// the larger share so customer messages are not starved by maintenance.
func ServerConfig() asynq.Config {
	return asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			shared.QueueNotifications: 7,
			shared.QueueMaintenance:   3,
		},
	}
}
