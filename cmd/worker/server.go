package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"orderbot-backend/internal/infrastructure/queue"
	"orderbot-backend/pkg/container"
	"orderbot-backend/pkg/logger"
)

// runWorker starts the asynq server and the cron scheduler, then blocks
// until a shutdown signal arrives.
func runWorker(c *container.Container) error {
	server := asynq.NewServer(queue.RedisOpt(c.Config.Redis), queue.ServerConfig())
	mux := c.WorkerMux()

	scheduler, err := queue.NewScheduler(c.Config.Redis, c.Config.Business.Location())
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("worker started", map[string]interface{}{
			"queues": []string{"notifications", "maintenance"},
		})
		if err := server.Run(mux); err != nil {
			errCh <- err
		}
	}()
	go func() {
		if err := scheduler.Run(); err != nil {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down worker", map[string]interface{}{"signal": sig.String()})
	}

	scheduler.Shutdown()
	server.Shutdown()
	return nil
}
