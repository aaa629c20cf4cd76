package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"orderbot-backend/internal/domains/cart/repository"
	"orderbot-backend/internal/shared"
	"orderbot-backend/pkg/logger"
)

// Register adds the cart maintenance handlers to the worker mux.
func Register(mux *asynq.ServeMux, repo repository.RepositoryInterface, staleDays int) {
	mux.Handle(shared.TypeCleanupStaleCarts, NewCleanupStaleCartsHandler(repo, staleDays))
}

// CleanupStaleCartsHandler drops empty carts that nobody touched for the
// configured number of days. Carts with items are never removed.
type CleanupStaleCartsHandler struct {
	repo      repository.RepositoryInterface
	staleDays int
}

func NewCleanupStaleCartsHandler(repo repository.RepositoryInterface, staleDays int) *CleanupStaleCartsHandler {
	return &CleanupStaleCartsHandler{repo: repo, staleDays: staleDays}
}

func (h *CleanupStaleCartsHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().AddDate(0, 0, -h.staleDays)

	removed, err := h.repo.DeleteStale(ctx, cutoff)
	if err != nil {
		logger.Error("stale cart cleanup failed", err)
		return err
	}

	logger.Info("stale cart cleanup finished", map[string]interface{}{
		"removed": removed,
		"cutoff":  cutoff.Format(time.RFC3339),
	})

	return nil
}
