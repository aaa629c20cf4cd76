package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	notifservice "orderbot-backend/internal/domains/notification/service"
	"orderbot-backend/internal/domains/order/repository"
	"orderbot-backend/internal/shared"
	"orderbot-backend/pkg/logger"
)

// Register adds the order reporting handlers to the worker mux.
func Register(mux *asynq.ServeMux, repo repository.RepositoryInterface, dispatcher notifservice.DispatcherInterface, loc *time.Location) {
	mux.Handle(shared.TypeDailySalesSummary, NewDailySummaryHandler(repo, dispatcher, loc))
}

// DailySummaryHandler aggregates the previous day's orders and sends the
// totals to the admin chat. "Yesterday" is resolved on the business
// clock in loc, matching the scheduler's timezone.
type DailySummaryHandler struct {
	repo       repository.RepositoryInterface
	dispatcher notifservice.DispatcherInterface
	now        func() time.Time
}

func NewDailySummaryHandler(repo repository.RepositoryInterface, dispatcher notifservice.DispatcherInterface, loc *time.Location) *DailySummaryHandler {
	return &DailySummaryHandler{
		repo:       repo,
		dispatcher: dispatcher,
		now:        func() time.Time { return time.Now().In(loc) },
	}
}

func (h *DailySummaryHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	// The job runs shortly after midnight, so the report covers yesterday.
	day := h.now().AddDate(0, 0, -1)

	totals, err := h.repo.DailyTotals(ctx, day)
	if err != nil {
		logger.Error("daily summary aggregation failed", err)
		return err
	}

	if err := h.dispatcher.NotifyDailySummary(ctx, totals); err != nil {
		logger.Error("daily summary notification failed", err)
		return err
	}

	logger.Info("daily summary dispatched", map[string]interface{}{
		"date":   totals.Date.Format("2006-01-02"),
		"orders": totals.OrderCount,
	})

	return nil
}
