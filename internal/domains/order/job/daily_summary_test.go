package job

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderbot-backend/internal/domains/order/model"
	"orderbot-backend/internal/shared"
)

type recordingOrderRepository struct {
	totalsDate time.Time
}

func (r *recordingOrderRepository) Create(ctx context.Context, order *model.Order, cartID uuid.UUID) error {
	return nil
}

func (r *recordingOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return nil, nil
}

func (r *recordingOrderRepository) GetDetail(ctx context.Context, id uuid.UUID) (*model.Detail, error) {
	return nil, nil
}

func (r *recordingOrderRepository) List(ctx context.Context, filter model.Filter) ([]model.Detail, error) {
	return nil, nil
}

func (r *recordingOrderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]model.Order, error) {
	return nil, nil
}

func (r *recordingOrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to model.Status) error {
	return nil
}

func (r *recordingOrderRepository) StatusHistory(ctx context.Context, orderID uuid.UUID) ([]model.StatusChange, error) {
	return nil, nil
}

func (r *recordingOrderRepository) DailyTotals(ctx context.Context, date time.Time) (*model.DailyTotals, error) {
	r.totalsDate = date
	return &model.DailyTotals{Date: date, OrderCount: 3, Revenue: decimal.RequireFromString("120.00")}, nil
}

func (r *recordingOrderRepository) Analytics(ctx context.Context, from, to time.Time) (*model.Analytics, error) {
	return &model.Analytics{From: from, To: to}, nil
}

type recordingDispatcher struct {
	summaries []*model.DailyTotals
}

func (d *recordingDispatcher) NotifyNewOrder(ctx context.Context, order *model.Detail) error {
	return nil
}

func (d *recordingDispatcher) NotifyStatusChange(ctx context.Context, order *model.Detail, to model.Status) error {
	return nil
}

func (d *recordingDispatcher) NotifyDailySummary(ctx context.Context, totals *model.DailyTotals) error {
	d.summaries = append(d.summaries, totals)
	return nil
}

func TestDailySummaryCoversBusinessYesterday(t *testing.T) {
	repo := &recordingOrderRepository{}
	dispatcher := &recordingDispatcher{}
	loc := time.FixedZone("UTC+3", 3*3600)

	h := NewDailySummaryHandler(repo, dispatcher, loc)
	// Shortly after business midnight, still the previous day in UTC.
	h.now = func() time.Time {
		return time.Date(2026, 8, 30, 21, 5, 0, 0, time.UTC).In(loc)
	}

	task := asynq.NewTask(shared.TypeDailySalesSummary, nil)
	require.NoError(t, h.ProcessTask(context.Background(), task))

	assert.Equal(t, "2026-08-30", repo.totalsDate.Format("2006-01-02"))
	require.Len(t, dispatcher.summaries, 1)
	assert.Equal(t, 3, dispatcher.summaries[0].OrderCount)
}
