package service

import (
	"context"

	ordermodel "orderbot-backend/internal/domains/order/model"
)

// DispatcherInterface enqueues notifications for async delivery. Nothing
// here blocks on Telegram; the worker does the actual send.
type DispatcherInterface interface {
	NotifyNewOrder(ctx context.Context, order *ordermodel.Detail) error
	NotifyStatusChange(ctx context.Context, order *ordermodel.Detail, to ordermodel.Status) error
	NotifyDailySummary(ctx context.Context, totals *ordermodel.DailyTotals) error
}
