package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"orderbot-backend/internal/domains/order/model"
)

type RepositoryInterface interface {
	// Create allocates the order number, inserts the order with its
	// items, writes the initial status history row and empties the cart,
	// all in one transaction.
	Create(ctx context.Context, order *model.Order, cartID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*model.Detail, error)
	List(ctx context.Context, filter model.Filter) ([]model.Detail, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]model.Order, error)
	// UpdateStatus moves the order from one status to another with an
	// optimistic guard on the current value, recording a history row.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to model.Status) error
	StatusHistory(ctx context.Context, orderID uuid.UUID) ([]model.StatusChange, error)
	DailyTotals(ctx context.Context, date time.Time) (*model.DailyTotals, error)
	// Analytics aggregates order counts, revenue, status/delivery
	// breakdowns and the five best-selling products for a range.
	Analytics(ctx context.Context, from, to time.Time) (*model.Analytics, error)
}
