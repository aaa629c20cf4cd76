package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	customermodel "orderbot-backend/internal/domains/customer/model"
	"orderbot-backend/internal/domains/order/model"
)

type ServiceInterface interface {
	// Create places an order from the customer's current cart and
	// empties it. The cart must have at least one item.
	Create(ctx context.Context, customer *customermodel.Customer, req *model.CreateOrderRequest) (*model.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter model.Filter) ([]model.Detail, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]model.Order, error)
	Transition(ctx context.Context, orderID uuid.UUID, to model.Status) (*model.Detail, error)
	Cancel(ctx context.Context, orderID uuid.UUID) (*model.Detail, error)
	DailyTotals(ctx context.Context, date time.Time) (*model.DailyTotals, error)
	// Analytics reports totals, breakdowns and top products for a date
	// range; a zero range means the last seven days.
	Analytics(ctx context.Context, from, to time.Time) (*model.Analytics, error)
}
