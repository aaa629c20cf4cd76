package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartmodel "orderbot-backend/internal/domains/cart/model"
	cartrepository "orderbot-backend/internal/domains/cart/repository"
	customermodel "orderbot-backend/internal/domains/customer/model"
	notifservice "orderbot-backend/internal/domains/notification/service"
	"orderbot-backend/internal/domains/order/model"
	"orderbot-backend/internal/domains/order/repository"
	"orderbot-backend/pkg/logger"
)

// sequenceRetries bounds retries when two checkouts collide on the same
// order number.
const sequenceRetries = 3

type orderService struct {
	repo        repository.RepositoryInterface
	carts       cartrepository.RepositoryInterface
	dispatcher  notifservice.DispatcherInterface
	deliveryFee decimal.Decimal
	now         func() time.Time
}

// NewOrderService builds the order service. Checkout timestamps run on
// the business clock in loc, so order numbers roll at business
// midnight.
func NewOrderService(
	repo repository.RepositoryInterface,
	carts cartrepository.RepositoryInterface,
	dispatcher notifservice.DispatcherInterface,
	deliveryFee decimal.Decimal,
	loc *time.Location,
) ServiceInterface {
	return &orderService{
		repo:        repo,
		carts:       carts,
		dispatcher:  dispatcher,
		deliveryFee: deliveryFee,
		now:         func() time.Time { return time.Now().In(loc) },
	}
}

func (s *orderService) Create(ctx context.Context, customer *customermodel.Customer, req *model.CreateOrderRequest) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cart, err := s.carts.GetByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, model.ErrCartEmpty
	}

	items, err := s.carts.ListItemsDetailed(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, model.ErrCartEmpty
	}

	address, fee, err := s.resolveDelivery(cart, customer)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := &model.Order{
		ID:              uuid.New(),
		CustomerID:      customer.ID,
		DeliveryMethod:  cart.DeliveryMethod,
		DeliveryAddress: address,
		DeliveryFee:     fee,
		Status:          model.StatusPending,
		Note:            req.Note,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	subtotal := decimal.Zero
	for i := range items {
		item := &items[i]
		lineTotal := item.LineTotal()
		subtotal = subtotal.Add(lineTotal)
		order.Items = append(order.Items, model.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductName: item.DisplayName(customer.Language),
			Options:     item.Options,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  lineTotal,
			CreatedAt:   now,
		})
	}
	order.Subtotal = subtotal
	order.Total = subtotal.Add(fee)

	if err := s.createWithRetry(ctx, order, cart.ID); err != nil {
		return nil, err
	}

	detail := &model.Detail{
		Order:            *order,
		CustomerName:     customer.FullName,
		CustomerPhone:    customer.PhoneNumber,
		CustomerChatID:   customer.TelegramID,
		CustomerLanguage: customer.Language,
	}
	if err := s.dispatcher.NotifyNewOrder(ctx, detail); err != nil {
		// The order is already committed; a lost notification is not a
		// reason to fail the checkout.
		logger.Error("failed to enqueue new-order notification", err)
	}

	return order, nil
}

func (s *orderService) resolveDelivery(cart *cartmodel.Cart, customer *customermodel.Customer) (*string, decimal.Decimal, error) {
	if cart.DeliveryMethod != cartmodel.DeliveryMethodDelivery {
		return nil, decimal.Zero, nil
	}

	address := cart.DeliveryAddress
	if address == nil || *address == "" {
		address = customer.DeliveryAddress
	}
	if address == nil || *address == "" {
		return nil, decimal.Zero, model.ErrMissingAddress
	}

	return address, s.deliveryFee, nil
}

func (s *orderService) createWithRetry(ctx context.Context, order *model.Order, cartID uuid.UUID) error {
	var err error
	for attempt := 0; attempt < sequenceRetries; attempt++ {
		err = s.repo.Create(ctx, order, cartID)
		if !errors.Is(err, model.ErrSequenceConflict) {
			return err
		}
	}
	return err
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context, filter model.Filter) ([]model.Detail, error) {
	return s.repo.List(ctx, filter)
}

func (s *orderService) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.ListByCustomer(ctx, customerID, limit)
}

func (s *orderService) Transition(ctx context.Context, orderID uuid.UUID, to model.Status) (*model.Detail, error) {
	detail, err := s.repo.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, model.ErrOrderNotFound
	}

	if !detail.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, detail.Status, to)
	}

	if err := s.repo.UpdateStatus(ctx, orderID, detail.Status, to); err != nil {
		return nil, err
	}
	detail.Status = to

	if err := s.dispatcher.NotifyStatusChange(ctx, detail, to); err != nil {
		logger.Error("failed to enqueue status notification", err)
	}

	return detail, nil
}

func (s *orderService) Cancel(ctx context.Context, orderID uuid.UUID) (*model.Detail, error) {
	return s.Transition(ctx, orderID, model.StatusCancelled)
}

func (s *orderService) DailyTotals(ctx context.Context, date time.Time) (*model.DailyTotals, error) {
	return s.repo.DailyTotals(ctx, date)
}

// Analytics aggregates the business report for a date range. A zero
// range defaults to the last seven days on the business clock.
func (s *orderService) Analytics(ctx context.Context, from, to time.Time) (*model.Analytics, error) {
	if to.IsZero() {
		to = s.now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -7)
	}

	report, err := s.repo.Analytics(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if report.TotalOrders > 0 {
		report.AverageOrderValue = report.TotalRevenue.
			Div(decimal.NewFromInt(int64(report.TotalOrders))).
			Round(2)
	} else {
		report.AverageOrderValue = decimal.Zero
	}

	return report, nil
}
