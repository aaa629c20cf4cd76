package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmodel "orderbot-backend/internal/domains/cart/model"
	customermodel "orderbot-backend/internal/domains/customer/model"
	"orderbot-backend/internal/domains/order/model"
)

type fakeOrderRepository struct {
	orders       map[uuid.UUID]*model.Order
	details      map[uuid.UUID]*model.Detail
	history      []model.StatusChange
	clearedCarts []uuid.UUID
	seqFailures  int
	createCalls  int
	nextSeq      int

	analytics      *model.Analytics
	analyticsRange [2]time.Time
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{
		orders:  make(map[uuid.UUID]*model.Order),
		details: make(map[uuid.UUID]*model.Detail),
		nextSeq: 1,
	}
}

func (f *fakeOrderRepository) Create(ctx context.Context, order *model.Order, cartID uuid.UUID) error {
	f.createCalls++
	if f.seqFailures > 0 {
		f.seqFailures--
		return model.ErrSequenceConflict
	}

	order.OrderNumber = model.FormatOrderNumber(order.CreatedAt, f.nextSeq)
	f.nextSeq++
	f.orders[order.ID] = order
	f.clearedCarts = append(f.clearedCarts, cartID)
	return nil
}

func (f *fakeOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepository) GetDetail(ctx context.Context, id uuid.UUID) (*model.Detail, error) {
	return f.details[id], nil
}

func (f *fakeOrderRepository) List(ctx context.Context, filter model.Filter) ([]model.Detail, error) {
	var out []model.Detail
	for _, d := range f.details {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeOrderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to model.Status) error {
	d, ok := f.details[orderID]
	if !ok || d.Status != from {
		return model.ErrOrderNotFound
	}
	d.Status = to
	f.history = append(f.history, model.StatusChange{OrderID: orderID, FromStatus: &from, ToStatus: to})
	return nil
}

func (f *fakeOrderRepository) StatusHistory(ctx context.Context, orderID uuid.UUID) ([]model.StatusChange, error) {
	return f.history, nil
}

func (f *fakeOrderRepository) DailyTotals(ctx context.Context, date time.Time) (*model.DailyTotals, error) {
	return &model.DailyTotals{Date: date}, nil
}

func (f *fakeOrderRepository) Analytics(ctx context.Context, from, to time.Time) (*model.Analytics, error) {
	f.analyticsRange = [2]time.Time{from, to}
	if f.analytics == nil {
		return &model.Analytics{From: from, To: to, TotalRevenue: decimal.Zero}, nil
	}
	report := *f.analytics
	report.From = from
	report.To = to
	return &report, nil
}

type fakeCartStore struct {
	cart  *cartmodel.Cart
	items []cartmodel.ItemDetail
}

func (f *fakeCartStore) GetOrCreate(ctx context.Context, customerID uuid.UUID) (*cartmodel.Cart, error) {
	return f.cart, nil
}

func (f *fakeCartStore) GetByCustomer(ctx context.Context, customerID uuid.UUID) (*cartmodel.Cart, error) {
	return f.cart, nil
}

func (f *fakeCartStore) UpdateDelivery(ctx context.Context, cartID uuid.UUID, method string, address *string) error {
	return nil
}

func (f *fakeCartStore) ListItems(ctx context.Context, cartID uuid.UUID) ([]cartmodel.CartItem, error) {
	return nil, nil
}

func (f *fakeCartStore) ListItemsDetailed(ctx context.Context, cartID uuid.UUID) ([]cartmodel.ItemDetail, error) {
	return f.items, nil
}

func (f *fakeCartStore) AddItem(ctx context.Context, item *cartmodel.CartItem) error { return nil }

func (f *fakeCartStore) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return nil
}

func (f *fakeCartStore) RemoveItem(ctx context.Context, itemID uuid.UUID) error { return nil }

func (f *fakeCartStore) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	f.items = nil
	return nil
}

func (f *fakeCartStore) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type fakeDispatcher struct {
	newOrders     []*model.Detail
	statusChanges []model.Status
}

func (f *fakeDispatcher) NotifyNewOrder(ctx context.Context, order *model.Detail) error {
	f.newOrders = append(f.newOrders, order)
	return nil
}

func (f *fakeDispatcher) NotifyStatusChange(ctx context.Context, order *model.Detail, to model.Status) error {
	f.statusChanges = append(f.statusChanges, to)
	return nil
}

func (f *fakeDispatcher) NotifyDailySummary(ctx context.Context, totals *model.DailyTotals) error {
	return nil
}

func strPtr(s string) *string { return &s }

func testCustomer() *customermodel.Customer {
	return &customermodel.Customer{
		ID:          uuid.New(),
		TelegramID:  123456,
		FullName:    "Dana Levi",
		PhoneNumber: "+972501234567",
		Language:    "he",
	}
}

func detailItem(name string, nameHE string, qty int, price string) cartmodel.ItemDetail {
	return cartmodel.ItemDetail{
		CartItem: cartmodel.CartItem{
			ID:        uuid.New(),
			ProductID: uuid.New(),
			Quantity:  qty,
			UnitPrice: decimal.RequireFromString(price),
		},
		ProductName:   name,
		ProductNameHE: strPtr(nameHE),
	}
}

func TestCreateRejectsEmptyCart(t *testing.T) {
	ctx := context.Background()
	customer := testCustomer()

	carts := &fakeCartStore{}
	svc := NewOrderService(newFakeOrderRepository(), carts, &fakeDispatcher{}, decimal.RequireFromString("5.00"), time.UTC)

	_, err := svc.Create(ctx, customer, &model.CreateOrderRequest{})
	assert.ErrorIs(t, err, model.ErrCartEmpty)

	carts.cart = &cartmodel.Cart{ID: uuid.New(), CustomerID: customer.ID, DeliveryMethod: cartmodel.DeliveryMethodPickup}
	_, err = svc.Create(ctx, customer, &model.CreateOrderRequest{})
	assert.ErrorIs(t, err, model.ErrCartEmpty)
}

func TestCreateDeliveryTotalsAndSnapshot(t *testing.T) {
	ctx := context.Background()
	customer := testCustomer()

	carts := &fakeCartStore{
		cart: &cartmodel.Cart{
			ID:              uuid.New(),
			CustomerID:      customer.ID,
			DeliveryMethod:  cartmodel.DeliveryMethodDelivery,
			DeliveryAddress: strPtr("10 Herzl St, Tel Aviv"),
		},
		items: []cartmodel.ItemDetail{
			detailItem("Kubaneh", "כובאנה", 2, "25.00"),
			detailItem("Hilbeh", "חילבה", 1, "15.00"),
		},
	}
	repo := newFakeOrderRepository()
	dispatcher := &fakeDispatcher{}
	svc := NewOrderService(repo, carts, dispatcher, decimal.RequireFromString("5.00"), time.UTC)

	order, err := svc.Create(ctx, customer, &model.CreateOrderRequest{})
	require.NoError(t, err)

	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("65.00")), "subtotal %s", order.Subtotal)
	assert.True(t, order.DeliveryFee.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("70.00")), "total %s", order.Total)
	assert.Equal(t, model.StatusPending, order.Status)
	assert.Regexp(t, `^ORD-\d{8}-\d{4}$`, order.OrderNumber)

	// Snapshot carries the customer-language names.
	require.Len(t, order.Items, 2)
	assert.Equal(t, "כובאנה", order.Items[0].ProductName)
	assert.True(t, order.Items[0].TotalPrice.Equal(decimal.RequireFromString("50.00")))

	// Checkout empties the cart and pings the admin.
	assert.Equal(t, []uuid.UUID{carts.cart.ID}, repo.clearedCarts)
	require.Len(t, dispatcher.newOrders, 1)
	assert.Equal(t, customer.TelegramID, dispatcher.newOrders[0].CustomerChatID)
}

func TestCreatePickupHasNoFee(t *testing.T) {
	ctx := context.Background()
	customer := testCustomer()

	carts := &fakeCartStore{
		cart: &cartmodel.Cart{ID: uuid.New(), CustomerID: customer.ID, DeliveryMethod: cartmodel.DeliveryMethodPickup},
		items: []cartmodel.ItemDetail{
			detailItem("Kubaneh", "כובאנה", 1, "25.00"),
		},
	}
	svc := NewOrderService(newFakeOrderRepository(), carts, &fakeDispatcher{}, decimal.RequireFromString("5.00"), time.UTC)

	order, err := svc.Create(ctx, customer, &model.CreateOrderRequest{})
	require.NoError(t, err)

	assert.True(t, order.DeliveryFee.IsZero())
	assert.True(t, order.Total.Equal(decimal.RequireFromString("25.00")))
	assert.Nil(t, order.DeliveryAddress)
}

func TestCreateDeliveryAddressFallsBackToProfile(t *testing.T) {
	ctx := context.Background()
	customer := testCustomer()
	customer.DeliveryAddress = strPtr("5 Dizengoff St, Tel Aviv")

	carts := &fakeCartStore{
		cart: &cartmodel.Cart{ID: uuid.New(), CustomerID: customer.ID, DeliveryMethod: cartmodel.DeliveryMethodDelivery},
		items: []cartmodel.ItemDetail{
			detailItem("Kubaneh", "כובאנה", 1, "25.00"),
		},
	}
	svc := NewOrderService(newFakeOrderRepository(), carts, &fakeDispatcher{}, decimal.RequireFromString("5.00"), time.UTC)

	order, err := svc.Create(ctx, customer, &model.CreateOrderRequest{})
	require.NoError(t, err)
	require.NotNil(t, order.DeliveryAddress)
	assert.Equal(t, *customer.DeliveryAddress, *order.DeliveryAddress)

	customer.DeliveryAddress = nil
	carts.items = []cartmodel.ItemDetail{detailItem("Kubaneh", "כובאנה", 1, "25.00")}
	_, err = svc.Create(ctx, customer, &model.CreateOrderRequest{})
	assert.ErrorIs(t, err, model.ErrMissingAddress)
}

func TestCreateRetriesSequenceConflict(t *testing.T) {
	ctx := context.Background()
	customer := testCustomer()

	carts := &fakeCartStore{
		cart: &cartmodel.Cart{ID: uuid.New(), CustomerID: customer.ID, DeliveryMethod: cartmodel.DeliveryMethodPickup},
		items: []cartmodel.ItemDetail{
			detailItem("Kubaneh", "כובאנה", 1, "25.00"),
		},
	}
	repo := newFakeOrderRepository()
	repo.seqFailures = 2
	svc := NewOrderService(repo, carts, &fakeDispatcher{}, decimal.Zero, time.UTC)

	_, err := svc.Create(ctx, customer, &model.CreateOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, repo.createCalls)
}

func TestTransitionFollowsGraph(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOrderRepository()
	dispatcher := &fakeDispatcher{}
	svc := NewOrderService(repo, &fakeCartStore{}, dispatcher, decimal.Zero, time.UTC)

	orderID := uuid.New()
	repo.details[orderID] = &model.Detail{
		Order: model.Order{ID: orderID, OrderNumber: "ORD-20260830-0001", Status: model.StatusPending},
	}

	detail, err := svc.Transition(ctx, orderID, model.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, detail.Status)
	assert.Equal(t, []model.Status{model.StatusConfirmed}, dispatcher.statusChanges)

	// Skipping preparing is not allowed.
	_, err = svc.Transition(ctx, orderID, model.StatusReady)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
	assert.Len(t, dispatcher.statusChanges, 1)
}

func TestCancelOnlyFromNonTerminal(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOrderRepository()
	svc := NewOrderService(repo, &fakeCartStore{}, &fakeDispatcher{}, decimal.Zero, time.UTC)

	orderID := uuid.New()
	repo.details[orderID] = &model.Detail{
		Order: model.Order{ID: orderID, Status: model.StatusPreparing},
	}

	detail, err := svc.Cancel(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, detail.Status)

	_, err = svc.Cancel(ctx, orderID)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestTransitionUnknownOrder(t *testing.T) {
	ctx := context.Background()
	svc := NewOrderService(newFakeOrderRepository(), &fakeCartStore{}, &fakeDispatcher{}, decimal.Zero, time.UTC)

	_, err := svc.Transition(ctx, uuid.New(), model.StatusConfirmed)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestCreateUsesBusinessDateForOrderNumber(t *testing.T) {
	ctx := context.Background()
	customer := testCustomer()

	carts := &fakeCartStore{
		cart: &cartmodel.Cart{ID: uuid.New(), CustomerID: customer.ID, DeliveryMethod: cartmodel.DeliveryMethodPickup},
		items: []cartmodel.ItemDetail{
			detailItem("Kubaneh", "כובאנה", 1, "25.00"),
		},
	}
	loc := time.FixedZone("UTC+3", 3*3600)
	svc := NewOrderService(newFakeOrderRepository(), carts, &fakeDispatcher{}, decimal.Zero, loc).(*orderService)

	// 23:30 UTC is already past midnight on the business clock.
	svc.now = func() time.Time {
		return time.Date(2026, 8, 30, 23, 30, 0, 0, time.UTC).In(loc)
	}

	order, err := svc.Create(ctx, customer, &model.CreateOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, "ORD-20260831-0001", order.OrderNumber)
}

func TestClockRunsInBusinessLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	svc := NewOrderService(newFakeOrderRepository(), &fakeCartStore{}, &fakeDispatcher{}, decimal.Zero, loc).(*orderService)

	assert.Equal(t, "UTC+3", svc.now().Location().String())
}

func TestAnalyticsComputesAverageOrderValue(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOrderRepository()
	repo.analytics = &model.Analytics{
		TotalOrders:  4,
		TotalRevenue: decimal.RequireFromString("202.00"),
	}
	svc := NewOrderService(repo, &fakeCartStore{}, &fakeDispatcher{}, decimal.Zero, time.UTC)

	report, err := svc.Analytics(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.True(t, report.AverageOrderValue.Equal(decimal.RequireFromString("50.50")),
		"average %s", report.AverageOrderValue)

	// A zero range defaults to the last seven days.
	from, to := repo.analyticsRange[0], repo.analyticsRange[1]
	assert.False(t, to.IsZero())
	assert.Equal(t, to.AddDate(0, 0, -7), from)
}

func TestAnalyticsEmptyRange(t *testing.T) {
	ctx := context.Background()
	svc := NewOrderService(newFakeOrderRepository(), &fakeCartStore{}, &fakeDispatcher{}, decimal.Zero, time.UTC)

	report, err := svc.Analytics(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Zero(t, report.TotalOrders)
	assert.True(t, report.AverageOrderValue.IsZero())
}
