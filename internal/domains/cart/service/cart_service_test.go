package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderbot-backend/internal/domains/cart/model"
	productmodel "orderbot-backend/internal/domains/product/model"
)

type fakeProductCatalog struct {
	products map[uuid.UUID]*productmodel.Product
}

func (f *fakeProductCatalog) GetOrderable(ctx context.Context, id uuid.UUID, at time.Time) (*productmodel.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, productmodel.ErrProductNotFound
	}
	if !p.IsActive || !p.Availability.IsAvailableAt(at) {
		return nil, productmodel.ErrProductUnavailable
	}
	return p, nil
}

func (f *fakeProductCatalog) Create(ctx context.Context, req *productmodel.CreateProductRequest) (*productmodel.Product, error) {
	return nil, nil
}

func (f *fakeProductCatalog) Update(ctx context.Context, id uuid.UUID, req *productmodel.UpdateProductRequest) (*productmodel.Product, error) {
	return nil, nil
}

func (f *fakeProductCatalog) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return nil
}

func (f *fakeProductCatalog) GetByID(ctx context.Context, id uuid.UUID) (*productmodel.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductCatalog) ListActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]productmodel.Product, error) {
	return nil, nil
}

func (f *fakeProductCatalog) ListAll(ctx context.Context) ([]productmodel.Product, error) {
	return nil, nil
}

func (f *fakeProductCatalog) AttachImage(ctx context.Context, id uuid.UUID, data []byte, contentType string) (string, error) {
	return "", nil
}

type fakeCartRepository struct {
	carts map[uuid.UUID]*model.Cart // keyed by customer id
	items map[uuid.UUID][]model.CartItem
	names map[uuid.UUID]string
}

func newFakeCartRepository() *fakeCartRepository {
	return &fakeCartRepository{
		carts: make(map[uuid.UUID]*model.Cart),
		items: make(map[uuid.UUID][]model.CartItem),
		names: make(map[uuid.UUID]string),
	}
}

func (f *fakeCartRepository) GetOrCreate(ctx context.Context, customerID uuid.UUID) (*model.Cart, error) {
	if cart, ok := f.carts[customerID]; ok {
		return cart, nil
	}
	cart := &model.Cart{
		ID:             uuid.New(),
		CustomerID:     customerID,
		DeliveryMethod: model.DeliveryMethodPickup,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	f.carts[customerID] = cart
	return cart, nil
}

func (f *fakeCartRepository) GetByCustomer(ctx context.Context, customerID uuid.UUID) (*model.Cart, error) {
	return f.carts[customerID], nil
}

func (f *fakeCartRepository) UpdateDelivery(ctx context.Context, cartID uuid.UUID, method string, address *string) error {
	for _, cart := range f.carts {
		if cart.ID == cartID {
			cart.DeliveryMethod = method
			cart.DeliveryAddress = address
			return nil
		}
	}
	return model.ErrCartNotFound
}

func (f *fakeCartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error) {
	return f.items[cartID], nil
}

func (f *fakeCartRepository) ListItemsDetailed(ctx context.Context, cartID uuid.UUID) ([]model.ItemDetail, error) {
	var details []model.ItemDetail
	for _, item := range f.items[cartID] {
		details = append(details, model.ItemDetail{
			CartItem:    item,
			ProductName: f.names[item.ProductID],
		})
	}
	return details, nil
}

func (f *fakeCartRepository) AddItem(ctx context.Context, item *model.CartItem) error {
	f.items[item.CartID] = append(f.items[item.CartID], *item)
	return nil
}

func (f *fakeCartRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	for cartID, items := range f.items {
		for i := range items {
			if items[i].ID == itemID {
				f.items[cartID][i].Quantity = quantity
				return nil
			}
		}
	}
	return model.ErrCartItemNotFound
}

func (f *fakeCartRepository) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	for cartID, items := range f.items {
		for i := range items {
			if items[i].ID == itemID {
				f.items[cartID] = append(items[:i], items[i+1:]...)
				return nil
			}
		}
	}
	return model.ErrCartItemNotFound
}

func (f *fakeCartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	f.items[cartID] = nil
	return nil
}

func (f *fakeCartRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func newTestProduct(name string, price string) *productmodel.Product {
	return &productmodel.Product{
		ID:       uuid.New(),
		Name:     name,
		Price:    decimal.RequireFromString(price),
		IsActive: true,
	}
}

func newTestService(products ...*productmodel.Product) (*cartService, *fakeCartRepository) {
	repo := newFakeCartRepository()
	catalog := &fakeProductCatalog{products: make(map[uuid.UUID]*productmodel.Product)}
	for _, p := range products {
		catalog.products[p.ID] = p
		repo.names[p.ID] = p.Name
	}

	svc := NewCartService(repo, catalog, decimal.RequireFromString("5.00"), time.UTC).(*cartService)
	return svc, repo
}

func TestAddItemMergesEqualSelections(t *testing.T) {
	ctx := context.Background()
	bread := newTestProduct("Kubaneh", "25.00")
	svc, repo := newTestService(bread)
	customerID := uuid.New()

	options := []model.SelectedOption{{Key: "type", Value: "classic"}}
	bread.Options = []productmodel.OptionGroup{{Key: "type", Values: []string{"classic", "seeded"}}}

	err := svc.AddItem(ctx, customerID, &model.AddItemRequest{
		ProductID: bread.ID, Quantity: 1, Options: options,
	})
	require.NoError(t, err)

	// Price change after the first add must not affect the open line.
	bread.Price = decimal.RequireFromString("30.00")

	err = svc.AddItem(ctx, customerID, &model.AddItemRequest{
		ProductID: bread.ID, Quantity: 2, Options: options,
	})
	require.NoError(t, err)

	cart, err := repo.GetByCustomer(ctx, customerID)
	require.NoError(t, err)
	items, err := repo.ListItems(ctx, cart.ID)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("25.00")))
}

func TestAddItemDifferentOptionsKeepSeparateLines(t *testing.T) {
	ctx := context.Background()
	bread := newTestProduct("Kubaneh", "25.00")
	bread.Options = []productmodel.OptionGroup{{Key: "type", Values: []string{"classic", "seeded"}}}
	svc, repo := newTestService(bread)
	customerID := uuid.New()

	err := svc.AddItem(ctx, customerID, &model.AddItemRequest{
		ProductID: bread.ID, Quantity: 1,
		Options: []model.SelectedOption{{Key: "type", Value: "classic"}},
	})
	require.NoError(t, err)

	err = svc.AddItem(ctx, customerID, &model.AddItemRequest{
		ProductID: bread.ID, Quantity: 1,
		Options: []model.SelectedOption{{Key: "type", Value: "seeded"}},
	})
	require.NoError(t, err)

	cart, _ := repo.GetByCustomer(ctx, customerID)
	items, _ := repo.ListItems(ctx, cart.ID)
	assert.Len(t, items, 2)
}

func TestAddItemRejectsUnknownOption(t *testing.T) {
	ctx := context.Background()
	bread := newTestProduct("Kubaneh", "25.00")
	bread.Options = []productmodel.OptionGroup{{Key: "type", Values: []string{"classic"}}}
	svc, _ := newTestService(bread)

	err := svc.AddItem(ctx, uuid.New(), &model.AddItemRequest{
		ProductID: bread.ID, Quantity: 1,
		Options: []model.SelectedOption{{Key: "type", Value: "spicy"}},
	})
	assert.ErrorIs(t, err, model.ErrUnknownOption)
}

func TestAddItemRejectsDuplicateOptionKey(t *testing.T) {
	ctx := context.Background()
	bread := newTestProduct("Kubaneh", "25.00")
	bread.Options = []productmodel.OptionGroup{{Key: "type", Values: []string{"classic", "seeded"}}}
	svc, _ := newTestService(bread)

	err := svc.AddItem(ctx, uuid.New(), &model.AddItemRequest{
		ProductID: bread.ID, Quantity: 1,
		Options: []model.SelectedOption{
			{Key: "type", Value: "classic"},
			{Key: "type", Value: "seeded"},
		},
	})
	assert.ErrorIs(t, err, model.ErrDuplicateOption)
}

func TestCartClockRunsInBusinessLocation(t *testing.T) {
	repo := newFakeCartRepository()
	catalog := &fakeProductCatalog{products: make(map[uuid.UUID]*productmodel.Product)}
	loc := time.FixedZone("UTC+3", 3*3600)

	svc := NewCartService(repo, catalog, decimal.RequireFromString("5.00"), loc).(*cartService)
	assert.Equal(t, "UTC+3", svc.now().Location().String())
}

func TestAddItemUnavailableProduct(t *testing.T) {
	ctx := context.Background()
	hilbeh := newTestProduct("Hilbeh", "15.00")
	hilbeh.Availability = &productmodel.Availability{
		Weekdays: []string{"wednesday", "thursday", "friday"},
		Start:    "09:00",
		End:      "18:00",
	}
	svc, _ := newTestService(hilbeh)

	// 2026-08-24 is a Monday.
	svc.now = func() time.Time {
		return time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	}

	err := svc.AddItem(ctx, uuid.New(), &model.AddItemRequest{ProductID: hilbeh.ID, Quantity: 1})
	assert.ErrorIs(t, err, productmodel.ErrProductUnavailable)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	bread := newTestProduct("Kubaneh", "25.00")
	svc, repo := newTestService(bread)
	customerID := uuid.New()

	require.NoError(t, svc.AddItem(ctx, customerID, &model.AddItemRequest{ProductID: bread.ID, Quantity: 2}))

	cart, _ := repo.GetByCustomer(ctx, customerID)
	items, _ := repo.ListItems(ctx, cart.ID)
	require.Len(t, items, 1)

	require.NoError(t, svc.UpdateQuantity(ctx, customerID, items[0].ID, 0))

	items, _ = repo.ListItems(ctx, cart.ID)
	assert.Empty(t, items)
}

func TestUpdateQuantityForeignItemRejected(t *testing.T) {
	ctx := context.Background()
	bread := newTestProduct("Kubaneh", "25.00")
	svc, repo := newTestService(bread)
	owner := uuid.New()
	stranger := uuid.New()

	require.NoError(t, svc.AddItem(ctx, owner, &model.AddItemRequest{ProductID: bread.ID, Quantity: 1}))
	cart, _ := repo.GetByCustomer(ctx, owner)
	items, _ := repo.ListItems(ctx, cart.ID)

	err := svc.UpdateQuantity(ctx, stranger, items[0].ID, 5)
	assert.ErrorIs(t, err, model.ErrCartNotFound)
}

func TestSetDeliveryRequiresAddress(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	customerID := uuid.New()

	err := svc.SetDelivery(ctx, customerID, &model.SetDeliveryRequest{Method: model.DeliveryMethodDelivery})
	assert.ErrorIs(t, err, model.ErrMissingAddress)

	address := "10 Herzl St, Tel Aviv"
	err = svc.SetDelivery(ctx, customerID, &model.SetDeliveryRequest{
		Method:  model.DeliveryMethodDelivery,
		Address: &address,
	})
	assert.NoError(t, err)
}

func TestSetDeliveryPickupClearsAddress(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	customerID := uuid.New()

	address := "10 Herzl St, Tel Aviv"
	require.NoError(t, svc.SetDelivery(ctx, customerID, &model.SetDeliveryRequest{
		Method:  model.DeliveryMethodDelivery,
		Address: &address,
	}))
	require.NoError(t, svc.SetDelivery(ctx, customerID, &model.SetDeliveryRequest{
		Method: model.DeliveryMethodPickup,
	}))

	cart, _ := repo.GetByCustomer(ctx, customerID)
	assert.Equal(t, model.DeliveryMethodPickup, cart.DeliveryMethod)
	assert.Nil(t, cart.DeliveryAddress)
}

func TestSummaryTotalsWithDeliveryFee(t *testing.T) {
	ctx := context.Background()
	bread := newTestProduct("Kubaneh", "25.00")
	hilbeh := newTestProduct("Hilbeh", "15.00")
	svc, _ := newTestService(bread, hilbeh)
	customerID := uuid.New()

	require.NoError(t, svc.AddItem(ctx, customerID, &model.AddItemRequest{ProductID: bread.ID, Quantity: 2}))
	require.NoError(t, svc.AddItem(ctx, customerID, &model.AddItemRequest{ProductID: hilbeh.ID, Quantity: 1}))

	address := "10 Herzl St, Tel Aviv"
	require.NoError(t, svc.SetDelivery(ctx, customerID, &model.SetDeliveryRequest{
		Method:  model.DeliveryMethodDelivery,
		Address: &address,
	}))

	summary, err := svc.Summary(ctx, customerID, "en")
	require.NoError(t, err)

	require.Len(t, summary.Lines, 2)
	assert.True(t, summary.Subtotal.Equal(decimal.RequireFromString("65.00")), "subtotal %s", summary.Subtotal)
	assert.True(t, summary.DeliveryFee.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("70.00")), "total %s", summary.Total)
}

func TestSummaryPickupHasNoFee(t *testing.T) {
	ctx := context.Background()
	bread := newTestProduct("Kubaneh", "25.00")
	svc, _ := newTestService(bread)
	customerID := uuid.New()

	require.NoError(t, svc.AddItem(ctx, customerID, &model.AddItemRequest{ProductID: bread.ID, Quantity: 1}))

	summary, err := svc.Summary(ctx, customerID, "en")
	require.NoError(t, err)

	assert.True(t, summary.DeliveryFee.IsZero())
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("25.00")))
}

func TestClearEmptiesItemsButKeepsCart(t *testing.T) {
	ctx := context.Background()
	bread := newTestProduct("Kubaneh", "25.00")
	svc, repo := newTestService(bread)
	customerID := uuid.New()

	require.NoError(t, svc.AddItem(ctx, customerID, &model.AddItemRequest{ProductID: bread.ID, Quantity: 1}))
	require.NoError(t, svc.Clear(ctx, customerID))

	cart, err := repo.GetByCustomer(ctx, customerID)
	require.NoError(t, err)
	require.NotNil(t, cart)

	summary, err := svc.Summary(ctx, customerID, "en")
	require.NoError(t, err)
	assert.True(t, summary.IsEmpty())
}
