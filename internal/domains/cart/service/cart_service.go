package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"orderbot-backend/internal/domains/cart/model"
	"orderbot-backend/internal/domains/cart/repository"
	productmodel "orderbot-backend/internal/domains/product/model"
	productservice "orderbot-backend/internal/domains/product/service"
)

type cartService struct {
	repo        repository.RepositoryInterface
	products    productservice.ServiceInterface
	deliveryFee decimal.Decimal
	now         func() time.Time
}

// NewCartService builds the cart service. Availability checks run on
// the business clock in loc, not host-local time.
func NewCartService(
	repo repository.RepositoryInterface,
	products productservice.ServiceInterface,
	deliveryFee decimal.Decimal,
	loc *time.Location,
) ServiceInterface {
	return &cartService{
		repo:        repo,
		products:    products,
		deliveryFee: deliveryFee,
		now:         func() time.Time { return time.Now().In(loc) },
	}
}

func (s *cartService) GetOrCreate(ctx context.Context, customerID uuid.UUID) (*model.Cart, error) {
	return s.repo.GetOrCreate(ctx, customerID)
}

func (s *cartService) AddItem(ctx context.Context, customerID uuid.UUID, req *model.AddItemRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	product, err := s.products.GetOrderable(ctx, req.ProductID, s.now())
	if err != nil {
		return err
	}
	if err := validateOptions(product, req.Options); err != nil {
		return err
	}

	cart, err := s.repo.GetOrCreate(ctx, customerID)
	if err != nil {
		return err
	}

	items, err := s.repo.ListItems(ctx, cart.ID)
	if err != nil {
		return err
	}

	for i := range items {
		existing := &items[i]
		if existing.ProductID == req.ProductID && model.SameOptions(existing.Options, req.Options) {
			return s.repo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+req.Quantity)
		}
	}

	now := s.now()
	item := &model.CartItem{
		ID:           uuid.New(),
		CartID:       cart.ID,
		ProductID:    product.ID,
		Quantity:     req.Quantity,
		UnitPrice:    product.Price,
		Options:      req.Options,
		Instructions: req.Instructions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.AddItem(ctx, item)
}

func validateOptions(product *productmodel.Product, selected []model.SelectedOption) error {
	seen := make(map[string]bool, len(selected))
	for _, opt := range selected {
		if seen[opt.Key] {
			return model.ErrDuplicateOption
		}
		seen[opt.Key] = true

		matched := false
		for _, group := range product.Options {
			if group.Key != opt.Key {
				continue
			}
			for _, v := range group.Values {
				if v == opt.Value {
					matched = true
					break
				}
			}
			break
		}
		if !matched {
			return model.ErrUnknownOption
		}
	}
	return nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, customerID, itemID uuid.UUID, quantity int) error {
	item, err := s.findItem(ctx, customerID, itemID)
	if err != nil {
		return err
	}

	if quantity <= 0 {
		return s.repo.RemoveItem(ctx, item.ID)
	}

	return s.repo.UpdateItemQuantity(ctx, item.ID, quantity)
}

func (s *cartService) RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) error {
	item, err := s.findItem(ctx, customerID, itemID)
	if err != nil {
		return err
	}

	return s.repo.RemoveItem(ctx, item.ID)
}

func (s *cartService) Clear(ctx context.Context, customerID uuid.UUID) error {
	cart, err := s.repo.GetByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}

	return s.repo.ClearItems(ctx, cart.ID)
}

func (s *cartService) SetDelivery(ctx context.Context, customerID uuid.UUID, req *model.SetDeliveryRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	cart, err := s.repo.GetOrCreate(ctx, customerID)
	if err != nil {
		return err
	}

	if req.Method == model.DeliveryMethodPickup {
		// Pickup keeps no address on the cart.
		return s.repo.UpdateDelivery(ctx, cart.ID, req.Method, nil)
	}

	address := req.Address
	if address == nil {
		address = cart.DeliveryAddress
	}
	if address == nil || *address == "" {
		return model.ErrMissingAddress
	}

	return s.repo.UpdateDelivery(ctx, cart.ID, req.Method, address)
}

func (s *cartService) Summary(ctx context.Context, customerID uuid.UUID, lang string) (*model.Summary, error) {
	cart, err := s.repo.GetOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListItemsDetailed(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	return model.BuildSummary(cart, items, s.deliveryFee, lang), nil
}

// findItem resolves an item id within the customer's own cart, so one
// customer cannot touch another customer's lines.
func (s *cartService) findItem(ctx context.Context, customerID, itemID uuid.UUID) (*model.CartItem, error) {
	cart, err := s.repo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}

	items, err := s.repo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID == itemID {
			return &items[i], nil
		}
	}

	return nil, model.ErrCartItemNotFound
}
