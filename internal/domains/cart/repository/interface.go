package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"orderbot-backend/internal/domains/cart/model"
)

type RepositoryInterface interface {
	// GetOrCreate returns the customer's cart, creating an empty one on
	// first use.
	GetOrCreate(ctx context.Context, customerID uuid.UUID) (*model.Cart, error)
	GetByCustomer(ctx context.Context, customerID uuid.UUID) (*model.Cart, error)
	UpdateDelivery(ctx context.Context, cartID uuid.UUID, method string, address *string) error

	ListItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error)
	// ListItemsDetailed joins product name columns for display.
	ListItemsDetailed(ctx context.Context, cartID uuid.UUID) ([]model.ItemDetail, error)
	AddItem(ctx context.Context, item *model.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	ClearItems(ctx context.Context, cartID uuid.UUID) error

	// DeleteStale removes empty carts that have not been touched since
	// the cutoff. Returns the number of carts removed.
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}
