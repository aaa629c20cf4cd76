package service

import (
	"context"

	"github.com/google/uuid"

	"orderbot-backend/internal/domains/cart/model"
)

type ServiceInterface interface {
	GetOrCreate(ctx context.Context, customerID uuid.UUID) (*model.Cart, error)
	// AddItem merges into an existing line when product and options are
	// equal, keeping the unit price captured at first add.
	AddItem(ctx context.Context, customerID uuid.UUID, req *model.AddItemRequest) error
	// UpdateQuantity removes the line when the quantity drops to zero or
	// below.
	UpdateQuantity(ctx context.Context, customerID, itemID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) error
	Clear(ctx context.Context, customerID uuid.UUID) error
	SetDelivery(ctx context.Context, customerID uuid.UUID, req *model.SetDeliveryRequest) error
	Summary(ctx context.Context, customerID uuid.UUID, lang string) (*model.Summary, error)
}
