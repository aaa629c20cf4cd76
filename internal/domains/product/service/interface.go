package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"orderbot-backend/internal/domains/product/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)

	// GetOrderable returns the product only when it is active and its
	// availability constraint allows ordering at the given time.
	GetOrderable(ctx context.Context, id uuid.UUID, at time.Time) (*model.Product, error)

	// AttachImage stores the uploaded image and records its object key.
	AttachImage(ctx context.Context, id uuid.UUID, data []byte, contentType string) (string, error)
}

// ImageStorage is the object-store boundary for product photos.
type ImageStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
