package repository

import (
	"context"

	"github.com/google/uuid"

	"orderbot-backend/internal/domains/product/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	SetImageKey(ctx context.Context, id uuid.UUID, imageKey string) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	// ListActiveByCategory returns active products of a category ordered
	// by name.
	ListActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)
}
