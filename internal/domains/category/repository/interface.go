package repository

import (
	"context"

	"github.com/google/uuid"

	"orderbot-backend/internal/domains/category/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	// ListActive returns active categories in display order.
	ListActive(ctx context.Context) ([]model.Category, error)
	ListAll(ctx context.Context) ([]model.Category, error)
}
