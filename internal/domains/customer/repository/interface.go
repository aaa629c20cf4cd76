package repository

import (
	"context"

	"github.com/google/uuid"

	"orderbot-backend/internal/domains/customer/model"
)

// RepositoryInterface is the persistence contract for customers.
type RepositoryInterface interface {
	// GetByTelegramID returns (nil, nil) when the customer is unknown.
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	Create(ctx context.Context, customer *model.Customer) error
	Update(ctx context.Context, customer *model.Customer) error
	UpdateLanguage(ctx context.Context, telegramID int64, language string) error
	UpdateAddress(ctx context.Context, telegramID int64, address string) error
	List(ctx context.Context, limit, offset int) ([]model.Customer, error)
}
