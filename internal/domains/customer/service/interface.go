package service

import (
	"context"

	"orderbot-backend/internal/domains/customer/model"
)

type ServiceInterface interface {
	// Register creates the customer on first contact or refreshes the
	// profile on repeat registration.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.Customer, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Customer, error)
	SetLanguage(ctx context.Context, telegramID int64, language string) error
	SetAddress(ctx context.Context, telegramID int64, address string) error
	List(ctx context.Context, limit, offset int) ([]model.Customer, error)
}
