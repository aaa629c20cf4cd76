package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"orderbot-backend/internal/domains/customer/model"
	"orderbot-backend/internal/domains/customer/repository"
	"orderbot-backend/internal/shared/i18n"
	"orderbot-backend/internal/shared/utils"
	"orderbot-backend/pkg/logger"
)

type customerService struct {
	repo            repository.RepositoryInterface
	defaultLanguage string
}

func NewCustomerService(repo repository.RepositoryInterface, defaultLanguage string) ServiceInterface {
	return &customerService{
		repo:            repo,
		defaultLanguage: defaultLanguage,
	}
}

func (s *customerService) Register(ctx context.Context, req *model.RegisterRequest) (*model.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	phone := utils.SanitizePhone(req.Phone)

	language := req.Language
	if !i18n.IsSupported(language) {
		language = s.defaultLanguage
	}

	existing, err := s.repo.GetByTelegramID(ctx, req.TelegramID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.FullName = req.FullName
		existing.PhoneNumber = phone
		existing.Language = language
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	now := time.Now()
	customer := &model.Customer{
		ID:          uuid.New(),
		TelegramID:  req.TelegramID,
		FullName:    req.FullName,
		PhoneNumber: phone,
		Language:    language,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	logger.Info("customer registered", map[string]interface{}{
		"telegram_id": customer.TelegramID,
		"language":    customer.Language,
	})

	return customer, nil
}

func (s *customerService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Customer, error) {
	return s.repo.GetByTelegramID(ctx, telegramID)
}

func (s *customerService) SetLanguage(ctx context.Context, telegramID int64, language string) error {
	if !i18n.IsSupported(language) {
		return model.ErrInvalidLanguage
	}
	return s.repo.UpdateLanguage(ctx, telegramID, language)
}

func (s *customerService) SetAddress(ctx context.Context, telegramID int64, address string) error {
	req := model.UpdateAddressRequest{Address: address}
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.UpdateAddress(ctx, telegramID, address)
}

func (s *customerService) List(ctx context.Context, limit, offset int) ([]model.Customer, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.List(ctx, limit, offset)
}
