package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"orderbot-backend/internal/domains/product/model"
	"orderbot-backend/internal/domains/product/repository"
	"orderbot-backend/internal/shared/i18n"
	"orderbot-backend/pkg/cache"
	"orderbot-backend/pkg/logger"
)

type productService struct {
	repo     repository.RepositoryInterface
	cache    cache.Cache
	storage  ImageStorage
	cacheTTL time.Duration
}

func NewProductService(
	repo repository.RepositoryInterface,
	cache cache.Cache,
	storage ImageStorage,
	cacheTTL time.Duration,
) ServiceInterface {
	return &productService{
		repo:     repo,
		cache:    cache,
		storage:  storage,
		cacheTTL: cacheTTL,
	}
}

func productsCacheKey(categoryID uuid.UUID) string {
	return "catalog:products:" + categoryID.String()
}

func (s *productService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &model.Product{
		ID:            uuid.New(),
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		NameEN:        req.NameEN,
		NameHE:        req.NameHE,
		Description:   req.Description,
		DescriptionEN: req.DescriptionEN,
		DescriptionHE: req.DescriptionHE,
		Price:         req.Price,
		Options:       req.Options,
		Availability:  req.Availability,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Keep the variant slot matching the detected script of the default
	// name populated, so reads in that language hit an exact override.
	switch i18n.DetectLanguage(req.Name) {
	case i18n.LangHebrew:
		if product.NameHE == nil {
			product.NameHE = &req.Name
		}
	case i18n.LangEnglish:
		if product.NameEN == nil {
			product.NameEN = &req.Name
		}
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.invalidate(ctx, product.CategoryID)
	return product, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	oldCategory := product.CategoryID

	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.NameEN != nil {
		product.NameEN = req.NameEN
	}
	if req.NameHE != nil {
		product.NameHE = req.NameHE
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.DescriptionEN != nil {
		product.DescriptionEN = req.DescriptionEN
	}
	if req.DescriptionHE != nil {
		product.DescriptionHE = req.DescriptionHE
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Options != nil {
		product.Options = req.Options
	}
	if req.Availability != nil {
		product.Availability = req.Availability
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidate(ctx, product.CategoryID)
	if oldCategory != product.CategoryID {
		s.invalidate(ctx, oldCategory)
	}

	return product, nil
}

func (s *productService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return err
	}

	s.invalidate(ctx, product.CategoryID)
	return nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

func (s *productService) ListActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error) {
	key := productsCacheKey(categoryID)

	var cached []model.Product
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Error("product cache read failed", err)
	}
	if found {
		return cached, nil
	}

	products, err := s.repo.ListActiveByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, products, s.cacheTTL); err != nil {
		logger.Error("product cache write failed", err)
	}

	return products, nil
}

func (s *productService) ListAll(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListAll(ctx)
}

func (s *productService) GetOrderable(ctx context.Context, id uuid.UUID, at time.Time) (*model.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	if !product.IsActive || !product.Availability.IsAvailableAt(at) {
		return nil, model.ErrProductUnavailable
	}
	return product, nil
}

func (s *productService) AttachImage(ctx context.Context, id uuid.UUID, data []byte, contentType string) (string, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", model.ErrProductNotFound
	}

	key := fmt.Sprintf("products/%s/%d", id, time.Now().Unix())
	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return "", err
	}

	if err := s.repo.SetImageKey(ctx, id, key); err != nil {
		return "", err
	}

	s.invalidate(ctx, product.CategoryID)
	return url, nil
}

func (s *productService) invalidate(ctx context.Context, categoryID uuid.UUID) {
	if err := s.cache.Delete(ctx, productsCacheKey(categoryID)); err != nil {
		logger.Error("product cache invalidation failed", err)
	}
}
