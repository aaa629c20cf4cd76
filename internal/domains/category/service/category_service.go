package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"orderbot-backend/internal/domains/category/model"
	"orderbot-backend/internal/domains/category/repository"
	"orderbot-backend/internal/shared/i18n"
	"orderbot-backend/pkg/cache"
	"orderbot-backend/pkg/logger"
)

const activeCategoriesKey = "catalog:categories:active"

type categoryService struct {
	repo     repository.RepositoryInterface
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewCategoryService(repo repository.RepositoryInterface, cache cache.Cache, cacheTTL time.Duration) ServiceInterface {
	return &categoryService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (s *categoryService) Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	category := &model.Category{
		ID:           uuid.New(),
		Name:         req.Name,
		NameEN:       req.NameEN,
		NameHE:       req.NameHE,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Fill the variant slot matching the default name's detected script
	// so lookups in that language hit an override instead of the default.
	switch i18n.DetectLanguage(req.Name) {
	case i18n.LangHebrew:
		if category.NameHE == nil {
			category.NameHE = &req.Name
		}
	case i18n.LangEnglish:
		if category.NameEN == nil {
			category.NameEN = &req.Name
		}
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCategoryRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.NameEN != nil {
		category.NameEN = req.NameEN
	}
	if req.NameHE != nil {
		category.NameHE = req.NameHE
	}
	if req.DisplayOrder != nil {
		category.DisplayOrder = *req.DisplayOrder
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return category, nil
}

func (s *categoryService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}
	return category, nil
}

// ListActive is read-through cached: the menu is read on every bot
// interaction while admin writes are rare.
func (s *categoryService) ListActive(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	found, err := s.cache.Get(ctx, activeCategoriesKey, &cached)
	if err != nil {
		logger.Error("category cache read failed", err)
	}
	if found {
		return cached, nil
	}

	categories, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, activeCategoriesKey, categories, s.cacheTTL); err != nil {
		logger.Error("category cache write failed", err)
	}

	return categories, nil
}

func (s *categoryService) ListAll(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListAll(ctx)
}

func (s *categoryService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, activeCategoriesKey); err != nil {
		logger.Error("category cache invalidation failed", err)
	}
	// Product listings embed category names.
	if err := s.cache.DeletePattern(ctx, "catalog:products:*"); err != nil {
		logger.Error("product cache invalidation failed", err)
	}
}
