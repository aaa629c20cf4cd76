package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderbot-backend/internal/domains/category/model"
	"orderbot-backend/pkg/cache"
)

type fakeCategoryRepository struct {
	categories      map[uuid.UUID]*model.Category
	listActiveCalls int
}

func newFakeCategoryRepository() *fakeCategoryRepository {
	return &fakeCategoryRepository{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *fakeCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	c := *category
	r.categories[category.ID] = &c
	return nil
}

func (r *fakeCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return model.ErrCategoryNotFound
	}
	c := *category
	r.categories[category.ID] = &c
	return nil
}

func (r *fakeCategoryRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	c, ok := r.categories[id]
	if !ok {
		return model.ErrCategoryNotFound
	}
	c.IsActive = active
	return nil
}

func (r *fakeCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (r *fakeCategoryRepository) ListActive(ctx context.Context) ([]model.Category, error) {
	r.listActiveCalls++
	var out []model.Category
	for _, c := range r.categories {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepository) ListAll(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func TestListActiveReadsThroughCache(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCategoryRepository()
	svc := NewCategoryService(repo, cache.NewMemoryCache(), time.Minute)

	_, err := svc.Create(ctx, &model.CreateCategoryRequest{Name: "Bread"})
	require.NoError(t, err)

	first, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)

	// Second read comes from the cache.
	assert.Equal(t, 1, repo.listActiveCalls)
}

func TestWritesInvalidateCachedListing(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCategoryRepository()
	svc := NewCategoryService(repo, cache.NewMemoryCache(), time.Minute)

	created, err := svc.Create(ctx, &model.CreateCategoryRequest{Name: "Bread"})
	require.NoError(t, err)

	_, err = svc.ListActive(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, repo.listActiveCalls)

	require.NoError(t, svc.SetActive(ctx, created.ID, false))

	listed, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Equal(t, 2, repo.listActiveCalls)
}

func TestCreateFillsHebrewVariantFromName(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCategoryRepository()
	svc := NewCategoryService(repo, cache.NewMemoryCache(), time.Minute)

	created, err := svc.Create(ctx, &model.CreateCategoryRequest{Name: "מאפים"})
	require.NoError(t, err)

	require.NotNil(t, created.NameHE)
	assert.Equal(t, "מאפים", *created.NameHE)
	assert.Nil(t, created.NameEN)
}

func TestUpdateUnknownCategory(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(newFakeCategoryRepository(), cache.NewMemoryCache(), time.Minute)

	name := "Pastries"
	_, err := svc.Update(ctx, uuid.New(), &model.UpdateCategoryRequest{Name: &name})
	assert.ErrorIs(t, err, model.ErrCategoryNotFound)
}
