package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
)

func newCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	db := openServiceDB(t)
	return NewCatalogService(
		repository.NewCategoryRepository(db),
		repository.NewProductRepository(db),
		zap.NewNop(),
	)
}

func TestCreateCategory_RejectsUnknownCalcMethod(t *testing.T) {
	svc := newCatalogService(t)

	_, err := svc.CreateCategory(context.Background(), &domain.CreateCategoryRequest{
		Name:       "ม่านจีบ",
		CalcMethod: domain.CalcMethod("per_window"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateCategory_PersistsDescriptionAndFlags(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, &domain.CreateCategoryRequest{
		Name:        "Venetian blinds",
		Description: "Aluminium slat blinds, priced per square metre",
		CalcMethod:  domain.CalcMethodAreaSqm,
		Requirements: domain.ProductionRequirements{
			NeedsFrameWidth: true,
			// production sizes explicitly switched off must stay off
			NeedsProductionWidth:  false,
			NeedsProductionHeight: false,
		},
	})
	require.NoError(t, err)

	reloaded, err := svc.GetCategoryByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aluminium slat blinds, priced per square metre", reloaded.Description)
	assert.True(t, reloaded.Requirements.NeedsFrameWidth)
	assert.False(t, reloaded.Requirements.NeedsProductionWidth)
	assert.False(t, reloaded.Requirements.NeedsProductionHeight)
}

func TestDeleteCategory_BlockedWhileProductsExist(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, &domain.CreateCategoryRequest{
		Name:       "Wallpaper",
		CalcMethod: domain.CalcMethodAreaSqm,
	})
	require.NoError(t, err)

	product, err := svc.CreateProduct(ctx, &domain.CreateProductRequest{
		CategoryID: category.ID,
		Name:       "Vinyl wallpaper, beige",
		BasePrice:  450,
	})
	require.NoError(t, err)

	err = svc.DeleteCategory(ctx, category.ID)
	assert.ErrorIs(t, err, ErrCategoryHasProducts)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))
	assert.NoError(t, svc.DeleteCategory(ctx, category.ID))
}

func TestCreateProduct_RequiresExistingCategory(t *testing.T) {
	svc := newCatalogService(t)

	_, err := svc.CreateProduct(context.Background(), &domain.CreateProductRequest{
		CategoryID: uuid.New(),
		Name:       "Orphan product",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateProduct_WithTiers(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, &domain.CreateCategoryRequest{
		Name:       "Roller blinds",
		CalcMethod: domain.CalcMethodWidthStep,
	})
	require.NoError(t, err)

	product, err := svc.CreateProduct(ctx, &domain.CreateProductRequest{
		CategoryID: category.ID,
		Name:       "Sunscreen roller",
		BasePrice:  1500,
		PriceTiers: []domain.CreatePriceTierRequest{
			{MinWidthCM: 0, MaxWidthCM: 120, Price: 1500},
			{MinWidthCM: 120, MaxWidthCM: 200, Price: 2200, SortOrder: 1},
		},
	})
	require.NoError(t, err)

	reloaded, err := svc.GetProductByID(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.PriceTiers, 2)
	assert.Equal(t, 1500.0, reloaded.PriceTiers[0].Price)
}

func TestCreateProduct_RejectsInvertedTierRange(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, &domain.CreateCategoryRequest{
		Name:       "Roman blinds",
		CalcMethod: domain.CalcMethodWidthStep,
	})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, &domain.CreateProductRequest{
		CategoryID: category.ID,
		Name:       "Linen roman",
		PriceTiers: []domain.CreatePriceTierRequest{
			{MinWidthCM: 200, MaxWidthCM: 100, Price: 900},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReplaceTiers(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, &domain.CreateCategoryRequest{
		Name:       "Vertical blinds",
		CalcMethod: domain.CalcMethodWidthHeightStep,
	})
	require.NoError(t, err)

	product, err := svc.CreateProduct(ctx, &domain.CreateProductRequest{
		CategoryID: category.ID,
		Name:       "Fabric vertical",
		PriceTiers: []domain.CreatePriceTierRequest{
			{MinWidthCM: 0, MaxWidthCM: 100, Price: 1000},
		},
	})
	require.NoError(t, err)

	tiers, err := svc.ReplaceTiers(ctx, product.ID, []domain.CreatePriceTierRequest{
		{MinWidthCM: 0, MaxWidthCM: 150, Price: 1200},
		{MinWidthCM: 150, MaxWidthCM: 300, Price: 1900, SortOrder: 1},
		{MinWidthCM: 300, MaxWidthCM: 450, Price: 2600, SortOrder: 2},
	})
	require.NoError(t, err)
	assert.Len(t, tiers, 3)

	reloaded, err := svc.GetProductByID(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.PriceTiers, 3)
	assert.Equal(t, 1200.0, reloaded.PriceTiers[0].Price)
}

func TestReplaceTiers_UnknownProduct(t *testing.T) {
	svc := newCatalogService(t)

	_, err := svc.ReplaceTiers(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}
