package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
)

// CatalogService manages product categories, products and price tiers.
// A category carries exactly one calculation method; products inherit it.
type CatalogService struct {
	categoryRepo *repository.CategoryRepository
	productRepo  *repository.ProductRepository
	logger       *zap.Logger
}

func NewCatalogService(
	categoryRepo *repository.CategoryRepository,
	productRepo *repository.ProductRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// Categories

func (s *CatalogService) CreateCategory(ctx context.Context, req *domain.CreateCategoryRequest) (*domain.ProductCategory, error) {
	if !req.CalcMethod.IsValid() {
		return nil, fmt.Errorf("%w: unknown calc method %q", ErrInvalidInput, req.CalcMethod)
	}

	category := &domain.ProductCategory{
		Name:         req.Name,
		Description:  req.Description,
		CalcMethod:   req.CalcMethod,
		Conditions:   req.Conditions,
		Requirements: req.Requirements,
		IsActive:     true,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *CatalogService) GetCategoryByID(ctx context.Context, id uuid.UUID) (*domain.ProductCategory, error) {
	category, err := s.categoryRepo.GetWithProducts(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *domain.UpdateCategoryRequest) (*domain.ProductCategory, error) {
	if !req.CalcMethod.IsValid() {
		return nil, fmt.Errorf("%w: unknown calc method %q", ErrInvalidInput, req.CalcMethod)
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	category.Name = req.Name
	category.Description = req.Description
	category.CalcMethod = req.CalcMethod
	category.Conditions = req.Conditions
	category.Requirements = req.Requirements
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	count, err := s.categoryRepo.GetProductsCount(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return ErrCategoryHasProducts
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context, page, pageSize int, search string, activeOnly bool) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePage(page, pageSize)

	categories, total, err := s.categoryRepo.List(ctx, page, pageSize, search, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return paginated(categories, total, page, pageSize), nil
}

// Products

func (s *CatalogService) CreateProduct(ctx context.Context, req *domain.CreateProductRequest) (*domain.Product, error) {
	if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category not found", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	product := &domain.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Unit:        req.Unit,
		BasePrice:   req.BasePrice,
		RetailPrice: req.RetailPrice,
		CostPrice:   req.CostPrice,
		IsActive:    true,
	}
	for _, tier := range req.PriceTiers {
		if err := validateTier(tier); err != nil {
			return nil, err
		}
		product.PriceTiers = append(product.PriceTiers, domain.ProductPriceTier{
			MinWidthCM:    tier.MinWidthCM,
			MaxWidthCM:    tier.MaxWidthCM,
			Price:         tier.Price,
			PlatformPrice: tier.PlatformPrice,
			SortOrder:     tier.SortOrder,
		})
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *CatalogService) GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if req.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: category not found", ErrInvalidInput)
			}
			return nil, fmt.Errorf("failed to get category: %w", err)
		}
	}

	product.CategoryID = req.CategoryID
	product.Name = req.Name
	product.Code = req.Code
	product.Description = req.Description
	product.Unit = req.Unit
	product.BasePrice = req.BasePrice
	product.RetailPrice = req.RetailPrice
	product.CostPrice = req.CostPrice
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.Category = nil
	product.PriceTiers = nil

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.GetProductByID(ctx, id)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *CatalogService) ListProducts(ctx context.Context, page, pageSize int, search string, categoryID *uuid.UUID, activeOnly bool) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePage(page, pageSize)

	products, total, err := s.productRepo.List(ctx, page, pageSize, search, categoryID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return paginated(products, total, page, pageSize), nil
}

// ReplaceTiers swaps a product's full tier set. Ranges may overlap; pricing
// picks the first matching tier in sort order.
func (s *CatalogService) ReplaceTiers(ctx context.Context, productID uuid.UUID, tiers []domain.CreatePriceTierRequest) ([]domain.ProductPriceTier, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	rows := make([]domain.ProductPriceTier, 0, len(tiers))
	for _, tier := range tiers {
		if err := validateTier(tier); err != nil {
			return nil, err
		}
		rows = append(rows, domain.ProductPriceTier{
			MinWidthCM:    tier.MinWidthCM,
			MaxWidthCM:    tier.MaxWidthCM,
			Price:         tier.Price,
			PlatformPrice: tier.PlatformPrice,
			SortOrder:     tier.SortOrder,
		})
	}

	if err := s.productRepo.ReplaceTiers(ctx, productID, rows); err != nil {
		return nil, fmt.Errorf("failed to replace price tiers: %w", err)
	}

	return s.productRepo.GetTiers(ctx, productID)
}

func validateTier(tier domain.CreatePriceTierRequest) error {
	if tier.MaxWidthCM < tier.MinWidthCM {
		return fmt.Errorf("%w: tier max width %.2f is below min width %.2f",
			ErrInvalidInput, tier.MaxWidthCM, tier.MinWidthCM)
	}
	return nil
}
