package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/domain"
)

// CategoryRepository handles database operations for product categories
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.ProductCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProductCategory, error) {
	var category domain.ProductCategory
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) GetWithProducts(ctx context.Context, id uuid.UUID) (*domain.ProductCategory, error) {
	var category domain.ProductCategory
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Preload("Products.PriceTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, min_width_cm ASC")
		}).
		Where("id = ?", id).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.ProductCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ProductCategory{}, "id = ?", id).Error
}

func (r *CategoryRepository) List(ctx context.Context, page, pageSize int, search string, activeOnly bool) ([]domain.ProductCategory, int64, error) {
	var categories []domain.ProductCategory
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.ProductCategory{})

	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(page, pageSize)).Order("name ASC").Find(&categories).Error

	return categories, total, err
}

func (r *CategoryRepository) GetProductsCount(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	return int(count), err
}

// ProductRepository handles database operations for products and their price tiers
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("PriceTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, min_width_cm ASC")
		}).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id).Error
}

func (r *ProductRepository) List(ctx context.Context, page, pageSize int, search string, categoryID *uuid.UUID, activeOnly bool) ([]domain.Product, int64, error) {
	var products []domain.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Product{})

	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Category").
		Scopes(Paginate(page, pageSize)).
		Order("name ASC").
		Find(&products).Error

	return products, total, err
}

// ReplaceTiers swaps a product's full tier set in one transaction
func (r *ProductRepository) ReplaceTiers(ctx context.Context, productID uuid.UUID, tiers []domain.ProductPriceTier) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&domain.ProductPriceTier{}).Error; err != nil {
			return err
		}
		if len(tiers) == 0 {
			return nil
		}
		for i := range tiers {
			tiers[i].ProductID = productID
		}
		return tx.Create(&tiers).Error
	})
}

func (r *ProductRepository) GetTiers(ctx context.Context, productID uuid.UUID) ([]domain.ProductPriceTier, error) {
	var tiers []domain.ProductPriceTier
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("sort_order ASC, min_width_cm ASC").
		Find(&tiers).Error
	return tiers, err
}
