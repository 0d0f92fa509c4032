package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/domain"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *InventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *InventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.InventoryItem{}, "id = ?", id).Error
}

func (r *InventoryRepository) List(ctx context.Context, page, pageSize int, search string, activeOnly bool) ([]domain.InventoryItem, int64, error) {
	var items []domain.InventoryItem
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.InventoryItem{})

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

	err := query.Scopes(Paginate(page, pageSize)).Order("name ASC").Find(&items).Error

	return items, total, err
}

// ListLowStock returns active items whose quantity fell below their minimum.
// Items with min_qty = 0 never count as low.
func (r *InventoryRepository) ListLowStock(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND min_qty > 0 AND quantity < min_qty", true).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

// AdjustQuantity applies a signed delta to an item's stock level
func (r *InventoryRepository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta float64) error {
	return r.db.WithContext(ctx).Model(&domain.InventoryItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}
