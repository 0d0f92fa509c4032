package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/domain"
)

type SpecSheetRepository struct {
	db *gorm.DB
}

func NewSpecSheetRepository(db *gorm.DB) *SpecSheetRepository {
	return &SpecSheetRepository{db: db}
}

// Create persists a sheet and its items in one transaction
func (r *SpecSheetRepository) Create(ctx context.Context, sheet *domain.SpecSheet) error {
	return r.db.WithContext(ctx).Create(sheet).Error
}

func (r *SpecSheetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SpecSheet, error) {
	var sheet domain.SpecSheet
	err := r.db.WithContext(ctx).
		Preload("Bill").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Where("id = ?", id).
		First(&sheet).Error
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (r *SpecSheetRepository) Update(ctx context.Context, sheet *domain.SpecSheet) error {
	return r.db.WithContext(ctx).Save(sheet).Error
}

func (r *SpecSheetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.SpecSheet{}, "id = ?", id).Error
}

func (r *SpecSheetRepository) List(ctx context.Context, page, pageSize int, billID *uuid.UUID, status domain.SpecSheetStatus) ([]domain.SpecSheet, int64, error) {
	var sheets []domain.SpecSheet
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.SpecSheet{})

	if billID != nil {
		query = query.Where("bill_id = ?", *billID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Bill").
		Scopes(Paginate(page, pageSize)).
		Order("created_at DESC").
		Find(&sheets).Error

	return sheets, total, err
}

func (r *SpecSheetRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*domain.SpecSheetItem, error) {
	var item domain.SpecSheetItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *SpecSheetRepository) UpdateItem(ctx context.Context, item *domain.SpecSheetItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}
