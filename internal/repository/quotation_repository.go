package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/domain"
)

type QuotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

// Create persists the quotation together with its items. gorm cascades the
// item inserts inside one transaction, so a failed item insert rolls back
// the parent row too.
func (r *QuotationRepository) Create(ctx context.Context, quotation *domain.Quotation) error {
	return r.db.WithContext(ctx).Create(quotation).Error
}

func (r *QuotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	var quotation domain.Quotation
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Where("id = ?", id).
		First(&quotation).Error
	if err != nil {
		return nil, err
	}
	return &quotation, nil
}

func (r *QuotationRepository) GetByNumber(ctx context.Context, number string) (*domain.Quotation, error) {
	var quotation domain.Quotation
	err := r.db.WithContext(ctx).
		Where("quotation_number = ?", number).
		First(&quotation).Error
	if err != nil {
		return nil, err
	}
	return &quotation, nil
}

func (r *QuotationRepository) Update(ctx context.Context, quotation *domain.Quotation) error {
	return r.db.WithContext(ctx).Save(quotation).Error
}

func (r *QuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Quotation{}, "id = ?", id).Error
}

func (r *QuotationRepository) List(ctx context.Context, page, pageSize int, search string, status domain.QuotationStatus, customerID, projectID *uuid.UUID) ([]domain.Quotation, int64, error) {
	var quotations []domain.Quotation
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Quotation{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(quotation_number) LIKE ?", searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Customer").
		Scopes(Paginate(page, pageSize)).
		Order("created_at DESC").
		Find(&quotations).Error

	return quotations, total, err
}

func (r *QuotationRepository) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Quotation{}).Count(&count).Error
	return int(count), err
}

func (r *QuotationRepository) CountByStatus(ctx context.Context, status domain.QuotationStatus) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Quotation{}).Where("status = ?", status).Count(&count).Error
	return int(count), err
}

// SumByStatus totals grand totals across quotations in a status
func (r *QuotationRepository) SumByStatus(ctx context.Context, status domain.QuotationStatus) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Model(&domain.Quotation{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(grand_total), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *QuotationRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*domain.QuotationItem, error) {
	var item domain.QuotationItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *QuotationRepository) UpdateItem(ctx context.Context, item *domain.QuotationItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *QuotationRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.QuotationItem{}, "id = ?", id).Error
}

func (r *QuotationRepository) ListItems(ctx context.Context, quotationID uuid.UUID) ([]domain.QuotationItem, error) {
	var items []domain.QuotationItem
	err := r.db.WithContext(ctx).
		Where("quotation_id = ?", quotationID).
		Order("sort_order ASC, created_at ASC").
		Find(&items).Error
	return items, err
}
