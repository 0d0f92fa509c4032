package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/domain"
)

// MeasurementRepository handles bills and their measurement items
type MeasurementRepository struct {
	db *gorm.DB
}

func NewMeasurementRepository(db *gorm.DB) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

func (r *MeasurementRepository) CreateBill(ctx context.Context, bill *domain.MeasurementBill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *MeasurementRepository) GetBillByID(ctx context.Context, id uuid.UUID) (*domain.MeasurementBill, error) {
	var bill domain.MeasurementBill
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Preload("Items.Category").
		Where("id = ?", id).
		First(&bill).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *MeasurementRepository) GetBillByNumber(ctx context.Context, billNumber string) (*domain.MeasurementBill, error) {
	var bill domain.MeasurementBill
	err := r.db.WithContext(ctx).
		Where("bill_number = ?", billNumber).
		First(&bill).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *MeasurementRepository) UpdateBill(ctx context.Context, bill *domain.MeasurementBill) error {
	return r.db.WithContext(ctx).Save(bill).Error
}

func (r *MeasurementRepository) DeleteBill(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.MeasurementBill{}, "id = ?", id).Error
}

func (r *MeasurementRepository) ListBills(ctx context.Context, page, pageSize int, search string, projectID *uuid.UUID, status domain.BillStatus) ([]domain.MeasurementBill, int64, error) {
	var bills []domain.MeasurementBill
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.MeasurementBill{})

	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(bill_number) LIKE ? OR LOWER(measured_by) LIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Project").
		Scopes(Paginate(page, pageSize)).
		Order("created_at DESC").
		Find(&bills).Error

	return bills, total, err
}

func (r *MeasurementRepository) CountBills(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.MeasurementBill{}).Count(&count).Error
	return int(count), err
}

func (r *MeasurementRepository) CountBillsByStatus(ctx context.Context, status domain.BillStatus) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.MeasurementBill{}).
		Where("status = ?", status).
		Count(&count).Error
	return int(count), err
}

// Items

func (r *MeasurementRepository) CreateItem(ctx context.Context, item *domain.MeasurementItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *MeasurementRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*domain.MeasurementItem, error) {
	var item domain.MeasurementItem
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MeasurementRepository) UpdateItem(ctx context.Context, item *domain.MeasurementItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *MeasurementRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.MeasurementItem{}, "id = ?", id).Error
}

func (r *MeasurementRepository) ListItems(ctx context.Context, billID uuid.UUID) ([]domain.MeasurementItem, error) {
	var items []domain.MeasurementItem
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("bill_id = ?", billID).
		Order("sort_order ASC, created_at ASC").
		Find(&items).Error
	return items, err
}

// GetItemsByIDs fetches the given items, preserving only rows that belong to
// the bill. Used when building a spec sheet from a subset of a bill.
func (r *MeasurementRepository) GetItemsByIDs(ctx context.Context, billID uuid.UUID, ids []uuid.UUID) ([]domain.MeasurementItem, error) {
	var items []domain.MeasurementItem
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("bill_id = ? AND id IN ?", billID, ids).
		Order("sort_order ASC, created_at ASC").
		Find(&items).Error
	return items, err
}
