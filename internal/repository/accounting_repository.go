package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/domain"
)

type AccountingRepository struct {
	db *gorm.DB
}

func NewAccountingRepository(db *gorm.DB) *AccountingRepository {
	return &AccountingRepository{db: db}
}

func (r *AccountingRepository) Create(ctx context.Context, doc *domain.AccountingDoc) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *AccountingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AccountingDoc, error) {
	var doc domain.AccountingDoc
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("id = ?", id).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *AccountingRepository) GetByNumber(ctx context.Context, docNumber string) (*domain.AccountingDoc, error) {
	var doc domain.AccountingDoc
	err := r.db.WithContext(ctx).
		Where("doc_number = ?", docNumber).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *AccountingRepository) Update(ctx context.Context, doc *domain.AccountingDoc) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

func (r *AccountingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.AccountingDoc{}, "id = ?", id).Error
}

func (r *AccountingRepository) List(ctx context.Context, page, pageSize int, search string, docType domain.AccountingDocType, status domain.AccountingDocStatus, customerID *uuid.UUID) ([]domain.AccountingDoc, int64, error) {
	var docs []domain.AccountingDoc
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.AccountingDoc{})

	if docType != "" {
		query = query.Where("doc_type = ?", docType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}
	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(doc_number) LIKE ? OR LOWER(title) LIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Customer").
		Scopes(Paginate(page, pageSize)).
		Order("created_at DESC").
		Find(&docs).Error

	return docs, total, err
}

// SumByTypeAndStatus totals grand totals over a doc type and status
func (r *AccountingRepository) SumByTypeAndStatus(ctx context.Context, docType domain.AccountingDocType, status domain.AccountingDocStatus) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Model(&domain.AccountingDoc{}).
		Where("doc_type = ? AND status = ?", docType, status).
		Select("COALESCE(SUM(grand_total), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *AccountingRepository) CountByTypeAndStatus(ctx context.Context, docType domain.AccountingDocType, status domain.AccountingDocStatus) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.AccountingDoc{}).
		Where("doc_type = ? AND status = ?", docType, status).
		Count(&count).Error
	return int(count), err
}

// ListOverdueCandidates returns issued invoices whose due date has passed
func (r *AccountingRepository) ListOverdueCandidates(ctx context.Context, now time.Time) ([]domain.AccountingDoc, error) {
	var docs []domain.AccountingDoc
	err := r.db.WithContext(ctx).
		Where("doc_type = ? AND status = ? AND due_at IS NOT NULL AND due_at < ?",
			domain.AccountingDocInvoice, domain.AccountingDocStatusIssued, now).
		Order("due_at ASC").
		Find(&docs).Error
	return docs, err
}
