package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/domain"
)

type CorporateRepository struct {
	db *gorm.DB
}

func NewCorporateRepository(db *gorm.DB) *CorporateRepository {
	return &CorporateRepository{db: db}
}

func (r *CorporateRepository) Create(ctx context.Context, corp *domain.CorporateCustomer) error {
	return r.db.WithContext(ctx).Create(corp).Error
}

func (r *CorporateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CorporateCustomer, error) {
	var corp domain.CorporateCustomer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&corp).Error
	if err != nil {
		return nil, err
	}
	return &corp, nil
}

func (r *CorporateRepository) Update(ctx context.Context, corp *domain.CorporateCustomer) error {
	return r.db.WithContext(ctx).Save(corp).Error
}

func (r *CorporateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CorporateCustomer{}, "id = ?", id).Error
}

func (r *CorporateRepository) List(ctx context.Context, page, pageSize int, search string) ([]domain.CorporateCustomer, int64, error) {
	var corps []domain.CorporateCustomer
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.CorporateCustomer{})

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(company_name) LIKE ? OR tax_id LIKE ?", searchPattern, "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(page, pageSize)).Order("created_at DESC").Find(&corps).Error

	return corps, total, err
}
