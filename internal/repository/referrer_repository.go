package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/domain"
)

type ReferrerRepository struct {
	db *gorm.DB
}

func NewReferrerRepository(db *gorm.DB) *ReferrerRepository {
	return &ReferrerRepository{db: db}
}

func (r *ReferrerRepository) Create(ctx context.Context, referrer *domain.Referrer) error {
	return r.db.WithContext(ctx).Create(referrer).Error
}

func (r *ReferrerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Referrer, error) {
	var referrer domain.Referrer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&referrer).Error
	if err != nil {
		return nil, err
	}
	return &referrer, nil
}

func (r *ReferrerRepository) Update(ctx context.Context, referrer *domain.Referrer) error {
	return r.db.WithContext(ctx).Save(referrer).Error
}

func (r *ReferrerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Referrer{}, "id = ?", id).Error
}

func (r *ReferrerRepository) List(ctx context.Context, page, pageSize int, search string, activeOnly bool) ([]domain.Referrer, int64, error) {
	var referrers []domain.Referrer
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Referrer{})

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

	err := query.Scopes(Paginate(page, pageSize)).Order("name ASC").Find(&referrers).Error

	return referrers, total, err
}

// GetReferredCount counts customers credited to a referrer
func (r *ReferrerRepository) GetReferredCount(ctx context.Context, referrerID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Customer{}).Where("referrer_id = ?", referrerID).Count(&count).Error
	return int(count), err
}
