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

// PartnerService manages referrers and partner stores
type PartnerService struct {
	referrerRepo *repository.ReferrerRepository
	storeRepo    *repository.StoreRepository
	logger       *zap.Logger
}

func NewPartnerService(
	referrerRepo *repository.ReferrerRepository,
	storeRepo *repository.StoreRepository,
	logger *zap.Logger,
) *PartnerService {
	return &PartnerService{
		referrerRepo: referrerRepo,
		storeRepo:    storeRepo,
		logger:       logger,
	}
}

// Referrers

func (s *PartnerService) CreateReferrer(ctx context.Context, req *domain.CreateReferrerRequest) (*domain.Referrer, error) {
	referrer := &domain.Referrer{
		Name:           req.Name,
		Phone:          req.Phone,
		CommissionRate: req.CommissionRate,
		Notes:          req.Notes,
		IsActive:       true,
	}

	if err := s.referrerRepo.Create(ctx, referrer); err != nil {
		return nil, fmt.Errorf("failed to create referrer: %w", err)
	}

	return referrer, nil
}

func (s *PartnerService) GetReferrerByID(ctx context.Context, id uuid.UUID) (*domain.Referrer, error) {
	referrer, err := s.referrerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get referrer: %w", err)
	}
	return referrer, nil
}

func (s *PartnerService) UpdateReferrer(ctx context.Context, id uuid.UUID, req *domain.CreateReferrerRequest) (*domain.Referrer, error) {
	referrer, err := s.referrerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get referrer: %w", err)
	}

	referrer.Name = req.Name
	referrer.Phone = req.Phone
	referrer.CommissionRate = req.CommissionRate
	referrer.Notes = req.Notes

	if err := s.referrerRepo.Update(ctx, referrer); err != nil {
		return nil, fmt.Errorf("failed to update referrer: %w", err)
	}

	return referrer, nil
}

func (s *PartnerService) DeleteReferrer(ctx context.Context, id uuid.UUID) error {
	if err := s.referrerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete referrer: %w", err)
	}
	return nil
}

func (s *PartnerService) ListReferrers(ctx context.Context, page, pageSize int, search string, activeOnly bool) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePage(page, pageSize)

	referrers, total, err := s.referrerRepo.List(ctx, page, pageSize, search, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list referrers: %w", err)
	}

	return paginated(referrers, total, page, pageSize), nil
}

// Stores

func (s *PartnerService) CreateStore(ctx context.Context, req *domain.CreateStoreRequest) (*domain.Store, error) {
	store := &domain.Store{
		Name:     req.Name,
		Branch:   req.Branch,
		Phone:    req.Phone,
		Address:  req.Address,
		IsActive: true,
	}

	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	return store, nil
}

func (s *PartnerService) GetStoreByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return store, nil
}

func (s *PartnerService) UpdateStore(ctx context.Context, id uuid.UUID, req *domain.CreateStoreRequest) (*domain.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}

	store.Name = req.Name
	store.Branch = req.Branch
	store.Phone = req.Phone
	store.Address = req.Address

	if err := s.storeRepo.Update(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to update store: %w", err)
	}

	return store, nil
}

func (s *PartnerService) DeleteStore(ctx context.Context, id uuid.UUID) error {
	if err := s.storeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}
	return nil
}

func (s *PartnerService) ListStores(ctx context.Context, page, pageSize int, search string, activeOnly bool) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePage(page, pageSize)

	stores, total, err := s.storeRepo.List(ctx, page, pageSize, search, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}

	return paginated(stores, total, page, pageSize), nil
}
