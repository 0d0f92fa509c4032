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

// InventoryService manages stocked materials and their levels
type InventoryService struct {
	inventoryRepo *repository.InventoryRepository
	logger        *zap.Logger
}

func NewInventoryService(inventoryRepo *repository.InventoryRepository, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		logger:        logger,
	}
}

func (s *InventoryService) Create(ctx context.Context, req *domain.CreateInventoryItemRequest) (*domain.InventoryItem, error) {
	item := &domain.InventoryItem{
		Name:      req.Name,
		Code:      req.Code,
		Unit:      req.Unit,
		Quantity:  req.Quantity,
		MinQty:    req.MinQty,
		CostPrice: req.CostPrice,
		SellPrice: req.SellPrice,
		Location:  req.Location,
		IsActive:  true,
	}

	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	return item, nil
}

func (s *InventoryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return item, nil
}

func (s *InventoryService) Update(ctx context.Context, id uuid.UUID, req *domain.CreateInventoryItemRequest) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	item.Name = req.Name
	item.Code = req.Code
	item.Unit = req.Unit
	item.Quantity = req.Quantity
	item.MinQty = req.MinQty
	item.CostPrice = req.CostPrice
	item.SellPrice = req.SellPrice
	item.Location = req.Location

	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.inventoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}

func (s *InventoryService) List(ctx context.Context, page, pageSize int, search string, activeOnly bool) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePage(page, pageSize)

	items, total, err := s.inventoryRepo.List(ctx, page, pageSize, search, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	return paginated(items, total, page, pageSize), nil
}

// ListLowStock returns active items below their minimum level
func (s *InventoryService) ListLowStock(ctx context.Context) ([]domain.InventoryItem, error) {
	items, err := s.inventoryRepo.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock: %w", err)
	}
	return items, nil
}

// AdjustStock applies a signed delta to an item's quantity
func (s *InventoryService) AdjustStock(ctx context.Context, id uuid.UUID, req *domain.AdjustStockRequest) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	if item.Quantity+req.Delta < 0 {
		return nil, fmt.Errorf("%w: adjustment would drive stock below zero", ErrInvalidInput)
	}

	if err := s.inventoryRepo.AdjustQuantity(ctx, id, req.Delta); err != nil {
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	s.logger.Info("stock adjusted",
		zap.String("itemID", id.String()),
		zap.Float64("delta", req.Delta))

	return s.inventoryRepo.GetByID(ctx, id)
}
