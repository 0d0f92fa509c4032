package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/auth"
	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
)

// SpecSheetService builds product-selection sheets from measured positions.
// Each sheet item snapshots the location, category and production size at
// creation time; binding a product later snapshots its name and base price.
type SpecSheetService struct {
	sheetRepo       *repository.SpecSheetRepository
	measurementRepo *repository.MeasurementRepository
	productRepo     *repository.ProductRepository
	logger          *zap.Logger
}

func NewSpecSheetService(
	sheetRepo *repository.SpecSheetRepository,
	measurementRepo *repository.MeasurementRepository,
	productRepo *repository.ProductRepository,
	logger *zap.Logger,
) *SpecSheetService {
	return &SpecSheetService{
		sheetRepo:       sheetRepo,
		measurementRepo: measurementRepo,
		productRepo:     productRepo,
		logger:          logger,
	}
}

// Create builds a sheet from a subset of a bill's items. Unknown item IDs and
// items belonging to other bills are dropped silently; an empty result is an
// error.
func (s *SpecSheetService) Create(ctx context.Context, req *domain.CreateSpecSheetRequest) (*domain.SpecSheet, error) {
	if _, err := s.measurementRepo.GetBillByID(ctx, req.BillID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bill not found", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	fetched, err := s.measurementRepo.GetItemsByIDs(ctx, req.BillID, req.ItemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load measurement items: %w", err)
	}

	// the database returns rows in index order; the sheet follows the
	// order the items were selected in
	byID := make(map[uuid.UUID]domain.MeasurementItem, len(fetched))
	for _, item := range fetched {
		byID[item.ID] = item
	}
	items := make([]domain.MeasurementItem, 0, len(fetched))
	for _, id := range req.ItemIDs {
		if item, ok := byID[id]; ok {
			items = append(items, item)
			delete(byID, id)
		}
	}
	if len(items) == 0 {
		return nil, ErrNoItemsSelected
	}

	sheet := &domain.SpecSheet{
		BillID: req.BillID,
		Status: domain.SpecSheetStatusDraft,
		Notes:  req.Notes,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		sheet.CreatedBy = userCtx.DisplayName
	}

	for i, item := range items {
		sheetItem := domain.SpecSheetItem{
			MeasurementItemID: item.ID,
			LocationName:      item.LocationName,
			WidthCM:           item.Details.Order.Width,
			HeightCM:          item.Details.Order.Height,
			Notes:             item.Notes,
			SortOrder:         i,
		}
		if item.Category != nil {
			sheetItem.CategoryName = item.Category.Name
		}
		sheet.Items = append(sheet.Items, sheetItem)
	}

	if err := s.sheetRepo.Create(ctx, sheet); err != nil {
		return nil, fmt.Errorf("failed to create spec sheet: %w", err)
	}

	s.logger.Info("spec sheet created",
		zap.String("sheetID", sheet.ID.String()),
		zap.Int("items", len(sheet.Items)))

	return sheet, nil
}

func (s *SpecSheetService) GetByID(ctx context.Context, id uuid.UUID) (*domain.SpecSheet, error) {
	sheet, err := s.sheetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get spec sheet: %w", err)
	}
	return sheet, nil
}

func (s *SpecSheetService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.sheetRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete spec sheet: %w", err)
	}
	return nil
}

func (s *SpecSheetService) List(ctx context.Context, page, pageSize int, billID *uuid.UUID, status domain.SpecSheetStatus) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePage(page, pageSize)

	sheets, total, err := s.sheetRepo.List(ctx, page, pageSize, billID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list spec sheets: %w", err)
	}

	return paginated(sheets, total, page, pageSize), nil
}

// BindProduct selects a product for one sheet item, snapshotting its name,
// unit and base price. Width-tier prices are not consulted here; quotation
// generation applies them.
func (s *SpecSheetService) BindProduct(ctx context.Context, itemID uuid.UUID, req *domain.BindProductRequest) (*domain.SpecSheetItem, error) {
	item, err := s.sheetRepo.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sheet item: %w", err)
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	item.ProductID = &product.ID
	item.ProductName = product.Name
	item.Unit = product.Unit
	item.UnitPrice = product.BasePrice

	if err := s.sheetRepo.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to bind product: %w", err)
	}

	return item, nil
}

// Complete marks the sheet ready for quotation generation
func (s *SpecSheetService) Complete(ctx context.Context, id uuid.UUID) (*domain.SpecSheet, error) {
	sheet, err := s.sheetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get spec sheet: %w", err)
	}

	sheet.Status = domain.SpecSheetStatusCompleted
	sheet.Bill = nil
	sheet.Items = nil

	if err := s.sheetRepo.Update(ctx, sheet); err != nil {
		return nil, fmt.Errorf("failed to complete spec sheet: %w", err)
	}

	return s.GetByID(ctx, id)
}
