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
	"github.com/draperly/atelier-api/internal/measure"
	"github.com/draperly/atelier-api/internal/repository"
)

// MeasurementService manages measurement bills, their items and the
// derivation of production sizes from raw readings
type MeasurementService struct {
	measurementRepo *repository.MeasurementRepository
	projectRepo     *repository.ProjectRepository
	numbering       *NumberingService
	logger          *zap.Logger
}

func NewMeasurementService(
	measurementRepo *repository.MeasurementRepository,
	projectRepo *repository.ProjectRepository,
	numbering *NumberingService,
	logger *zap.Logger,
) *MeasurementService {
	return &MeasurementService{
		measurementRepo: measurementRepo,
		projectRepo:     projectRepo,
		numbering:       numbering,
		logger:          logger,
	}
}

// CreateBill generates the bill number and persists the bill
func (s *MeasurementService) CreateBill(ctx context.Context, req *domain.CreateBillRequest) (*domain.MeasurementBill, error) {
	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project not found", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	number, err := s.numbering.BillNumber(ctx)
	if err != nil {
		return nil, err
	}

	bill := &domain.MeasurementBill{
		BillNumber: number,
		ProjectID:  project.ID,
		CustomerID: project.CustomerID,
		Mode:       req.Mode,
		Status:     domain.BillStatusDraft,
		MeasuredBy: req.MeasuredBy,
		Notes:      req.Notes,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		bill.CreatedBy = userCtx.DisplayName
	}

	if err := s.measurementRepo.CreateBill(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	s.logger.Info("measurement bill created",
		zap.String("billID", bill.ID.String()),
		zap.String("number", bill.BillNumber))

	return bill, nil
}

func (s *MeasurementService) GetBillByID(ctx context.Context, id uuid.UUID) (*domain.MeasurementBill, error) {
	bill, err := s.measurementRepo.GetBillByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

func (s *MeasurementService) UpdateBill(ctx context.Context, id uuid.UUID, req *domain.UpdateBillRequest) (*domain.MeasurementBill, error) {
	bill, err := s.measurementRepo.GetBillByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	// A cancelled bill stays cancelled
	if bill.Status == domain.BillStatusCancelled && req.Status != domain.BillStatusCancelled {
		return nil, ErrInvalidStatus
	}

	bill.Mode = req.Mode
	bill.Status = req.Status
	bill.MeasuredBy = req.MeasuredBy
	bill.Notes = req.Notes
	bill.Project = nil
	bill.Items = nil

	if err := s.measurementRepo.UpdateBill(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}

	return s.GetBillByID(ctx, id)
}

func (s *MeasurementService) DeleteBill(ctx context.Context, id uuid.UUID) error {
	if err := s.measurementRepo.DeleteBill(ctx, id); err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return nil
}

func (s *MeasurementService) ListBills(ctx context.Context, page, pageSize int, search string, projectID *uuid.UUID, status domain.BillStatus) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePage(page, pageSize)

	bills, total, err := s.measurementRepo.ListBills(ctx, page, pageSize, search, projectID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	return paginated(bills, total, page, pageSize), nil
}

// Items

func (s *MeasurementService) AddItem(ctx context.Context, billID uuid.UUID, req *domain.CreateMeasurementItemRequest) (*domain.MeasurementItem, error) {
	if _, err := s.measurementRepo.GetBillByID(ctx, billID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	details := req.Details
	if details.SchemaVersion == 0 {
		details.SchemaVersion = domain.DetailsSchemaVersion
	}

	item := &domain.MeasurementItem{
		BillID:       billID,
		WindowID:     req.WindowID,
		LocationName: req.LocationName,
		CategoryID:   req.CategoryID,
		Details:      details,
		Notes:        req.Notes,
		SortOrder:    req.SortOrder,
	}

	if err := s.measurementRepo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create measurement item: %w", err)
	}

	return item, nil
}

func (s *MeasurementService) GetItemByID(ctx context.Context, id uuid.UUID) (*domain.MeasurementItem, error) {
	item, err := s.measurementRepo.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get measurement item: %w", err)
	}
	return item, nil
}

func (s *MeasurementService) UpdateItem(ctx context.Context, id uuid.UUID, req *domain.UpdateMeasurementItemRequest) (*domain.MeasurementItem, error) {
	item, err := s.measurementRepo.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get measurement item: %w", err)
	}

	details := req.Details
	if details.SchemaVersion == 0 {
		details.SchemaVersion = domain.DetailsSchemaVersion
	}

	item.LocationName = req.LocationName
	item.CategoryID = req.CategoryID
	item.Details = details
	item.Notes = req.Notes
	item.SortOrder = req.SortOrder
	item.Category = nil

	if err := s.measurementRepo.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update measurement item: %w", err)
	}

	return item, nil
}

func (s *MeasurementService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.measurementRepo.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete measurement item: %w", err)
	}
	return nil
}

// ApplyFormula runs a derivation formula against an item's readings. When the
// formula succeeds the derived value and its explanation are written to the
// item's order size. A formula that cannot run for lack of readings is not an
// error; the result carries the missing-field message instead.
func (s *MeasurementService) ApplyFormula(ctx context.Context, itemID uuid.UUID, req *domain.ApplyFormulaRequest) (*domain.MeasurementItem, *measure.Result, error) {
	item, err := s.measurementRepo.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get measurement item: %w", err)
	}

	result := measure.Apply(req.Dimension, req.Formula, item.Details)
	if !result.OK {
		return item, &result, nil
	}

	switch req.Dimension {
	case "width":
		item.Details.Order.Width = result.Value
		item.Details.Order.WidthNote = result.Explanation
	case "height":
		item.Details.Order.Height = result.Value
		item.Details.Order.HeightNote = result.Explanation
	}
	item.Category = nil

	if err := s.measurementRepo.UpdateItem(ctx, item); err != nil {
		return nil, nil, fmt.Errorf("failed to save derived size: %w", err)
	}

	s.logger.Info("formula applied",
		zap.String("itemID", itemID.String()),
		zap.String("dimension", req.Dimension),
		zap.String("formula", req.Formula),
		zap.Float64("value", result.Value))

	return item, &result, nil
}

// SetOrderSize overrides the production size by hand, clearing any formula
// notes unless the caller supplies replacements
func (s *MeasurementService) SetOrderSize(ctx context.Context, itemID uuid.UUID, req *domain.SetOrderSizeRequest) (*domain.MeasurementItem, error) {
	item, err := s.measurementRepo.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get measurement item: %w", err)
	}

	item.Details.Order = domain.OrderSize{
		Width:      req.Width,
		Height:     req.Height,
		WidthNote:  req.WidthNote,
		HeightNote: req.HeightNote,
	}
	item.Category = nil

	if err := s.measurementRepo.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to set order size: %w", err)
	}

	return item, nil
}

// Formulas lists the available derivation formulas per dimension
func (s *MeasurementService) Formulas() map[string][]string {
	return map[string][]string{
		"width":  measure.WidthFormulas(),
		"height": measure.HeightFormulas(),
	}
}
