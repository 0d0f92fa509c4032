package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/auth"
	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/pricing"
	"github.com/draperly/atelier-api/internal/repository"
)

// docNumberAttempts bounds retries when a random document number collides
// with the unique index
const docNumberAttempts = 3

// QuotationService generates and manages priced offers. Lines are snapshots:
// later edits to products, sheets or bills never touch an existing quotation.
type QuotationService struct {
	quotationRepo   *repository.QuotationRepository
	sheetRepo       *repository.SpecSheetRepository
	measurementRepo *repository.MeasurementRepository
	productRepo     *repository.ProductRepository
	categoryRepo    *repository.CategoryRepository
	numbering       *NumberingService
	logger          *zap.Logger
}

func NewQuotationService(
	quotationRepo *repository.QuotationRepository,
	sheetRepo *repository.SpecSheetRepository,
	measurementRepo *repository.MeasurementRepository,
	productRepo *repository.ProductRepository,
	categoryRepo *repository.CategoryRepository,
	numbering *NumberingService,
	logger *zap.Logger,
) *QuotationService {
	return &QuotationService{
		quotationRepo:   quotationRepo,
		sheetRepo:       sheetRepo,
		measurementRepo: measurementRepo,
		productRepo:     productRepo,
		categoryRepo:    categoryRepo,
		numbering:       numbering,
		logger:          logger,
	}
}

// CreateFromBill drafts a quotation skeleton from a bill's measured
// positions. Lines carry the location and production size with quantity 1
// and price 0, ready for manual pricing.
func (s *QuotationService) CreateFromBill(ctx context.Context, req *domain.CreateQuotationFromBillRequest) (*domain.Quotation, error) {
	bill, err := s.measurementRepo.GetBillByID(ctx, req.BillID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bill not found", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	customerID := req.CustomerID
	if customerID == nil {
		customerID = bill.CustomerID
	}

	quotation := &domain.Quotation{
		ProjectID:  &bill.ProjectID,
		CustomerID: customerID,
		BillID:     &bill.ID,
		Status:     domain.QuotationStatusDraft,
		Notes:      req.Notes,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		quotation.CreatedBy = userCtx.DisplayName
	}

	for i, item := range bill.Items {
		line := domain.QuotationItem{
			ProductName: item.LocationName,
			WidthCM:     item.Details.Order.Width,
			HeightCM:    item.Details.Order.Height,
			Quantity:    1,
			SortOrder:   i,
		}
		if item.Category != nil {
			line.Description = item.Category.Name
		}
		quotation.Items = append(quotation.Items, line)
	}

	if err := s.persistWithNumber(ctx, quotation); err != nil {
		return nil, err
	}

	return quotation, nil
}

// CreateFromSheet generates a priced quotation from a completed spec sheet.
// Each bound product contributes one line: step-based categories resolve the
// unit price from the production width, area categories price the billable
// quantity.
func (s *QuotationService) CreateFromSheet(ctx context.Context, req *domain.CreateQuotationFromSheetRequest) (*domain.Quotation, error) {
	sheet, err := s.sheetRepo.GetByID(ctx, req.SheetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: spec sheet not found", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to get spec sheet: %w", err)
	}
	if sheet.Status != domain.SpecSheetStatusCompleted {
		return nil, ErrSheetNotCompleted
	}

	bill, err := s.measurementRepo.GetBillByID(ctx, sheet.BillID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	customerID := req.CustomerID
	if customerID == nil {
		customerID = bill.CustomerID
	}

	quotation := &domain.Quotation{
		ProjectID:  &bill.ProjectID,
		CustomerID: customerID,
		BillID:     &bill.ID,
		SheetID:    &sheet.ID,
		Status:     domain.QuotationStatusDraft,
		Notes:      req.Notes,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		quotation.CreatedBy = userCtx.DisplayName
	}

	for i, item := range sheet.Items {
		line, err := s.priceSheetItem(ctx, &item)
		if err != nil {
			return nil, err
		}
		line.SortOrder = i
		quotation.Items = append(quotation.Items, *line)
		quotation.GrandTotal += line.TotalPrice
	}

	if err := s.persistWithNumber(ctx, quotation); err != nil {
		return nil, err
	}

	s.logger.Info("quotation generated from sheet",
		zap.String("quotationID", quotation.ID.String()),
		zap.String("number", quotation.QuotationNumber),
		zap.Float64("grandTotal", quotation.GrandTotal))

	return quotation, nil
}

// priceSheetItem turns one sheet item into a priced quotation line
func (s *QuotationService) priceSheetItem(ctx context.Context, item *domain.SpecSheetItem) (*domain.QuotationItem, error) {
	line := &domain.QuotationItem{
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		Description: item.LocationName,
		WidthCM:     item.WidthCM,
		HeightCM:    item.HeightCM,
		Quantity:    1,
		Unit:        item.Unit,
		UnitPrice:   item.UnitPrice,
	}
	// Unbound positions go on the quotation unpriced
	if item.ProductID == nil {
		line.ProductName = item.LocationName
		return line, nil
	}

	product, err := s.productRepo.GetByID(ctx, *item.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return line, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	category := product.Category
	if category == nil {
		line.TotalPrice = line.UnitPrice * line.Quantity
		return line, nil
	}

	// Step categories price by width tier at generation time. The sheet
	// snapshot holds the base price only; the tier price supersedes it
	// here. Flat categories keep the snapshot price unchanged.
	if category.CalcMethod.IsStepBased() {
		if price, ok := pricing.TierPrice(product.PriceTiers, item.WidthCM); ok {
			line.UnitPrice = price
		}
	}

	line.TotalPrice = pricing.LineTotal(category.CalcMethod,
		item.WidthCM, item.HeightCM, line.Quantity, line.UnitPrice, category.Conditions)

	return line, nil
}

// persistWithNumber assigns a random quotation number and creates the row,
// retrying on unique-index collisions
func (s *QuotationService) persistWithNumber(ctx context.Context, quotation *domain.Quotation) error {
	var err error
	for attempt := 0; attempt < docNumberAttempts; attempt++ {
		quotation.QuotationNumber = s.numbering.RandomDocNumber("QT")
		err = s.quotationRepo.Create(ctx, quotation)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to create quotation: %w", err)
		}
		s.logger.Warn("quotation number collision, retrying",
			zap.String("number", quotation.QuotationNumber))
	}
	return fmt.Errorf("failed to create quotation after %d attempts: %w", docNumberAttempts, err)
}

func (s *QuotationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}
	return quotation, nil
}

func (s *QuotationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.quotationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quotation: %w", err)
	}
	return nil
}

func (s *QuotationService) List(ctx context.Context, page, pageSize int, search string, status domain.QuotationStatus, customerID, projectID *uuid.UUID) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePage(page, pageSize)

	quotations, total, err := s.quotationRepo.List(ctx, page, pageSize, search, status, customerID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}

	return paginated(quotations, total, page, pageSize), nil
}

// allowedTransitions maps each quotation status to its reachable successors
var allowedTransitions = map[domain.QuotationStatus][]domain.QuotationStatus{
	domain.QuotationStatusDraft:    {domain.QuotationStatusSent, domain.QuotationStatusCancelled},
	domain.QuotationStatusSent:     {domain.QuotationStatusApproved, domain.QuotationStatusRejected, domain.QuotationStatusCancelled},
	domain.QuotationStatusApproved: {domain.QuotationStatusCancelled},
	domain.QuotationStatusRejected: {domain.QuotationStatusSent, domain.QuotationStatusCancelled},
}

// UpdateStatus moves a quotation along its lifecycle
func (s *QuotationService) UpdateStatus(ctx context.Context, id uuid.UUID, req *domain.UpdateQuotationStatusRequest) (*domain.Quotation, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}

	allowed := false
	for _, next := range allowedTransitions[quotation.Status] {
		if next == req.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidStatus, quotation.Status, req.Status)
	}

	quotation.Status = req.Status
	quotation.Customer = nil
	quotation.Items = nil

	if err := s.quotationRepo.Update(ctx, quotation); err != nil {
		return nil, fmt.Errorf("failed to update quotation status: %w", err)
	}

	return s.GetByID(ctx, id)
}

// UpdateItem edits one line by hand and recomputes the grand total
func (s *QuotationService) UpdateItem(ctx context.Context, itemID uuid.UUID, req *domain.UpdateQuotationItemRequest) (*domain.Quotation, error) {
	item, err := s.quotationRepo.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quotation item: %w", err)
	}

	item.ProductName = req.ProductName
	item.Description = req.Description
	item.Quantity = req.Quantity
	item.Unit = req.Unit
	item.UnitPrice = req.UnitPrice
	item.TotalPrice = req.Quantity * req.UnitPrice

	if err := s.quotationRepo.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update quotation item: %w", err)
	}

	return s.recomputeTotal(ctx, item.QuotationID)
}

// RemoveItem deletes one line and recomputes the grand total
func (s *QuotationService) RemoveItem(ctx context.Context, itemID uuid.UUID) (*domain.Quotation, error) {
	item, err := s.quotationRepo.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quotation item: %w", err)
	}

	if err := s.quotationRepo.DeleteItem(ctx, itemID); err != nil {
		return nil, fmt.Errorf("failed to delete quotation item: %w", err)
	}

	return s.recomputeTotal(ctx, item.QuotationID)
}

func (s *QuotationService) recomputeTotal(ctx context.Context, quotationID uuid.UUID) (*domain.Quotation, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, quotationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}

	total := 0.0
	for _, item := range quotation.Items {
		total += item.TotalPrice
	}
	quotation.GrandTotal = total

	items := quotation.Items
	customer := quotation.Customer
	quotation.Items = nil
	quotation.Customer = nil

	if err := s.quotationRepo.Update(ctx, quotation); err != nil {
		return nil, fmt.Errorf("failed to update grand total: %w", err)
	}

	quotation.Items = items
	quotation.Customer = customer
	return quotation, nil
}

// ExportExcel renders a quotation as an xlsx workbook
func (s *QuotationService) ExportExcel(ctx context.Context, id uuid.UUID) (*bytes.Buffer, string, error) {
	quotation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Quotation"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "Quotation")
	f.SetCellValue(sheet, "A2", "Number")
	f.SetCellValue(sheet, "B2", quotation.QuotationNumber)
	f.SetCellValue(sheet, "A3", "Status")
	f.SetCellValue(sheet, "B3", string(quotation.Status))
	f.SetCellValue(sheet, "A4", "Date")
	f.SetCellValue(sheet, "B4", quotation.CreatedAt.Format("2006-01-02"))
	if quotation.Customer != nil {
		f.SetCellValue(sheet, "A5", "Customer")
		f.SetCellValue(sheet, "B5", quotation.Customer.Name)
	}

	headers := []string{"#", "Item", "Description", "Width (cm)", "Height (cm)", "Qty", "Unit", "Unit Price", "Total"}
	headerRow := 7
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheet, cell, h)
	}

	row := headerRow + 1
	for i, item := range quotation.Items {
		values := []interface{}{
			i + 1, item.ProductName, item.Description,
			item.WidthCM, item.HeightCM, item.Quantity,
			item.Unit, item.UnitPrice, item.TotalPrice,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	totalLabel, _ := excelize.CoordinatesToCellName(8, row+1)
	totalCell, _ := excelize.CoordinatesToCellName(9, row+1)
	f.SetCellValue(sheet, totalLabel, "Grand Total")
	f.SetCellValue(sheet, totalCell, quotation.GrandTotal)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("%s.xlsx", quotation.QuotationNumber)
	return buf, filename, nil
}
