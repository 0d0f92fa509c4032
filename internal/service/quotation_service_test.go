package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
)

func newQuotationService(t *testing.T) (*QuotationService, *SpecSheetService, *gorm.DB) {
	t.Helper()
	db := openServiceDB(t)
	sheetRepo := repository.NewSpecSheetRepository(db)
	measurementRepo := repository.NewMeasurementRepository(db)
	productRepo := repository.NewProductRepository(db)

	quotationSvc := NewQuotationService(
		repository.NewQuotationRepository(db),
		sheetRepo,
		measurementRepo,
		productRepo,
		repository.NewCategoryRepository(db),
		testNumbering(),
		zap.NewNop(),
	)
	sheetSvc := NewSpecSheetService(sheetRepo, measurementRepo, productRepo, zap.NewNop())
	return quotationSvc, sheetSvc, db
}

func TestCreateFromBill_DraftsUnpricedLines(t *testing.T) {
	svc, _, db := newQuotationService(t)
	ctx := context.Background()

	customer := seedCustomer(t, db)
	project := seedProject(t, db, customer)
	bill := seedBill(t, db, project)
	category := seedCategory(t, db, "Blackout Curtain", domain.CalcMethodAreaSqm)
	seedMeasurementItem(t, db, bill.ID, "Master Bedroom", &category.ID, 220, 260)
	seedMeasurementItem(t, db, bill.ID, "Living Room", nil, 340, 250)

	quotation, err := svc.CreateFromBill(ctx, &domain.CreateQuotationFromBillRequest{BillID: bill.ID})
	require.NoError(t, err)

	assert.Equal(t, domain.QuotationStatusDraft, quotation.Status)
	assert.NotEmpty(t, quotation.QuotationNumber)
	require.NotNil(t, quotation.CustomerID)
	assert.Equal(t, customer.ID, *quotation.CustomerID)
	require.Len(t, quotation.Items, 2)
	assert.Equal(t, "Master Bedroom", quotation.Items[0].ProductName)
	assert.Equal(t, "Blackout Curtain", quotation.Items[0].Description)
	assert.Equal(t, 220.0, quotation.Items[0].WidthCM)
	assert.Zero(t, quotation.Items[0].UnitPrice)
	assert.Zero(t, quotation.GrandTotal)
}

func TestCreateFromSheet_RequiresCompletedSheet(t *testing.T) {
	svc, sheetSvc, db := newQuotationService(t)
	ctx := context.Background()

	project := seedProject(t, db, nil)
	bill := seedBill(t, db, project)
	item := seedMeasurementItem(t, db, bill.ID, "Hall", nil, 200, 240)

	sheet, err := sheetSvc.Create(ctx, &domain.CreateSpecSheetRequest{
		BillID:  bill.ID,
		ItemIDs: []uuid.UUID{item.ID},
	})
	require.NoError(t, err)

	_, err = svc.CreateFromSheet(ctx, &domain.CreateQuotationFromSheetRequest{SheetID: sheet.ID})
	assert.ErrorIs(t, err, ErrSheetNotCompleted)
}

func TestCreateFromSheet_PricesStepProductFromTiers(t *testing.T) {
	svc, sheetSvc, db := newQuotationService(t)
	ctx := context.Background()

	customer := seedCustomer(t, db)
	project := seedProject(t, db, customer)
	bill := seedBill(t, db, project)
	category := seedCategory(t, db, "Zebra Blind", domain.CalcMethodWidthStep)
	item := seedMeasurementItem(t, db, bill.ID, "Master Bedroom", &category.ID, 150, 220)

	product := &domain.Product{
		CategoryID: category.ID,
		Name:       "Zebra Premium",
		Unit:       "set",
		BasePrice:  1000,
		IsActive:   true,
		PriceTiers: []domain.ProductPriceTier{
			{MinWidthCM: 0, MaxWidthCM: 100, Price: 1800, SortOrder: 0},
			{MinWidthCM: 101, MaxWidthCM: 200, Price: 2600, SortOrder: 1},
			{MinWidthCM: 201, MaxWidthCM: 300, Price: 3400, SortOrder: 2},
		},
	}
	require.NoError(t, db.Create(product).Error)

	sheet, err := sheetSvc.Create(ctx, &domain.CreateSpecSheetRequest{
		BillID:  bill.ID,
		ItemIDs: []uuid.UUID{item.ID},
	})
	require.NoError(t, err)

	_, err = sheetSvc.BindProduct(ctx, sheet.Items[0].ID, &domain.BindProductRequest{ProductID: product.ID})
	require.NoError(t, err)
	_, err = sheetSvc.Complete(ctx, sheet.ID)
	require.NoError(t, err)

	quotation, err := svc.CreateFromSheet(ctx, &domain.CreateQuotationFromSheetRequest{SheetID: sheet.ID})
	require.NoError(t, err)

	require.Len(t, quotation.Items, 1)
	line := quotation.Items[0]
	assert.Equal(t, "Zebra Premium", line.ProductName)
	assert.Equal(t, "Master Bedroom", line.Description)
	// width 150 falls in the 101-200 tier
	assert.Equal(t, 2600.0, line.UnitPrice)
	assert.Equal(t, 2600.0, line.TotalPrice)
	assert.Equal(t, 2600.0, quotation.GrandTotal)
}

func TestCreateFromSheet_FlatProductKeepsSnapshotPrice(t *testing.T) {
	svc, sheetSvc, db := newQuotationService(t)
	ctx := context.Background()

	customer := seedCustomer(t, db)
	project := seedProject(t, db, customer)
	bill := seedBill(t, db, project)
	category := seedCategory(t, db, "Roman Blind", domain.CalcMethodFixedPrice)
	item := seedMeasurementItem(t, db, bill.ID, "Dining Room", &category.ID, 220, 260)

	product := &domain.Product{
		CategoryID: category.ID,
		Name:       "Roman Linen",
		Unit:       "set",
		BasePrice:  3200,
		IsActive:   true,
	}
	require.NoError(t, db.Create(product).Error)

	sheet, err := sheetSvc.Create(ctx, &domain.CreateSpecSheetRequest{
		BillID:  bill.ID,
		ItemIDs: []uuid.UUID{item.ID},
	})
	require.NoError(t, err)

	bound, err := sheetSvc.BindProduct(ctx, sheet.Items[0].ID, &domain.BindProductRequest{ProductID: product.ID})
	require.NoError(t, err)
	require.Equal(t, 3200.0, bound.UnitPrice)
	_, err = sheetSvc.Complete(ctx, sheet.ID)
	require.NoError(t, err)

	quotation, err := svc.CreateFromSheet(ctx, &domain.CreateQuotationFromSheetRequest{SheetID: sheet.ID})
	require.NoError(t, err)

	// flat-priced categories carry the bound snapshot through untouched
	require.Len(t, quotation.Items, 1)
	line := quotation.Items[0]
	assert.Equal(t, "Roman Linen", line.ProductName)
	assert.Equal(t, "Dining Room", line.Description)
	assert.Equal(t, 220.0, line.WidthCM)
	assert.Equal(t, 260.0, line.HeightCM)
	assert.Equal(t, 3200.0, line.UnitPrice)
	assert.Equal(t, 3200.0, line.TotalPrice)
	assert.Equal(t, 3200.0, quotation.GrandTotal)
}

func TestCreateFromSheet_UnboundItemStaysUnpriced(t *testing.T) {
	svc, sheetSvc, db := newQuotationService(t)
	ctx := context.Background()

	project := seedProject(t, db, nil)
	bill := seedBill(t, db, project)
	item := seedMeasurementItem(t, db, bill.ID, "Guest Room", nil, 180, 230)

	sheet, err := sheetSvc.Create(ctx, &domain.CreateSpecSheetRequest{
		BillID:  bill.ID,
		ItemIDs: []uuid.UUID{item.ID},
	})
	require.NoError(t, err)
	_, err = sheetSvc.Complete(ctx, sheet.ID)
	require.NoError(t, err)

	quotation, err := svc.CreateFromSheet(ctx, &domain.CreateQuotationFromSheetRequest{SheetID: sheet.ID})
	require.NoError(t, err)

	require.Len(t, quotation.Items, 1)
	assert.Equal(t, "Guest Room", quotation.Items[0].ProductName)
	assert.Zero(t, quotation.Items[0].TotalPrice)
	assert.Zero(t, quotation.GrandTotal)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	svc, _, db := newQuotationService(t)
	ctx := context.Background()

	project := seedProject(t, db, nil)
	bill := seedBill(t, db, project)
	seedMeasurementItem(t, db, bill.ID, "Hall", nil, 200, 240)

	quotation, err := svc.CreateFromBill(ctx, &domain.CreateQuotationFromBillRequest{BillID: bill.ID})
	require.NoError(t, err)

	// draft cannot jump straight to approved
	_, err = svc.UpdateStatus(ctx, quotation.ID, &domain.UpdateQuotationStatusRequest{Status: domain.QuotationStatusApproved})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	sent, err := svc.UpdateStatus(ctx, quotation.ID, &domain.UpdateQuotationStatusRequest{Status: domain.QuotationStatusSent})
	require.NoError(t, err)
	assert.Equal(t, domain.QuotationStatusSent, sent.Status)

	approved, err := svc.UpdateStatus(ctx, quotation.ID, &domain.UpdateQuotationStatusRequest{Status: domain.QuotationStatusApproved})
	require.NoError(t, err)
	assert.Equal(t, domain.QuotationStatusApproved, approved.Status)

	// approved can only be cancelled
	_, err = svc.UpdateStatus(ctx, quotation.ID, &domain.UpdateQuotationStatusRequest{Status: domain.QuotationStatusSent})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateItem_RecomputesGrandTotal(t *testing.T) {
	svc, _, db := newQuotationService(t)
	ctx := context.Background()

	project := seedProject(t, db, nil)
	bill := seedBill(t, db, project)
	seedMeasurementItem(t, db, bill.ID, "Master Bedroom", nil, 220, 260)
	seedMeasurementItem(t, db, bill.ID, "Living Room", nil, 340, 250)

	quotation, err := svc.CreateFromBill(ctx, &domain.CreateQuotationFromBillRequest{BillID: bill.ID})
	require.NoError(t, err)
	require.Len(t, quotation.Items, 2)

	updated, err := svc.UpdateItem(ctx, quotation.Items[0].ID, &domain.UpdateQuotationItemRequest{
		ProductName: "Blackout Premium",
		Quantity:    2,
		UnitPrice:   3500,
	})
	require.NoError(t, err)
	assert.Equal(t, 7000.0, updated.GrandTotal)

	removed, err := svc.RemoveItem(ctx, quotation.Items[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 7000.0, removed.GrandTotal)
	assert.Len(t, removed.Items, 1)
}

func TestExportExcel(t *testing.T) {
	svc, _, db := newQuotationService(t)
	ctx := context.Background()

	project := seedProject(t, db, seedCustomer(t, db))
	bill := seedBill(t, db, project)
	seedMeasurementItem(t, db, bill.ID, "Hall", nil, 200, 240)

	quotation, err := svc.CreateFromBill(ctx, &domain.CreateQuotationFromBillRequest{BillID: bill.ID})
	require.NoError(t, err)

	buf, filename, err := svc.ExportExcel(ctx, quotation.ID)
	require.NoError(t, err)
	assert.Equal(t, quotation.QuotationNumber+".xlsx", filename)
	assert.NotZero(t, buf.Len())
}
