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

func newSpecSheetService(t *testing.T) (*SpecSheetService, *gorm.DB) {
	t.Helper()
	db := openServiceDB(t)
	svc := NewSpecSheetService(
		repository.NewSpecSheetRepository(db),
		repository.NewMeasurementRepository(db),
		repository.NewProductRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func TestCreateSpecSheet_SnapshotsMeasuredItems(t *testing.T) {
	svc, db := newSpecSheetService(t)
	ctx := context.Background()

	project := seedProject(t, db, seedCustomer(t, db))
	bill := seedBill(t, db, project)
	category := seedCategory(t, db, "Pleated Curtain", domain.CalcMethodRailWidth)
	first := seedMeasurementItem(t, db, bill.ID, "Master Bedroom", &category.ID, 220, 260)
	second := seedMeasurementItem(t, db, bill.ID, "Living Room", nil, 340, 250)

	sheet, err := svc.Create(ctx, &domain.CreateSpecSheetRequest{
		BillID:  bill.ID,
		ItemIDs: []uuid.UUID{first.ID, second.ID},
	})
	require.NoError(t, err)
	require.Len(t, sheet.Items, 2)

	assert.Equal(t, domain.SpecSheetStatusDraft, sheet.Status)
	assert.Equal(t, "Master Bedroom", sheet.Items[0].LocationName)
	assert.Equal(t, "Pleated Curtain", sheet.Items[0].CategoryName)
	assert.Equal(t, 220.0, sheet.Items[0].WidthCM)
	assert.Equal(t, 260.0, sheet.Items[0].HeightCM)
	assert.Equal(t, "Living Room", sheet.Items[1].LocationName)
	assert.Empty(t, sheet.Items[1].CategoryName)
}

func TestCreateSpecSheet_FollowsSelectionOrder(t *testing.T) {
	svc, db := newSpecSheetService(t)
	ctx := context.Background()

	project := seedProject(t, db, nil)
	bill := seedBill(t, db, project)
	first := seedMeasurementItem(t, db, bill.ID, "Kitchen", nil, 180, 220)
	second := seedMeasurementItem(t, db, bill.ID, "Balcony", nil, 260, 240)

	// select in reverse of insertion order
	sheet, err := svc.Create(ctx, &domain.CreateSpecSheetRequest{
		BillID:  bill.ID,
		ItemIDs: []uuid.UUID{second.ID, first.ID},
	})
	require.NoError(t, err)
	require.Len(t, sheet.Items, 2)

	assert.Equal(t, "Balcony", sheet.Items[0].LocationName)
	assert.Equal(t, 0, sheet.Items[0].SortOrder)
	assert.Equal(t, "Kitchen", sheet.Items[1].LocationName)
	assert.Equal(t, 1, sheet.Items[1].SortOrder)
}

func TestCreateSpecSheet_IgnoresForeignItems(t *testing.T) {
	svc, db := newSpecSheetService(t)
	ctx := context.Background()

	project := seedProject(t, db, nil)
	bill := seedBill(t, db, project)
	otherBill := seedBill(t, db, project)
	mine := seedMeasurementItem(t, db, bill.ID, "Bedroom 2", nil, 150, 230)
	foreign := seedMeasurementItem(t, db, otherBill.ID, "Office", nil, 100, 200)

	sheet, err := svc.Create(ctx, &domain.CreateSpecSheetRequest{
		BillID:  bill.ID,
		ItemIDs: []uuid.UUID{mine.ID, foreign.ID},
	})
	require.NoError(t, err)
	require.Len(t, sheet.Items, 1)
	assert.Equal(t, "Bedroom 2", sheet.Items[0].LocationName)
}

func TestCreateSpecSheet_NoItems(t *testing.T) {
	svc, db := newSpecSheetService(t)

	project := seedProject(t, db, nil)
	bill := seedBill(t, db, project)

	_, err := svc.Create(context.Background(), &domain.CreateSpecSheetRequest{
		BillID:  bill.ID,
		ItemIDs: []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, ErrNoItemsSelected)
}

func TestBindProduct_SnapshotsPrice(t *testing.T) {
	svc, db := newSpecSheetService(t)
	ctx := context.Background()

	project := seedProject(t, db, nil)
	bill := seedBill(t, db, project)
	category := seedCategory(t, db, "Roller Blind", domain.CalcMethodFixedPrice)
	item := seedMeasurementItem(t, db, bill.ID, "Study", &category.ID, 120, 180)

	product := &domain.Product{
		CategoryID: category.ID,
		Name:       "Roller Classic",
		Unit:       "set",
		BasePrice:  2500,
		IsActive:   true,
	}
	require.NoError(t, db.Create(product).Error)

	sheet, err := svc.Create(ctx, &domain.CreateSpecSheetRequest{
		BillID:  bill.ID,
		ItemIDs: []uuid.UUID{item.ID},
	})
	require.NoError(t, err)

	bound, err := svc.BindProduct(ctx, sheet.Items[0].ID, &domain.BindProductRequest{ProductID: product.ID})
	require.NoError(t, err)
	assert.Equal(t, "Roller Classic", bound.ProductName)
	assert.Equal(t, "set", bound.Unit)
	assert.Equal(t, 2500.0, bound.UnitPrice)

	// a later catalog edit must not touch the snapshot
	product.BasePrice = 9999
	require.NoError(t, db.Save(product).Error)

	reloaded, err := svc.GetByID(ctx, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, reloaded.Items[0].UnitPrice)
}

func TestComplete(t *testing.T) {
	svc, db := newSpecSheetService(t)
	ctx := context.Background()

	project := seedProject(t, db, nil)
	bill := seedBill(t, db, project)
	item := seedMeasurementItem(t, db, bill.ID, "Hall", nil, 200, 240)

	sheet, err := svc.Create(ctx, &domain.CreateSpecSheetRequest{
		BillID:  bill.ID,
		ItemIDs: []uuid.UUID{item.ID},
	})
	require.NoError(t, err)

	completed, err := svc.Complete(ctx, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SpecSheetStatusCompleted, completed.Status)
}
