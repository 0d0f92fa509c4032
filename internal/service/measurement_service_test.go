package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/measure"
	"github.com/draperly/atelier-api/internal/repository"
)

func newMeasurementService(t *testing.T) (*MeasurementService, *repository.MeasurementRepository, *domain.Project) {
	t.Helper()
	db := openServiceDB(t)
	customer := seedCustomer(t, db)
	project := seedProject(t, db, customer)

	measurementRepo := repository.NewMeasurementRepository(db)
	numbering := testNumbering()
	numbering.now = fixedClock(time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC))

	svc := NewMeasurementService(measurementRepo, repository.NewProjectRepository(db), numbering, zap.NewNop())
	return svc, measurementRepo, project
}

func TestCreateBill(t *testing.T) {
	svc, _, project := newMeasurementService(t)

	bill, err := svc.CreateBill(context.Background(), &domain.CreateBillRequest{
		ProjectID: project.ID,
		Mode:      domain.MeasureModeCurtain,
	})
	require.NoError(t, err)

	assert.Equal(t, "MB2505-001", bill.BillNumber)
	assert.Equal(t, domain.BillStatusDraft, bill.Status)
	require.NotNil(t, bill.CustomerID)
	assert.Equal(t, *project.CustomerID, *bill.CustomerID)
}

func TestCreateBill_UnknownProject(t *testing.T) {
	svc, _, _ := newMeasurementService(t)

	_, err := svc.CreateBill(context.Background(), &domain.CreateBillRequest{
		ProjectID: uuid.New(),
		Mode:      domain.MeasureModeCurtain,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateBill_CancelledIsFinal(t *testing.T) {
	svc, _, project := newMeasurementService(t)

	bill, err := svc.CreateBill(context.Background(), &domain.CreateBillRequest{
		ProjectID: project.ID,
		Mode:      domain.MeasureModeCurtain,
	})
	require.NoError(t, err)

	_, err = svc.UpdateBill(context.Background(), bill.ID, &domain.UpdateBillRequest{
		Mode:   domain.MeasureModeCurtain,
		Status: domain.BillStatusCancelled,
	})
	require.NoError(t, err)

	_, err = svc.UpdateBill(context.Background(), bill.ID, &domain.UpdateBillRequest{
		Mode:   domain.MeasureModeCurtain,
		Status: domain.BillStatusDraft,
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestApplyFormula_WritesOrderSize(t *testing.T) {
	svc, _, project := newMeasurementService(t)
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, &domain.CreateBillRequest{
		ProjectID: project.ID,
		Mode:      domain.MeasureModeCurtain,
	})
	require.NoError(t, err)

	item, err := svc.AddItem(ctx, bill.ID, &domain.CreateMeasurementItemRequest{
		LocationName: "Master Bedroom",
		Details: domain.MeasurementDetails{
			Frame: domain.FrameReading{Width: "200"},
		},
	})
	require.NoError(t, err)

	updated, result, err := svc.ApplyFormula(ctx, item.ID, &domain.ApplyFormulaRequest{
		Dimension: "width",
		Formula:   measure.WidthFrameOffset10,
	})
	require.NoError(t, err)
	require.True(t, result.OK)
	assert.Equal(t, 220.0, result.Value)
	assert.Equal(t, 220.0, updated.Details.Order.Width)

	// the derived size must survive a round trip
	reloaded, err := svc.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 220.0, reloaded.Details.Order.Width)
	assert.Equal(t, "frame 200 + 10cm each side = 220", reloaded.Details.Order.WidthNote)
}

func TestApplyFormula_MissingReadingDoesNotWrite(t *testing.T) {
	svc, _, project := newMeasurementService(t)
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, &domain.CreateBillRequest{
		ProjectID: project.ID,
		Mode:      domain.MeasureModeCurtain,
	})
	require.NoError(t, err)

	item, err := svc.AddItem(ctx, bill.ID, &domain.CreateMeasurementItemRequest{
		LocationName: "Living Room",
	})
	require.NoError(t, err)

	_, result, err := svc.ApplyFormula(ctx, item.ID, &domain.ApplyFormulaRequest{
		Dimension: "height",
		Formula:   measure.HeightFramePlus10Each,
	})
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "frame height", result.Missing)

	reloaded, err := svc.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Zero(t, reloaded.Details.Order.Height)
}

func TestSetOrderSize(t *testing.T) {
	svc, _, project := newMeasurementService(t)
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, &domain.CreateBillRequest{
		ProjectID: project.ID,
		Mode:      domain.MeasureModeCurtain,
	})
	require.NoError(t, err)

	item, err := svc.AddItem(ctx, bill.ID, &domain.CreateMeasurementItemRequest{
		LocationName: "Kitchen",
	})
	require.NoError(t, err)

	updated, err := svc.SetOrderSize(ctx, item.ID, &domain.SetOrderSizeRequest{
		Width:     180,
		Height:    240,
		WidthNote: "customer request",
	})
	require.NoError(t, err)
	assert.Equal(t, 180.0, updated.Details.Order.Width)
	assert.Equal(t, 240.0, updated.Details.Order.Height)
	assert.Equal(t, "customer request", updated.Details.Order.WidthNote)
}

func TestFormulas_ListsBothDimensions(t *testing.T) {
	svc, _, _ := newMeasurementService(t)

	formulas := svc.Formulas()
	assert.Contains(t, formulas["width"], measure.WidthFullWall)
	assert.Contains(t, formulas["height"], measure.HeightCeilingMinus2)
}
