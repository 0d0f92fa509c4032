package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
)

func newAccountingService(t *testing.T) (*AccountingService, *repository.AccountingRepository) {
	t.Helper()
	db := openServiceDB(t)
	repo := repository.NewAccountingRepository(db)
	return NewAccountingService(repo, testNumbering(), zap.NewNop()), repo
}

func TestCreateAccountingDoc_ComputesTax(t *testing.T) {
	svc, _ := newAccountingService(t)

	doc, err := svc.Create(context.Background(), &domain.CreateAccountingDocRequest{
		DocType: domain.AccountingDocInvoice,
		Title:   "Curtain installation, phase 1",
		Amount:  10000,
		TaxRate: 7,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.AccountingDocStatusDraft, doc.Status)
	assert.Equal(t, 700.0, doc.TaxAmount)
	assert.Equal(t, 10700.0, doc.GrandTotal)
	assert.Contains(t, doc.DocNumber, "INV-")
}

func TestCreateAccountingDoc_RoundsTaxToSatang(t *testing.T) {
	svc, _ := newAccountingService(t)

	doc, err := svc.Create(context.Background(), &domain.CreateAccountingDocRequest{
		DocType: domain.AccountingDocReceipt,
		Amount:  333.33,
		TaxRate: 7,
	})
	require.NoError(t, err)

	// round(333.33 * 7) / 100 = 23.33
	assert.Equal(t, 23.33, doc.TaxAmount)
	assert.Equal(t, 356.66, doc.GrandTotal)
}

func TestUpdateAccountingDocStatus_Lifecycle(t *testing.T) {
	svc, _ := newAccountingService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, &domain.CreateAccountingDocRequest{
		DocType: domain.AccountingDocInvoice,
		Amount:  5000,
	})
	require.NoError(t, err)

	// draft cannot be paid directly
	_, err = svc.UpdateStatus(ctx, doc.ID, &domain.UpdateAccountingDocStatusRequest{Status: domain.AccountingDocStatusPaid})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	issued, err := svc.UpdateStatus(ctx, doc.ID, &domain.UpdateAccountingDocStatusRequest{Status: domain.AccountingDocStatusIssued})
	require.NoError(t, err)
	assert.Equal(t, domain.AccountingDocStatusIssued, issued.Status)
	assert.NotNil(t, issued.IssuedAt)

	paid, err := svc.UpdateStatus(ctx, doc.ID, &domain.UpdateAccountingDocStatusRequest{Status: domain.AccountingDocStatusPaid})
	require.NoError(t, err)
	assert.Equal(t, domain.AccountingDocStatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)

	// paid documents are frozen
	_, err = svc.Update(ctx, doc.ID, &domain.CreateAccountingDocRequest{
		DocType: domain.AccountingDocInvoice,
		Amount:  9000,
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRefreshOverdue(t *testing.T) {
	svc, _ := newAccountingService(t)
	ctx := context.Background()

	pastDue := time.Now().Add(-48 * time.Hour)
	futureDue := time.Now().Add(48 * time.Hour)

	late, err := svc.Create(ctx, &domain.CreateAccountingDocRequest{
		DocType: domain.AccountingDocInvoice,
		Amount:  1000,
		DueAt:   &pastDue,
	})
	require.NoError(t, err)
	onTime, err := svc.Create(ctx, &domain.CreateAccountingDocRequest{
		DocType: domain.AccountingDocInvoice,
		Amount:  2000,
		DueAt:   &futureDue,
	})
	require.NoError(t, err)

	for _, doc := range []*domain.AccountingDoc{late, onTime} {
		_, err = svc.UpdateStatus(ctx, doc.ID, &domain.UpdateAccountingDocStatusRequest{Status: domain.AccountingDocStatusIssued})
		require.NoError(t, err)
	}

	flagged, err := svc.RefreshOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, flagged)

	reloaded, err := svc.GetByID(ctx, late.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountingDocStatusOverdue, reloaded.Status)

	stillIssued, err := svc.GetByID(ctx, onTime.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountingDocStatusIssued, stillIssued.Status)
}
