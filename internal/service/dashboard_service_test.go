package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
)

func TestDashboardSummary(t *testing.T) {
	db := openServiceDB(t)
	ctx := context.Background()

	customer := seedCustomer(t, db)
	project := seedProject(t, db, customer)
	require.NoError(t, db.Model(project).Update("status", domain.ProjectStatusInProgress).Error)
	seedBill(t, db, project)

	require.NoError(t, db.Create(&domain.Quotation{
		QuotationNumber: "QT-20250512-0001",
		Status:          domain.QuotationStatusSent,
		GrandTotal:      45000,
	}).Error)
	require.NoError(t, db.Create(&domain.AccountingDoc{
		DocNumber:  "INV-20250512-0001",
		DocType:    domain.AccountingDocInvoice,
		Status:     domain.AccountingDocStatusIssued,
		Amount:     10000,
		GrandTotal: 10700,
	}).Error)
	require.NoError(t, db.Create(&domain.InventoryItem{
		Name:     "Sheer fabric, white",
		Quantity: 2,
		MinQty:   10,
		IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&domain.MarketingCampaign{
		Name:   "Songkran Sale",
		Status: domain.CampaignStatusActive,
	}).Error)

	svc := NewDashboardService(
		repository.NewProjectRepository(db),
		repository.NewMeasurementRepository(db),
		repository.NewQuotationRepository(db),
		repository.NewAccountingRepository(db),
		repository.NewInventoryRepository(db),
		repository.NewMarketingRepository(db),
		repository.NewCustomerRepository(db),
		zap.NewNop(),
	)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.ActiveProjects)
	assert.Equal(t, int64(1), summary.DraftBills)
	assert.Equal(t, int64(1), summary.OpenQuotations)
	assert.Equal(t, 45000.0, summary.QuotationValue)
	assert.Equal(t, int64(1), summary.UnpaidInvoices)
	assert.Equal(t, 10700.0, summary.UnpaidAmount)
	assert.Equal(t, int64(1), summary.LowStockItems)
	assert.Equal(t, int64(1), summary.ActiveCampaigns)
	assert.Equal(t, int64(1), summary.CustomersTotal)
	assert.Equal(t, int64(1), summary.QuotationsByStatus["sent"])
	assert.Equal(t, int64(0), summary.QuotationsByStatus["draft"])
}
