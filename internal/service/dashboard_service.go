package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
)

// DashboardService aggregates headline numbers for the back-office home view
type DashboardService struct {
	projectRepo     *repository.ProjectRepository
	measurementRepo *repository.MeasurementRepository
	quotationRepo   *repository.QuotationRepository
	accountingRepo  *repository.AccountingRepository
	inventoryRepo   *repository.InventoryRepository
	marketingRepo   *repository.MarketingRepository
	customerRepo    *repository.CustomerRepository
	logger          *zap.Logger
}

func NewDashboardService(
	projectRepo *repository.ProjectRepository,
	measurementRepo *repository.MeasurementRepository,
	quotationRepo *repository.QuotationRepository,
	accountingRepo *repository.AccountingRepository,
	inventoryRepo *repository.InventoryRepository,
	marketingRepo *repository.MarketingRepository,
	customerRepo *repository.CustomerRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		projectRepo:     projectRepo,
		measurementRepo: measurementRepo,
		quotationRepo:   quotationRepo,
		accountingRepo:  accountingRepo,
		inventoryRepo:   inventoryRepo,
		marketingRepo:   marketingRepo,
		customerRepo:    customerRepo,
		logger:          logger,
	}
}

// Summary collects the dashboard counters in one pass
func (s *DashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	summary := &domain.DashboardSummary{
		QuotationsByStatus: make(map[string]int64),
	}

	activeProjects, err := s.projectRepo.CountByStatus(ctx, domain.ProjectStatusInProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to count active projects: %w", err)
	}
	summary.ActiveProjects = int64(activeProjects)

	draftBills, err := s.measurementRepo.CountBillsByStatus(ctx, domain.BillStatusDraft)
	if err != nil {
		return nil, fmt.Errorf("failed to count draft bills: %w", err)
	}
	summary.DraftBills = int64(draftBills)

	for _, status := range []domain.QuotationStatus{
		domain.QuotationStatusDraft, domain.QuotationStatusSent,
		domain.QuotationStatusApproved, domain.QuotationStatusRejected,
	} {
		count, err := s.quotationRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("failed to count quotations: %w", err)
		}
		summary.QuotationsByStatus[string(status)] = int64(count)
	}
	summary.OpenQuotations = summary.QuotationsByStatus[string(domain.QuotationStatusDraft)] +
		summary.QuotationsByStatus[string(domain.QuotationStatusSent)]

	sentValue, err := s.quotationRepo.SumByStatus(ctx, domain.QuotationStatusSent)
	if err != nil {
		return nil, fmt.Errorf("failed to sum sent quotations: %w", err)
	}
	summary.QuotationValue = sentValue

	unpaid, err := s.accountingRepo.SumByTypeAndStatus(ctx, domain.AccountingDocInvoice, domain.AccountingDocStatusIssued)
	if err != nil {
		return nil, fmt.Errorf("failed to sum unpaid invoices: %w", err)
	}
	overdue, err := s.accountingRepo.SumByTypeAndStatus(ctx, domain.AccountingDocInvoice, domain.AccountingDocStatusOverdue)
	if err != nil {
		return nil, fmt.Errorf("failed to sum overdue invoices: %w", err)
	}
	summary.UnpaidAmount = unpaid + overdue

	issuedCount, err := s.accountingRepo.CountByTypeAndStatus(ctx, domain.AccountingDocInvoice, domain.AccountingDocStatusIssued)
	if err != nil {
		return nil, fmt.Errorf("failed to count unpaid invoices: %w", err)
	}
	overdueCount, err := s.accountingRepo.CountByTypeAndStatus(ctx, domain.AccountingDocInvoice, domain.AccountingDocStatusOverdue)
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue invoices: %w", err)
	}
	summary.UnpaidInvoices = int64(issuedCount + overdueCount)

	lowStock, err := s.inventoryRepo.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock: %w", err)
	}
	summary.LowStockItems = int64(len(lowStock))

	activeCampaigns, err := s.marketingRepo.CountCampaignsByStatus(ctx, domain.CampaignStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count campaigns: %w", err)
	}
	summary.ActiveCampaigns = int64(activeCampaigns)

	customers, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	summary.CustomersTotal = int64(customers)

	return summary, nil
}
