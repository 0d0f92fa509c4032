package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/auth"
	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
	"github.com/draperly/atelier-api/internal/warehouse"
)

// MarketingService manages campaigns, their tasks, expenses and evaluations.
// Actual sales figures can be pulled on demand from the sales warehouse when
// one is configured.
type MarketingService struct {
	marketingRepo *repository.MarketingRepository
	warehouse     *warehouse.Client
	logger        *zap.Logger
}

func NewMarketingService(
	marketingRepo *repository.MarketingRepository,
	warehouseClient *warehouse.Client,
	logger *zap.Logger,
) *MarketingService {
	return &MarketingService{
		marketingRepo: marketingRepo,
		warehouse:     warehouseClient,
		logger:        logger,
	}
}

func (s *MarketingService) CreateCampaign(ctx context.Context, req *domain.CreateCampaignRequest) (*domain.MarketingCampaign, error) {
	campaign := &domain.MarketingCampaign{
		Name:          req.Name,
		Code:          req.Code,
		Channel:       req.Channel,
		Status:        domain.CampaignStatusPlanning,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Budget:        req.Budget,
		ExpectedSales: req.ExpectedSales,
		ExpectedLeads: req.ExpectedLeads,
		Notes:         req.Notes,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		campaign.CreatedBy = userCtx.DisplayName
	}

	if err := s.marketingRepo.CreateCampaign(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	return campaign, nil
}

func (s *MarketingService) GetCampaignByID(ctx context.Context, id uuid.UUID) (*domain.MarketingCampaign, error) {
	campaign, err := s.marketingRepo.GetCampaignByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return campaign, nil
}

func (s *MarketingService) UpdateCampaign(ctx context.Context, id uuid.UUID, req *domain.UpdateCampaignRequest) (*domain.MarketingCampaign, error) {
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown campaign status %q", ErrInvalidInput, req.Status)
	}

	campaign, err := s.marketingRepo.GetCampaignByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	campaign.Name = req.Name
	campaign.Code = req.Code
	campaign.Channel = req.Channel
	campaign.Status = req.Status
	campaign.StartDate = req.StartDate
	campaign.EndDate = req.EndDate
	campaign.Budget = req.Budget
	campaign.ExpectedSales = req.ExpectedSales
	campaign.ExpectedLeads = req.ExpectedLeads
	campaign.Notes = req.Notes
	campaign.Tasks = nil

	if err := s.marketingRepo.UpdateCampaign(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	return s.GetCampaignByID(ctx, id)
}

func (s *MarketingService) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	if err := s.marketingRepo.DeleteCampaign(ctx, id); err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	return nil
}

func (s *MarketingService) ListCampaigns(ctx context.Context, page, pageSize int, search string, status domain.CampaignStatus) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePage(page, pageSize)

	campaigns, total, err := s.marketingRepo.ListCampaigns(ctx, page, pageSize, search, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	return paginated(campaigns, total, page, pageSize), nil
}

// RefreshActuals pulls actual sales, leads and spend for a campaign from the
// sales warehouse, keyed by the campaign code
func (s *MarketingService) RefreshActuals(ctx context.Context, id uuid.UUID) (*domain.MarketingCampaign, error) {
	if !s.warehouse.IsEnabled() {
		return nil, ErrWarehouseUnavailable
	}

	campaign, err := s.marketingRepo.GetCampaignByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	if campaign.Code == "" {
		return nil, fmt.Errorf("%w: campaign has no code to match against the warehouse", ErrInvalidInput)
	}

	actuals, err := s.warehouse.GetCampaignActuals(ctx, campaign.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch campaign actuals: %w", err)
	}

	now := time.Now()
	if actuals != nil {
		campaign.ActualSales = actuals.SalesAmount
		campaign.ActualLeads = actuals.LeadCount
		campaign.ActualSpend = actuals.SpendAmount
	}
	campaign.ActualsSyncedAt = &now
	campaign.Tasks = nil

	if err := s.marketingRepo.UpdateCampaign(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to save campaign actuals: %w", err)
	}

	s.logger.Info("campaign actuals refreshed",
		zap.String("campaignID", id.String()),
		zap.String("code", campaign.Code),
		zap.Float64("actualSales", campaign.ActualSales))

	return s.GetCampaignByID(ctx, id)
}

// Performance compares a campaign's plan against its actuals
func (s *MarketingService) Performance(ctx context.Context, id uuid.UUID) (*domain.CampaignPerformanceDTO, error) {
	campaign, err := s.marketingRepo.GetCampaignByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	recorded, err := s.marketingRepo.SumExpenses(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}
	spend := campaign.ActualSpend
	if recorded > spend {
		spend = recorded
	}

	perf := &domain.CampaignPerformanceDTO{
		CampaignID:    campaign.ID,
		Name:          campaign.Name,
		Budget:        campaign.Budget,
		ActualSpend:   spend,
		ExpectedSales: campaign.ExpectedSales,
		ActualSales:   campaign.ActualSales,
		ExpectedLeads: campaign.ExpectedLeads,
		ActualLeads:   campaign.ActualLeads,
	}
	if campaign.ExpectedSales > 0 {
		perf.SalesAttainment = campaign.ActualSales / campaign.ExpectedSales
	}
	if spend > 0 {
		perf.ROI = (campaign.ActualSales - spend) / spend
	}

	return perf, nil
}

// Tasks

func (s *MarketingService) AddTask(ctx context.Context, campaignID uuid.UUID, req *domain.CreateMarketingTaskRequest) (*domain.MarketingTask, error) {
	if _, err := s.marketingRepo.GetCampaignByID(ctx, campaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown task priority %q", ErrInvalidInput, priority)
	}

	task := &domain.MarketingTask{
		CampaignID: campaignID,
		Title:      req.Title,
		Status:     domain.TaskStatusTodo,
		Priority:   priority,
		AssignedTo: req.AssignedTo,
		DueAt:      req.DueAt,
		Notes:      req.Notes,
	}

	if err := s.marketingRepo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

func (s *MarketingService) UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status domain.TaskStatus) (*domain.MarketingTask, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown task status %q", ErrInvalidInput, status)
	}

	task, err := s.marketingRepo.GetTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	task.Status = status

	if err := s.marketingRepo.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

func (s *MarketingService) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	if err := s.marketingRepo.DeleteTask(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Expenses

func (s *MarketingService) AddExpense(ctx context.Context, campaignID uuid.UUID, req *domain.CreateMarketingExpenseRequest) (*domain.MarketingExpense, error) {
	if _, err := s.marketingRepo.GetCampaignByID(ctx, campaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	expense := &domain.MarketingExpense{
		CampaignID: campaignID,
		Title:      req.Title,
		Amount:     req.Amount,
		SpentAt:    req.SpentAt,
		Notes:      req.Notes,
	}

	if err := s.marketingRepo.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return expense, nil
}

func (s *MarketingService) ListExpenses(ctx context.Context, campaignID uuid.UUID) ([]domain.MarketingExpense, error) {
	return s.marketingRepo.ListExpenses(ctx, campaignID)
}

func (s *MarketingService) DeleteExpense(ctx context.Context, expenseID uuid.UUID) error {
	if err := s.marketingRepo.DeleteExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

// Evaluations

func (s *MarketingService) AddEvaluation(ctx context.Context, campaignID uuid.UUID, req *domain.CreateMarketingEvaluationRequest) (*domain.MarketingEvaluation, error) {
	if _, err := s.marketingRepo.GetCampaignByID(ctx, campaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	eval := &domain.MarketingEvaluation{
		CampaignID: campaignID,
		Score:      req.Score,
		Summary:    req.Summary,
		Learnings:  req.Learnings,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		eval.CreatedBy = userCtx.DisplayName
	}

	if err := s.marketingRepo.CreateEvaluation(ctx, eval); err != nil {
		return nil, fmt.Errorf("failed to create evaluation: %w", err)
	}

	return eval, nil
}

func (s *MarketingService) ListEvaluations(ctx context.Context, campaignID uuid.UUID) ([]domain.MarketingEvaluation, error) {
	return s.marketingRepo.ListEvaluations(ctx, campaignID)
}
