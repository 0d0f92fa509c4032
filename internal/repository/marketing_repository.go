package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/domain"
)

// MarketingRepository handles campaigns and their tasks, expenses and
// evaluations
type MarketingRepository struct {
	db *gorm.DB
}

func NewMarketingRepository(db *gorm.DB) *MarketingRepository {
	return &MarketingRepository{db: db}
}

func (r *MarketingRepository) CreateCampaign(ctx context.Context, campaign *domain.MarketingCampaign) error {
	return r.db.WithContext(ctx).Create(campaign).Error
}

func (r *MarketingRepository) GetCampaignByID(ctx context.Context, id uuid.UUID) (*domain.MarketingCampaign, error) {
	var campaign domain.MarketingCampaign
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&campaign).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *MarketingRepository) UpdateCampaign(ctx context.Context, campaign *domain.MarketingCampaign) error {
	return r.db.WithContext(ctx).Save(campaign).Error
}

func (r *MarketingRepository) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.MarketingCampaign{}, "id = ?", id).Error
}

func (r *MarketingRepository) ListCampaigns(ctx context.Context, page, pageSize int, search string, status domain.CampaignStatus) ([]domain.MarketingCampaign, int64, error) {
	var campaigns []domain.MarketingCampaign
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.MarketingCampaign{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(channel) LIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(page, pageSize)).Order("created_at DESC").Find(&campaigns).Error

	return campaigns, total, err
}

func (r *MarketingRepository) CountCampaignsByStatus(ctx context.Context, status domain.CampaignStatus) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.MarketingCampaign{}).Where("status = ?", status).Count(&count).Error
	return int(count), err
}

// Tasks

func (r *MarketingRepository) CreateTask(ctx context.Context, task *domain.MarketingTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *MarketingRepository) GetTaskByID(ctx context.Context, id uuid.UUID) (*domain.MarketingTask, error) {
	var task domain.MarketingTask
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *MarketingRepository) UpdateTask(ctx context.Context, task *domain.MarketingTask) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *MarketingRepository) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.MarketingTask{}, "id = ?", id).Error
}

func (r *MarketingRepository) ListTasks(ctx context.Context, campaignID uuid.UUID) ([]domain.MarketingTask, error) {
	var tasks []domain.MarketingTask
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

// Expenses

func (r *MarketingRepository) CreateExpense(ctx context.Context, expense *domain.MarketingExpense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *MarketingRepository) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.MarketingExpense{}, "id = ?", id).Error
}

func (r *MarketingRepository) ListExpenses(ctx context.Context, campaignID uuid.UUID) ([]domain.MarketingExpense, error) {
	var expenses []domain.MarketingExpense
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("spent_at ASC, created_at ASC").
		Find(&expenses).Error
	return expenses, err
}

// SumExpenses totals recorded spend for a campaign
func (r *MarketingRepository) SumExpenses(ctx context.Context, campaignID uuid.UUID) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Model(&domain.MarketingExpense{}).
		Where("campaign_id = ?", campaignID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// Evaluations

func (r *MarketingRepository) CreateEvaluation(ctx context.Context, eval *domain.MarketingEvaluation) error {
	return r.db.WithContext(ctx).Create(eval).Error
}

func (r *MarketingRepository) ListEvaluations(ctx context.Context, campaignID uuid.UUID) ([]domain.MarketingEvaluation, error) {
	var evals []domain.MarketingEvaluation
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at DESC").
		Find(&evals).Error
	return evals, err
}
