package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
)

func newMarketingService(t *testing.T) (*MarketingService, *gorm.DB) {
	t.Helper()
	db := openServiceDB(t)
	return NewMarketingService(repository.NewMarketingRepository(db), nil, zap.NewNop()), db
}

func TestCreateCampaign(t *testing.T) {
	svc, _ := newMarketingService(t)

	campaign, err := svc.CreateCampaign(context.Background(), &domain.CreateCampaignRequest{
		Name:          "Songkran Sale",
		Code:          "SKR25",
		Channel:       "facebook",
		Budget:        50000,
		ExpectedSales: 400000,
		ExpectedLeads: 80,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CampaignStatusPlanning, campaign.Status)
	assert.Equal(t, "SKR25", campaign.Code)
}

func TestRefreshActuals_WarehouseDisabled(t *testing.T) {
	svc, _ := newMarketingService(t)
	ctx := context.Background()

	campaign, err := svc.CreateCampaign(ctx, &domain.CreateCampaignRequest{
		Name: "Songkran Sale",
		Code: "SKR25",
	})
	require.NoError(t, err)

	_, err = svc.RefreshActuals(ctx, campaign.ID)
	assert.ErrorIs(t, err, ErrWarehouseUnavailable)
}

func TestPerformance(t *testing.T) {
	svc, _ := newMarketingService(t)
	ctx := context.Background()

	campaign, err := svc.CreateCampaign(ctx, &domain.CreateCampaignRequest{
		Name:          "Songkran Sale",
		Budget:        50000,
		ExpectedSales: 400000,
		ExpectedLeads: 80,
	})
	require.NoError(t, err)

	_, err = svc.AddExpense(ctx, campaign.ID, &domain.CreateMarketingExpenseRequest{
		Title:  "Facebook ads, April",
		Amount: 12000,
	})
	require.NoError(t, err)
	_, err = svc.AddExpense(ctx, campaign.ID, &domain.CreateMarketingExpenseRequest{
		Title:  "Influencer fee",
		Amount: 8000,
	})
	require.NoError(t, err)

	perf, err := svc.Performance(ctx, campaign.ID)
	require.NoError(t, err)

	// no warehouse sync yet, so spend comes from recorded expenses
	assert.Equal(t, 20000.0, perf.ActualSpend)
	assert.Zero(t, perf.SalesAttainment)
	assert.Equal(t, 400000.0, perf.ExpectedSales)
}

func TestPerformance_ComputesAttainmentAndROI(t *testing.T) {
	svc, db := newMarketingService(t)
	ctx := context.Background()

	campaign, err := svc.CreateCampaign(ctx, &domain.CreateCampaignRequest{
		Name:          "Year End Fair",
		Budget:        100000,
		ExpectedSales: 200000,
	})
	require.NoError(t, err)

	// simulate a prior warehouse sync
	err = db.Model(&domain.MarketingCampaign{}).
		Where("id = ?", campaign.ID).
		Updates(map[string]interface{}{
			"actual_sales": 300000.0,
			"actual_spend": 100000.0,
		}).Error
	require.NoError(t, err)

	perf, err := svc.Performance(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.5, perf.SalesAttainment)
	assert.Equal(t, 2.0, perf.ROI)
}

func TestTaskLifecycle(t *testing.T) {
	svc, _ := newMarketingService(t)
	ctx := context.Background()

	campaign, err := svc.CreateCampaign(ctx, &domain.CreateCampaignRequest{Name: "Launch"})
	require.NoError(t, err)

	task, err := svc.AddTask(ctx, campaign.ID, &domain.CreateMarketingTaskRequest{
		Title: "Brief the photographer",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusTodo, task.Status)
	assert.Equal(t, domain.TaskPriorityMedium, task.Priority)

	done, err := svc.UpdateTaskStatus(ctx, task.ID, domain.TaskStatusDone)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusDone, done.Status)
}
