package domain

import (
	"time"

	"github.com/google/uuid"
)

// CampaignStatus represents the status of a marketing campaign
type CampaignStatus string

const (
	CampaignStatusPlanning  CampaignStatus = "planning"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusCancelled CampaignStatus = "cancelled"
)

// IsValid checks if the CampaignStatus is a known value
func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignStatusPlanning, CampaignStatusActive,
		CampaignStatusCompleted, CampaignStatusCancelled:
		return true
	}
	return false
}

// MarketingCampaign tracks planned budget and targets against actuals.
// Actual sales can be refreshed from the sales warehouse on demand.
type MarketingCampaign struct {
	BaseModel
	Name            string          `gorm:"type:varchar(200);not null" json:"name"`
	Code            string          `gorm:"type:varchar(50);index" json:"code,omitempty"`
	Channel         string          `gorm:"type:varchar(100)" json:"channel,omitempty"`
	Status          CampaignStatus  `gorm:"type:varchar(50);not null;default:'planning';index" json:"status"`
	StartDate       *time.Time      `gorm:"column:start_date" json:"startDate,omitempty"`
	EndDate         *time.Time      `gorm:"column:end_date" json:"endDate,omitempty"`
	Budget          float64         `gorm:"type:decimal(15,2);not null;default:0" json:"budget"`
	ExpectedSales   float64         `gorm:"type:decimal(15,2);not null;default:0;column:expected_sales" json:"expectedSales"`
	ExpectedLeads   int             `gorm:"not null;default:0;column:expected_leads" json:"expectedLeads"`
	ActualSales     float64         `gorm:"type:decimal(15,2);not null;default:0;column:actual_sales" json:"actualSales"`
	ActualLeads     int             `gorm:"not null;default:0;column:actual_leads" json:"actualLeads"`
	ActualSpend     float64         `gorm:"type:decimal(15,2);not null;default:0;column:actual_spend" json:"actualSpend"`
	ActualsSyncedAt *time.Time      `gorm:"column:actuals_synced_at" json:"actualsSyncedAt,omitempty"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	Tasks           []MarketingTask `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
	CreatedBy       string          `gorm:"type:varchar(100);column:created_by" json:"createdBy,omitempty"`
}

// TaskStatus represents the status of a marketing task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// IsValid checks if the TaskStatus is a known value
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority represents the priority of a marketing task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// IsValid checks if the TaskPriority is a known value
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// MarketingTask is an actionable item on a campaign
type MarketingTask struct {
	BaseModel
	CampaignID uuid.UUID    `gorm:"type:uuid;not null;index;column:campaign_id" json:"campaignId"`
	Title      string       `gorm:"type:varchar(300);not null" json:"title"`
	Status     TaskStatus   `gorm:"type:varchar(50);not null;default:'todo';index" json:"status"`
	Priority   TaskPriority `gorm:"type:varchar(50);not null;default:'medium'" json:"priority"`
	AssignedTo string       `gorm:"type:varchar(100);column:assigned_to" json:"assignedTo,omitempty"`
	DueAt      *time.Time   `gorm:"column:due_at" json:"dueAt,omitempty"`
	Notes      string       `gorm:"type:text" json:"notes,omitempty"`
}

// MarketingExpense is a spend entry against a campaign budget
type MarketingExpense struct {
	BaseModel
	CampaignID uuid.UUID  `gorm:"type:uuid;not null;index;column:campaign_id" json:"campaignId"`
	Title      string     `gorm:"type:varchar(300);not null" json:"title"`
	Amount     float64    `gorm:"type:decimal(15,2);not null;default:0" json:"amount"`
	SpentAt    *time.Time `gorm:"column:spent_at" json:"spentAt,omitempty"`
	Notes      string     `gorm:"type:text" json:"notes,omitempty"`
}

// MarketingEvaluation captures a post-campaign review
type MarketingEvaluation struct {
	BaseModel
	CampaignID uuid.UUID `gorm:"type:uuid;not null;index;column:campaign_id" json:"campaignId"`
	Score      int       `gorm:"not null;default:0" json:"score"`
	Summary    string    `gorm:"type:text" json:"summary,omitempty"`
	Learnings  string    `gorm:"type:text" json:"learnings,omitempty"`
	CreatedBy  string    `gorm:"type:varchar(100);column:created_by" json:"createdBy,omitempty"`
}
