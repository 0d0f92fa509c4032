package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusOnHold     ProjectStatus = "on_hold"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

// IsValid checks if the ProjectStatus is a known value
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusCompleted,
		ProjectStatusOnHold, ProjectStatusCancelled:
		return true
	}
	return false
}

// Project is a unit of work tied to one customer.
// ProjectNumber follows PJ{YY}{MM}{NNN}, scoped per month.
type Project struct {
	BaseModel
	ProjectNumber string            `gorm:"type:varchar(50);unique;index;column:project_number" json:"projectNumber"`
	Name          string            `gorm:"type:varchar(200);not null;index" json:"name"`
	Description   string            `gorm:"type:text" json:"description,omitempty"`
	CustomerID    *uuid.UUID        `gorm:"type:uuid;index;column:customer_id" json:"customerId,omitempty"`
	Customer      *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CorporateID   *uuid.UUID        `gorm:"type:uuid;index;column:corporate_id" json:"corporateId,omitempty"`
	Corporate     *CorporateCustomer `gorm:"foreignKey:CorporateID" json:"corporate,omitempty"`
	Status        ProjectStatus     `gorm:"type:varchar(50);not null;default:'planning';index" json:"status"`
	StartDate     *time.Time        `gorm:"type:date;column:start_date" json:"startDate,omitempty"`
	EndDate       *time.Time        `gorm:"type:date;column:end_date" json:"endDate,omitempty"`
	Address       string            `gorm:"type:varchar(500)" json:"address,omitempty"`
	Notes         string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy     string            `gorm:"type:varchar(100);column:created_by" json:"createdBy,omitempty"`
	Locations     []ProjectLocation `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"locations,omitempty"`
}

// ProjectLocation is a room within a floor of the project site
type ProjectLocation struct {
	BaseModel
	ProjectID uuid.UUID        `gorm:"type:uuid;not null;index;column:project_id" json:"projectId"`
	Floor     string           `gorm:"type:varchar(100)" json:"floor,omitempty"`
	Name      string           `gorm:"type:varchar(200);not null" json:"name"`
	SortOrder int              `gorm:"not null;default:0;column:sort_order" json:"sortOrder"`
	Windows   []LocationWindow `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"windows,omitempty"`
}

// WindowKind classifies a sub-position within a room
type WindowKind string

const (
	WindowKindWindow WindowKind = "window"
	WindowKindDoor   WindowKind = "door"
	WindowKindWall   WindowKind = "wall"
	WindowKindOther  WindowKind = "other"
)

// LocationWindow is a named sub-position (window/door/wall) within a room,
// optionally carrying uploaded photo URLs
type LocationWindow struct {
	BaseModel
	LocationID uuid.UUID      `gorm:"type:uuid;not null;index;column:location_id" json:"locationId"`
	Name       string         `gorm:"type:varchar(200);not null" json:"name"`
	Kind       WindowKind     `gorm:"type:varchar(50);not null;default:'window'" json:"kind"`
	PhotoURLs  pq.StringArray `gorm:"type:text[];column:photo_urls" json:"photoUrls,omitempty"`
	Notes      string         `gorm:"type:text" json:"notes,omitempty"`
	SortOrder  int            `gorm:"not null;default:0;column:sort_order" json:"sortOrder"`
}
