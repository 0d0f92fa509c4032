package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// BeforeCreate assigns the ID app-side so inserts do not depend on a
// database default
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Customer represents an individual (walk-in) customer
type Customer struct {
	BaseModel
	Name       string     `gorm:"type:varchar(200);not null;index" json:"name"`
	Phone      string     `gorm:"type:varchar(50)" json:"phone"`
	Email      string     `gorm:"type:varchar(255)" json:"email"`
	LineID     string     `gorm:"type:varchar(100);column:line_id" json:"lineId,omitempty"`
	Address    string     `gorm:"type:varchar(500)" json:"address"`
	City       string     `gorm:"type:varchar(100)" json:"city"`
	PostalCode string     `gorm:"type:varchar(20)" json:"postalCode"`
	Notes      string     `gorm:"type:text" json:"notes,omitempty"`
	ReferrerID *uuid.UUID `gorm:"type:uuid;index;column:referrer_id" json:"referrerId,omitempty"`
	Referrer   *Referrer  `gorm:"foreignKey:ReferrerID" json:"referrer,omitempty"`
	StoreID    *uuid.UUID `gorm:"type:uuid;index;column:store_id" json:"storeId,omitempty"`
	CreatedBy  string     `gorm:"type:varchar(100);column:created_by" json:"createdBy,omitempty"`
}

// CorporateCustomer represents a company customer (projects billed to an org)
type CorporateCustomer struct {
	BaseModel
	CompanyName   string     `gorm:"type:varchar(200);not null;index;column:company_name" json:"companyName"`
	TaxID         string     `gorm:"type:varchar(50);column:tax_id" json:"taxId,omitempty"`
	ContactPerson string     `gorm:"type:varchar(200);column:contact_person" json:"contactPerson"`
	Phone         string     `gorm:"type:varchar(50)" json:"phone"`
	Email         string     `gorm:"type:varchar(255)" json:"email"`
	Address       string     `gorm:"type:varchar(500)" json:"address"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	ReferrerID    *uuid.UUID `gorm:"type:uuid;index;column:referrer_id" json:"referrerId,omitempty"`
	CreatedBy     string     `gorm:"type:varchar(100);column:created_by" json:"createdBy,omitempty"`
}

// Referrer is a third party credited with introducing a customer,
// tracked for commission and reporting
type Referrer struct {
	BaseModel
	Name           string  `gorm:"type:varchar(200);not null" json:"name"`
	Phone          string  `gorm:"type:varchar(50)" json:"phone"`
	CommissionRate float64 `gorm:"type:decimal(5,2);not null;default:0;column:commission_rate" json:"commissionRate"`
	Notes          string  `gorm:"type:text" json:"notes,omitempty"`
	IsActive       bool    `gorm:"not null;column:is_active" json:"isActive"`
}

// Store represents a showroom or partner storefront customers come through
type Store struct {
	BaseModel
	Name     string `gorm:"type:varchar(200);not null" json:"name"`
	Branch   string `gorm:"type:varchar(200)" json:"branch,omitempty"`
	Phone    string `gorm:"type:varchar(50)" json:"phone"`
	Address  string `gorm:"type:varchar(500)" json:"address"`
	IsActive bool   `gorm:"not null;column:is_active" json:"isActive"`
}

// Role represents what a back-office user is allowed to do
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleSales      Role = "sales"
	RoleInstaller  Role = "installer"
	RoleAccounting Role = "accounting"
	RoleMarketing  Role = "marketing"
	RoleViewer     Role = "viewer"
)

// IsValid checks if the Role is a known value
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSales, RoleInstaller, RoleAccounting, RoleMarketing, RoleViewer:
		return true
	}
	return false
}

// Profile represents a back-office user
type Profile struct {
	BaseModel
	Email        string     `gorm:"type:varchar(255);not null;unique" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null;column:password_hash" json:"-"`
	DisplayName  string     `gorm:"type:varchar(200);not null;column:display_name" json:"displayName"`
	Phone        string     `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Role         Role       `gorm:"type:varchar(50);not null;default:'viewer';index" json:"role"`
	IsActive     bool       `gorm:"not null;column:is_active" json:"isActive"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"lastLoginAt,omitempty"`
}

// DocumentSequence backs sequential human-readable numbering. One row per
// prefix (entity prefix + year + month), incremented under a row lock so
// concurrent creations in the same month cannot receive the same number.
type DocumentSequence struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Prefix       string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	LastSequence int       `gorm:"not null;default:0;column:last_sequence"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the ID app-side, same as BaseModel
func (s *DocumentSequence) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
