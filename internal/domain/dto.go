package domain

import (
	"time"

	"github.com/google/uuid"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// PaginatedResponse wraps list results with paging metadata
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// APIResponse wraps a single result
type APIResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
}

// Auth DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt string      `json:"expiresAt"` // ISO 8601
	User      *ProfileDTO `json:"user"`
}

type ProfileDTO struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        Role      `json:"role"`
	IsActive    bool      `json:"isActive"`
	LastLoginAt *string   `json:"lastLoginAt,omitempty"` // ISO 8601
}

type CreateProfileRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=100"`
	DisplayName string `json:"displayName" validate:"required,max=200"`
	Role        Role   `json:"role" validate:"required,oneof=admin manager sales installer accounting marketing viewer"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"displayName" validate:"required,max=200"`
	Role        Role   `json:"role" validate:"required,oneof=admin manager sales installer accounting marketing viewer"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// Customer request DTOs

type CreateCustomerRequest struct {
	Name       string     `json:"name" validate:"required,max=200"`
	Phone      string     `json:"phone,omitempty" validate:"max=50"`
	Email      string     `json:"email,omitempty" validate:"omitempty,email"`
	LineID     string     `json:"lineId,omitempty" validate:"max=100"`
	Address    string     `json:"address,omitempty" validate:"max=500"`
	City       string     `json:"city,omitempty" validate:"max=100"`
	PostalCode string     `json:"postalCode,omitempty" validate:"max=20"`
	ReferrerID *uuid.UUID `json:"referrerId,omitempty"`
	StoreID    *uuid.UUID `json:"storeId,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

type UpdateCustomerRequest struct {
	Name       string     `json:"name" validate:"required,max=200"`
	Phone      string     `json:"phone,omitempty" validate:"max=50"`
	Email      string     `json:"email,omitempty" validate:"omitempty,email"`
	LineID     string     `json:"lineId,omitempty" validate:"max=100"`
	Address    string     `json:"address,omitempty" validate:"max=500"`
	City       string     `json:"city,omitempty" validate:"max=100"`
	PostalCode string     `json:"postalCode,omitempty" validate:"max=20"`
	ReferrerID *uuid.UUID `json:"referrerId,omitempty"`
	StoreID    *uuid.UUID `json:"storeId,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

type CreateCorporateCustomerRequest struct {
	CompanyName   string `json:"companyName" validate:"required,max=200"`
	TaxID         string `json:"taxId,omitempty" validate:"max=50"`
	ContactPerson string `json:"contactPerson,omitempty" validate:"max=200"`
	Phone         string `json:"phone,omitempty" validate:"max=50"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Address       string `json:"address,omitempty" validate:"max=500"`
	Notes         string `json:"notes,omitempty"`
}

type CreateReferrerRequest struct {
	Name           string  `json:"name" validate:"required,max=200"`
	Phone          string  `json:"phone,omitempty" validate:"max=50"`
	CommissionRate float64 `json:"commissionRate,omitempty" validate:"gte=0,lte=100"`
	Notes          string  `json:"notes,omitempty"`
}

type CreateStoreRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Branch  string `json:"branch,omitempty" validate:"max=200"`
	Phone   string `json:"phone,omitempty" validate:"max=50"`
	Address string `json:"address,omitempty" validate:"max=500"`
}

// Catalog request DTOs

type CreateCategoryRequest struct {
	Name         string                 `json:"name" validate:"required,max=200"`
	Description  string                 `json:"description,omitempty"`
	CalcMethod   CalcMethod             `json:"calcMethod" validate:"required"`
	Conditions   AreaConditions         `json:"conditions"`
	Requirements ProductionRequirements `json:"requirements"`
}

type UpdateCategoryRequest struct {
	Name         string                 `json:"name" validate:"required,max=200"`
	Description  string                 `json:"description,omitempty"`
	CalcMethod   CalcMethod             `json:"calcMethod" validate:"required"`
	Conditions   AreaConditions         `json:"conditions"`
	Requirements ProductionRequirements `json:"requirements"`
	IsActive     *bool                  `json:"isActive,omitempty"`
}

type CreateProductRequest struct {
	CategoryID  uuid.UUID                `json:"categoryId" validate:"required"`
	Name        string                   `json:"name" validate:"required,max=200"`
	Code        string                   `json:"code,omitempty" validate:"max=100"`
	Description string                   `json:"description,omitempty"`
	Unit        string                   `json:"unit,omitempty" validate:"max=50"`
	BasePrice   float64                  `json:"basePrice" validate:"gte=0"`
	RetailPrice float64                  `json:"retailPrice,omitempty" validate:"gte=0"`
	CostPrice   float64                  `json:"costPrice,omitempty" validate:"gte=0"`
	PriceTiers  []CreatePriceTierRequest `json:"priceTiers,omitempty" validate:"dive"`
}

type UpdateProductRequest struct {
	CategoryID  uuid.UUID `json:"categoryId" validate:"required"`
	Name        string    `json:"name" validate:"required,max=200"`
	Code        string    `json:"code,omitempty" validate:"max=100"`
	Description string    `json:"description,omitempty"`
	Unit        string    `json:"unit,omitempty" validate:"max=50"`
	BasePrice   float64   `json:"basePrice" validate:"gte=0"`
	RetailPrice float64   `json:"retailPrice,omitempty" validate:"gte=0"`
	CostPrice   float64   `json:"costPrice,omitempty" validate:"gte=0"`
	IsActive    *bool     `json:"isActive,omitempty"`
}

type CreatePriceTierRequest struct {
	MinWidthCM    float64 `json:"minWidthCm" validate:"gte=0"`
	MaxWidthCM    float64 `json:"maxWidthCm" validate:"gte=0"`
	Price         float64 `json:"price" validate:"gte=0"`
	PlatformPrice float64 `json:"platformPrice,omitempty" validate:"gte=0"`
	SortOrder     int     `json:"sortOrder,omitempty" validate:"gte=0"`
}

// Project request DTOs

type CreateProjectRequest struct {
	Name                string        `json:"name" validate:"required,max=300"`
	CustomerID          *uuid.UUID    `json:"customerId,omitempty"`
	CorporateCustomerID *uuid.UUID    `json:"corporateCustomerId,omitempty"`
	Address             string        `json:"address,omitempty" validate:"max=500"`
	Status              ProjectStatus `json:"status,omitempty"`
	StartDate           *time.Time    `json:"startDate,omitempty"`
	EndDate             *time.Time    `json:"endDate,omitempty"`
	Notes               string        `json:"notes,omitempty"`
}

type UpdateProjectRequest struct {
	Name                string        `json:"name" validate:"required,max=300"`
	CustomerID          *uuid.UUID    `json:"customerId,omitempty"`
	CorporateCustomerID *uuid.UUID    `json:"corporateCustomerId,omitempty"`
	Address             string        `json:"address,omitempty" validate:"max=500"`
	Status              ProjectStatus `json:"status" validate:"required"`
	StartDate           *time.Time    `json:"startDate,omitempty"`
	EndDate             *time.Time    `json:"endDate,omitempty"`
	Notes               string        `json:"notes,omitempty"`
}

type CreateLocationRequest struct {
	Floor     string `json:"floor,omitempty" validate:"max=50"`
	Name      string `json:"name" validate:"required,max=300"`
	SortOrder int    `json:"sortOrder,omitempty" validate:"gte=0"`
}

type CreateWindowRequest struct {
	Name      string     `json:"name" validate:"required,max=200"`
	Kind      WindowKind `json:"kind,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	SortOrder int        `json:"sortOrder,omitempty" validate:"gte=0"`
}

// Measurement request DTOs

type CreateBillRequest struct {
	ProjectID  uuid.UUID   `json:"projectId" validate:"required"`
	Mode       MeasureMode `json:"mode" validate:"required,oneof=curtain wallpaper film"`
	MeasuredBy string      `json:"measuredBy,omitempty" validate:"max=100"`
	Notes      string      `json:"notes,omitempty"`
}

type UpdateBillRequest struct {
	Mode       MeasureMode `json:"mode" validate:"required,oneof=curtain wallpaper film"`
	Status     BillStatus  `json:"status" validate:"required,oneof=draft completed cancelled"`
	MeasuredBy string      `json:"measuredBy,omitempty" validate:"max=100"`
	Notes      string      `json:"notes,omitempty"`
}

type CreateMeasurementItemRequest struct {
	WindowID     *uuid.UUID         `json:"windowId,omitempty"`
	LocationName string             `json:"locationName" validate:"required,max=300"`
	CategoryID   *uuid.UUID         `json:"categoryId,omitempty"`
	Details      MeasurementDetails `json:"details"`
	Notes        string             `json:"notes,omitempty"`
	SortOrder    int                `json:"sortOrder,omitempty" validate:"gte=0"`
}

type UpdateMeasurementItemRequest struct {
	LocationName string             `json:"locationName" validate:"required,max=300"`
	CategoryID   *uuid.UUID         `json:"categoryId,omitempty"`
	Details      MeasurementDetails `json:"details"`
	Notes        string             `json:"notes,omitempty"`
	SortOrder    int                `json:"sortOrder,omitempty" validate:"gte=0"`
}

// ApplyFormulaRequest selects a derivation formula for one dimension of an item
type ApplyFormulaRequest struct {
	Dimension string `json:"dimension" validate:"required,oneof=width height"`
	Formula   string `json:"formula" validate:"required,max=100"`
}

// SetOrderSizeRequest overrides the production size of an item by hand
type SetOrderSizeRequest struct {
	Width      float64 `json:"width" validate:"gte=0"`
	Height     float64 `json:"height" validate:"gte=0"`
	WidthNote  string  `json:"widthNote,omitempty" validate:"max=300"`
	HeightNote string  `json:"heightNote,omitempty" validate:"max=300"`
}

// Spec sheet request DTOs

type CreateSpecSheetRequest struct {
	BillID  uuid.UUID   `json:"billId" validate:"required"`
	ItemIDs []uuid.UUID `json:"itemIds" validate:"required,min=1"`
	Notes   string      `json:"notes,omitempty"`
}

type BindProductRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
}

// Quotation request DTOs

type CreateQuotationFromBillRequest struct {
	BillID     uuid.UUID  `json:"billId" validate:"required"`
	CustomerID *uuid.UUID `json:"customerId,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

type CreateQuotationFromSheetRequest struct {
	SheetID    uuid.UUID  `json:"sheetId" validate:"required"`
	CustomerID *uuid.UUID `json:"customerId,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

type UpdateQuotationItemRequest struct {
	ProductName string  `json:"productName" validate:"required,max=200"`
	Description string  `json:"description,omitempty" validate:"max=500"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	Unit        string  `json:"unit,omitempty" validate:"max=50"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

type UpdateQuotationStatusRequest struct {
	Status QuotationStatus `json:"status" validate:"required,oneof=draft sent approved rejected cancelled"`
}

// Inventory request DTOs

type CreateInventoryItemRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Code      string  `json:"code,omitempty" validate:"max=100"`
	Unit      string  `json:"unit,omitempty" validate:"max=50"`
	Quantity  float64 `json:"quantity" validate:"gte=0"`
	MinQty    float64 `json:"minQty,omitempty" validate:"gte=0"`
	CostPrice float64 `json:"costPrice,omitempty" validate:"gte=0"`
	SellPrice float64 `json:"sellPrice,omitempty" validate:"gte=0"`
	Location  string  `json:"location,omitempty" validate:"max=200"`
}

type AdjustStockRequest struct {
	Delta float64 `json:"delta" validate:"required"`
	Notes string  `json:"notes,omitempty" validate:"max=300"`
}

type CreatePurchaseOrderRequest struct {
	Supplier string                           `json:"supplier,omitempty" validate:"max=200"`
	Notes    string                           `json:"notes,omitempty"`
	Items    []CreatePurchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type CreatePurchaseOrderItemRequest struct {
	InventoryID *uuid.UUID `json:"inventoryId,omitempty"`
	Name        string     `json:"name" validate:"required,max=200"`
	Quantity    float64    `json:"quantity" validate:"gt=0"`
	Unit        string     `json:"unit,omitempty" validate:"max=50"`
	UnitPrice   float64    `json:"unitPrice" validate:"gte=0"`
}

// Accounting request DTOs

type CreateAccountingDocRequest struct {
	DocType     AccountingDocType `json:"docType" validate:"required,oneof=invoice receipt expense"`
	CustomerID  *uuid.UUID        `json:"customerId,omitempty"`
	QuotationID *uuid.UUID        `json:"quotationId,omitempty"`
	Title       string            `json:"title,omitempty" validate:"max=300"`
	Amount      float64           `json:"amount" validate:"gte=0"`
	TaxRate     float64           `json:"taxRate,omitempty" validate:"gte=0,lte=100"`
	DueAt       *time.Time        `json:"dueAt,omitempty"`
	Notes       string            `json:"notes,omitempty"`
}

type UpdateAccountingDocStatusRequest struct {
	Status AccountingDocStatus `json:"status" validate:"required,oneof=draft issued paid overdue"`
}

// Marketing request DTOs

type CreateCampaignRequest struct {
	Name          string     `json:"name" validate:"required,max=200"`
	Code          string     `json:"code,omitempty" validate:"max=50"`
	Channel       string     `json:"channel,omitempty" validate:"max=100"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	Budget        float64    `json:"budget,omitempty" validate:"gte=0"`
	ExpectedSales float64    `json:"expectedSales,omitempty" validate:"gte=0"`
	ExpectedLeads int        `json:"expectedLeads,omitempty" validate:"gte=0"`
	Notes         string     `json:"notes,omitempty"`
}

type UpdateCampaignRequest struct {
	Name          string         `json:"name" validate:"required,max=200"`
	Code          string         `json:"code,omitempty" validate:"max=50"`
	Channel       string         `json:"channel,omitempty" validate:"max=100"`
	Status        CampaignStatus `json:"status" validate:"required"`
	StartDate     *time.Time     `json:"startDate,omitempty"`
	EndDate       *time.Time     `json:"endDate,omitempty"`
	Budget        float64        `json:"budget,omitempty" validate:"gte=0"`
	ExpectedSales float64        `json:"expectedSales,omitempty" validate:"gte=0"`
	ExpectedLeads int            `json:"expectedLeads,omitempty" validate:"gte=0"`
	Notes         string         `json:"notes,omitempty"`
}

type CreateMarketingTaskRequest struct {
	Title      string       `json:"title" validate:"required,max=300"`
	Priority   TaskPriority `json:"priority,omitempty"`
	AssignedTo string       `json:"assignedTo,omitempty" validate:"max=100"`
	DueAt      *time.Time   `json:"dueAt,omitempty"`
	Notes      string       `json:"notes,omitempty"`
}

type UpdateTaskStatusRequest struct {
	Status TaskStatus `json:"status" validate:"required,oneof=todo in_progress done"`
}

type CreateMarketingExpenseRequest struct {
	Title   string     `json:"title" validate:"required,max=300"`
	Amount  float64    `json:"amount" validate:"gt=0"`
	SpentAt *time.Time `json:"spentAt,omitempty"`
	Notes   string     `json:"notes,omitempty"`
}

type CreateMarketingEvaluationRequest struct {
	Score     int    `json:"score" validate:"gte=0,lte=10"`
	Summary   string `json:"summary,omitempty"`
	Learnings string `json:"learnings,omitempty"`
}

// CampaignPerformanceDTO compares plan against actuals for one campaign
type CampaignPerformanceDTO struct {
	CampaignID      uuid.UUID `json:"campaignId"`
	Name            string    `json:"name"`
	Budget          float64   `json:"budget"`
	ActualSpend     float64   `json:"actualSpend"`
	ExpectedSales   float64   `json:"expectedSales"`
	ActualSales     float64   `json:"actualSales"`
	ExpectedLeads   int       `json:"expectedLeads"`
	ActualLeads     int       `json:"actualLeads"`
	SalesAttainment float64   `json:"salesAttainment"` // actual / expected, 0 when no target
	ROI             float64   `json:"roi"`             // (sales - spend) / spend, 0 when no spend
}

// Dashboard DTOs

type DashboardSummary struct {
	ActiveProjects     int64            `json:"activeProjects"`
	DraftBills         int64            `json:"draftBills"`
	OpenQuotations     int64            `json:"openQuotations"`
	QuotationValue     float64          `json:"quotationValue"`
	UnpaidInvoices     int64            `json:"unpaidInvoices"`
	UnpaidAmount       float64          `json:"unpaidAmount"`
	LowStockItems      int64            `json:"lowStockItems"`
	ActiveCampaigns    int64            `json:"activeCampaigns"`
	CustomersTotal     int64            `json:"customersTotal"`
	QuotationsByStatus map[string]int64 `json:"quotationsByStatus,omitempty"`
}

// UploadResponse is returned after storing a photo or attachment
type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}
