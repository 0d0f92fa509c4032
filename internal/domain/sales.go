package domain

import "github.com/google/uuid"

// SpecSheetStatus represents the status of a spec sheet
type SpecSheetStatus string

const (
	SpecSheetStatusDraft     SpecSheetStatus = "draft"
	SpecSheetStatusCompleted SpecSheetStatus = "completed"
)

// SpecSheet is a "select a product per measured position" pass over a
// subset of a bill's measurement items, feeding quotation generation
type SpecSheet struct {
	BaseModel
	BillID    uuid.UUID       `gorm:"type:uuid;not null;index;column:bill_id" json:"billId"`
	Bill      *MeasurementBill `gorm:"foreignKey:BillID" json:"bill,omitempty"`
	Status    SpecSheetStatus `gorm:"type:varchar(50);not null;default:'draft';index" json:"status"`
	Notes     string          `gorm:"type:text" json:"notes,omitempty"`
	Items     []SpecSheetItem `gorm:"foreignKey:SheetID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedBy string          `gorm:"type:varchar(100);column:created_by" json:"createdBy,omitempty"`
}

// SpecSheetItem is one measured position with an optional product choice.
// Product name and unit price are snapshots taken at selection time; later
// catalog edits do not touch existing rows.
type SpecSheetItem struct {
	BaseModel
	SheetID           uuid.UUID  `gorm:"type:uuid;not null;index;column:sheet_id" json:"sheetId"`
	MeasurementItemID uuid.UUID  `gorm:"type:uuid;not null;index;column:measurement_item_id" json:"measurementItemId"`
	LocationName      string     `gorm:"type:varchar(300);not null;column:location_name" json:"locationName"`
	CategoryName      string     `gorm:"type:varchar(200);column:category_name" json:"categoryName,omitempty"`
	WidthCM           float64    `gorm:"type:decimal(10,2);not null;default:0;column:width_cm" json:"widthCm"`
	HeightCM          float64    `gorm:"type:decimal(10,2);not null;default:0;column:height_cm" json:"heightCm"`
	ProductID         *uuid.UUID `gorm:"type:uuid;index;column:product_id" json:"productId,omitempty"`
	ProductName       string     `gorm:"type:varchar(200);column:product_name" json:"productName,omitempty"`
	Unit              string     `gorm:"type:varchar(50)" json:"unit,omitempty"`
	UnitPrice         float64    `gorm:"type:decimal(15,2);not null;default:0;column:unit_price" json:"unitPrice"`
	Notes             string     `gorm:"type:text" json:"notes,omitempty"`
	SortOrder         int        `gorm:"not null;default:0;column:sort_order" json:"sortOrder"`
}

// QuotationStatus represents the status of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft     QuotationStatus = "draft"
	QuotationStatusSent      QuotationStatus = "sent"
	QuotationStatusApproved  QuotationStatus = "approved"
	QuotationStatusRejected  QuotationStatus = "rejected"
	QuotationStatusCancelled QuotationStatus = "cancelled"
)

// IsValid checks if the QuotationStatus is a known value
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusApproved,
		QuotationStatusRejected, QuotationStatusCancelled:
		return true
	}
	return false
}

// Quotation is a priced offer to a customer, generated from a measurement
// bill or a completed spec sheet. QuotationNumber follows QT-{YYYYMMDD}-{RRRR}.
type Quotation struct {
	BaseModel
	QuotationNumber string          `gorm:"type:varchar(50);uniqueIndex;column:quotation_number" json:"quotationNumber"`
	ProjectID       *uuid.UUID      `gorm:"type:uuid;index;column:project_id" json:"projectId,omitempty"`
	CustomerID      *uuid.UUID      `gorm:"type:uuid;index;column:customer_id" json:"customerId,omitempty"`
	Customer        *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	BillID          *uuid.UUID      `gorm:"type:uuid;index;column:bill_id" json:"billId,omitempty"`
	SheetID         *uuid.UUID      `gorm:"type:uuid;index;column:sheet_id" json:"sheetId,omitempty"`
	Status          QuotationStatus `gorm:"type:varchar(50);not null;default:'draft';index" json:"status"`
	GrandTotal      float64         `gorm:"type:decimal(15,2);not null;default:0;column:grand_total" json:"grandTotal"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	Items           []QuotationItem `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedBy       string          `gorm:"type:varchar(100);column:created_by" json:"createdBy,omitempty"`
}

// QuotationItem is one priced line. All descriptive fields are snapshots.
type QuotationItem struct {
	BaseModel
	QuotationID uuid.UUID  `gorm:"type:uuid;not null;index;column:quotation_id" json:"quotationId"`
	ProductID   *uuid.UUID `gorm:"type:uuid;column:product_id" json:"productId,omitempty"`
	ProductName string     `gorm:"type:varchar(200);not null;column:product_name" json:"productName"`
	Description string     `gorm:"type:varchar(500)" json:"description,omitempty"`
	WidthCM     float64    `gorm:"type:decimal(10,2);not null;default:0;column:width_cm" json:"widthCm"`
	HeightCM    float64    `gorm:"type:decimal(10,2);not null;default:0;column:height_cm" json:"heightCm"`
	Quantity    float64    `gorm:"type:decimal(10,2);not null;default:1" json:"quantity"`
	Unit        string     `gorm:"type:varchar(50)" json:"unit,omitempty"`
	UnitPrice   float64    `gorm:"type:decimal(15,2);not null;default:0;column:unit_price" json:"unitPrice"`
	TotalPrice  float64    `gorm:"type:decimal(15,2);not null;default:0;column:total_price" json:"totalPrice"`
	SortOrder   int        `gorm:"not null;default:0;column:sort_order" json:"sortOrder"`
}
