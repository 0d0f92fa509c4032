package domain

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is a stocked material or accessory
type InventoryItem struct {
	BaseModel
	Name      string  `gorm:"type:varchar(200);not null" json:"name"`
	Code      string  `gorm:"type:varchar(100);index" json:"code,omitempty"`
	Unit      string  `gorm:"type:varchar(50);default:'ชุด'" json:"unit,omitempty"`
	Quantity  float64 `gorm:"type:decimal(12,2);not null;default:0" json:"quantity"`
	MinQty    float64 `gorm:"type:decimal(12,2);not null;default:0;column:min_qty" json:"minQty"`
	CostPrice float64 `gorm:"type:decimal(15,2);not null;default:0;column:cost_price" json:"costPrice"`
	SellPrice float64 `gorm:"type:decimal(15,2);not null;default:0;column:sell_price" json:"sellPrice"`
	Location  string  `gorm:"type:varchar(200)" json:"location,omitempty"`
	IsActive  bool    `gorm:"not null;column:is_active" json:"isActive"`
}

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft    PurchaseOrderStatus = "draft"
	PurchaseOrderStatusOrdered  PurchaseOrderStatus = "ordered"
	PurchaseOrderStatusReceived PurchaseOrderStatus = "received"
)

// IsValid checks if the PurchaseOrderStatus is a known value
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusOrdered, PurchaseOrderStatusReceived:
		return true
	}
	return false
}

// PurchaseOrder restocks inventory. OrderNumber follows PO-{YYYYMMDD}-{RRRR}.
type PurchaseOrder struct {
	BaseModel
	OrderNumber string              `gorm:"type:varchar(50);uniqueIndex;column:order_number" json:"orderNumber"`
	Supplier    string              `gorm:"type:varchar(200)" json:"supplier,omitempty"`
	Status      PurchaseOrderStatus `gorm:"type:varchar(50);not null;default:'draft';index" json:"status"`
	Total       float64             `gorm:"type:decimal(15,2);not null;default:0" json:"total"`
	OrderedAt   *time.Time          `gorm:"column:ordered_at" json:"orderedAt,omitempty"`
	ReceivedAt  *time.Time          `gorm:"column:received_at" json:"receivedAt,omitempty"`
	Notes       string              `gorm:"type:text" json:"notes,omitempty"`
	Items       []PurchaseOrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedBy   string              `gorm:"type:varchar(100);column:created_by" json:"createdBy,omitempty"`
}

// PurchaseOrderItem is one line of a purchase order
type PurchaseOrderItem struct {
	BaseModel
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;index;column:order_id" json:"orderId"`
	InventoryID *uuid.UUID `gorm:"type:uuid;index;column:inventory_id" json:"inventoryId,omitempty"`
	Name        string     `gorm:"type:varchar(200);not null" json:"name"`
	Quantity    float64    `gorm:"type:decimal(12,2);not null;default:1" json:"quantity"`
	Unit        string     `gorm:"type:varchar(50)" json:"unit,omitempty"`
	UnitPrice   float64    `gorm:"type:decimal(15,2);not null;default:0;column:unit_price" json:"unitPrice"`
	TotalPrice  float64    `gorm:"type:decimal(15,2);not null;default:0;column:total_price" json:"totalPrice"`
}

// AccountingDocType distinguishes the accounting document kinds
type AccountingDocType string

const (
	AccountingDocInvoice AccountingDocType = "invoice"
	AccountingDocReceipt AccountingDocType = "receipt"
	AccountingDocExpense AccountingDocType = "expense"
)

// IsValid checks if the AccountingDocType is a known value
func (t AccountingDocType) IsValid() bool {
	switch t {
	case AccountingDocInvoice, AccountingDocReceipt, AccountingDocExpense:
		return true
	}
	return false
}

// NumberPrefix returns the document number prefix for the type.
// Unknown types fall back to the generic DOC prefix.
func (t AccountingDocType) NumberPrefix() string {
	switch t {
	case AccountingDocInvoice:
		return "INV"
	case AccountingDocReceipt:
		return "RCP"
	case AccountingDocExpense:
		return "EXP"
	}
	return "DOC"
}

// AccountingDocStatus represents the status of an accounting document
type AccountingDocStatus string

const (
	AccountingDocStatusDraft   AccountingDocStatus = "draft"
	AccountingDocStatusIssued  AccountingDocStatus = "issued"
	AccountingDocStatusPaid    AccountingDocStatus = "paid"
	AccountingDocStatusOverdue AccountingDocStatus = "overdue"
)

// IsValid checks if the AccountingDocStatus is a known value
func (s AccountingDocStatus) IsValid() bool {
	switch s {
	case AccountingDocStatusDraft, AccountingDocStatusIssued,
		AccountingDocStatusPaid, AccountingDocStatusOverdue:
		return true
	}
	return false
}

// AccountingDoc is an invoice, receipt or expense record.
// TaxAmount and GrandTotal are computed from Amount and TaxRate on save.
type AccountingDoc struct {
	BaseModel
	DocNumber   string              `gorm:"type:varchar(50);uniqueIndex;column:doc_number" json:"docNumber"`
	DocType     AccountingDocType   `gorm:"type:varchar(50);not null;index;column:doc_type" json:"docType"`
	Status      AccountingDocStatus `gorm:"type:varchar(50);not null;default:'draft';index" json:"status"`
	CustomerID  *uuid.UUID          `gorm:"type:uuid;index;column:customer_id" json:"customerId,omitempty"`
	Customer    *Customer           `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	QuotationID *uuid.UUID          `gorm:"type:uuid;index;column:quotation_id" json:"quotationId,omitempty"`
	Title       string              `gorm:"type:varchar(300)" json:"title,omitempty"`
	Amount      float64             `gorm:"type:decimal(15,2);not null;default:0" json:"amount"`
	TaxRate     float64             `gorm:"type:decimal(5,2);not null;default:0;column:tax_rate" json:"taxRate"`
	TaxAmount   float64             `gorm:"type:decimal(15,2);not null;default:0;column:tax_amount" json:"taxAmount"`
	GrandTotal  float64             `gorm:"type:decimal(15,2);not null;default:0;column:grand_total" json:"grandTotal"`
	IssuedAt    *time.Time          `gorm:"column:issued_at" json:"issuedAt,omitempty"`
	DueAt       *time.Time          `gorm:"column:due_at" json:"dueAt,omitempty"`
	PaidAt      *time.Time          `gorm:"column:paid_at" json:"paidAt,omitempty"`
	Notes       string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy   string              `gorm:"type:varchar(100);column:created_by" json:"createdBy,omitempty"`
}
