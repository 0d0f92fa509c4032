package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// MeasureMode represents what kind of product a bill measures for
type MeasureMode string

const (
	MeasureModeCurtain   MeasureMode = "curtain"
	MeasureModeWallpaper MeasureMode = "wallpaper"
	MeasureModeFilm      MeasureMode = "film"
)

// IsValid checks if the MeasureMode is a known value
func (m MeasureMode) IsValid() bool {
	switch m {
	case MeasureModeCurtain, MeasureModeWallpaper, MeasureModeFilm:
		return true
	}
	return false
}

// BillStatus represents the status of a measurement bill
type BillStatus string

const (
	BillStatusDraft     BillStatus = "draft"
	BillStatusCompleted BillStatus = "completed"
	BillStatusCancelled BillStatus = "cancelled"
)

// MeasurementBill groups one site visit's readings for a project.
// BillNumber follows MB{YY}{MM}-{NNN}, scoped per month.
type MeasurementBill struct {
	BaseModel
	BillNumber string            `gorm:"type:varchar(50);unique;index;column:bill_number" json:"billNumber"`
	ProjectID  uuid.UUID         `gorm:"type:uuid;not null;index;column:project_id" json:"projectId"`
	Project    *Project          `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	CustomerID *uuid.UUID        `gorm:"type:uuid;index;column:customer_id" json:"customerId,omitempty"`
	Mode       MeasureMode       `gorm:"type:varchar(50);not null;default:'curtain'" json:"mode"`
	Status     BillStatus        `gorm:"type:varchar(50);not null;default:'draft';index" json:"status"`
	MeasuredBy string            `gorm:"type:varchar(200);column:measured_by" json:"measuredBy,omitempty"`
	MeasuredAt *string           `gorm:"type:date;column:measured_at" json:"measuredAt,omitempty"`
	Notes      string            `gorm:"type:text" json:"notes,omitempty"`
	Items      []MeasurementItem `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedBy  string            `gorm:"type:varchar(100);column:created_by" json:"createdBy,omitempty"`
}

// FrameReading holds the window-frame readings as entered on site.
// All fields are free text; blank means not taken.
type FrameReading struct {
	Width      string `json:"width,omitempty"`
	Height     string `json:"height,omitempty"`
	TopToFloor string `json:"topToFloor,omitempty"`
}

// CeilingReading holds ceiling-height readings. Centers grows as the
// operator adds readings along the span.
type CeilingReading struct {
	Left      string   `json:"left,omitempty"`
	Right     string   `json:"right,omitempty"`
	Centers   []string `json:"centers,omitempty"`
	FullWidth string   `json:"fullWidth,omitempty"`
}

// SideReading holds the left/right clearance notes. These are free text and
// may mix obstructions with a numeric allowance, e.g. "ติดแอร์ 10".
type SideReading struct {
	Left  string `json:"left,omitempty"`
	Right string `json:"right,omitempty"`
}

// OrderSize is the final production width/height consumed downstream, with
// the plain-text explanation of the formula that produced each value.
type OrderSize struct {
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	WidthNote  string  `json:"widthNote,omitempty"`
	HeightNote string  `json:"heightNote,omitempty"`
}

// MeasurementDetails is the nested readings blob stored on a measurement
// item. SchemaVersion guards future shape changes.
type MeasurementDetails struct {
	SchemaVersion int            `json:"schemaVersion"`
	Frame         FrameReading   `json:"frame"`
	Ceiling       CeilingReading `json:"ceiling"`
	Sides         SideReading    `json:"sides"`
	Order         OrderSize      `json:"order"`
}

// DetailsSchemaVersion is the current MeasurementDetails shape version
const DetailsSchemaVersion = 1

// Value implements driver.Valuer so details persist as JSONB
func (d MeasurementDetails) Value() (driver.Value, error) {
	if d.SchemaVersion == 0 {
		d.SchemaVersion = DetailsSchemaVersion
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner
func (d *MeasurementDetails) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = MeasurementDetails{SchemaVersion: DetailsSchemaVersion}
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported measurement details type %T", src)
	}
}

// MeasurementItem is one measured position within a bill. The location name
// is denormalized at creation time so later edits to the project hierarchy
// do not rewrite history.
type MeasurementItem struct {
	BaseModel
	BillID       uuid.UUID          `gorm:"type:uuid;not null;index;column:bill_id" json:"billId"`
	WindowID     *uuid.UUID         `gorm:"type:uuid;index;column:window_id" json:"windowId,omitempty"`
	LocationName string             `gorm:"type:varchar(300);not null;column:location_name" json:"locationName"`
	CategoryID   *uuid.UUID         `gorm:"type:uuid;index;column:category_id" json:"categoryId,omitempty"`
	Category     *ProductCategory   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Details      MeasurementDetails `gorm:"type:jsonb" json:"details"`
	Notes        string             `gorm:"type:text" json:"notes,omitempty"`
	SortOrder    int                `gorm:"not null;default:0;column:sort_order" json:"sortOrder"`
}
