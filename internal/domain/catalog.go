package domain

import "github.com/google/uuid"

// CalcMethod selects how a category's products are quantified and priced.
// Exactly one method is active per category.
type CalcMethod string

const (
	CalcMethodAreaSqm         CalcMethod = "area_sqm"
	CalcMethodAreaSqyd        CalcMethod = "area_sqyd"
	CalcMethodRailWidth       CalcMethod = "rail_width"
	CalcMethodFixedQuantity   CalcMethod = "fixed_quantity"
	CalcMethodFixedPrice      CalcMethod = "fixed_price"
	CalcMethodWidthStep       CalcMethod = "width_step"
	CalcMethodWidthHeightStep CalcMethod = "width_height_step"
)

// IsValid checks if the CalcMethod is a known value
func (m CalcMethod) IsValid() bool {
	switch m {
	case CalcMethodAreaSqm, CalcMethodAreaSqyd, CalcMethodRailWidth,
		CalcMethodFixedQuantity, CalcMethodFixedPrice,
		CalcMethodWidthStep, CalcMethodWidthHeightStep:
		return true
	}
	return false
}

// IsStepBased reports whether the method prices by width-range tiers
func (m CalcMethod) IsStepBased() bool {
	return m == CalcMethodWidthStep || m == CalcMethodWidthHeightStep
}

// AreaConditions holds the per-category numeric rules applied when deriving
// a billable quantity. Each value is only meaningful when its paired
// *Enabled flag is true.
type AreaConditions struct {
	MinWidthEnabled       bool    `gorm:"not null;default:false;column:min_width_enabled" json:"minWidthEnabled"`
	MinWidthCM            float64 `gorm:"type:decimal(10,2);not null;default:0;column:min_width_cm" json:"minWidthCm"`
	MaxWidthEnabled       bool    `gorm:"not null;default:false;column:max_width_enabled" json:"maxWidthEnabled"`
	MaxWidthCM            float64 `gorm:"type:decimal(10,2);not null;default:0;column:max_width_cm" json:"maxWidthCm"`
	MaxHeightEnabled      bool    `gorm:"not null;default:false;column:max_height_enabled" json:"maxHeightEnabled"`
	MaxHeightCM           float64 `gorm:"type:decimal(10,2);not null;default:0;column:max_height_cm" json:"maxHeightCm"`
	MinBillWidthEnabled   bool    `gorm:"not null;default:false;column:min_bill_width_enabled" json:"minBillWidthEnabled"`
	MinBillWidthCM        float64 `gorm:"type:decimal(10,2);not null;default:0;column:min_bill_width_cm" json:"minBillWidthCm"`
	MinBillHeightEnabled  bool    `gorm:"not null;default:false;column:min_bill_height_enabled" json:"minBillHeightEnabled"`
	MinBillHeightCM       float64 `gorm:"type:decimal(10,2);not null;default:0;column:min_bill_height_cm" json:"minBillHeightCm"`
	HeightStepEnabled     bool    `gorm:"not null;default:false;column:height_step_enabled" json:"heightStepEnabled"`
	HeightStepCM          float64 `gorm:"type:decimal(10,2);not null;default:0;column:height_step_cm" json:"heightStepCm"`
	MinAreaEnabled        bool    `gorm:"not null;default:false;column:min_area_enabled" json:"minAreaEnabled"`
	MinArea               float64 `gorm:"type:decimal(10,2);not null;default:0;column:min_area" json:"minArea"`
	MultiplierEnabled     bool    `gorm:"not null;default:false;column:multiplier_enabled" json:"multiplierEnabled"`
	Multiplier            float64 `gorm:"type:decimal(10,4);not null;default:1;column:multiplier" json:"multiplier"`
	RoundIncrementEnabled bool    `gorm:"not null;default:false;column:round_increment_enabled" json:"roundIncrementEnabled"`
	RoundIncrement        float64 `gorm:"type:decimal(10,2);not null;default:0;column:round_increment" json:"roundIncrement"`
}

// ProductionRequirements flags which physical readings are relevant for
// products in a category. Measurement forms only prompt for flagged readings.
type ProductionRequirements struct {
	NeedsFrameWidth       bool `gorm:"not null;default:false;column:needs_frame_width" json:"needsFrameWidth"`
	NeedsFrameHeight      bool `gorm:"not null;default:false;column:needs_frame_height" json:"needsFrameHeight"`
	NeedsTopToFloor       bool `gorm:"not null;default:false;column:needs_top_to_floor" json:"needsTopToFloor"`
	NeedsCeilingLeft      bool `gorm:"not null;default:false;column:needs_ceiling_left" json:"needsCeilingLeft"`
	NeedsCeilingCenter    bool `gorm:"not null;default:false;column:needs_ceiling_center" json:"needsCeilingCenter"`
	NeedsCeilingRight     bool `gorm:"not null;default:false;column:needs_ceiling_right" json:"needsCeilingRight"`
	NeedsCeilingFullWidth bool `gorm:"not null;default:false;column:needs_ceiling_full_width" json:"needsCeilingFullWidth"`
	NeedsCeilingMinimum   bool `gorm:"not null;default:false;column:needs_ceiling_minimum" json:"needsCeilingMinimum"`
	NeedsSideClearances   bool `gorm:"not null;default:false;column:needs_side_clearances" json:"needsSideClearances"`
	NeedsProductionWidth  bool `gorm:"not null;column:needs_production_width" json:"needsProductionWidth"`
	NeedsProductionHeight bool `gorm:"not null;column:needs_production_height" json:"needsProductionHeight"`
}

// ProductCategory groups products sharing one pricing rule set
type ProductCategory struct {
	BaseModel
	Name         string                 `gorm:"type:varchar(200);not null;index" json:"name"`
	Description  string                 `gorm:"type:text" json:"description,omitempty"`
	CalcMethod   CalcMethod             `gorm:"type:varchar(50);not null;default:'fixed_price';column:calc_method" json:"calcMethod"`
	Conditions   AreaConditions         `gorm:"embedded" json:"conditions"`
	Requirements ProductionRequirements `gorm:"embedded" json:"requirements"`
	IsActive     bool                   `gorm:"not null;column:is_active" json:"isActive"`
	Products     []Product              `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// Product belongs to exactly one category
type Product struct {
	BaseModel
	CategoryID  uuid.UUID          `gorm:"type:uuid;not null;index;column:category_id" json:"categoryId"`
	Category    *ProductCategory   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name        string             `gorm:"type:varchar(200);not null;index" json:"name"`
	Code        string             `gorm:"type:varchar(50);index" json:"code,omitempty"`
	Description string             `gorm:"type:text" json:"description,omitempty"`
	Unit        string             `gorm:"type:varchar(50);not null;default:'ชุด'" json:"unit"`
	BasePrice   float64            `gorm:"type:decimal(15,2);not null;default:0;column:base_price" json:"basePrice"`
	RetailPrice float64            `gorm:"type:decimal(15,2);not null;default:0;column:retail_price" json:"retailPrice"`
	CostPrice   float64            `gorm:"type:decimal(15,2);not null;default:0;column:cost_price" json:"costPrice"`
	IsActive    bool               `gorm:"not null;column:is_active" json:"isActive"`
	PriceTiers  []ProductPriceTier `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"priceTiers,omitempty"`
}

// ProductPriceTier is a width-range price step used when the category's
// method is step-based. Ranges are user-maintained; overlaps are not
// programmatically enforced.
type ProductPriceTier struct {
	BaseModel
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index;column:product_id" json:"productId"`
	MinWidthCM    float64   `gorm:"type:decimal(10,2);not null;column:min_width_cm" json:"minWidthCm"`
	MaxWidthCM    float64   `gorm:"type:decimal(10,2);not null;column:max_width_cm" json:"maxWidthCm"`
	Price         float64   `gorm:"type:decimal(15,2);not null" json:"price"`
	PlatformPrice float64   `gorm:"type:decimal(15,2);not null;default:0;column:platform_price" json:"platformPrice"`
	SortOrder     int       `gorm:"not null;default:0;column:sort_order" json:"sortOrder"`
}
