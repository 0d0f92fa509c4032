// Package pricing holds the pure price, area and tax calculations shared by
// quotations, accounting documents and inventory.
package pricing

import (
	"math"

	"github.com/draperly/atelier-api/internal/domain"
)

const cmPerMeter = 100.0

// sqYdPerSqM converts square meters to square yards
const sqYdPerSqM = 1.19599

// BillableSize applies a category's area conditions to a production size.
// Each condition only applies when its enabled flag is set. Width and
// height are in centimeters.
func BillableSize(width, height float64, c domain.AreaConditions) (float64, float64) {
	if c.MinBillWidthEnabled && width < c.MinBillWidthCM {
		width = c.MinBillWidthCM
	}
	if c.MinBillHeightEnabled && height < c.MinBillHeightCM {
		height = c.MinBillHeightCM
	}
	if c.MinWidthEnabled && width < c.MinWidthCM {
		width = c.MinWidthCM
	}
	if c.MaxWidthEnabled && width > c.MaxWidthCM {
		width = c.MaxWidthCM
	}
	if c.MaxHeightEnabled && height > c.MaxHeightCM {
		height = c.MaxHeightCM
	}
	if c.HeightStepEnabled && c.HeightStepCM > 0 {
		height = math.Ceil(height/c.HeightStepCM) * c.HeightStepCM
	}
	return width, height
}

// Area computes the billable area for a size under a category's conditions.
// The unit of the result follows the calculation method: square meters for
// area_sqm, square yards for area_sqyd. Non-area methods return 0.
func Area(method domain.CalcMethod, width, height float64, c domain.AreaConditions) float64 {
	if method != domain.CalcMethodAreaSqm && method != domain.CalcMethodAreaSqyd {
		return 0
	}
	w, h := BillableSize(width, height, c)
	area := (w / cmPerMeter) * (h / cmPerMeter)
	if method == domain.CalcMethodAreaSqyd {
		area *= sqYdPerSqM
	}
	if c.MinAreaEnabled && area < c.MinArea {
		area = c.MinArea
	}
	if c.MultiplierEnabled && c.Multiplier > 0 {
		area *= c.Multiplier
	}
	if c.RoundIncrementEnabled && c.RoundIncrement > 0 {
		area = math.Ceil(area/c.RoundIncrement) * c.RoundIncrement
	}
	return area
}

// LineTotal computes a quotation line total for a product under its
// category's calculation method. Width and height are in centimeters,
// unitPrice is the resolved per-unit price.
func LineTotal(method domain.CalcMethod, width, height, quantity, unitPrice float64, c domain.AreaConditions) float64 {
	switch method {
	case domain.CalcMethodAreaSqm, domain.CalcMethodAreaSqyd:
		return Area(method, width, height, c) * unitPrice * quantity
	case domain.CalcMethodRailWidth:
		w, _ := BillableSize(width, height, c)
		return (w / cmPerMeter) * unitPrice * quantity
	case domain.CalcMethodFixedQuantity, domain.CalcMethodFixedPrice,
		domain.CalcMethodWidthStep, domain.CalcMethodWidthHeightStep:
		// step methods resolve the unit price via TierPrice first
		return unitPrice * quantity
	}
	return unitPrice * quantity
}

// TierPrice resolves the unit price for a production width from a product's
// tiers. The first tier whose [min,max] range contains the width wins;
// overlapping tiers are not rejected. The second return is false when no
// tier matches.
func TierPrice(tiers []domain.ProductPriceTier, widthCM float64) (float64, bool) {
	for _, tier := range tiers {
		if widthCM >= tier.MinWidthCM && widthCM <= tier.MaxWidthCM {
			return tier.Price, true
		}
	}
	return 0, false
}

// Tax computes the tax amount for an amount and a percentage rate.
// The product is rounded before dividing by 100 so that the result
// matches round(amount*rate)/100 exactly.
func Tax(amount, rate float64) float64 {
	return math.Round(amount*rate) / 100
}

// GrandTotal is the amount plus its tax, rounded to two decimals so the
// stored total is exact in satang
func GrandTotal(amount, rate float64) float64 {
	return math.Round((amount+Tax(amount, rate))*100) / 100
}

// LowStock reports whether an inventory item is below its minimum.
// A zero minimum disables the check.
func LowStock(quantity, minQty float64) bool {
	return minQty > 0 && quantity < minQty
}
