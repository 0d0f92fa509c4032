package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draperly/atelier-api/internal/domain"
)

func TestTax(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		rate       float64
		tax        float64
		grandTotal float64
	}{
		{"standard VAT on round amount", 1000, 7, 70.00, 1070.00},
		// round(333.33*7)/100 = round(2333.31)/100 = 23.33
		{"rounds the product before dividing", 333.33, 7, 23.33, 356.66},
		{"zero rate", 500, 0, 0, 500},
		{"zero amount", 0, 7, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.tax, Tax(tt.amount, tt.rate), 1e-9)
			// the stored total must be exact in satang, not merely close
			assert.Equal(t, tt.grandTotal, GrandTotal(tt.amount, tt.rate))
		})
	}
}

func TestLowStock(t *testing.T) {
	assert.True(t, LowStock(5, 10))
	assert.False(t, LowStock(5, 0), "zero minimum disables the check")
	assert.False(t, LowStock(10, 10))
	assert.False(t, LowStock(11, 10))
}

func TestTierPrice(t *testing.T) {
	tiers := []domain.ProductPriceTier{
		{MinWidthCM: 0, MaxWidthCM: 100, Price: 1500},
		{MinWidthCM: 101, MaxWidthCM: 200, Price: 2500},
		{MinWidthCM: 201, MaxWidthCM: 300, Price: 3500},
	}

	t.Run("first matching range wins", func(t *testing.T) {
		price, ok := TierPrice(tiers, 150)
		require.True(t, ok)
		assert.Equal(t, 2500.0, price)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		price, ok := TierPrice(tiers, 100)
		require.True(t, ok)
		assert.Equal(t, 1500.0, price)

		price, ok = TierPrice(tiers, 101)
		require.True(t, ok)
		assert.Equal(t, 2500.0, price)
	})

	t.Run("no tier matches", func(t *testing.T) {
		_, ok := TierPrice(tiers, 450)
		assert.False(t, ok)
	})

	t.Run("overlapping tiers resolve to the first", func(t *testing.T) {
		overlapping := []domain.ProductPriceTier{
			{MinWidthCM: 0, MaxWidthCM: 200, Price: 1000},
			{MinWidthCM: 100, MaxWidthCM: 300, Price: 9000},
		}
		price, ok := TierPrice(overlapping, 150)
		require.True(t, ok)
		assert.Equal(t, 1000.0, price)
	})
}

func TestBillableSize(t *testing.T) {
	t.Run("no conditions leaves size untouched", func(t *testing.T) {
		w, h := BillableSize(150, 250, domain.AreaConditions{})
		assert.Equal(t, 150.0, w)
		assert.Equal(t, 250.0, h)
	})

	t.Run("minimum billable width raises the width", func(t *testing.T) {
		c := domain.AreaConditions{MinBillWidthEnabled: true, MinBillWidthCM: 200}
		w, _ := BillableSize(150, 250, c)
		assert.Equal(t, 200.0, w)
	})

	t.Run("disabled condition is ignored even with a value", func(t *testing.T) {
		c := domain.AreaConditions{MinBillWidthCM: 200}
		w, _ := BillableSize(150, 250, c)
		assert.Equal(t, 150.0, w)
	})

	t.Run("max clamps apply", func(t *testing.T) {
		c := domain.AreaConditions{
			MaxWidthEnabled: true, MaxWidthCM: 300,
			MaxHeightEnabled: true, MaxHeightCM: 280,
		}
		w, h := BillableSize(350, 320, c)
		assert.Equal(t, 300.0, w)
		assert.Equal(t, 280.0, h)
	})

	t.Run("height snaps up to the step", func(t *testing.T) {
		c := domain.AreaConditions{HeightStepEnabled: true, HeightStepCM: 50}
		_, h := BillableSize(100, 230, c)
		assert.Equal(t, 250.0, h)
	})
}

func TestArea(t *testing.T) {
	t.Run("square meters", func(t *testing.T) {
		// 200cm x 250cm = 5 sqm
		area := Area(domain.CalcMethodAreaSqm, 200, 250, domain.AreaConditions{})
		assert.InDelta(t, 5.0, area, 1e-9)
	})

	t.Run("square yards", func(t *testing.T) {
		area := Area(domain.CalcMethodAreaSqyd, 200, 250, domain.AreaConditions{})
		assert.InDelta(t, 5.0*1.19599, area, 1e-9)
	})

	t.Run("minimum area floor", func(t *testing.T) {
		c := domain.AreaConditions{MinAreaEnabled: true, MinArea: 3}
		area := Area(domain.CalcMethodAreaSqm, 100, 100, c)
		assert.InDelta(t, 3.0, area, 1e-9)
	})

	t.Run("multiplier and rounding increment", func(t *testing.T) {
		c := domain.AreaConditions{
			MultiplierEnabled: true, Multiplier: 2,
			RoundIncrementEnabled: true, RoundIncrement: 0.5,
		}
		// 1.5m x 1.5m = 2.25 sqm, x2 = 4.5, already on the 0.5 grid
		area := Area(domain.CalcMethodAreaSqm, 150, 150, c)
		assert.InDelta(t, 4.5, area, 1e-9)

		// 2.25 x2 = 4.5 then ceil to 5 on a 1.0 grid
		c.RoundIncrement = 1
		area = Area(domain.CalcMethodAreaSqm, 150, 150, c)
		assert.InDelta(t, 5.0, area, 1e-9)
	})

	t.Run("non-area methods yield zero", func(t *testing.T) {
		assert.Zero(t, Area(domain.CalcMethodFixedPrice, 200, 250, domain.AreaConditions{}))
	})
}

func TestLineTotal(t *testing.T) {
	t.Run("area method multiplies area by unit price", func(t *testing.T) {
		total := LineTotal(domain.CalcMethodAreaSqm, 200, 250, 1, 400, domain.AreaConditions{})
		assert.InDelta(t, 2000.0, total, 1e-9)
	})

	t.Run("rail width prices per running meter", func(t *testing.T) {
		total := LineTotal(domain.CalcMethodRailWidth, 250, 0, 2, 300, domain.AreaConditions{})
		assert.InDelta(t, 1500.0, total, 1e-9)
	})

	t.Run("fixed and step methods multiply unit price by quantity", func(t *testing.T) {
		total := LineTotal(domain.CalcMethodFixedPrice, 0, 0, 3, 1200, domain.AreaConditions{})
		assert.InDelta(t, 3600.0, total, 1e-9)

		total = LineTotal(domain.CalcMethodWidthStep, 180, 0, 2, 2500, domain.AreaConditions{})
		assert.InDelta(t, 5000.0, total, 1e-9)
	})
}
