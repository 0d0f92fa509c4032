package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draperly/atelier-api/internal/domain"
)

func TestGen(t *testing.T) {
	tests := []struct {
		name     string
		ceiling  domain.CeilingReading
		expected float64
		found    bool
	}{
		{
			name:     "non-numeric entries excluded",
			ceiling:  domain.CeilingReading{Left: "120", Right: "abc", Centers: []string{"115", "130"}},
			expected: 115,
			found:    true,
		},
		{
			name:     "single reading",
			ceiling:  domain.CeilingReading{Left: "240"},
			expected: 240,
			found:    true,
		},
		{
			name:    "nothing parses",
			ceiling: domain.CeilingReading{Left: "n/a", Right: "", Centers: []string{"x"}},
			found:   false,
		},
		{
			name:     "whitespace trimmed",
			ceiling:  domain.CeilingReading{Left: " 250 ", Right: "248.5"},
			expected: 248.5,
			found:    true,
		},
		{
			name:     "zero is a valid reading not a sentinel",
			ceiling:  domain.CeilingReading{Left: "0", Right: "100"},
			expected: 0,
			found:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Gen(tt.ceiling)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, v)
			}
		})
	}
}

func TestApplyWidth_FrameOffsets(t *testing.T) {
	details := domain.MeasurementDetails{
		Frame: domain.FrameReading{Width: "150"},
	}

	tests := []struct {
		formula  string
		expected float64
	}{
		{WidthFrameOffset5, 160},
		{WidthFrameOffset10, 170},
		{WidthFrameOffset15, 180},
		{WidthFrameOffset20, 190},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			res := ApplyWidth(tt.formula, details)
			require.True(t, res.OK)
			assert.Equal(t, tt.expected, res.Value)
			assert.NotEmpty(t, res.Explanation)
		})
	}
}

func TestApplyWidth_FullWall(t *testing.T) {
	t.Run("explicit full width wins", func(t *testing.T) {
		details := domain.MeasurementDetails{
			Frame:   domain.FrameReading{Width: "150"},
			Ceiling: domain.CeilingReading{FullWidth: "400"},
			Sides:   domain.SideReading{Left: "30"},
		}
		res := ApplyWidth(WidthFullWall, details)
		require.True(t, res.OK)
		assert.Equal(t, 400.0, res.Value)
	})

	t.Run("falls back to frame plus clearance digits", func(t *testing.T) {
		details := domain.MeasurementDetails{
			Frame: domain.FrameReading{Width: "150"},
			Sides: domain.SideReading{Left: "ติดแอร์ 10", Right: ""},
		}
		res := ApplyWidth(WidthFullWall, details)
		require.True(t, res.OK)
		assert.Equal(t, 160.0, res.Value)
	})

	t.Run("clearance text without digits counts as zero", func(t *testing.T) {
		details := domain.MeasurementDetails{
			Frame: domain.FrameReading{Width: "200"},
			Sides: domain.SideReading{Left: "ชนผนัง", Right: "ชนตู้"},
		}
		res := ApplyWidth(WidthFullWall, details)
		require.True(t, res.OK)
		assert.Equal(t, 200.0, res.Value)
	})

	t.Run("missing frame width reported by name", func(t *testing.T) {
		res := ApplyWidth(WidthFullWall, domain.MeasurementDetails{})
		assert.False(t, res.OK)
		assert.Equal(t, "frame width", res.Missing)
		assert.Contains(t, res.Explanation, "frame width")
	})
}

func TestApplyHeight(t *testing.T) {
	details := domain.MeasurementDetails{
		Frame:   domain.FrameReading{Height: "200", TopToFloor: "220"},
		Ceiling: domain.CeilingReading{Left: "260", Right: "258", Centers: []string{"262"}},
	}

	tests := []struct {
		formula  string
		expected float64
	}{
		{HeightFramePlus10Each, 220},
		{HeightFramePlus15Each, 230},
		{HeightFramePlus20Each, 240},
		{HeightFloorPlus15, 235},
		{HeightCeilingMinus1, 257},
		{HeightCeilingMinus2, 256},
		{HeightCeilingMinus5, 253},
		// 258 - (220 - 200) + 5 = 243
		{HeightCeilingAboveFrame5, 243},
		{HeightCeilingAboveFrame10, 248},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			res := ApplyHeight(tt.formula, details)
			require.True(t, res.OK)
			assert.Equal(t, tt.expected, res.Value)
			assert.NotEmpty(t, res.Explanation)
		})
	}
}

func TestApplyHeight_MissingPrerequisites(t *testing.T) {
	t.Run("ceiling formulas need a ceiling reading", func(t *testing.T) {
		res := ApplyHeight(HeightCeilingMinus2, domain.MeasurementDetails{})
		assert.False(t, res.OK)
		assert.Equal(t, "ceiling readings", res.Missing)
	})

	t.Run("floor formula needs top to floor", func(t *testing.T) {
		res := ApplyHeight(HeightFloorPlus15, domain.MeasurementDetails{})
		assert.False(t, res.OK)
		assert.Equal(t, "top to floor", res.Missing)
	})

	t.Run("above-frame formula needs frame height too", func(t *testing.T) {
		details := domain.MeasurementDetails{
			Frame:   domain.FrameReading{TopToFloor: "220"},
			Ceiling: domain.CeilingReading{Left: "260"},
		}
		res := ApplyHeight(HeightCeilingAboveFrame5, details)
		assert.False(t, res.OK)
		assert.Equal(t, "frame height", res.Missing)
	})
}

func TestApply_Dispatch(t *testing.T) {
	details := domain.MeasurementDetails{Frame: domain.FrameReading{Width: "100", Height: "200"}}

	res := Apply("width", WidthFrameOffset5, details)
	require.True(t, res.OK)
	assert.Equal(t, 110.0, res.Value)

	res = Apply("height", HeightFramePlus10Each, details)
	require.True(t, res.OK)
	assert.Equal(t, 220.0, res.Value)

	res = Apply("depth", WidthFrameOffset5, details)
	assert.False(t, res.OK)

	res = Apply("width", "no_such_formula", details)
	assert.False(t, res.OK)
}
