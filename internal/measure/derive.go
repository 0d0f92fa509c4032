// Package measure derives production sizes from free-form on-site readings.
// All functions are pure: missing or unparseable inputs produce a message
// naming the missing field, never an error.
package measure

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/draperly/atelier-api/internal/domain"
)

// Result is the outcome of applying one formula to one axis.
// When OK is false, Value is meaningless and Missing names the
// reading the formula needed.
type Result struct {
	Value       float64
	Explanation string
	OK          bool
	Missing     string
}

var digitRun = regexp.MustCompile(`\d+(?:\.\d+)?`)

// parseNumber parses a reading string as a number. Whitespace is trimmed;
// anything that does not parse as a whole is rejected.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseDigits extracts the numeric runs from free text and sums them.
// "ติดแอร์ 10" yields 10; text with no digits yields 0.
func parseDigits(s string) float64 {
	var sum float64
	for _, m := range digitRun.FindAllString(s, -1) {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		sum += v
	}
	return sum
}

// Gen computes the minimum ceiling reading over left, right and all center
// readings that parse as numbers. Non-numeric readings are excluded, never
// treated as zero. The second return is false when no reading parses.
func Gen(c domain.CeilingReading) (float64, bool) {
	var min float64
	found := false
	consider := func(s string) {
		v, ok := parseNumber(s)
		if !ok {
			return
		}
		if !found || v < min {
			min = v
		}
		found = true
	}
	consider(c.Left)
	consider(c.Right)
	for _, s := range c.Centers {
		consider(s)
	}
	return min, found
}

// Width formula names
const (
	WidthFrameOffset5  = "frame_offset_5"
	WidthFrameOffset10 = "frame_offset_10"
	WidthFrameOffset15 = "frame_offset_15"
	WidthFrameOffset20 = "frame_offset_20"
	WidthFullWall      = "full_wall"
)

// Height formula names
const (
	HeightFramePlus10Each     = "frame_plus_10_10"
	HeightFramePlus15Each     = "frame_plus_15_15"
	HeightFramePlus20Each     = "frame_plus_20_20"
	HeightFloorPlus15         = "floor_plus_15"
	HeightCeilingMinus1       = "ceiling_minus_1"
	HeightCeilingMinus2       = "ceiling_minus_2"
	HeightCeilingMinus5       = "ceiling_minus_5"
	HeightCeilingAboveFrame5  = "ceiling_above_frame_5"
	HeightCeilingAboveFrame10 = "ceiling_above_frame_10"
)

// WidthFormulas lists the width formula names in display order
func WidthFormulas() []string {
	return []string{
		WidthFrameOffset5, WidthFrameOffset10, WidthFrameOffset15,
		WidthFrameOffset20, WidthFullWall,
	}
}

// HeightFormulas lists the height formula names in display order
func HeightFormulas() []string {
	return []string{
		HeightFramePlus10Each, HeightFramePlus15Each, HeightFramePlus20Each,
		HeightFloorPlus15,
		HeightCeilingMinus1, HeightCeilingMinus2, HeightCeilingMinus5,
		HeightCeilingAboveFrame5, HeightCeilingAboveFrame10,
	}
}

func missing(field string) Result {
	return Result{Missing: field, Explanation: "missing reading: " + field}
}

func unknown(name string) Result {
	return Result{Missing: name, Explanation: "unknown formula: " + name}
}

// ApplyWidth applies a named width formula to the readings
func ApplyWidth(name string, d domain.MeasurementDetails) Result {
	switch name {
	case WidthFrameOffset5, WidthFrameOffset10, WidthFrameOffset15, WidthFrameOffset20:
		offset := map[string]float64{
			WidthFrameOffset5:  5,
			WidthFrameOffset10: 10,
			WidthFrameOffset15: 15,
			WidthFrameOffset20: 20,
		}[name]
		fw, ok := parseNumber(d.Frame.Width)
		if !ok {
			return missing("frame width")
		}
		v := fw + 2*offset
		return Result{
			Value: v,
			OK:    true,
			Explanation: fmt.Sprintf("frame %s + %scm each side = %s",
				trimFloat(fw), trimFloat(offset), trimFloat(v)),
		}
	case WidthFullWall:
		if fullW, ok := parseNumber(d.Ceiling.FullWidth); ok {
			return Result{
				Value:       fullW,
				OK:          true,
				Explanation: "full wall width " + trimFloat(fullW),
			}
		}
		fw, ok := parseNumber(d.Frame.Width)
		if !ok {
			return missing("frame width")
		}
		left := parseDigits(d.Sides.Left)
		right := parseDigits(d.Sides.Right)
		v := fw + left + right
		return Result{
			Value: v,
			OK:    true,
			Explanation: fmt.Sprintf("frame %s + left %s + right %s = %s",
				trimFloat(fw), trimFloat(left), trimFloat(right), trimFloat(v)),
		}
	}
	return unknown(name)
}

// ApplyHeight applies a named height formula to the readings
func ApplyHeight(name string, d domain.MeasurementDetails) Result {
	switch name {
	case HeightFramePlus10Each, HeightFramePlus15Each, HeightFramePlus20Each:
		pad := map[string]float64{
			HeightFramePlus10Each: 10,
			HeightFramePlus15Each: 15,
			HeightFramePlus20Each: 20,
		}[name]
		fh, ok := parseNumber(d.Frame.Height)
		if !ok {
			return missing("frame height")
		}
		v := fh + 2*pad
		return Result{
			Value: v,
			OK:    true,
			Explanation: fmt.Sprintf("frame %s + %s above + %s below = %s",
				trimFloat(fh), trimFloat(pad), trimFloat(pad), trimFloat(v)),
		}
	case HeightFloorPlus15:
		ttf, ok := parseNumber(d.Frame.TopToFloor)
		if !ok {
			return missing("top to floor")
		}
		v := ttf + 15
		return Result{
			Value:       v,
			OK:          true,
			Explanation: fmt.Sprintf("top to floor %s + 15 = %s", trimFloat(ttf), trimFloat(v)),
		}
	case HeightCeilingMinus1, HeightCeilingMinus2, HeightCeilingMinus5:
		d2 := map[string]float64{
			HeightCeilingMinus1: 1,
			HeightCeilingMinus2: 2,
			HeightCeilingMinus5: 5,
		}[name]
		gen, ok := Gen(d.Ceiling)
		if !ok {
			return missing("ceiling readings")
		}
		v := gen - d2
		return Result{
			Value:       v,
			OK:          true,
			Explanation: fmt.Sprintf("ceiling min %s - %s = %s", trimFloat(gen), trimFloat(d2), trimFloat(v)),
		}
	case HeightCeilingAboveFrame5, HeightCeilingAboveFrame10:
		add := map[string]float64{
			HeightCeilingAboveFrame5:  5,
			HeightCeilingAboveFrame10: 10,
		}[name]
		gen, ok := Gen(d.Ceiling)
		if !ok {
			return missing("ceiling readings")
		}
		ttf, ok := parseNumber(d.Frame.TopToFloor)
		if !ok {
			return missing("top to floor")
		}
		fh, ok := parseNumber(d.Frame.Height)
		if !ok {
			return missing("frame height")
		}
		v := gen - (ttf - fh) + add
		return Result{
			Value: v,
			OK:    true,
			Explanation: fmt.Sprintf("ceiling min %s - gap above frame %s + %s = %s",
				trimFloat(gen), trimFloat(ttf-fh), trimFloat(add), trimFloat(v)),
		}
	}
	return unknown(name)
}

// Apply dispatches by axis. Dimension must be "width" or "height".
func Apply(dimension, formula string, d domain.MeasurementDetails) Result {
	switch dimension {
	case "width":
		return ApplyWidth(formula, d)
	case "height":
		return ApplyHeight(formula, d)
	}
	return Result{Missing: dimension, Explanation: "unknown dimension: " + dimension}
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
