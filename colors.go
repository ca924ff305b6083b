package stockboard

import (
	"fmt"
	"math"
)

// Panel colors are "#AARRGGBB".
const (
	NeutralPanel = "#80D5D5D5"
	gainBase     = "04BF3C"
	lossBase     = "D23641"
)

// Ramp maps the magnitude of a change to the opacity of a panel.
type Ramp struct {
	Max, Min  float64 // domain of the magnitude
	Low, High int     // alpha range
}

var (
	// PercentRamp colors percent figures.
	PercentRamp = Ramp{Max: 10, Min: 0.1, Low: 64, High: 230}
	// NumericRamp colors amounts.
	NumericRamp = Ramp{Max: 50, Min: 0.1, Low: 64, High: 230}
)

// Color returns the panel color of a display value, neutral if it is not a number.
func (r Ramp) Color(text string) string {
	return ColorForMagnitude(parseDouble(text, 0), r.Max, r.Min, r.Low, r.High)
}

// ColorForMagnitude clamps |value| to [min, max], maps it linearly to an alpha
// in [low, high], written in lowercase hex, and applies it to green for gains or red for losses. Zero
// gives the neutral panel.
func ColorForMagnitude(value, max, min float64, low, high int) string {
	if value == 0 || math.IsNaN(value) {
		return NeutralPanel
	}
	base := gainBase
	if value < 0 {
		base = lossBase
	}
	mag := math.Min(math.Max(math.Abs(value), min), max)
	alpha := low
	if max > min {
		alpha = low + int((mag-min)/(max-min)*float64(high-low))
	}
	return fmt.Sprintf("#%02x%s", alpha, base)
}
