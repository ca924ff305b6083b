package stockboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorForMagnitude(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, NeutralPanel},
		{-5, "#92D23641"},
		{5, "#9204BF3C"},
		{100, "#e604BF3C"},   // clamped to max
		{-0.01, "#40D23641"}, // clamped to min
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ColorForMagnitude(tt.value, 10, 0.1, 64, 230), "%v", tt.value)
	}
}

func TestRampColor(t *testing.T) {
	assert.Equal(t, "#92D23641", PercentRamp.Color("-5%"))
	assert.Equal(t, NeutralPanel, PercentRamp.Color("n/a"))
	assert.Equal(t, NeutralPanel, NumericRamp.Color("0.00"))
	assert.Equal(t, "#e604BF3C", NumericRamp.Color("$500"))
	assert.Equal(t, "#9204BF3C", PercentRamp.Color("+5.0%"))
}
