package stockboard

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "150.00", want: "150", wantOK: true},
		{in: "2.0%", want: "2", wantOK: true},
		{in: "+3.00", want: "3", wantOK: true},
		{in: "-1.5%", want: "-1.5", wantOK: true},
		{in: "1,234.5", want: "1234.5", wantOK: true},
		{in: "1,234", want: "1234", wantOK: true},
		{in: "12,5", want: "12.5", wantOK: true},
		{in: "$500", want: "500", wantOK: true},
		{in: "-€30", want: "-30", wantOK: true},
		{in: " 42 ", want: "42", wantOK: true},
		{in: "", wantOK: false},
		{in: "-", wantOK: false},
		{in: "N/A", wantOK: false},
		{in: "1.2.3", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseDecimal(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %v", got)
			}
		})
	}
}

func TestParseDouble(t *testing.T) {
	assert.Equal(t, 2.5, parseDouble("2.5%", 0))
	assert.Equal(t, -7.0, parseDouble("bogus", -7))
	assert.Equal(t, 0.0, parseDouble("", 0))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "50%", formatPercent(decimal.NewFromInt(50)))
	assert.Equal(t, "12.3%", formatPercent(decimal.RequireFromString("12.34")))
	assert.Equal(t, "-0.5%", formatPercent(decimal.RequireFromString("-0.45")))
	assert.Equal(t, "50.00", formatChange(decimal.NewFromInt(50)))
	assert.Equal(t, "500", formatWhole(decimal.RequireFromString("499.6")))
	assert.Equal(t, "-13", formatWhole(decimal.RequireFromString("-12.5")))
}
