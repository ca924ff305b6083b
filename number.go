package stockboard

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// parseDecimal reads a display number like "1,234.5", "+2.0%", "-$30" or "12,5".
// Anything that is not a digit, a sign or a separator is ignored. ok is false
// when no number can be read.
func parseDecimal(s string) (d decimal.Decimal, ok bool) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsDigit(r), r == '.', r == ',':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	str := b.String()

	// A single comma with no dot is a decimal separator unless it groups thousands.
	if strings.Count(str, ",") == 1 && !strings.Contains(str, ".") {
		if i := strings.Index(str, ","); len(str)-i-1 != 3 {
			str = strings.Replace(str, ",", ".", 1)
		}
	}
	str = strings.ReplaceAll(str, ",", "")

	if str == "" || str == "-" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(str)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// parseDouble parses a display number, returning def if it cannot be read.
func parseDouble(s string, def float64) float64 {
	d, ok := parseDecimal(s)
	if !ok {
		return def
	}
	return d.InexactFloat64()
}

// formatPercent renders a percentage with at most one decimal, "50%" or "12.3%".
func formatPercent(d decimal.Decimal) string { return d.Round(1).String() + "%" }

// formatChange renders a per share amount with two decimals.
func formatChange(d decimal.Decimal) string { return d.StringFixed(2) }

// formatWhole renders a quantity scaled amount in whole units.
func formatWhole(d decimal.Decimal) string { return d.Round(0).String() }
