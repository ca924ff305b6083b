package stockboard

import (
	"github.com/etnz/stockboard/date"
	"github.com/shopspring/decimal"
)

// Valuation holds the figures derived from a quote and a record, formatted
// for display. A figure that cannot be computed is blank. Amounts carry no
// currency symbol yet.
type Valuation struct {
	DailyChange      string
	DailyPercent     string
	TotalChange      string
	TotalPercent     string
	TotalChangeAer   string
	TotalPercentAer  string
	PLHolding        string
	PLDailyChange    string
	PLTotalChange    string
	PLTotalChangeAer string

	HighTriggered bool // price reached the high limit
	LowTriggered  bool // price fell to the low limit
}

var daysPerYear = decimal.NewFromInt(365)
var hundred = decimal.NewFromInt(100)

// Value computes the valuation of record r at quote q on day today.
func Value(q Quote, r Record, today date.Date) Valuation {
	v := Valuation{
		DailyChange:  q.Change,
		DailyPercent: q.Percent,
	}
	price, hasPrice := parseDecimal(q.Price)
	quantity, hasQuantity := parseDecimal(r.Quantity)

	if hasPrice {
		if high, ok := parseDecimal(r.HighLimit); ok && price.GreaterThanOrEqual(high) {
			v.HighTriggered = true
		}
		if low, ok := parseDecimal(r.LowLimit); ok && price.LessThanOrEqual(low) {
			v.LowTriggered = true
		}
	}

	if hasQuantity && hasPrice {
		v.PLHolding = formatWhole(quantity.Mul(price))
	}
	if change, ok := parseDecimal(q.Change); ok && hasQuantity {
		v.PLDailyChange = formatWhole(quantity.Mul(change))
	}

	buy, hasBuy := parseDecimal(r.BuyPrice)
	if !hasPrice || !hasBuy || buy.IsZero() {
		return v
	}
	total := price.Sub(buy)
	percent := total.Div(buy).Mul(hundred)
	v.TotalChange = formatChange(total)
	v.TotalPercent = formatPercent(percent)
	if hasQuantity {
		v.PLTotalChange = formatWhole(quantity.Mul(total))
	}

	bought, err := date.Parse(r.BuyDate)
	if err != nil {
		return v
	}
	// holdings older than a year are annualized, younger ones are shown as is.
	totalAer, percentAer := total, percent
	years := decimal.NewFromInt(int64(today.Sub(bought))).Div(daysPerYear)
	if years.GreaterThan(decimal.NewFromInt(1)) {
		totalAer = total.Div(years)
		percentAer = percent.Div(years)
	}
	v.TotalChangeAer = formatChange(totalAer)
	v.TotalPercentAer = formatPercent(percentAer)
	if hasQuantity {
		v.PLTotalChangeAer = formatWhole(quantity.Mul(totalAer))
	}
	return v
}

// Get returns the figure named by f, "" for NoField.
func (v Valuation) Get(f Field) string {
	switch f {
	case FieldDailyChange:
		return v.DailyChange
	case FieldDailyPercent:
		return v.DailyPercent
	case FieldTotalChange:
		return v.TotalChange
	case FieldTotalPercent:
		return v.TotalPercent
	case FieldTotalChangeAer:
		return v.TotalChangeAer
	case FieldTotalPercentAer:
		return v.TotalPercentAer
	case FieldPLHolding:
		return v.PLHolding
	case FieldPLDailyChange:
		return v.PLDailyChange
	case FieldPLTotalChange:
		return v.PLTotalChange
	case FieldPLTotalChangeAer:
		return v.PLTotalChangeAer
	}
	return ""
}
