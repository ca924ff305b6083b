package stockboard

import (
	"fmt"
	"strings"
)

// ViewType selects which figures a board shows. Views are ordered, rotation
// walks them by index.
type ViewType int

const (
	DailyPercent ViewType = iota
	DailyChange
	PortfolioPercent
	PortfolioChange
	PortfolioPercentAer
	PLDailyPercent
	PLDailyChange
	PLPercent
	PLChange
	PLPercentAer
)

// ViewCount is the number of views.
const ViewCount = 10

var viewNames = [ViewCount]string{
	"daily-percent",
	"daily-change",
	"portfolio-percent",
	"portfolio-change",
	"portfolio-aer",
	"pl-daily-percent",
	"pl-daily-change",
	"pl-percent",
	"pl-change",
	"pl-aer",
}

// viewPrefKeys are the storage keys enabling each view on a widget.
var viewPrefKeys = [ViewCount]string{
	"show_percent_change",
	"show_absolute_change",
	"show_portfolio_change",
	"show_portfolio_abs",
	"show_portfolio_aer",
	"show_profit_daily_change",
	"show_profit_daily_abs",
	"show_profit_change",
	"show_profit_abs",
	"show_profit_aer",
}

var narrowLabels = [ViewCount]string{"D%", "DA", "PF T%", "PF TA", "PF AER", "P/L D%", "P/L DA", "P/L T%", "P/L TA", "P/L AER"}
var wideLabels = [ViewCount]string{"D%", "", "PF T", "PF T", "PF AER", "P/L D", "P/L D", "P/L T", "P/L T", "P/L AER"}

// Valid reports whether v is one of the ten views.
func (v ViewType) Valid() bool { return v >= 0 && v < ViewCount }

func (v ViewType) String() string {
	if !v.Valid() {
		return fmt.Sprintf("view(%d)", int(v))
	}
	return viewNames[v]
}

// ParseView parses a view name as returned by String.
func ParseView(s string) (ViewType, error) {
	for i, name := range viewNames {
		if strings.EqualFold(s, name) {
			return ViewType(i), nil
		}
	}
	return DailyPercent, fmt.Errorf("unknown view %q, want one of %s", s, strings.Join(viewNames[:], ", "))
}

// IsPL reports whether v scales figures by the held quantity.
func (v ViewType) IsPL() bool { return v >= PLDailyPercent && v.Valid() }

// NeedsPortfolio reports whether v only makes sense with holdings.
func (v ViewType) NeedsPortfolio() bool { return v >= PortfolioPercent && v.Valid() }

// Label is the short footer text naming the view.
func (v ViewType) Label(narrow bool) string {
	if !v.Valid() {
		return ""
	}
	if narrow {
		return narrowLabels[v]
	}
	return wideLabels[v]
}

// Field names one derived figure of a Valuation.
type Field int

const (
	NoField Field = iota
	FieldDailyChange
	FieldDailyPercent
	FieldTotalChange
	FieldTotalPercent
	FieldTotalChangeAer
	FieldTotalPercentAer
	FieldPLHolding
	FieldPLDailyChange
	FieldPLTotalChange
	FieldPLTotalChangeAer
)

var fieldNames = [...]string{"", "dailyChange", "dailyPercent", "totalChange", "totalPercent", "totalChangeAer", "totalPercentAer", "plHolding", "plDailyChange", "plTotalChange", "plTotalChangeAer"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// Monetary reports whether f is an amount of money tied to a holding. Only
// those figures get a currency symbol.
func (f Field) Monetary() bool { return f >= FieldPLHolding && int(f) < len(fieldNames) }

// ViewLayout tells which figure goes in which cell of a row for a view.
// NoField in Price keeps the quote price, NoField elsewhere keeps the default.
type ViewLayout struct {
	Price, Primary, Secondary, Extra2, Extra3 Field
}

var standardLayouts = [ViewCount]ViewLayout{
	DailyPercent:        {Primary: FieldDailyPercent, Secondary: FieldDailyChange},
	DailyChange:         {Primary: FieldDailyChange, Secondary: FieldDailyPercent},
	PortfolioPercent:    {Primary: FieldTotalPercent, Secondary: FieldTotalChange},
	PortfolioChange:     {Primary: FieldTotalChange, Secondary: FieldTotalPercent},
	PortfolioPercentAer: {Primary: FieldTotalPercentAer, Secondary: FieldTotalChangeAer},
	PLDailyPercent:      {Price: FieldPLHolding, Primary: FieldDailyPercent, Secondary: FieldPLDailyChange},
	PLDailyChange:       {Price: FieldPLHolding, Primary: FieldPLDailyChange},
	PLPercent:           {Price: FieldPLHolding, Primary: FieldTotalPercent, Secondary: FieldPLTotalChange},
	PLChange:            {Price: FieldPLHolding, Primary: FieldPLTotalChange, Secondary: FieldTotalPercent},
	PLPercentAer:        {Price: FieldPLHolding, Primary: FieldTotalPercentAer, Secondary: FieldPLTotalChangeAer},
}

// visual boards show the daily figures on top and the long term ones in the panels.
var visualLayouts = func() [ViewCount]ViewLayout {
	l := standardLayouts
	l[PortfolioPercent] = ViewLayout{Primary: FieldDailyPercent, Secondary: FieldDailyChange, Extra2: FieldTotalPercent, Extra3: FieldTotalChange}
	l[PortfolioPercentAer] = ViewLayout{Primary: FieldDailyPercent, Secondary: FieldDailyChange, Extra2: FieldTotalPercentAer, Extra3: FieldTotalChangeAer}
	l[PLDailyChange] = ViewLayout{Primary: FieldDailyChange, Secondary: FieldDailyPercent, Extra2: FieldTotalPercent, Extra3: FieldTotalChange}
	l[PLPercentAer] = ViewLayout{Primary: FieldDailyPercent, Secondary: FieldDailyChange, Extra2: FieldTotalPercentAer, Extra3: FieldPLTotalChangeAer}
	return l
}()

// LayoutOf returns the layout of view v, for visual or standard boards.
// An invalid view falls back to the daily percent layout.
func LayoutOf(v ViewType, visual bool) ViewLayout {
	if !v.Valid() {
		v = DailyPercent
	}
	if visual {
		return visualLayouts[v]
	}
	return standardLayouts[v]
}
