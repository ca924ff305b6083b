package stockboard

import (
	"strings"

	"github.com/etnz/stockboard/date"
)

// Color is the semantic color class of a cell, resolved to a real color by
// the renderer.
type Color string

const (
	ColorText      Color = "text"
	ColorGain      Color = "gain"
	ColorLoss      Color = "loss"
	ColorSame      Color = "same"
	ColorNA        Color = "na"
	ColorVolume    Color = "volume"
	ColorHighAlert Color = "high-alert"
	ColorLowAlert  Color = "low-alert"
	ColorNoData    Color = "gray"
)

// Cell is one text of a row with its color.
type Cell struct {
	Text  string `json:"text"`
	Color Color  `json:"color,omitempty"`
}

// Row is what a board displays for one symbol.
type Row struct {
	Symbol    string `json:"symbol"`
	Label     Cell   `json:"label"`
	Price     Cell   `json:"price"`
	Volume    Cell   `json:"volume"`
	Info      Cell   `json:"info"`
	InfoExtra Cell   `json:"infoExtra"`
	Extra2    Cell   `json:"extra2"`
	Extra3    Cell   `json:"extra3"`
	Panel     string `json:"panel,omitempty"`
	HasNoData bool   `json:"hasNoData,omitempty"`
}

// Project builds the row of symbol for a view. quote may be nil when the
// source had nothing for symbol.
func Project(symbol string, quote *Quote, r Record, view ViewType, cfg WidgetConfig, today date.Date) Row {
	row := Row{
		Symbol: symbol,
		Label:  Cell{Text: displaySymbol(symbol, "", cfg.HideSuffix), Color: ColorText},
	}
	narrow := cfg.Narrow()

	if !quote.HasData() {
		row.HasNoData = true
		no, data := Cell{"no", ColorNoData}, Cell{"data", ColorNoData}
		switch {
		case narrow && !cfg.Visual:
			row.Price, row.Info = no, data
		case cfg.Visual:
			row.Extra2, row.Extra3 = no, data
			row.Panel = NeutralPanel
		default:
			row.InfoExtra, row.Info = no, data
		}
		return row
	}

	val := Value(*quote, r, today)
	layout := LayoutOf(view, cfg.Visual)

	row.Price = Cell{quote.Price, ColorText}
	row.Info = Cell{val.DailyPercent, ColorNA}
	if cfg.Visual || !narrow {
		row.Volume = Cell{quote.Volume, ColorVolume}
		row.InfoExtra = Cell{val.DailyChange, ColorNA}
	}
	if !narrow && !cfg.Visual {
		row.Label.Text = displaySymbol(symbol, r.DisplayName(), cfg.HideSuffix)
	}
	// panels without a figure of their own show the daily move
	daily, dailyExtra := row.Info.Text, row.InfoExtra.Text

	alert := false
	if !view.IsPL() {
		switch {
		case val.HighTriggered:
			row.Price.Color, alert = ColorHighAlert, true
		case val.LowTriggered:
			row.Price.Color, alert = ColorLowAlert, true
		}
	} else if !cfg.Visual && val.PLHolding == "" {
		row.Price.Color = ColorNA
	}
	if layout.Price != NoField {
		if text := val.Get(layout.Price); text != "" {
			row.Price.Text = WithCurrency(text, symbol)
		}
	}
	if cfg.ColorsOnPrices && !view.IsPL() && !alert {
		row.Price.Color = colorForChange(val.DailyChange, cfg.Visual)
	}

	cell := func(f Field) Cell {
		text := val.Get(f)
		c := Cell{Text: text, Color: colorForChange(text, cfg.Visual)}
		if f.Monetary() {
			c.Text = WithCurrency(text, symbol)
		}
		return c
	}

	if layout.Primary != NoField {
		row.Info = cell(layout.Primary)
	}
	if narrow && !cfg.Visual {
		return row
	}
	if layout.Secondary != NoField {
		row.InfoExtra = cell(layout.Secondary)
	}
	if !cfg.Visual {
		return row
	}

	row.Extra2 = Cell{daily, colorForChange(daily, true)}
	if layout.Extra2 != NoField {
		row.Extra2 = cell(layout.Extra2)
	}
	row.Extra3 = Cell{dailyExtra, colorForChange(dailyExtra, true)}
	if layout.Extra3 != NoField {
		row.Extra3 = cell(layout.Extra3)
	}
	if cfg.ColorCalculation == ColorByPercentage {
		row.Panel = PercentRamp.Color(row.Extra2.Text)
	} else {
		row.Panel = NumericRamp.Color(row.Extra3.Text)
	}
	return row
}

// colorForChange is the gain, loss or same color of a signed value. Visual
// boards carry the sign in their panels, so their texts are always the same color.
func colorForChange(value string, visual bool) Color {
	if visual {
		return ColorSame
	}
	d, _ := parseDecimal(value)
	switch d.Sign() {
	case -1:
		return ColorLoss
	case 1:
		return ColorGain
	}
	return ColorSame
}

// displaySymbol is the row label: name when set, symbol otherwise.
func displaySymbol(symbol, name string, hideSuffix bool) string {
	if name == "" {
		name = symbol
	}
	if hideSuffix {
		if i := strings.Index(name, "."); i >= 0 {
			name = name[:i]
		}
	}
	return name
}
