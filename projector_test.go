package stockboard

import (
	"testing"

	"github.com/etnz/stockboard/date"
	"github.com/stretchr/testify/assert"
)

var (
	testDay   = date.New(2024, 3, 1)
	testQuote = Quote{Symbol: "AAPL", Name: "Apple", Price: "150.00", Change: "3.00", Percent: "2.0%", Volume: "1.2M"}
	testHeld  = Record{Symbol: "AAPL", BuyPrice: "100", Quantity: "10"}
)

func wide() WidgetConfig   { return DefaultWidget(1, Size1x4) }
func narrow() WidgetConfig { return DefaultWidget(1, Size1x2) }
func visual() WidgetConfig {
	c := DefaultWidget(1, Size2x4)
	c.Visual = true
	return c
}

func TestProjectNoData(t *testing.T) {
	no, data := Cell{"no", ColorNoData}, Cell{"data", ColorNoData}
	for _, q := range []*Quote{nil, {Price: "1"}, {Percent: "1%"}} {
		row := Project("AAPL", q, testHeld, PLChange, wide(), testDay)
		assert.True(t, row.HasNoData)
		assert.Equal(t, no, row.InfoExtra)
		assert.Equal(t, data, row.Info)
		assert.Empty(t, row.Price.Text)
		assert.Empty(t, row.Volume.Text)
	}

	row := Project("AAPL", nil, testHeld, DailyPercent, narrow(), testDay)
	assert.Equal(t, no, row.Price)
	assert.Equal(t, data, row.Info)

	row = Project("AAPL", nil, testHeld, DailyPercent, visual(), testDay)
	assert.Equal(t, no, row.Extra2)
	assert.Equal(t, data, row.Extra3)
	assert.Equal(t, NeutralPanel, row.Panel)
}

func TestProjectEndToEnd(t *testing.T) {
	q := testQuote

	row := Project("AAPL", &q, testHeld, PLPercent, wide(), testDay)
	assert.False(t, row.HasNoData)
	assert.Equal(t, "AAPL", row.Label.Text)
	assert.Equal(t, Cell{"$1500", ColorText}, row.Price)
	assert.Equal(t, Cell{"50%", ColorGain}, row.Info)
	assert.Equal(t, Cell{"$500", ColorGain}, row.InfoExtra)
	assert.Equal(t, Cell{"1.2M", ColorVolume}, row.Volume)

	row = Project("AAPL", &q, testHeld, DailyPercent, wide(), testDay)
	assert.Equal(t, Cell{"150.00", ColorText}, row.Price)
	assert.Equal(t, Cell{"2.0%", ColorGain}, row.Info)
	assert.Equal(t, Cell{"3.00", ColorGain}, row.InfoExtra, "daily change is per share, no currency")
	assert.Empty(t, row.Panel)
}

func TestProjectCurrencyOnlyOnAmounts(t *testing.T) {
	q := testQuote
	tests := []struct {
		view            ViewType
		info, infoExtra string
	}{
		{DailyChange, "3.00", "2.0%"},
		{PortfolioChange, "50.00", "50%"},
		{PLDailyPercent, "2.0%", "$30"},
		{PLDailyChange, "$30", "3.00"},
		{PLChange, "$500", "50%"},
	}
	for _, tt := range tests {
		row := Project("AAPL", &q, testHeld, tt.view, wide(), testDay)
		assert.Equal(t, tt.info, row.Info.Text, tt.view.String())
		assert.Equal(t, tt.infoExtra, row.InfoExtra.Text, tt.view.String())
	}
}

func TestProjectColors(t *testing.T) {
	q := testQuote
	q.Change, q.Percent = "-3.00", "-2.0%"
	row := Project("AAPL", &q, Record{}, DailyPercent, wide(), testDay)
	assert.Equal(t, ColorLoss, row.Info.Color)
	assert.Equal(t, ColorLoss, row.InfoExtra.Color)

	q.Change, q.Percent = "0.00", "0%"
	row = Project("AAPL", &q, Record{}, DailyPercent, wide(), testDay)
	assert.Equal(t, ColorSame, row.Info.Color)

	cfg := wide()
	cfg.ColorsOnPrices = true
	q.Change = "-1"
	row = Project("AAPL", &q, Record{}, DailyPercent, cfg, testDay)
	assert.Equal(t, ColorLoss, row.Price.Color)
}

func TestProjectAlerts(t *testing.T) {
	q := testQuote
	high := Record{BuyPrice: "100", Quantity: "10", HighLimit: "140"}
	low := Record{LowLimit: "160"}

	cfg := wide()
	cfg.ColorsOnPrices = true
	assert.Equal(t, ColorHighAlert, Project("AAPL", &q, high, DailyPercent, cfg, testDay).Price.Color)
	assert.Equal(t, ColorLowAlert, Project("AAPL", &q, low, PortfolioPercent, wide(), testDay).Price.Color)
	assert.Equal(t, ColorText, Project("AAPL", &q, high, PLPercent, wide(), testDay).Price.Color, "no alert on P/L views")

	row := Project("AAPL", &q, low, PLPercent, wide(), testDay)
	assert.Equal(t, Cell{"150.00", ColorNA}, row.Price, "no holding on a P/L view")
}

func TestProjectNarrow(t *testing.T) {
	q := testQuote
	row := Project("AAPL", &q, testHeld, PLChange, narrow(), testDay)
	assert.Equal(t, "$1500", row.Price.Text)
	assert.Equal(t, "$500", row.Info.Text)
	assert.Empty(t, row.InfoExtra.Text)
	assert.Empty(t, row.Volume.Text)
}

func TestProjectVisual(t *testing.T) {
	q := testQuote
	cfg := visual()

	row := Project("AAPL", &q, testHeld, PortfolioPercent, cfg, testDay)
	assert.Equal(t, Cell{"150.00", ColorText}, row.Price)
	assert.Equal(t, Cell{"2.0%", ColorSame}, row.Info)
	assert.Equal(t, Cell{"3.00", ColorSame}, row.InfoExtra)
	assert.Equal(t, Cell{"50%", ColorSame}, row.Extra2)
	assert.Equal(t, Cell{"50.00", ColorSame}, row.Extra3)
	assert.Equal(t, "#e604BF3C", row.Panel)

	// panels fall back to the daily figures
	row = Project("AAPL", &q, testHeld, DailyPercent, cfg, testDay)
	assert.Equal(t, "2.0%", row.Extra2.Text)
	assert.Equal(t, "3.00", row.Extra3.Text)
	assert.Equal(t, PercentRamp.Color("2.0%"), row.Panel)

	row = Project("AAPL", &q, testHeld, PLPercent, cfg, testDay)
	assert.Equal(t, "50%", row.Info.Text)
	assert.Equal(t, "$500", row.InfoExtra.Text)
	assert.Equal(t, Cell{"2.0%", ColorSame}, row.Extra2)
	assert.Equal(t, Cell{"3.00", ColorSame}, row.Extra3)
	assert.Equal(t, PercentRamp.Color("2.0%"), row.Panel)

	cfg.ColorCalculation = ColorByAbsolute
	row = Project("AAPL", &q, testHeld, PLPercent, cfg, testDay)
	assert.Equal(t, NumericRamp.Color("3.00"), row.Panel)

	row = Project("AAPL", &q, testHeld, PLPercentAer, cfg, testDay)
	assert.Equal(t, "150.00", row.Price.Text, "no holding value on visual AER")
	assert.Equal(t, "", row.Extra2.Text, "no buy date")
	assert.Equal(t, NeutralPanel, row.Panel)
}

func TestDisplaySymbol(t *testing.T) {
	q := testQuote
	cfg := wide()
	cfg.HideSuffix = true
	assert.Equal(t, "AIR", Project("AIR.PA", &q, Record{}, DailyPercent, cfg, testDay).Label.Text)
	assert.Equal(t, "Airbus", Project("AIR.PA", &q, Record{CustomName: "Airbus"}, DailyPercent, cfg, testDay).Label.Text)
	assert.Equal(t, "AIR.PA", Project("AIR.PA", &q, Record{}, DailyPercent, wide(), testDay).Label.Text)

	// names only show on wide standard boards with data
	named := Record{CustomName: "Airbus"}
	assert.Equal(t, "AIR.PA", Project("AIR.PA", &q, named, DailyPercent, narrow(), testDay).Label.Text)
	assert.Equal(t, "AIR.PA", Project("AIR.PA", &q, named, DailyPercent, visual(), testDay).Label.Text)
	assert.Equal(t, "AIR.PA", Project("AIR.PA", nil, named, DailyPercent, wide(), testDay).Label.Text)
	narrowHidden := narrow()
	narrowHidden.HideSuffix = true
	assert.Equal(t, "AIR", Project("AIR.PA", &q, named, DailyPercent, narrowHidden, testDay).Label.Text)
}
