package stockboard

import (
	"context"

	"github.com/etnz/stockboard/date"
)

// Holding is the portfolio summary of one symbol.
type Holding struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Price       string `json:"price,omitempty"`
	BuyPrice    string `json:"buyPrice,omitempty"`
	BuyDate     string `json:"buyDate,omitempty"`
	Quantity    string `json:"quantity,omitempty"`
	HighLimit   string `json:"highLimit,omitempty"`
	LowLimit    string `json:"lowLimit,omitempty"`
	LastChange  string `json:"lastChange,omitempty"`
	TotalChange string `json:"totalChange,omitempty"`
	Value       string `json:"value,omitempty"`
}

// Summary describes every symbol of the portfolio, indices first.
func (b *Board) Summary(ctx context.Context) ([]Holding, error) {
	symbols := b.Store.SortedSymbols()
	quotes, err := b.Quotes.Quotes(ctx, symbols)
	if err != nil {
		b.log.Warn().Err(err).Msg("quotes unavailable for summary")
		quotes = nil
	}
	today := b.Clock.Today()
	res := make([]Holding, 0, len(symbols))
	for _, symbol := range symbols {
		var q *Quote
		if v, ok := quotes[symbol]; ok {
			q = &v
		}
		res = append(res, summarize(symbol, q, b.Store.Record(symbol), today))
	}
	return res, nil
}

func summarize(symbol string, q *Quote, r Record, today date.Date) Holding {
	h := Holding{
		Symbol:    symbol,
		Name:      r.CustomName,
		BuyPrice:  r.BuyPrice,
		BuyDate:   r.BuyDate,
		Quantity:  r.Quantity,
		HighLimit: r.HighLimit,
		LowLimit:  r.LowLimit,
	}
	if h.Name == "" && q != nil {
		h.Name = q.Name
	}
	if h.Name == "" {
		h.Name = "No description"
	}
	if !q.HasData() {
		return h
	}
	h.Price = q.Price
	if !r.HasHolding() {
		return h
	}
	v := Value(*q, r, today)
	h.LastChange = q.Percent + " / " + WithCurrency(v.PLDailyChange, symbol)
	if percent, ok := parseDecimal(v.TotalPercent); ok {
		h.TotalChange = formatWhole(percent) + "% / " + WithCurrency(v.PLTotalChange, symbol)
	}
	h.Value = WithCurrency(v.PLHolding, symbol)
	return h
}
