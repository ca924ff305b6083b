package stockboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Quote is a market snapshot for one symbol, as delivered by a QuoteSource.
// Values are kept as the display strings the source produced.
type Quote struct {
	Symbol  string `json:"symbol"`
	Name    string `json:"name,omitempty"`
	Price   string `json:"price"`
	Change  string `json:"change"`
	Percent string `json:"percent"`
	Volume  string `json:"volume,omitempty"`
}

// HasData reports whether q can be valued. A nil quote has no data.
func (q *Quote) HasData() bool {
	return q != nil && q.Price != "" && q.Percent != ""
}

// QuoteSource retrieves the latest quotes for a set of symbols.
// Symbols unknown to the source are simply absent from the result.
type QuoteSource interface {
	Quotes(ctx context.Context, symbols []string) (map[string]Quote, error)
}

// StaticQuotes is a QuoteSource serving a fixed set of quotes.
type StaticQuotes map[string]Quote

func (s StaticQuotes) Quotes(_ context.Context, symbols []string) (map[string]Quote, error) {
	res := make(map[string]Quote, len(symbols))
	for _, symbol := range symbols {
		if q, ok := s[symbol]; ok {
			res[symbol] = q
		}
	}
	return res, nil
}

// DecodeQuotes reads StaticQuotes from a JSON array of quotes.
func DecodeQuotes(r io.Reader) (StaticQuotes, error) {
	var list []Quote
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("cannot decode quotes: %w", err)
	}
	res := make(StaticQuotes, len(list))
	for _, q := range list {
		if q.Symbol == "" {
			return nil, fmt.Errorf("quote without symbol: %+v", q)
		}
		res[q.Symbol] = q
	}
	return res, nil
}
