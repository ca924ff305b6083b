// Package eodhd is a stockboard.QuoteSource backed by the EODHD real-time API.
package eodhd

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/stockboard"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultURL is the EODHD API root.
const DefaultURL = "https://eodhd.com/api"

const searchTTL = 24 * time.Hour

// Client fetches delayed real-time quotes.
type Client struct {
	apiKey  string
	baseURL string
	cache   string
	ttl     time.Duration
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client to another API root, mostly for tests.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") } }

// WithCache caches responses in dir for ttl. A zero ttl disables caching.
func WithCache(dir string, ttl time.Duration) Option {
	return func(c *Client) { c.cache, c.ttl = dir, ttl }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option { return func(c *Client) { c.log = log } }

// New returns a client authenticated with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{apiKey: apiKey, baseURL: DefaultURL, ttl: time.Minute, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("component", "eodhd").Logger()
	return c
}

var _ stockboard.QuoteSource = (*Client)(nil)

// Ticker returns the EODHD ticker of a board symbol: indices "^GSPC" become
// "GSPC.INDX" and symbols without exchange are US ones.
func Ticker(symbol string) string {
	switch {
	case strings.HasPrefix(symbol, "^"):
		return strings.TrimPrefix(symbol, "^") + ".INDX"
	case !strings.Contains(symbol, "."):
		return symbol + ".US"
	}
	return symbol
}

// Quotes implements stockboard.QuoteSource with a single request for all symbols.
func (c *Client) Quotes(ctx context.Context, symbols []string) (map[string]stockboard.Quote, error) {
	res := make(map[string]stockboard.Quote, len(symbols))
	if len(symbols) == 0 {
		return res, nil
	}
	// several board symbols may name the same ticker, like AAPL and AAPL.US.
	bySymbol := make(map[string][]string, len(symbols))
	tickers := make([]string, 0, len(symbols))
	for _, s := range symbols {
		t := Ticker(s)
		if _, dup := bySymbol[t]; !dup {
			tickers = append(tickers, t)
		}
		if !slices.Contains(bySymbol[t], s) {
			bySymbol[t] = append(bySymbol[t], s)
		}
	}

	q := url.Values{}
	q.Set("api_token", c.apiKey)
	q.Set("fmt", "json")
	if len(tickers) > 1 {
		q.Set("s", strings.Join(tickers[1:], ","))
	}
	addr := fmt.Sprintf("%s/real-time/%s?%s", c.baseURL, url.PathEscape(tickers[0]), q.Encode())

	var jobj any
	if err := jwget(ctx, newCachingClient(c.cache, c.ttl, c.log), addr, &jobj); err != nil {
		return nil, fmt.Errorf("error fetching real-time quotes: %w", err)
	}
	// a single ticker comes back as an object, several as a list.
	items, ok := jobj.([]any)
	if !ok {
		items = []any{jobj}
	}
	for _, item := range items {
		code, _ := get(item, "$.code").(string)
		names, ok := bySymbol[code]
		if !ok {
			c.log.Debug().Str("code", code).Msg("unexpected ticker in response")
			continue
		}
		q := stockboard.Quote{
			Price:   fixed(get(item, "$.close"), 2, ""),
			Change:  fixed(get(item, "$.change"), 2, ""),
			Percent: fixed(get(item, "$.change_p"), 2, "%"),
			Volume:  fixed(get(item, "$.volume"), 0, ""),
		}
		for _, symbol := range names {
			q.Symbol = symbol
			res[symbol] = q
		}
	}
	c.log.Debug().Int("asked", len(symbols)).Int("got", len(res)).Msg("quotes fetched")
	return res, nil
}

// get evaluates path on obj, nil when absent.
func get(obj any, path string) any {
	v, err := jsonpath.Get(path, obj)
	if err != nil {
		return nil
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer
	if l, ok := v.([]any); ok {
		if len(l) == 0 {
			return nil
		}
		v = l[0]
	}
	return v
}

// fixed formats a JSON number. EODHD writes "NA" for missing values, those
// become "".
func fixed(v any, places int32, suffix string) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	return decimal.NewFromFloat(f).StringFixed(places) + suffix
}
