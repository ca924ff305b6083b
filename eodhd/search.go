package eodhd

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// SearchResult matches the structure of a single item in the EODHD search API response.
type SearchResult struct {
	Code          string  `json:"Code"`
	Exchange      string  `json:"Exchange"`
	Name          string  `json:"Name"`
	Type          string  `json:"Type"`
	Country       string  `json:"Country"`
	Currency      string  `json:"Currency"`
	ISIN          string  `json:"ISIN"`
	PreviousClose float64 `json:"previousClose"`
}

// Symbol is the board symbol of r, the reverse of Ticker.
func (r SearchResult) Symbol() string {
	switch strings.ToUpper(r.Exchange) {
	case "US", "":
		return r.Code
	case "INDX":
		return "^" + r.Code
	}
	return r.Code + "." + r.Exchange
}

// Search looks up securities by name, ticker or ISIN.
func (c *Client) Search(ctx context.Context, term string) ([]SearchResult, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}
	q := url.Values{}
	q.Set("api_token", c.apiKey)
	q.Set("fmt", "json")
	addr := fmt.Sprintf("%s/search/%s?%s", c.baseURL, url.PathEscape(term), q.Encode())

	// search results hardly change, they are cached for a day unless caching is off.
	ttl := searchTTL
	if c.ttl <= 0 {
		ttl = 0
	}
	var results []SearchResult
	if err := jwget(ctx, newCachingClient(c.cache, ttl, c.log), addr, &results); err != nil {
		return nil, fmt.Errorf("error searching %q: %w", term, err)
	}
	return results, nil
}
