package stockboard

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordJSON(t *testing.T) {
	rec := Record{Symbol: "AAPL", BuyPrice: "100", BuyDate: "2024-01-15", Quantity: "10", CustomName: "Apple"}

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"PRICE":"100","DATE":"2024-01-15","QUANTITY":"10","LIMIT_HIGH":"empty","LIMIT_LOW":"empty","CUSTOM_DISPLAY":"Apple","SYMBOL_2":"empty"}`, string(b))
	assert.NotContains(t, string(b), "AAPL")

	var back Record
	require.NoError(t, json.Unmarshal(b, &back))
	back.Symbol = rec.Symbol
	assert.Equal(t, rec, back)
	assert.Equal(t, "", back.HighLimit)
}

func TestRecordUnmarshalTolerance(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"PRICE":12.5,"QUANTITY":"empty","LIMIT_HIGH":null,"EXTRA":"x"}`), &r))
	assert.Equal(t, "12.5", r.BuyPrice)
	assert.Equal(t, "", r.Quantity)
	assert.Equal(t, "", r.HighLimit)
	assert.Equal(t, "", r.BuyDate)

	assert.Error(t, json.Unmarshal([]byte(`"AAPL"`), &r))
}

func TestRecordPredicates(t *testing.T) {
	assert.True(t, Record{Symbol: "AAPL"}.IsEmpty())
	assert.False(t, Record{Symbol: "AAPL", HighLimit: "200"}.IsEmpty())
	assert.False(t, Record{Symbol: "AAPL", HighLimit: "200"}.HasHolding())
	assert.True(t, Record{Symbol: "AAPL", BuyPrice: "1"}.HasHolding())

	assert.Equal(t, "Apple", Record{Symbol: "AAPL", CustomName: "Apple", SecondarySymbol: "APC.F"}.DisplayName())
	assert.Equal(t, "APC.F", Record{Symbol: "AAPL", SecondarySymbol: "APC.F"}.DisplayName())
	assert.Equal(t, "AAPL", Record{Symbol: "AAPL"}.DisplayName())
}

func TestRecordValidate(t *testing.T) {
	assert.NoError(t, Record{Symbol: "AAPL", BuyPrice: "100.5", BuyDate: "2024-1-5", Quantity: "3"}.Validate())
	assert.NoError(t, Record{Symbol: "AAPL"}.Validate())

	err := Record{Symbol: "AAPL", BuyPrice: "abc", BuyDate: "yesterday"}.Validate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "buy price"))
	assert.True(t, strings.Contains(err.Error(), "yesterday"))

	assert.Error(t, Record{BuyPrice: "1"}.Validate())
}

func TestStaticQuotes(t *testing.T) {
	src, err := DecodeQuotes(strings.NewReader(`[{"symbol":"AAPL","price":"150.00","change":"3.00","percent":"2.0%"}]`))
	require.NoError(t, err)
	got, err := src.Quotes(t.Context(), []string{"AAPL", "MSFT"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	q := got["AAPL"]
	assert.True(t, q.HasData())

	var missing *Quote
	assert.False(t, missing.HasData())
	assert.False(t, (&Quote{Symbol: "X", Price: "1"}).HasData())

	_, err = DecodeQuotes(strings.NewReader(`[{"price":"1"}]`))
	assert.Error(t, err)
}
