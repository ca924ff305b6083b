package stockboard

import (
	"strings"

	"github.com/Rhymond/go-money"
)

// exchangeCurrencies maps a quote symbol suffix to the currency it trades in.
var exchangeCurrencies = map[string]string{
	"":   money.USD,
	"US": money.USD,
	"L":  money.GBP,
	"IL": money.GBP,
	"PA": money.EUR,
	"AS": money.EUR,
	"BR": money.EUR,
	"DE": money.EUR,
	"F":  money.EUR,
	"MI": money.EUR,
	"MC": money.EUR,
	"LS": money.EUR,
	"VI": money.EUR,
	"HE": money.EUR,
	"IR": money.EUR,
	"SW": money.CHF,
	"VX": money.CHF,
	"TO": money.CAD,
	"V":  money.CAD,
	"AX": money.AUD,
	"NZ": money.NZD,
	"HK": money.HKD,
	"T":  money.JPY,
	"SS": money.CNY,
	"SZ": money.CNY,
	"KS": money.KRW,
	"SI": money.SGD,
	"NS": money.INR,
	"BO": money.INR,
	"ST": money.SEK,
	"OL": money.NOK,
	"CO": money.DKK,
	"SA": money.BRL,
	"MX": money.MXN,
	"JO": money.ZAR,
	"TA": money.ILS,
}

// CurrencyFor returns the ISO code of the currency symbol is quoted in, or ""
// for indices, currency pairs and unknown exchanges.
func CurrencyFor(symbol string) string {
	if strings.HasPrefix(symbol, "^") || strings.Contains(symbol, "=") {
		return ""
	}
	suffix := ""
	if i := strings.LastIndex(symbol, "."); i >= 0 {
		suffix = strings.ToUpper(symbol[i+1:])
	}
	return exchangeCurrencies[suffix]
}

// WithCurrency decorates a formatted amount with the currency of symbol,
// "500" becomes "$500" for AAPL and "-€30" for -30 on AIR.PA.
// Values that are not amounts, or symbols without a currency, are returned as is.
func WithCurrency(value, symbol string) string {
	code := CurrencyFor(symbol)
	if value == "" || code == "" {
		return value
	}
	d, ok := parseDecimal(value)
	if !ok {
		return value
	}
	cur := money.GetCurrency(code)
	if cur == nil {
		return value
	}
	places := 0
	if exp := d.Exponent(); exp < 0 {
		places = int(-exp)
	}
	// no thousand separator, the board keeps amounts readable back by parseDecimal.
	f := money.NewFormatter(places, ".", "", cur.Grapheme, cur.Template)
	return f.Format(d.Shift(int32(places)).IntPart())
}
