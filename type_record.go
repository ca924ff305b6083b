package stockboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/etnz/stockboard/date"
)

// Record is the user's data about one symbol: an optional holding, alert
// limits and display customization. Every field is the text the user entered.
type Record struct {
	Symbol          string
	BuyPrice        string
	BuyDate         string
	Quantity        string
	HighLimit       string
	LowLimit        string
	CustomName      string
	SecondarySymbol string
}

// emptyField is how a blank field is persisted.
const emptyField = "empty"

// recordFields are the persisted field names, in persisted order.
var recordFields = [...]string{"PRICE", "DATE", "QUANTITY", "LIMIT_HIGH", "LIMIT_LOW", "CUSTOM_DISPLAY", "SYMBOL_2"}

func (r *Record) fields() [len(recordFields)]*string {
	return [...]*string{&r.BuyPrice, &r.BuyDate, &r.Quantity, &r.HighLimit, &r.LowLimit, &r.CustomName, &r.SecondarySymbol}
}

// HasHolding reports whether the record holds shares, i.e. has a buy price.
func (r Record) HasHolding() bool { return r.BuyPrice != "" }

// IsEmpty reports whether every field but the symbol is blank.
func (r Record) IsEmpty() bool {
	for _, f := range r.fields() {
		if *f != "" {
			return false
		}
	}
	return true
}

// DisplayName is the label used for the symbol on wide boards.
func (r Record) DisplayName() string {
	switch {
	case r.CustomName != "":
		return r.CustomName
	case r.SecondarySymbol != "":
		return r.SecondarySymbol
	}
	return r.Symbol
}

// Validate checks that numeric fields are numbers and the buy date a date.
func (r Record) Validate() error {
	var errs []error
	for name, v := range map[string]string{
		"buy price":  r.BuyPrice,
		"quantity":   r.Quantity,
		"high limit": r.HighLimit,
		"low limit":  r.LowLimit,
	} {
		if v == "" {
			continue
		}
		if _, ok := parseDecimal(v); !ok {
			errs = append(errs, fmt.Errorf("invalid %s %q", name, v))
		}
	}
	if r.BuyDate != "" {
		if _, err := date.Parse(r.BuyDate); err != nil {
			errs = append(errs, err)
		}
	}
	if r.Symbol == "" {
		errs = append(errs, errors.New("missing symbol"))
	}
	return errors.Join(errs...)
}

// MarshalJSON writes the persisted form of the record, the symbol is not part of it.
func (r Record) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for i, f := range r.fields() {
		v := *f
		if v == "" {
			v = emptyField
		}
		w.Append(recordFields[i], v)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON reads the persisted form. Missing fields, null and "empty" are
// blank; numbers are kept as their literal text.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return err
	}
	if obj == nil {
		return errors.New("record is not an object")
	}
	for i, f := range r.fields() {
		*f = ""
		switch v := obj[recordFields[i]].(type) {
		case nil:
		case string:
			if v != emptyField {
				*f = v
			}
		default:
			*f = fmt.Sprint(v)
		}
	}
	return nil
}
