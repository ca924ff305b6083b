package stockboard

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Profile is a YAML description of a widget and the holdings it shows, for
// example:
//
//	size: 3
//	visual: false
//	views: [daily-percent, daily-change, pl-percent]
//	symbols: [^GSPC, AAPL, AIR.PA]
//	portfolio:
//	  AAPL: {buy: "100", date: "2021-03-04", quantity: "10", high: "200"}
type Profile struct {
	Size             *int                     `yaml:"size"`
	Visual           *bool                    `yaml:"visual"`
	HideSuffix       *bool                    `yaml:"hide_suffix"`
	ColorsOnPrices   *bool                    `yaml:"colors_on_prices"`
	ColorCalculation string                   `yaml:"color_calculation"`
	Views            []string                 `yaml:"views"`
	Symbols          []string                 `yaml:"symbols"`
	Portfolio        map[string]ProfileRecord `yaml:"portfolio"`
}

// ProfileRecord is a portfolio record in a Profile.
type ProfileRecord struct {
	Buy       string `yaml:"buy"`
	Date      string `yaml:"date"`
	Quantity  string `yaml:"quantity"`
	High      string `yaml:"high"`
	Low       string `yaml:"low"`
	Name      string `yaml:"name"`
	Secondary string `yaml:"symbol2"`
}

// DecodeProfile reads a YAML profile.
func DecodeProfile(r io.Reader) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	return &p, nil
}

// Apply sets the fields present in p on c and updates the records of store.
// Nothing is persisted.
func (p *Profile) Apply(c *WidgetConfig, store *Store) error {
	if p.Size != nil {
		if *p.Size < Size1x2 || *p.Size > Size2x4 {
			return fmt.Errorf("invalid widget size %d", *p.Size)
		}
		c.Size = *p.Size
	}
	if p.Visual != nil {
		c.Visual = *p.Visual
	}
	if p.HideSuffix != nil {
		c.HideSuffix = *p.HideSuffix
	}
	if p.ColorsOnPrices != nil {
		c.ColorsOnPrices = *p.ColorsOnPrices
	}
	switch p.ColorCalculation {
	case "":
	case ColorByPercentage, ColorByAbsolute:
		c.ColorCalculation = p.ColorCalculation
	default:
		return fmt.Errorf("invalid color calculation %q", p.ColorCalculation)
	}
	if p.Views != nil {
		var views EnabledViews
		for _, name := range p.Views {
			v, err := ParseView(name)
			if err != nil {
				return err
			}
			views[v] = true
		}
		c.Views = views
	}
	if p.Symbols != nil {
		if err := c.SetSymbols(p.Symbols); err != nil {
			return err
		}
	}

	for symbol, pr := range p.Portfolio {
		r := Record{
			Symbol:          symbol,
			BuyPrice:        pr.Buy,
			BuyDate:         pr.Date,
			Quantity:        pr.Quantity,
			HighLimit:       pr.High,
			LowLimit:        pr.Low,
			CustomName:      pr.Name,
			SecondarySymbol: pr.Secondary,
		}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("portfolio %s: %w", symbol, err)
		}
		store.Update(symbol, r)
	}
	return nil
}
