package stockboard

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const legacySizeToken = "Widgetsize"

// ErrSizeMismatch rejects a text backup made for a widget of another size.
var ErrSizeMismatch = errors.New("backup was made for a widget of another size")

// ExportText writes the plain text backup of a widget: its size then one
// "Stock<N>: <symbol>" line per symbol.
func ExportText(w io.Writer, c WidgetConfig) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d\n", legacySizeToken, c.Size)
	for i, s := range c.Stocks {
		if s != "" {
			fmt.Fprintf(&b, "%s: %s\n", stockKey(i), s)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ImportText restores a plain text backup into widget id. The backup is
// rejected as a whole unless its size is the widget's size. Symbols are
// written to consecutive slots from Stock1.
func (w *Widgets) ImportText(id int, text string) error {
	c, err := w.Load(id)
	if err != nil {
		return err
	}
	tokens := strings.FieldsFunc(text, func(r rune) bool { return r == ':' || r == '\n' || r == '\r' })
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	if len(tokens) < 2 || tokens[0] != legacySizeToken {
		return fmt.Errorf("not a widget backup: missing %s", legacySizeToken)
	}
	size, err := strconv.Atoi(tokens[1])
	if err != nil || size != c.Size {
		return fmt.Errorf("%w: got %q, widget %d has size %d", ErrSizeMismatch, tokens[1], id, c.Size)
	}

	var symbols []string
	for i := 3; i < len(tokens); i += 2 {
		if tokens[i] != "" && len(symbols) < MaxStocks {
			symbols = append(symbols, tokens[i])
		}
	}
	clearStocks(w.scope(id))
	if err := c.SetSymbols(symbols); err != nil {
		return err
	}
	w.log.Info().Int("widget", id).Int("symbols", len(symbols)).Msg("text backup restored")
	return w.Save(c)
}
