package stockboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// MaxStocks is the number of symbol slots of a widget.
const MaxStocks = 16

// Widget sizes.
const (
	Size1x2 = iota
	Size1x4
	Size2x2
	Size2x4
)

// Values of WidgetConfig.ColorCalculation.
const (
	ColorByPercentage = "percentage"
	ColorByAbsolute   = "absolute"
)

// per widget storage keys
const (
	keySize             = "widgetSize"
	keyVisual           = "visual_stockboard"
	keyHideSuffix       = "hide_suffix"
	keyColorsOnPrices   = "colors_on_prices"
	keyColorCalculation = "vs_color_calculation"
	keyPreviousView     = "previousView"
)

func stockKey(i int) string { return "Stock" + strconv.Itoa(i+1) }

// ErrUnknownWidget is returned for a widget id that was never created.
var ErrUnknownWidget = errors.New("unknown widget")

// WidgetConfig is everything a widget remembers: its symbols, layout and
// the views it rotates through.
type WidgetConfig struct {
	ID               int
	Size             int
	Visual           bool
	HideSuffix       bool
	ColorsOnPrices   bool
	ColorCalculation string
	PreviousView     ViewType
	Views            EnabledViews
	Stocks           [MaxStocks]string
}

// DefaultWidget returns the configuration of a new widget: daily percent only.
func DefaultWidget(id, size int) WidgetConfig {
	c := WidgetConfig{ID: id, Size: size, ColorCalculation: ColorByPercentage}
	c.Views[DailyPercent] = true
	return c
}

// Narrow reports whether the widget is one column wide.
func (c WidgetConfig) Narrow() bool { return c.Size == Size1x2 || c.Size == Size2x2 }

// Capacity is the number of rows the widget displays.
func (c WidgetConfig) Capacity() int {
	switch {
	case c.Visual:
		return MaxStocks
	case c.Size == Size2x2 || c.Size == Size2x4:
		return 10
	}
	return 4
}

// Symbols returns the symbols within capacity, in slot order.
func (c WidgetConfig) Symbols() []string {
	var res []string
	for _, s := range c.Stocks[:c.Capacity()] {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

// SetSymbols fills the slots with symbols, clearing the rest.
func (c *WidgetConfig) SetSymbols(symbols []string) error {
	if len(symbols) > MaxStocks {
		return fmt.Errorf("too many symbols: %d, at most %d", len(symbols), MaxStocks)
	}
	c.Stocks = [MaxStocks]string{}
	for i, s := range symbols {
		c.Stocks[i] = strings.TrimSpace(s)
	}
	return nil
}

func (c *WidgetConfig) load(s Storage) {
	c.Size = s.GetInt(keySize, c.Size)
	c.Visual = s.GetBool(keyVisual, c.Visual)
	c.HideSuffix = s.GetBool(keyHideSuffix, c.HideSuffix)
	c.ColorsOnPrices = s.GetBool(keyColorsOnPrices, c.ColorsOnPrices)
	c.ColorCalculation = s.GetString(keyColorCalculation, c.ColorCalculation)
	c.PreviousView = ViewType(s.GetInt(keyPreviousView, int(c.PreviousView)))
	if !c.PreviousView.Valid() {
		c.PreviousView = DailyPercent
	}
	for i, key := range viewPrefKeys {
		c.Views[i] = s.GetBool(key, c.Views[i])
	}
	for i := range c.Stocks {
		c.Stocks[i] = s.GetString(stockKey(i), "")
	}
}

func (c WidgetConfig) store(s Storage) {
	s.PutInt(keySize, c.Size)
	s.PutBool(keyVisual, c.Visual)
	s.PutBool(keyHideSuffix, c.HideSuffix)
	s.PutBool(keyColorsOnPrices, c.ColorsOnPrices)
	s.PutString(keyColorCalculation, c.ColorCalculation)
	s.PutInt(keyPreviousView, int(c.PreviousView))
	for i, key := range viewPrefKeys {
		s.PutBool(key, c.Views[i])
	}
	for i, sym := range c.Stocks {
		if sym == "" {
			s.Remove(stockKey(i))
		} else {
			s.PutString(stockKey(i), sym)
		}
	}
}

// MarshalJSON writes the widget snapshot used by named widget backups.
func (c WidgetConfig) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append(keySize, c.Size).
		Append(keyVisual, c.Visual).
		Append(keyHideSuffix, c.HideSuffix).
		Append(keyColorsOnPrices, c.ColorsOnPrices).
		Append(keyColorCalculation, c.ColorCalculation).
		Append(keyPreviousView, int(c.PreviousView))
	for i, key := range viewPrefKeys {
		w.Append(key, c.Views[i])
	}
	for i, sym := range c.Stocks {
		w.Optional(stockKey(i), sym)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON reads a widget snapshot. Absent keys keep their current value,
// stock slots absent from the snapshot are cleared.
func (c *WidgetConfig) UnmarshalJSON(data []byte) error {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj == nil {
		return errors.New("widget snapshot is not an object")
	}
	num := func(key string, def int) int {
		if f, ok := obj[key].(float64); ok {
			return int(f)
		}
		return def
	}
	flag := func(key string, def bool) bool {
		if b, ok := obj[key].(bool); ok {
			return b
		}
		return def
	}
	c.Size = num(keySize, c.Size)
	c.Visual = flag(keyVisual, c.Visual)
	c.HideSuffix = flag(keyHideSuffix, c.HideSuffix)
	c.ColorsOnPrices = flag(keyColorsOnPrices, c.ColorsOnPrices)
	if s, ok := obj[keyColorCalculation].(string); ok {
		c.ColorCalculation = s
	}
	if v := ViewType(num(keyPreviousView, int(c.PreviousView))); v.Valid() {
		c.PreviousView = v
	}
	for i, key := range viewPrefKeys {
		c.Views[i] = flag(key, c.Views[i])
	}
	for i := range c.Stocks {
		c.Stocks[i], _ = obj[stockKey(i)].(string)
	}
	return nil
}

// Widgets is the repository of widget configurations kept in a Storage,
// each widget in its own "widget<id>." namespace.
type Widgets struct {
	storage Storage
	log     zerolog.Logger
}

// NewWidgets returns the widget repository persisted in storage.
func NewWidgets(storage Storage, log zerolog.Logger) *Widgets {
	return &Widgets{storage: storage, log: log.With().Str("component", "widgets").Logger()}
}

func (w *Widgets) scope(id int) Storage { return Scope(w.storage, "widget"+strconv.Itoa(id)+".") }

// IDs returns the ids of every widget, in creation order.
func (w *Widgets) IDs() []int {
	var ids []int
	for _, f := range strings.Split(w.storage.GetString(WidgetIDsKey, ""), ",") {
		if id, err := strconv.Atoi(strings.TrimSpace(f)); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func (w *Widgets) putIDs(ids []int) {
	f := make([]string, len(ids))
	for i, id := range ids {
		f[i] = strconv.Itoa(id)
	}
	w.storage.PutString(WidgetIDsKey, strings.Join(f, ","))
}

// Create persists a new default widget of the given size.
func (w *Widgets) Create(size int) (WidgetConfig, error) {
	if size < Size1x2 || size > Size2x4 {
		return WidgetConfig{}, fmt.Errorf("invalid widget size %d", size)
	}
	ids := w.IDs()
	id := 1
	if len(ids) > 0 {
		id = slices.Max(ids) + 1
	}
	c := DefaultWidget(id, size)
	c.store(w.scope(id))
	w.putIDs(append(ids, id))
	if err := w.storage.Apply(); err != nil {
		return WidgetConfig{}, fmt.Errorf("could not create widget: %w", err)
	}
	w.log.Info().Int("widget", id).Int("size", size).Msg("widget created")
	return c, nil
}

// Load returns the configuration of widget id.
func (w *Widgets) Load(id int) (WidgetConfig, error) {
	if !slices.Contains(w.IDs(), id) {
		return WidgetConfig{}, fmt.Errorf("widget %d: %w", id, ErrUnknownWidget)
	}
	c := DefaultWidget(id, Size1x4)
	c.load(w.scope(id))
	return c, nil
}

// Save persists c.
func (w *Widgets) Save(c WidgetConfig) error {
	if !slices.Contains(w.IDs(), c.ID) {
		return fmt.Errorf("widget %d: %w", c.ID, ErrUnknownWidget)
	}
	c.store(w.scope(c.ID))
	return w.storage.Apply()
}

// Remove deletes widget id and all its keys.
func (w *Widgets) Remove(id int) error {
	ids := w.IDs()
	i := slices.Index(ids, id)
	if i < 0 {
		return fmt.Errorf("widget %d: %w", id, ErrUnknownWidget)
	}
	s := w.scope(id)
	for _, key := range []string{keySize, keyVisual, keyHideSuffix, keyColorsOnPrices, keyColorCalculation, keyPreviousView} {
		s.Remove(key)
	}
	for _, key := range viewPrefKeys {
		s.Remove(key)
	}
	clearStocks(s)
	w.putIDs(slices.Delete(ids, i, i+1))
	return w.storage.Apply()
}

// Symbols returns the symbols displayed by any widget, sorted.
func (w *Widgets) Symbols() []string {
	seen := make(map[string]bool)
	var res []string
	for _, id := range w.IDs() {
		c, err := w.Load(id)
		if err != nil {
			continue
		}
		for _, s := range c.Symbols() {
			if !seen[s] {
				seen[s] = true
				res = append(res, s)
			}
		}
	}
	SortSymbols(res)
	return res
}

func clearStocks(s Storage) {
	for i := range MaxStocks {
		s.Remove(stockKey(i))
		s.Remove(stockKey(i) + "_summary")
	}
}

func (w *Widgets) backups() map[string]json.RawMessage {
	m := make(map[string]json.RawMessage)
	raw := w.storage.GetString(WidgetBackupsKey, "")
	if raw == "" {
		return m
	}
	if err := json.Unmarshal([]byte(raw), &m); err != nil || m == nil {
		w.log.Warn().Err(err).Msg("ignoring unreadable widget backups")
		return make(map[string]json.RawMessage)
	}
	return m
}

// BackupWidget saves a snapshot of widget id under name, replacing any
// snapshot of the same name.
func (w *Widgets) BackupWidget(id int, name string) error {
	c, err := w.Load(id)
	if err != nil {
		return err
	}
	snap, err := json.Marshal(c)
	if err != nil {
		return err
	}
	m := w.backups()
	m[name] = snap
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	slices.Sort(names)
	var jw jsonObjectWriter
	for _, n := range names {
		jw.Append(n, m[n])
	}
	raw, err := jw.MarshalJSON()
	if err != nil {
		return err
	}
	w.storage.PutString(WidgetBackupsKey, string(raw))
	return w.storage.Apply()
}

// RestoreWidget applies the snapshot name to widget id, keeping its size.
// It returns false when there is no such snapshot.
func (w *Widgets) RestoreWidget(id int, name string) (bool, error) {
	snap, ok := w.backups()[name]
	if !ok {
		return false, nil
	}
	c, err := w.Load(id)
	if err != nil {
		return false, err
	}
	size := c.Size
	if err := json.Unmarshal(snap, &c); err != nil {
		return false, fmt.Errorf("widget backup %q: %w", name, err)
	}
	c.ID, c.Size = id, size
	return true, w.Save(c)
}

// WidgetBackupNames returns the names of the saved snapshots, sorted.
func (w *Widgets) WidgetBackupNames() []string {
	var names []string
	for n := range w.backups() {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
