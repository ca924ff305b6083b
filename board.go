package stockboard

import (
	"context"
	"fmt"

	"github.com/etnz/stockboard/date"
	"github.com/rs/zerolog"
)

// Frame is one refresh of a widget, ready to be rendered.
type Frame struct {
	WidgetID      int       `json:"widget"`
	View          ViewType  `json:"view"`
	Label         string    `json:"label"`
	Narrow        bool      `json:"narrow"`
	Visual        bool      `json:"visual"`
	CanChangeView bool      `json:"canChangeView"`
	Day           date.Date `json:"day"`
	Rows          []Row     `json:"rows"`
}

// Board refreshes widgets: it fetches their quotes, projects the rows of the
// current view and persists the view rotation.
type Board struct {
	Store   *Store
	Widgets *Widgets
	Quotes  QuoteSource
	Clock   date.Clock
	log     zerolog.Logger
}

// NewBoard assembles a board.
func NewBoard(store *Store, widgets *Widgets, quotes QuoteSource, clock date.Clock, log zerolog.Logger) *Board {
	if clock == nil {
		clock = date.System
	}
	return &Board{
		Store:   store,
		Widgets: widgets,
		Quotes:  quotes,
		Clock:   clock,
		log:     log.With().Str("component", "board").Logger(),
	}
}

// Refresh computes the frame of widget id. A quote source failure does not
// fail the refresh, rows show "no data" instead.
func (b *Board) Refresh(ctx context.Context, id int, trigger Trigger) (Frame, error) {
	cfg, err := b.Widgets.Load(id)
	if err != nil {
		return Frame{}, err
	}
	symbols := cfg.Symbols()
	b.Store.Track(symbols)

	quotes, err := b.Quotes.Quotes(ctx, symbols)
	if err != nil {
		b.log.Warn().Err(err).Int("widget", id).Msg("quotes unavailable")
		quotes = nil
	}

	hasPortfolio := b.Store.HasPortfolioData(symbols)
	enabled := cfg.EnabledViews(hasPortfolio)
	can := CanChangeView(trigger, hasPortfolio, enabled)
	view := cfg.PreviousView
	if can {
		view = NextView(cfg.PreviousView, trigger, enabled)
	}

	today := b.Clock.Today()
	frame := Frame{
		WidgetID:      id,
		View:          view,
		Label:         view.Label(cfg.Narrow()),
		Narrow:        cfg.Narrow(),
		Visual:        cfg.Visual,
		CanChangeView: can,
		Day:           today,
		Rows:          make([]Row, 0, len(symbols)),
	}
	for _, symbol := range symbols {
		var q *Quote
		if v, ok := quotes[symbol]; ok {
			q = &v
		}
		frame.Rows = append(frame.Rows, Project(symbol, q, b.Store.Record(symbol), view, cfg, today))
	}

	if view != cfg.PreviousView {
		cfg.PreviousView = view
		if err := b.Widgets.Save(cfg); err != nil {
			return frame, fmt.Errorf("could not persist view of widget %d: %w", id, err)
		}
	}
	b.log.Debug().Int("widget", id).Stringer("trigger", trigger).Stringer("view", view).Int("rows", len(frame.Rows)).Msg("refreshed")
	return frame, nil
}

// RefreshAll refreshes every widget on a regular refresh.
func (b *Board) RefreshAll(ctx context.Context) ([]Frame, error) {
	var frames []Frame
	for _, id := range b.Widgets.IDs() {
		f, err := b.Refresh(ctx, id, RegularRefresh)
		if err != nil {
			return frames, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// Prune drops the records no widget uses and persists the portfolio.
func (b *Board) Prune() (int, error) {
	n := b.Store.Prune(b.Widgets.Symbols())
	return n, b.Store.Save()
}
