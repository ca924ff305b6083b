package stockboard

// Trigger is what caused a board refresh.
type Trigger int

const (
	RegularRefresh Trigger = iota
	ViewChangeRequest
)

func (t Trigger) String() string {
	if t == ViewChangeRequest {
		return "view-change"
	}
	return "refresh"
}

// EnabledViews tells which views a board may rotate through.
type EnabledViews [ViewCount]bool

// visualViews are the only views a visual board can show.
var visualViews = map[ViewType]bool{
	DailyPercent:     true,
	PortfolioPercent: true,
	PLPercent:        true,
	PLPercentAer:     true,
}

// EnabledViews resolves the views of the widget given whether its symbols
// carry holdings.
func (c WidgetConfig) EnabledViews(hasPortfolio bool) EnabledViews {
	var e EnabledViews
	for i := range e {
		v := ViewType(i)
		switch {
		case v.NeedsPortfolio() && !hasPortfolio:
		case c.Visual:
			e[i] = visualViews[v]
		default:
			e[i] = c.Views[i]
		}
	}
	return e
}

// NextView is the view shown after current on trigger.
func NextView(current ViewType, trigger Trigger, enabled EnabledViews) ViewType {
	if !current.Valid() {
		current = DailyPercent
	}
	if trigger != ViewChangeRequest {
		return current
	}
	v := current
	for range ViewCount {
		v = (v + 1) % ViewCount
		if enabled[v] {
			return v
		}
	}
	return DailyPercent
}

// CanChangeView reports whether a view change request is worth honoring.
func CanChangeView(trigger Trigger, hasPortfolio bool, enabled EnabledViews) bool {
	if trigger != ViewChangeRequest || hasPortfolio {
		return true
	}
	return enabled[DailyPercent] && enabled[DailyChange]
}
