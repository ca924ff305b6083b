package renderer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/etnz/stockboard"
)

var palette = map[stockboard.Color]lipgloss.Color{
	stockboard.ColorText:      lipgloss.Color("252"),
	stockboard.ColorGain:      lipgloss.Color("#04BF3C"),
	stockboard.ColorLoss:      lipgloss.Color("#D23641"),
	stockboard.ColorSame:      lipgloss.Color("250"),
	stockboard.ColorNA:        lipgloss.Color("244"),
	stockboard.ColorVolume:    lipgloss.Color("#6FA8DC"),
	stockboard.ColorHighAlert: lipgloss.Color("#FFB000"),
	stockboard.ColorLowAlert:  lipgloss.Color("#B266FF"),
	stockboard.ColorNoData:    lipgloss.Color("240"),
}

var titleStyle = lipgloss.NewStyle().Bold(true)

// panelColor drops the alpha of a "#AARRGGBB" panel color, terminals have none.
func panelColor(panel string) (lipgloss.Color, bool) {
	if len(panel) != 9 || panel == stockboard.NeutralPanel {
		return "", false
	}
	return lipgloss.Color("#" + panel[3:]), true
}

// RenderTerm renders a frame as colored columns for a terminal.
func RenderTerm(f *stockboard.Frame) string {
	cells := func(r stockboard.Row) []stockboard.Cell {
		c := []stockboard.Cell{r.Label, r.Price, r.Info, r.InfoExtra, r.Volume}
		if f.Visual {
			c = append(c, r.Extra2, r.Extra3)
		}
		return c
	}

	var widths []int
	for _, r := range f.Rows {
		for i, c := range cells(r) {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(c.Text))
		}
	}

	var b strings.Builder
	title := "Widget"
	if f.Label != "" {
		title += " " + f.Label
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for _, r := range f.Rows {
		var line []string
		for i, c := range cells(r) {
			st := lipgloss.NewStyle().Width(widths[i]).Foreground(palette[c.Color])
			if i > 0 {
				st = st.Align(lipgloss.Right)
			}
			line = append(line, st.Render(c.Text))
		}
		row := strings.Join(line, "  ")
		if bg, ok := panelColor(r.Panel); ok {
			row = lipgloss.NewStyle().Background(bg).Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}
