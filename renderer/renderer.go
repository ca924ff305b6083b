// Package renderer turns boards, widgets and portfolio summaries into
// markdown, or into colored text for terminals.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/stockboard"
)

//go:embed templates/*.md
var templatesFS embed.FS

var templates, _ = fs.Sub(templatesFS, "templates")

var funcs = template.FuncMap{"join": strings.Join}

// RenderFrame renders a refreshed widget as a markdown table.
func RenderFrame(f *stockboard.Frame) string {
	partials := map[string]string{
		"frame_title": "frame_title.md",
		"frame_rows":  "frame_rows.md",
	}
	return renderTemplate("frame", "frame.md", partials, f)
}

// RenderSummary renders the portfolio summary.
func RenderSummary(holdings []stockboard.Holding) string {
	return renderTemplate("summary", "summary.md", nil, holdings)
}

// RenderWidget renders the configuration of a widget.
func RenderWidget(c stockboard.WidgetConfig) string {
	var views []string
	for i, on := range c.Views {
		if on {
			views = append(views, stockboard.ViewType(i).String())
		}
	}
	data := struct {
		Config stockboard.WidgetConfig
		Views  []string
	}{c, views}
	return renderTemplate("widget", "widget.md", nil, data)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
