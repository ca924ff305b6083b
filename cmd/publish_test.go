package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"text/template"

	"github.com/etnz/stockboard"
	"github.com/etnz/stockboard/config"
	"github.com/etnz/stockboard/date"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishPages(t *testing.T) {
	day := date.New(2024, 3, 1)
	frames := []stockboard.Frame{
		{WidgetID: 1, Label: "Daily %", Day: day},
		{WidgetID: 4, Label: "P/L T", Day: day, Rows: []stockboard.Row{{Symbol: "AAPL", Label: stockboard.Cell{Text: "AAPL"}}}},
	}
	pages := publishPages(frames, day)
	require.Len(t, pages, 2)
	assert.Equal(t, "widget/1.md", pages[0].task.Path())
	assert.Equal(t, "widget/4.md", pages[1].task.Path())
	assert.Contains(t, pages[0].md, "No symbols on this widget.")
	assert.Contains(t, pages[1].md, "| AAPL |")
	assert.Same(t, &frames[1], pages[1].task.Frame)

	assert.Empty(t, publishPages(nil, day))
}

func TestRenderFrontMatter(t *testing.T) {
	tpl := template.Must(template.New("fm").Parse("---\ntitle: {{.Kind}} {{.Name}}\ndate: {{.Day}}\n---"))
	got, err := renderFrontMatter(tpl, publishTask{Kind: "widget", Name: "2", Day: date.New(2024, 3, 1)})
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: widget 2\ndate: 2024-03-01\n---", got)

	bad := template.Must(template.New("fm").Parse("{{.Missing}}"))
	_, err = renderFrontMatter(bad, publishTask{})
	assert.Error(t, err)
}

func TestPublishLogsPages(t *testing.T) {
	dir := t.TempDir()
	quotes := filepath.Join(dir, "quotes.json")
	require.NoError(t, os.WriteFile(quotes, []byte(`[]`), 0o600))
	t.Setenv(config.EnvDataDir, dir)
	t.Setenv(config.EnvStorage, config.StorageMemory)
	t.Setenv(config.EnvQuotesFile, quotes)
	t.Setenv(config.EnvLogLevel, "info")
	t.Setenv(config.EnvLogPretty, "false")

	r, w, err := os.Pipe()
	require.NoError(t, err)
	stderr := os.Stderr
	os.Stderr = w
	out := filepath.Join(dir, "site")
	status := (&publishCmd{outputDir: out}).Execute(context.Background(), flag.NewFlagSet("publish", flag.ContinueOnError))
	os.Stderr = stderr
	require.NoError(t, w.Close())
	var logs bytes.Buffer
	_, err = logs.ReadFrom(r)
	require.NoError(t, err)

	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.FileExists(t, filepath.Join(out, "portfolio", "summary.md"))
	assert.Contains(t, logs.String(), `"page":"portfolio/summary.md"`)
	assert.Contains(t, logs.String(), `"message":"generated"`)
}
