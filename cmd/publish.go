package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"text/template"

	"github.com/etnz/stockboard"
	"github.com/etnz/stockboard/date"
	"github.com/etnz/stockboard/renderer"
	"github.com/google/subcommands"
)

// publishTask is one page to publish, it is also the front matter template data.
type publishTask struct {
	Kind  string // "widget" or "portfolio"
	Name  string
	Day   date.Date
	Frame *stockboard.Frame
}

// Path is where the page goes, relative to the output folder.
func (t publishTask) Path() string { return path.Join(t.Kind, t.Name+".md") }

type publishCmd struct {
	outputDir      string
	frontMatterTpl string
}

func (*publishCmd) Name() string { return "publish" }

func (*publishCmd) Synopsis() string { return "write every widget and the portfolio as markdown pages" }

func (*publishCmd) Usage() string {
	return `publish [-o <dir>] [-frontmatter <file>]

  Refreshes every widget and writes its rows, and the portfolio summary, as
  markdown pages under a folder: widget/<id>.md and portfolio/summary.md.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "o", "board", "Root directory for the generated pages")
	f.StringVar(&c.frontMatterTpl, "frontmatter", "", "Path to a Go template file for the page front matter")
}

func (c *publishCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var frontMatterTpl *template.Template
	if c.frontMatterTpl != "" {
		var err error
		frontMatterTpl, err = template.ParseFiles(c.frontMatterTpl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse front matter template: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	frames, err := a.board.RefreshAll(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to refresh widgets: %v\n", err)
		return subcommands.ExitFailure
	}
	holdings, err := a.board.Summary(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to summarize the portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	pages := publishPages(frames, a.board.Clock.Today())
	pages = append(pages, page{publishTask{Kind: "portfolio", Name: "summary", Day: a.board.Clock.Today()}, renderer.RenderSummary(holdings)})

	for _, p := range pages {
		md := p.md
		if frontMatterTpl != nil {
			fm, err := renderFrontMatter(frontMatterTpl, p.task)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to render front matter for %s: %v\n", p.task.Path(), err)
				continue
			}
			md = fm + "\n" + md
		}

		fullPath := filepath.Join(c.outputDir, filepath.FromSlash(p.task.Path()))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create output directory for file %s: %v\n", p.task.Path(), err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(fullPath, []byte(md), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write file %s: %v\n", p.task.Path(), err)
			return subcommands.ExitFailure
		}
		a.log.Info().Str("page", p.task.Path()).Msg("generated")
	}
	return subcommands.ExitSuccess
}

type page struct {
	task publishTask
	md   string
}

// publishPages returns one page per widget frame.
func publishPages(frames []stockboard.Frame, day date.Date) []page {
	pages := make([]page, 0, len(frames)+1)
	for i := range frames {
		f := &frames[i]
		pages = append(pages, page{
			task: publishTask{Kind: "widget", Name: strconv.Itoa(f.WidgetID), Day: day, Frame: f},
			md:   renderer.RenderFrame(f),
		})
	}
	return pages
}

func renderFrontMatter(tpl *template.Template, task publishTask) (string, error) {
	var fmBuffer bytes.Buffer
	if err := tpl.Execute(&fmBuffer, task); err != nil {
		return "", err
	}
	return fmBuffer.String(), nil
}
