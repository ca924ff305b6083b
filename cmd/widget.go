package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stockboard"
	"github.com/etnz/stockboard/renderer"
	"github.com/google/subcommands"
)

// sizes maps the -size flag values to widget sizes.
var sizes = map[string]int{
	"1x2": stockboard.Size1x2,
	"1x4": stockboard.Size1x4,
	"2x2": stockboard.Size2x2,
	"2x4": stockboard.Size2x4,
}

type createCmd struct {
	size string
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "add a widget" }
func (*createCmd) Usage() string {
	return `sboard create [-size 1x2|1x4|2x2|2x4]

  Adds a widget with the default configuration and prints its id.
`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.size, "size", "1x4", "Widget size: 1x2, 1x4, 2x2 or 2x4.")
}

func (c *createCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	size, ok := sizes[c.size]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown widget size %q\n", c.size)
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	w, err := a.board.Widgets.Create(size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating widget: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(w.ID)
	return subcommands.ExitSuccess
}

type widgetsCmd struct{}

func (*widgetsCmd) Name() string     { return "widgets" }
func (*widgetsCmd) Synopsis() string { return "describe every widget" }
func (*widgetsCmd) Usage() string {
	return `sboard widgets

  Describes the configuration of every widget.
`
}

func (c *widgetsCmd) SetFlags(f *flag.FlagSet) {}

func (c *widgetsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	var b strings.Builder
	for _, id := range a.board.Widgets.IDs() {
		w, err := a.board.Widgets.Load(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading widget %d: %v\n", id, err)
			return subcommands.ExitFailure
		}
		b.WriteString(renderer.RenderWidget(w))
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		b.WriteString("No widgets, see 'sboard create'.\n")
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type removeCmd struct {
	id int
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "delete a widget" }
func (*removeCmd) Usage() string {
	return `sboard remove -w <id>

  Deletes a widget and its configuration. Portfolio records are kept until
  the next 'prune'.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) { f.IntVar(&c.id, "w", 0, "Widget id.") }

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.board.Widgets.Remove(c.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error removing widget %d: %v\n", c.id, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type symbolsCmd struct {
	id int
}

func (*symbolsCmd) Name() string     { return "symbols" }
func (*symbolsCmd) Synopsis() string { return "set the symbols of a widget" }
func (*symbolsCmd) Usage() string {
	return `sboard symbols [-w <id>] <symbol>...

  Replaces the symbols of a widget. Indices start with '^', e.g. ^GSPC.
  Without symbols, prints the current ones.
`
}

func (c *symbolsCmd) SetFlags(f *flag.FlagSet) { widgetFlag(f, &c.id) }

func (c *symbolsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	w, err := a.board.Widgets.Load(c.id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if f.NArg() == 0 {
		for _, s := range w.Symbols() {
			fmt.Println(s)
		}
		return subcommands.ExitSuccess
	}
	if err := w.SetSymbols(f.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := a.board.Widgets.Save(w); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving widget %d: %v\n", c.id, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
