package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockboard"
	"github.com/etnz/stockboard/renderer"
	"github.com/google/subcommands"
)

// frameOutput holds the output flags shared by show and next.
type frameOutput struct {
	json bool
	term bool
}

func (o *frameOutput) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&o.json, "json", false, "Print the frame as JSON.")
	f.BoolVar(&o.term, "term", false, "Print the frame as colored columns.")
}

func (o *frameOutput) print(frame stockboard.Frame) error {
	switch {
	case o.json:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(frame)
	case o.term:
		fmt.Print(renderer.RenderTerm(&frame))
	default:
		printMarkdown(renderer.RenderFrame(&frame))
	}
	return nil
}

// refreshWidget refreshes widget id and prints its frame.
func refreshWidget(ctx context.Context, id int, trigger stockboard.Trigger, out *frameOutput) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	frame, err := a.board.Refresh(ctx, id, trigger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error refreshing widget %d: %v\n", id, err)
		return subcommands.ExitFailure
	}
	if err := out.print(frame); err != nil {
		fmt.Fprintf(os.Stderr, "Error printing widget %d: %v\n", id, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type showCmd struct {
	id  int
	out frameOutput
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "refresh a widget and display its rows" }
func (*showCmd) Usage() string {
	return `sboard show [-w <id>] [-json|-term]

  Fetches the quotes of the widget's symbols and displays the rows of its
  current view. The view itself is not rotated, see 'next'.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	widgetFlag(f, &c.id)
	c.out.SetFlags(f)
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return refreshWidget(ctx, c.id, stockboard.RegularRefresh, &c.out)
}

type nextCmd struct {
	id  int
	out frameOutput
}

func (*nextCmd) Name() string     { return "next" }
func (*nextCmd) Synopsis() string { return "switch a widget to its next view" }
func (*nextCmd) Usage() string {
	return `sboard next [-w <id>] [-json|-term]

  Rotates the widget to its next enabled view, as a tap on the widget does,
  and displays it. Views that need a holding are skipped while none of the
  widget's symbols has one.
`
}

func (c *nextCmd) SetFlags(f *flag.FlagSet) {
	widgetFlag(f, &c.id)
	c.out.SetFlags(f)
}

func (c *nextCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return refreshWidget(ctx, c.id, stockboard.ViewChangeRequest, &c.out)
}
