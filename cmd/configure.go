package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/stockboard"
	"github.com/google/subcommands"
)

type configureCmd struct {
	id   int
	file string
}

func (*configureCmd) Name() string     { return "configure" }
func (*configureCmd) Synopsis() string { return "apply a YAML profile to a widget" }
func (*configureCmd) Usage() string {
	return `sboard configure [-w <id>] [-f <profile.yaml>]

  Applies a YAML profile to a widget: layout, enabled views, symbols and
  portfolio records. Keys absent from the profile are left unchanged.
  The profile is read from stdin when -f is omitted. See 'sboard topic profile'.
`
}

func (c *configureCmd) SetFlags(f *flag.FlagSet) {
	widgetFlag(f, &c.id)
	f.StringVar(&c.file, "f", "", "Profile file.")
}

func (c *configureCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var r io.Reader = os.Stdin
	if c.file != "" {
		file, err := os.Open(c.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening profile: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}
	profile, err := stockboard.DecodeProfile(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

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
	if err := profile.Apply(&w, a.board.Store); err != nil {
		fmt.Fprintf(os.Stderr, "Error applying profile: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := a.board.Widgets.Save(w); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving widget %d: %v\n", c.id, err)
		return subcommands.ExitFailure
	}
	if err := a.board.Store.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
