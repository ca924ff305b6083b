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

type backupCmd struct {
	id int
}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "save the portfolio or a widget under a name" }
func (*backupCmd) Usage() string {
	return `sboard backup [-w <id>] <name>

  Without -w, saves the portfolio to the backup folder, or to the S3 bucket
  when $STOCKBOARD_S3_BUCKET is set. With -w, saves a snapshot of the
  widget configuration, which any widget can later restore.
`
}

func (c *backupCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.id, "w", 0, "Widget to back up instead of the portfolio.")
}

func (c *backupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: backup expects exactly one name")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if c.id > 0 {
		if err := a.board.Widgets.BackupWidget(c.id, name); err != nil {
			fmt.Fprintf(os.Stderr, "Error backing up widget %d: %v\n", c.id, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	blobs, err := a.blobs(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := a.board.Store.BackupPortfolio(ctx, blobs, name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type restoreCmd struct {
	id int
}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "restore a portfolio or widget backup" }
func (*restoreCmd) Usage() string {
	return `sboard restore [-w <id>] <name>

  Without -w, merges the portfolio backup into the portfolio: records of the
  backup replace the current ones, other records are kept. With -w, applies
  a widget snapshot to the widget, which keeps its own size.
`
}

func (c *restoreCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.id, "w", 0, "Widget to restore instead of the portfolio.")
}

func (c *restoreCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: restore expects exactly one name")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	var ok bool
	if c.id > 0 {
		ok, err = a.board.Widgets.RestoreWidget(c.id, name)
	} else {
		var blobs stockboard.Blobs
		if blobs, err = a.blobs(ctx); err == nil {
			ok, err = a.board.Store.RestorePortfolio(ctx, blobs, name)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no usable backup %q\n", name)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type backupsCmd struct{}

func (*backupsCmd) Name() string     { return "backups" }
func (*backupsCmd) Synopsis() string { return "list the backups" }
func (*backupsCmd) Usage() string {
	return `sboard backups

  Lists the portfolio backups and the widget snapshots.
`
}

func (c *backupsCmd) SetFlags(f *flag.FlagSet) {}

func (c *backupsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	blobs, err := a.blobs(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	portfolios, err := stockboard.PortfolioBackups(ctx, blobs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing portfolio backups: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, n := range portfolios {
		fmt.Printf("%-10s %s\n", "portfolio", n)
	}
	for _, n := range a.board.Widgets.WidgetBackupNames() {
		fmt.Printf("%-10s %s\n", "widget", n)
	}
	return subcommands.ExitSuccess
}

type exportCmd struct {
	id     int
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the plain text backup of a widget" }
func (*exportCmd) Usage() string {
	return `sboard export [-w <id>] [-o <file>]

  Writes the widget size and symbols as "Widgetsize: <n>" and
  "Stock<N>: <symbol>" lines, the format 'import' reads back.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	widgetFlag(f, &c.id)
	f.StringVar(&c.output, "o", "", "Output file. Defaults to stdout.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	var out io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		out = file
	}
	if err := stockboard.ExportText(out, w); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting widget %d: %v\n", c.id, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type importCmd struct {
	id int
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "read a plain text widget backup" }
func (*importCmd) Usage() string {
	return `sboard import [-w <id>] [<file>]

  Replaces the widget symbols with the ones of a plain text backup, read
  from stdin when no file is given. The backup must be of the widget size.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) { widgetFlag(f, &c.id) }

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var r io.Reader = os.Stdin
	if f.NArg() > 0 {
		file, err := os.Open(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}
	text, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading backup: %v\n", err)
		return subcommands.ExitFailure
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.board.Widgets.ImportText(c.id, string(text)); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing into widget %d: %v\n", c.id, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
