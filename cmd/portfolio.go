package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockboard/renderer"
	"github.com/google/subcommands"
)

// setCmd holds the flags for the 'set' subcommand. Only the flags given on
// the command line change the record.
type setCmd struct {
	buy, date, quantity, high, low, name, symbol2 optionalString
}

// optionalString is a string flag that remembers whether it was set.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }
func (o *optionalString) Set(v string) error {
	o.value, o.set = v, true
	return nil
}

func (o *optionalString) apply(field *string) {
	if o.set {
		*field = o.value
	}
}

func (*setCmd) Name() string     { return "set" }
func (*setCmd) Synopsis() string { return "edit the portfolio record of a symbol" }
func (*setCmd) Usage() string {
	return `sboard set [-buy <price>] [-date <YYYY-MM-DD>] [-qty <quantity>]
           [-high <limit>] [-low <limit>] [-name <label>] [-symbol2 <label>] <symbol>

  Edits the record of a symbol: its holding, alert limits and display
  name. Only the given fields change; an empty value clears the field.
`
}

func (c *setCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.buy, "buy", "Buy price per share.")
	f.Var(&c.date, "date", "Buy date.")
	f.Var(&c.quantity, "qty", "Number of shares.")
	f.Var(&c.high, "high", "Alert when the price reaches this limit.")
	f.Var(&c.low, "low", "Alert when the price falls to this limit.")
	f.Var(&c.name, "name", "Custom label shown on wide widgets.")
	f.Var(&c.symbol2, "symbol2", "Secondary label shown when no custom label is set.")
}

func (c *setCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: set expects exactly one symbol")
		return subcommands.ExitUsageError
	}
	symbol := f.Arg(0)

	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	r := a.board.Store.Record(symbol)
	c.buy.apply(&r.BuyPrice)
	c.date.apply(&r.BuyDate)
	c.quantity.apply(&r.Quantity)
	c.high.apply(&r.HighLimit)
	c.low.apply(&r.LowLimit)
	c.name.apply(&r.CustomName)
	c.symbol2.apply(&r.SecondarySymbol)
	if err := r.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	a.board.Store.Update(symbol, r)
	if err := a.board.Store.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type portfolioCmd struct{}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display the portfolio with latest quotes" }
func (*portfolioCmd) Usage() string {
	return `sboard portfolio

  Displays every symbol of the portfolio, its holding and its value at the
  latest quote.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	holdings, err := a.board.Summary(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderSummary(holdings))
	return subcommands.ExitSuccess
}

type pruneCmd struct{}

func (*pruneCmd) Name() string     { return "prune" }
func (*pruneCmd) Synopsis() string { return "drop records no widget uses" }
func (*pruneCmd) Usage() string {
	return `sboard prune

  Removes the portfolio records of symbols that no widget shows anymore,
  unless they hold shares.
`
}

func (c *pruneCmd) SetFlags(f *flag.FlagSet) {}

func (c *pruneCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	n, err := a.board.Prune()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed %d records.\n", n)
	return subcommands.ExitSuccess
}

var _ flag.Value = (*optionalString)(nil)
