package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/stockboard/config"
	"github.com/etnz/stockboard/eodhd"
	"github.com/google/subcommands"
)

type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "find the symbol of a security" }
func (*searchCmd) Usage() string {
	return `sboard search <name|ticker|isin>

  Searches the EODHD securities and prints their symbols, ready for
  'sboard symbols'. Needs $STOCKBOARD_EODHD_API_KEY.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: search expects a search term")
		return subcommands.ExitUsageError
	}
	cfg, err := settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if cfg.APIKey == "" {
		fmt.Fprintf(os.Stderr, "Error: search needs $%s\n", config.EnvAPIKey)
		return subcommands.ExitFailure
	}
	log := config.NewLogger(cfg.LogLevel, cfg.LogPretty)
	client := eodhd.New(cfg.APIKey,
		eodhd.WithCache(filepath.Join(cfg.DataDir, "cache"), time.Duration(cfg.CacheSeconds)*time.Second),
		eodhd.WithLogger(log))

	results, err := client.Search(ctx, strings.Join(f.Args(), " "))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(results) == 0 {
		fmt.Println("No match.")
		return subcommands.ExitSuccess
	}
	var b strings.Builder
	b.WriteString("| Symbol | Name | Type | Currency | Previous close |\n")
	b.WriteString("|:-------|:-----|:-----|:---------|---------------:|\n")
	for _, r := range results {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %.2f |\n", r.Symbol(), r.Name, r.Type, r.Currency, r.PreviousClose)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
