// Package cmd implements the CLI application to manage stock widgets.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/stockboard"
	"github.com/etnz/stockboard/blob"
	"github.com/etnz/stockboard/config"
	"github.com/etnz/stockboard/eodhd"
	"github.com/etnz/stockboard/prefs"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Commands lists every subcommand in the order of the help screen.
var Commands = []subcommands.Command{
	&showCmd{}, &nextCmd{}, &watchCmd{},
	&createCmd{}, &widgetsCmd{}, &removeCmd{}, &symbolsCmd{}, &searchCmd{}, &configureCmd{},
	&setCmd{}, &portfolioCmd{}, &pruneCmd{},
	&backupCmd{}, &restoreCmd{}, &backupsCmd{}, &exportCmd{}, &importCmd{},
	&publishCmd{}, &serveCmd{}, &topicCmd{},
}

// groups of the help screen.
var groups = map[string]string{
	"show": "widgets", "next": "widgets", "watch": "widgets",
	"create": "config", "widgets": "config", "remove": "config", "symbols": "config", "search": "config", "configure": "config",
	"set": "portfolio", "portfolio": "portfolio", "prune": "portfolio",
	"backup": "backups", "restore": "backups", "backups": "backups", "export": "backups", "import": "backups",
	"publish": "", "serve": "", "topic": "",
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, groups[cmd.Name()])
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
// Empty flags fall back to the STOCKBOARD_* environment, see the config package.

var dataDir = flag.String("data-dir", "", "Folder of the widget and portfolio preferences (default $"+config.EnvDataDir+")")
var storageKind = flag.String("storage", "", "Preference backend: json, sqlite or memory (default $"+config.EnvStorage+")")
var quotesFile = flag.String("quotes-file", "", "JSON file of static quotes used instead of the EODHD API (default $"+config.EnvQuotesFile+")")
var Verbose = flag.Bool("v", false, "log debug messages")

// settings returns the configuration, flags overriding the environment.
func settings() (*config.Config, error) {
	if *dataDir != "" {
		os.Setenv(config.EnvDataDir, *dataDir)
	}
	if *storageKind != "" {
		os.Setenv(config.EnvStorage, *storageKind)
	}
	if *quotesFile != "" {
		os.Setenv(config.EnvQuotesFile, *quotesFile)
	}
	if *Verbose {
		os.Setenv(config.EnvLogLevel, "debug")
	}
	return config.Load()
}

// app is everything a command needs to work on the widgets.
type app struct {
	cfg   *config.Config
	prefs *prefs.Prefs
	board *stockboard.Board
	log   zerolog.Logger
}

// openApp opens the configured preferences and quote source.
func openApp() (*app, error) {
	cfg, err := settings()
	if err != nil {
		return nil, err
	}
	log := config.NewLogger(cfg.LogLevel, cfg.LogPretty)

	var p *prefs.Prefs
	switch cfg.Storage {
	case config.StorageMemory:
		p = prefs.NewMemory()
	case config.StorageSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("cannot create data folder: %w", err)
		}
		p, err = prefs.OpenSQLite(cfg.StoragePath(), log)
	default:
		p, err = prefs.OpenFile(cfg.StoragePath(), log)
	}
	if err != nil {
		return nil, err
	}

	quotes, err := quoteSource(cfg, log)
	if err != nil {
		p.Close()
		return nil, err
	}

	store := stockboard.NewStore(p, stockboard.NewCache(), log)
	widgets := stockboard.NewWidgets(p, log)
	return &app{
		cfg:   cfg,
		prefs: p,
		board: stockboard.NewBoard(store, widgets, quotes, nil, log),
		log:   log,
	}, nil
}

func (a *app) Close() error { return a.prefs.Close() }

// quoteSource is the static quotes file when configured, the EODHD API otherwise.
func quoteSource(cfg *config.Config, log zerolog.Logger) (stockboard.QuoteSource, error) {
	if cfg.QuotesFile != "" {
		f, err := os.Open(cfg.QuotesFile)
		if err != nil {
			return nil, fmt.Errorf("cannot open quotes file: %w", err)
		}
		defer f.Close()
		return stockboard.DecodeQuotes(f)
	}
	if cfg.APIKey == "" {
		log.Warn().Msg("no EODHD API key, quotes will show no data; set " + config.EnvAPIKey)
	}
	return eodhd.New(cfg.APIKey,
		eodhd.WithCache(filepath.Join(cfg.DataDir, "cache"), time.Duration(cfg.CacheSeconds)*time.Second),
		eodhd.WithLogger(log),
	), nil
}

// blobs returns where backups go: the S3 bucket when configured, the backup folder otherwise.
func (a *app) blobs(ctx context.Context) (stockboard.Blobs, error) {
	if a.cfg.S3Bucket == "" {
		return blob.Dir(a.cfg.BackupDir), nil
	}
	return blob.NewS3(ctx, blob.S3Config{
		Bucket:    a.cfg.S3Bucket,
		Prefix:    a.cfg.S3Prefix,
		Region:    a.cfg.S3Region,
		Endpoint:  a.cfg.S3Endpoint,
		AccessKey: a.cfg.S3AccessKey,
		SecretKey: a.cfg.S3SecretKey,
	})
}

// printMarkdown renders md for the terminal, or prints it as is when stdout is not one.
func printMarkdown(md string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// widgetFlag registers the common -w flag.
func widgetFlag(f *flag.FlagSet, id *int) {
	f.IntVar(id, "w", 1, "Widget id.")
}
