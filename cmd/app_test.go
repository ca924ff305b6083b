package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/stockboard"
	"github.com/etnz/stockboard/blob"
	"github.com/etnz/stockboard/config"
	"github.com/etnz/stockboard/eodhd"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Commands {
		assert.False(t, seen[c.Name()], "duplicate command %s", c.Name())
		seen[c.Name()] = true
		_, ok := groups[c.Name()]
		assert.True(t, ok, "command %s has no group", c.Name())
		assert.NotEmpty(t, c.Synopsis())

		// every command accepts its own flags
		c.SetFlags(flag.NewFlagSet(c.Name(), flag.PanicOnError))
	}
}

func TestOpenApp(t *testing.T) {
	dir := t.TempDir()
	quotes := filepath.Join(dir, "quotes.json")
	require.NoError(t, os.WriteFile(quotes, []byte(`[{"symbol":"AAPL","price":"150.00","change":"3.00","percent":"2.0%"}]`), 0o600))
	t.Setenv(config.EnvDataDir, dir)
	t.Setenv(config.EnvStorage, config.StorageJSON)
	t.Setenv(config.EnvQuotesFile, quotes)
	t.Setenv(config.EnvLogLevel, "error")

	a, err := openApp()
	require.NoError(t, err)
	w, err := a.board.Widgets.Create(stockboard.Size1x4)
	require.NoError(t, err)
	require.NoError(t, w.SetSymbols([]string{"AAPL"}))
	require.NoError(t, a.board.Widgets.Save(w))
	require.NoError(t, a.Close())

	// reopened from the JSON file
	a, err = openApp()
	require.NoError(t, err)
	defer a.Close()
	frame, err := a.board.Refresh(context.Background(), w.ID, stockboard.RegularRefresh)
	require.NoError(t, err)
	require.Len(t, frame.Rows, 1)
	assert.Equal(t, "150.00", frame.Rows[0].Price.Text)

	blobs, err := a.blobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, blob.Dir(filepath.Join(dir, "backups")), blobs)
}

func TestOpenAppErrors(t *testing.T) {
	t.Setenv(config.EnvDataDir, t.TempDir())
	t.Setenv(config.EnvStorage, "mongo")
	_, err := openApp()
	assert.Error(t, err)

	t.Setenv(config.EnvStorage, config.StorageMemory)
	t.Setenv(config.EnvQuotesFile, filepath.Join(t.TempDir(), "missing.json"))
	_, err = openApp()
	assert.Error(t, err)
}

func TestQuoteSource(t *testing.T) {
	cfg := &config.Config{DataDir: t.TempDir(), CacheSeconds: 60}
	src, err := quoteSource(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &eodhd.Client{}, src)
}

func TestOptionalString(t *testing.T) {
	var c setCmd
	f := flag.NewFlagSet("set", flag.ContinueOnError)
	c.SetFlags(f)
	require.NoError(t, f.Parse([]string{"-buy", "100", "-high", "", "AAPL"}))

	r := stockboard.Record{BuyPrice: "90", HighLimit: "200", LowLimit: "50"}
	c.buy.apply(&r.BuyPrice)
	c.high.apply(&r.HighLimit)
	c.low.apply(&r.LowLimit)
	assert.Equal(t, "100", r.BuyPrice)
	assert.Empty(t, r.HighLimit, "an empty value clears the field")
	assert.Equal(t, "50", r.LowLimit, "absent flags keep the field")
	assert.Equal(t, []string{"AAPL"}, f.Args())
}
