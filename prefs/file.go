package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// fileBackend rewrites a whole JSON object file on every commit.
type fileBackend struct {
	path   string
	values map[string]string
}

// OpenFile opens a store persisted as a JSON object in path. A missing file is
// an empty store, it is created on the first Apply.
func OpenFile(path string, log zerolog.Logger) (*Prefs, error) {
	values := make(map[string]string)
	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("cannot read preferences %q: %w", path, err)
	default:
		if err := json.Unmarshal(content, &values); err != nil {
			return nil, fmt.Errorf("cannot decode preferences %q: %w", path, err)
		}
	}
	b := &fileBackend{path: path, values: maps.Clone(values)}
	return newPrefs(values, b, log.With().Str("component", "prefs").Str("file", path).Logger()), nil
}

func (b *fileBackend) commit(puts map[string]string, removes []string) error {
	next := maps.Clone(b.values)
	maps.Copy(next, puts)
	for _, k := range removes {
		delete(next, k)
	}
	content, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("cannot create preferences folder: %w", err)
	}
	// write aside then rename, a crash never leaves a truncated file.
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("cannot write preferences %q: %w", b.path, err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("cannot replace preferences %q: %w", b.path, err)
	}
	b.values = next
	return nil
}
