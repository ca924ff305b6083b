// Package blob stores named backups in a directory or an S3 bucket.
//
// Names are slash separated paths like "portfoliobackups/monday.txt". A
// missing blob is reported with an error matching fs.ErrNotExist.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir stores blobs as files under a root directory.
type Dir string

func (d Dir) file(name string) (string, error) {
	clean := path.Clean("/" + name)
	if clean == "/" || strings.HasSuffix(name, "/") {
		return "", fmt.Errorf("invalid blob name %q", name)
	}
	return filepath.Join(string(d), filepath.FromSlash(clean[1:])), nil
}

// Get reads blob name.
func (d Dir) Get(_ context.Context, name string) ([]byte, error) {
	file, err := d.file(name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(file)
}

// Put writes blob name, creating its directories.
func (d Dir) Put(_ context.Context, name string, data []byte) error {
	file, err := d.file(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}
	return os.WriteFile(file, data, 0o644)
}

// List returns the names starting with prefix, in lexical order.
func (d Dir) List(_ context.Context, prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(string(d), func(p string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(string(d), p)
		if err != nil {
			return err
		}
		if name := filepath.ToSlash(rel); strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return names, err
}
