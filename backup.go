package stockboard

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Blobs stores named backups. Get returns an error matching fs.ErrNotExist
// when the blob is missing.
type Blobs interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
	List(ctx context.Context, prefix string) ([]string, error)
}

const (
	portfolioBackups = "portfoliobackups/"
	backupExt        = ".txt"
)

func portfolioBackupName(name string) string { return portfolioBackups + name + backupExt }

// BackupPortfolio saves the portfolio and copies the persisted blob to a
// backup called name.
func (s *Store) BackupPortfolio(ctx context.Context, blobs Blobs, name string) error {
	if name == "" {
		return errors.New("missing backup name")
	}
	if err := s.Save(); err != nil {
		return fmt.Errorf("cannot save portfolio: %w", err)
	}
	raw := s.Raw()
	if err := blobs.Put(ctx, portfolioBackupName(name), []byte(raw)); err != nil {
		return fmt.Errorf("cannot write portfolio backup %q: %w", name, err)
	}
	s.log.Info().Str("backup", name).Msg("portfolio backed up")
	return nil
}

// RestorePortfolio merges the backup called name into the portfolio and saves
// it. It returns false if there is no such backup or it cannot be read.
func (s *Store) RestorePortfolio(ctx context.Context, blobs Blobs, name string) (bool, error) {
	raw, err := blobs.Get(ctx, portfolioBackupName(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cannot read portfolio backup %q: %w", name, err)
	}
	if !s.MergeFromBackup(string(raw)) {
		s.log.Warn().Str("backup", name).Msg("unreadable portfolio backup")
		return false, nil
	}
	if err := s.Save(); err != nil {
		return true, fmt.Errorf("cannot save restored portfolio: %w", err)
	}
	s.log.Info().Str("backup", name).Msg("portfolio restored")
	return true, nil
}

// PortfolioBackups lists the names of the portfolio backups.
func PortfolioBackups(ctx context.Context, blobs Blobs) ([]string, error) {
	names, err := blobs.List(ctx, portfolioBackups)
	if err != nil {
		return nil, err
	}
	res := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimPrefix(n, portfolioBackups)
		if strings.HasSuffix(n, backupExt) {
			res = append(res, strings.TrimSuffix(n, backupExt))
		}
	}
	return res, nil
}
