package prefs

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `CREATE TABLE IF NOT EXISTS preferences (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// sqliteBackend stores one row per key.
type sqliteBackend struct {
	db  *sql.DB
	log zerolog.Logger
}

// OpenSQLite opens (and creates if needed) a store in the SQLite database at path.
func OpenSQLite(path string, log zerolog.Logger) (*Prefs, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create preferences table: %w", err)
	}

	b := &sqliteBackend{db: db, log: log.With().Str("component", "prefs").Str("database", path).Logger()}
	values, err := b.load()
	if err != nil {
		db.Close()
		return nil, err
	}
	return newPrefs(values, b, b.log), nil
}

func (b *sqliteBackend) load() (map[string]string, error) {
	rows, err := b.db.Query("SELECT key, value FROM preferences")
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			b.log.Warn().Err(err).Msg("Failed to scan preference row")
			continue
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating preferences: %w", err)
	}
	return result, nil
}

// commit applies all changes in one transaction.
func (b *sqliteBackend) commit(puts map[string]string, removes []string) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Format(time.RFC3339)
	for key, value := range puts {
		_, err := tx.Exec(`
			INSERT INTO preferences (key, value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at
		`, key, value, now)
		if err != nil {
			return fmt.Errorf("failed to set preference %s: %w", key, err)
		}
	}
	for _, key := range removes {
		if _, err := tx.Exec("DELETE FROM preferences WHERE key = ?", key); err != nil {
			return fmt.Errorf("failed to delete preference %s: %w", key, err)
		}
	}
	return tx.Commit()
}

func (b *sqliteBackend) Close() error { return b.db.Close() }
