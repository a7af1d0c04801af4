package results

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// Store persists records in a SQLite database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open creates or opens the database at dbPath. The special path ":memory:"
// opens a private in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
			return nil, fmt.Errorf("results: create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("results: open database: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err = db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("results: set pragma %s: %w", pragma, err)
		}
	}

	s := &Store{db: db, dbPath: dbPath}
	if err = s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("results: initialize schema: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.dbPath }

func (s *Store) initSchema() error {
	var version int
	if err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version); err == nil {
		if version > schemaVersion {
			return fmt.Errorf("database schema version %d is newer than %d", version, schemaVersion)
		}
		return nil
	}

	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);
	INSERT INTO schema_version (version) VALUES (1);

	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		recipe TEXT NOT NULL,
		run INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		weight REAL NOT NULL,
		elapsed_ns INTEGER NOT NULL,
		tour TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	CREATE INDEX IF NOT EXISTS idx_runs_recipe ON runs(recipe);
	`)

	return err
}

// Write implements Sink.
func (s *Store) Write(ctx context.Context, r Record) error {
	if s.db == nil {
		return ErrClosed
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (recipe, run, seed, weight, elapsed_ns, tour) VALUES (?, ?, ?, ?, ?, ?)",
		r.Recipe, r.Run, r.Seed, r.Weight, int64(r.Elapsed), formatTour(r.Tour))
	if err != nil {
		return fmt.Errorf("results: insert run: %w", err)
	}

	return nil
}

// Records returns the stored runs of recipe in insertion order. An empty
// recipe selects every run.
func (s *Store) Records(ctx context.Context, recipe string) ([]Record, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT recipe, run, seed, weight, elapsed_ns, tour FROM runs
		WHERE ? = '' OR recipe = ?
		ORDER BY id`, recipe, recipe)
	if err != nil {
		return nil, fmt.Errorf("results: query runs: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r       Record
			elapsed int64
			tour    string
		)
		if err = rows.Scan(&r.Recipe, &r.Run, &r.Seed, &r.Weight, &elapsed, &tour); err != nil {
			return nil, fmt.Errorf("results: scan run: %w", err)
		}
		r.Elapsed = time.Duration(elapsed)
		if r.Tour, err = parseTour(tour); err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil

	return err
}
