// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists one record per tailoring run in SQLite so past
// runs can be listed and exported.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/resume-tailor/pkg/types"
)

// DefaultLimit bounds List when the caller passes a non-positive limit.
const DefaultLimit = 50

// Store manages the run ledger database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the ledger at cfg.DBPath and creates the schema
// if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("history database path not set")
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source_name TEXT NOT NULL,
			output_name TEXT,
			strategy TEXT,
			provider TEXT,
			status TEXT NOT NULL,
			error_kind TEXT,
			error TEXT,
			started_at TEXT NOT NULL,
			finished_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts run, replacing an earlier record with the same id.
func (s *Store) Record(ctx context.Context, run types.Run) error {
	if run.ID == "" {
		return fmt.Errorf("recording run: empty id")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs
			(id, source_name, output_name, strategy, provider, status, error_kind, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.SourceName, run.OutputName, string(run.Strategy), string(run.Provider),
		string(run.Status), run.ErrorKind, run.Error,
		formatTime(run.StartedAt), formatTime(run.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", run.ID, err)
	}
	return nil
}

// Filter narrows List and Export.
type Filter struct {
	// Status keeps only runs with this outcome when set.
	Status types.RunStatus

	// Limit caps the number of runs returned (default DefaultLimit).
	Limit int
}

// List returns runs newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]types.Run, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := `SELECT id, source_name, output_name, strategy, provider, status,
		error_kind, error, started_at, finished_at FROM runs`
	var args []any
	if f.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(f.Status))
	}
	query += ` ORDER BY started_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		var r types.Run
		var status string
		var outputName, strategy, provider, errorKind, errText, started, finished sql.NullString
		if err := rows.Scan(&r.ID, &r.SourceName, &outputName, &strategy, &provider,
			&status, &errorKind, &errText, &started, &finished); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.OutputName = outputName.String
		r.Strategy = types.RenderStrategy(strategy.String)
		r.Provider = types.Provider(provider.String)
		r.Status = types.RunStatus(status)
		r.ErrorKind = errorKind.String
		r.Error = errText.String
		r.StartedAt = parseTime(started.String)
		r.FinishedAt = parseTime(finished.String)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// timeLayout is fixed width so stored timestamps sort as strings.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
