// Package store keeps a small sqlite journal of extraction jobs: one row per
// document per stage. It exists for auditing re-runs of the batch tools and
// is entirely optional; a nil *Journal disables it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS extract_jobs (
	id          TEXT PRIMARY KEY,
	source_path TEXT NOT NULL,
	stage       TEXT NOT NULL,
	status      TEXT NOT NULL,
	error       TEXT,
	output_path TEXT,
	started_at  TEXT NOT NULL,
	finished_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_extract_jobs_source ON extract_jobs (source_path);
`

type Journal struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (creating if needed) the journal database at path.
// Use ":memory:" for a throwaway journal.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// A single connection keeps ":memory:" journals coherent and sidesteps
	// sqlite write contention.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return &Journal{db: db, log: logger}, nil
}

func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	return j.db.Close()
}
