package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nutrivoice/nutrivoice/internal/pipeline"
)

// Journal is a local SQLite log of pipeline runs: one row per run, success
// or failure, with the model that answered and the latency. It backs the
// "what happened to my last capture" question without touching the primary
// database.
type Journal struct {
	db     *sql.DB
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	purpose    TEXT NOT NULL,
	model_id   TEXT NOT NULL DEFAULT '',
	outcome    TEXT NOT NULL,
	latency_ms INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Open opens (or creates) the journal database at path and ensures the
// schema exists.
func Open(path string, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	// modernc's driver is not safe for concurrent writers over one file.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	logger.Info("journal.open", "path", path)
	return &Journal{db: db, logger: logger}, nil
}

// RecordRun implements pipeline.RunRecorder.
func (j *Journal) RecordRun(ctx context.Context, run pipeline.RunLog) error {
	created := run.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (id, purpose, model_id, outcome, latency_ms, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Purpose, run.ModelID, run.Outcome, run.LatencyMS, created,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit rows, newest first.
func (j *Journal) RecentRuns(ctx context.Context, limit int) ([]pipeline.RunLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, purpose, model_id, outcome, latency_ms, created_at FROM runs ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []pipeline.RunLog
	for rows.Next() {
		var r pipeline.RunLog
		if err := rows.Scan(&r.ID, &r.Purpose, &r.ModelID, &r.Outcome, &r.LatencyMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (j *Journal) Close() error {
	return j.db.Close()
}
