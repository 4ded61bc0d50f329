// Package history keeps a local ledger of generation runs in SQLite so past
// runs can be inspected after the fact.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/domainforge/domainforge/internal/debug"
)

// RunRecord is one generation run as stored in the ledger.
type RunRecord struct {
	RunID        string
	DomainName   string
	StartedAt    time.Time
	FinishedAt   time.Time
	FilesWritten int
	BytesWritten int
	FailureCount int
	Cancelled    bool
	OutputRoot   string
}

// Ledger manages the run history table.
type Ledger struct {
	db *sql.DB
}

// Open opens (or creates) the ledger database at path. The caller must have
// registered the sqlite3 driver.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run ledger: %w", err)
	}
	l := &Ledger{db: db}
	if err := l.initTable(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

// Close releases the underlying database handle.
func (l *Ledger) Close() error { return l.db.Close() }

func (l *Ledger) initTable(ctx context.Context) error {
	const create = `
CREATE TABLE IF NOT EXISTS generation_runs (
    run_id        TEXT PRIMARY KEY,
    domain_name   TEXT NOT NULL,
    started_at    DATETIME NOT NULL,
    finished_at   DATETIME NOT NULL,
    files_written INTEGER NOT NULL,
    bytes_written INTEGER NOT NULL,
    failure_count INTEGER NOT NULL,
    cancelled     INTEGER NOT NULL DEFAULT 0,
    output_root   TEXT NOT NULL
)`
	if _, err := l.db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("failed to create run ledger table: %w", err)
	}
	return nil
}

// Record appends one run to the ledger.
func (l *Ledger) Record(ctx context.Context, rec *RunRecord) error {
	const insert = `
INSERT INTO generation_runs
    (run_id, domain_name, started_at, finished_at, files_written, bytes_written, failure_count, cancelled, output_root)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := l.db.ExecContext(ctx, insert,
		rec.RunID,
		rec.DomainName,
		rec.StartedAt,
		rec.FinishedAt,
		rec.FilesWritten,
		rec.BytesWritten,
		rec.FailureCount,
		rec.Cancelled,
		rec.OutputRoot,
	)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", rec.RunID, err)
	}
	debug.Debug("Run recorded in ledger", "run", rec.RunID, "domain", rec.DomainName)
	return nil
}

// List returns the most recent runs, newest first.
func (l *Ledger) List(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
SELECT run_id, domain_name, started_at, finished_at, files_written, bytes_written, failure_count, cancelled, output_root
FROM generation_runs
ORDER BY started_at DESC
LIMIT ?`
	rows, err := l.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query run ledger: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.DomainName,
			&rec.StartedAt,
			&rec.FinishedAt,
			&rec.FilesWritten,
			&rec.BytesWritten,
			&rec.FailureCount,
			&rec.Cancelled,
			&rec.OutputRoot,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
