// Package store keeps the refresh history in SQLite. Only run metadata is
// stored; snapshot contents stay in memory.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-sheet-dashboard/internal/model"
)

// ErrRunNotFound is returned when a run ID is unknown.
var ErrRunNotFound = errors.New("refresh run not found")

const schema = `
CREATE TABLE IF NOT EXISTS refresh_runs (
	id TEXT PRIMARY KEY,
	sequence INTEGER NOT NULL,
	run_trigger TEXT NOT NULL,
	status TEXT NOT NULL,
	started_at DATETIME NOT NULL,
	finished_at DATETIME,
	rows_read INTEGER NOT NULL DEFAULT 0,
	records INTEGER NOT NULL DEFAULT 0,
	dropped INTEGER NOT NULL DEFAULT 0,
	error_message TEXT
);
CREATE INDEX IF NOT EXISTS idx_refresh_runs_started ON refresh_runs (started_at DESC);
`

// Store is the refresh history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at dbPath. Use ":memory:" for tests.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite serializes writers; one connection also keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// StartRun stores a new refresh run
func (s *Store) StartRun(ctx context.Context, run model.RefreshRun) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO refresh_runs (id, sequence, run_trigger, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Sequence, run.Trigger, run.Status, run.StartedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

// FinishRun records the outcome of a run. Runs that were never started are inserted.
func (s *Store) FinishRun(ctx context.Context, run model.RefreshRun) error {
	var finished any
	if run.FinishedAt != nil {
		finished = run.FinishedAt.UTC()
	}
	var errMsg any
	if run.Error != "" {
		errMsg = run.Error
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_runs (id, sequence, run_trigger, status, started_at, finished_at, rows_read, records, dropped, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			finished_at = excluded.finished_at,
			rows_read = excluded.rows_read,
			records = excluded.records,
			dropped = excluded.dropped,
			error_message = excluded.error_message`,
		run.ID, run.Sequence, run.Trigger, run.Status, run.StartedAt.UTC(), finished,
		run.RowsRead, run.Records, run.Dropped, errMsg)
	if err != nil {
		return fmt.Errorf("failed to update run %s: %w", run.ID, err)
	}
	return nil
}

// ListRuns returns the most recent runs first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]model.RefreshRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sequence, run_trigger, status, started_at, finished_at, rows_read, records, dropped, error_message
		FROM refresh_runs ORDER BY started_at DESC, sequence DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []model.RefreshRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun fetches one run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (model.RefreshRun, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, sequence, run_trigger, status, started_at, finished_at, rows_read, records, dropped, error_message
		FROM refresh_runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RefreshRun{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// PruneRuns deletes all but the keep most recent runs.
func (s *Store) PruneRuns(ctx context.Context, keep int) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM refresh_runs WHERE id NOT IN (
			SELECT id FROM refresh_runs ORDER BY started_at DESC, sequence DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (model.RefreshRun, error) {
	var (
		run      model.RefreshRun
		finished sql.NullTime
		errMsg   sql.NullString
		started  time.Time
	)
	if err := sc.Scan(&run.ID, &run.Sequence, &run.Trigger, &run.Status, &started, &finished,
		&run.RowsRead, &run.Records, &run.Dropped, &errMsg); err != nil {
		return model.RefreshRun{}, err
	}
	run.StartedAt = started
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	run.Error = errMsg.String
	return run, nil
}
