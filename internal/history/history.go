// Package history records every executed command in SQLite.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tk-425/caller-cli/internal/db"
)

const timeLayout = time.RFC3339Nano

// Run is one recorded execution.
type Run struct {
	ID          int64
	Name        string
	Source      string
	CommandLine string
	Launched    bool
	ExitCode    int
	Reason      string
	StartedAt   time.Time
	Duration    time.Duration
}

// Success reports whether the run exited with code zero.
func (r Run) Success() bool { return r.Launched && r.ExitCode == 0 }

// Repository stores runs.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// NewRepository creates a Repository using conn.
func NewRepository(conn *sql.DB) *Repository {
	return &Repository{db: conn, now: time.Now}
}

// Open opens (and migrates) the database at path.
func Open(path string) (*Repository, error) {
	conn, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return NewRepository(conn), nil
}

// Close closes the underlying DB connection used by the Repository.
func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Record inserts run and returns its ID. A zero StartedAt means now.
func (r *Repository) Record(ctx context.Context, run Run) (int64, error) {
	if run.StartedAt.IsZero() {
		run.StartedAt = r.now()
	}
	if run.Source == "" {
		run.Source = "run"
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (name, source, command_line, launched, exit_code, reason, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Name, run.Source, run.CommandLine, run.Launched, run.ExitCode, run.Reason,
		run.StartedAt.UTC().Format(timeLayout), run.Duration.Milliseconds())
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// List returns up to limit runs, newest first. An empty name lists all
// runs; limit <= 0 means no limit.
func (r *Repository) List(ctx context.Context, name string, limit int) ([]Run, error) {
	q := `SELECT id, name, source, command_line, launched, exit_code, reason, started_at, duration_ms FROM runs`
	var args []any
	if name != "" {
		q += ` WHERE name = ?`
		args = append(args, name)
	}
	q += ` ORDER BY id DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// LastRun returns the most recent run of name. ok is false when name has
// never run.
func (r *Repository) LastRun(ctx context.Context, name string) (run Run, ok bool, err error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, source, command_line, launched, exit_code, reason, started_at, duration_ms
		 FROM runs WHERE name = ? ORDER BY id DESC LIMIT 1`, name)
	run, err = scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, err
	}
	return run, true, nil
}

// Clear deletes every recorded run and returns how many were removed.
func (r *Repository) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		run        Run
		startedAt  string
		durationMS int64
	)
	if err := s.Scan(&run.ID, &run.Name, &run.Source, &run.CommandLine, &run.Launched,
		&run.ExitCode, &run.Reason, &startedAt, &durationMS); err != nil {
		return Run{}, err
	}
	t, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse started_at %q: %w", startedAt, err)
	}
	run.StartedAt = t
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return run, nil
}
