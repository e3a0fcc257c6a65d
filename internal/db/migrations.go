package db

import (
	"database/sql"
	_ "embed"
	"fmt"

	// _ import for sqlite driver registration
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ApplyMigrations applies the embedded schema SQL to the database and
// adds columns introduced after the first release.
func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	if err := ensureRunColumns(db); err != nil {
		return err
	}
	return nil
}

// ensureRunColumns checks for optional columns and adds them when missing.
func ensureRunColumns(db *sql.DB) error {
	rows, err := db.Query("PRAGMA table_info(runs)")
	if err != nil {
		return err
	}
	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dflt interface{}
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			_ = rows.Close()
			return err
		}
		cols[name] = true
	}
	if err := rows.Close(); err != nil {
		return err
	}

	if !cols["source"] {
		if _, err := db.Exec("ALTER TABLE runs ADD COLUMN source TEXT NOT NULL DEFAULT 'run'"); err != nil {
			return fmt.Errorf("add runs.source: %w", err)
		}
	}
	if !cols["duration_ms"] {
		if _, err := db.Exec("ALTER TABLE runs ADD COLUMN duration_ms INTEGER NOT NULL DEFAULT 0"); err != nil {
			return fmt.Errorf("add runs.duration_ms: %w", err)
		}
	}
	return nil
}
