package db

import (
	"database/sql"
	"fmt"
	"strings"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS work_items (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		kind       TEXT NOT NULL
		           CHECK(kind IN ('task','bug','feature','milestone')),
		assignees  TEXT NOT NULL DEFAULT '',
		labels     TEXT NOT NULL DEFAULT '',
		start_date TEXT,
		due_date   TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_start ON work_items(start_date)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
