package store

import (
	"context"
	"database/sql"
	"strings"
)

// schema contains the DDL for all FleetGate tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id                 TEXT PRIMARY KEY,
		user_id            INTEGER NOT NULL,
		name               TEXT NOT NULL DEFAULT '',
		email              TEXT NOT NULL,
		phone_number       TEXT NOT NULL DEFAULT '',
		avatar_url         TEXT,
		role               TEXT NOT NULL,
		profile_created_at INTEGER NOT NULL,
		access_token       TEXT NOT NULL,
		refresh_token      TEXT NOT NULL,
		expires_at         INTEGER NOT NULL,
		created_at         INTEGER NOT NULL,
		session_expires_at INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_session_expires_at ON sessions(session_expires_at)`,
}

// migrate executes all schema statements in order.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			// Include a fragment of the failing statement for diagnosis.
			frag := strings.Join(strings.Fields(stmt), " ")
			if len(frag) > 60 {
				frag = frag[:60] + "..."
			}
			return &migrationError{stmt: frag, err: err}
		}
	}
	return nil
}

type migrationError struct {
	stmt string
	err  error
}

func (e *migrationError) Error() string {
	return "migration failed at " + e.stmt + ": " + e.err.Error()
}

func (e *migrationError) Unwrap() error {
	return e.err
}
