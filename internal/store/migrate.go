package store

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sequences (
		name TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS speech_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id TEXT NOT NULL UNIQUE,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL DEFAULT '',
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		voice TEXT NOT NULL DEFAULT '',
		purpose TEXT NOT NULL DEFAULT '',
		characters INTEGER NOT NULL DEFAULT 0,
		audio_bytes INTEGER NOT NULL DEFAULT 0,
		format TEXT NOT NULL DEFAULT '',
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS speech_events_sequence ON speech_events (sequence)`,
	`CREATE TABLE IF NOT EXISTS audio_cache (
		key TEXT PRIMARY KEY,
		format TEXT NOT NULL,
		data BLOB NOT NULL,
		created_at INTEGER NOT NULL,
		last_used INTEGER NOT NULL
	)`,
}

// migrate creates every table that does not exist yet. Tables are only
// ever added, so re-running is a no-op.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
