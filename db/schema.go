// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The SQL is kept portable between PostgreSQL and SQLite: integer 0/1
// columns instead of booleans, and timestamps always written by the
// application rather than database defaults.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Scopes (the venue-side threads drawings are bound to)
CREATE TABLE IF NOT EXISTS scope (
    id TEXT PRIMARY KEY,
    frozen INTEGER NOT NULL DEFAULT 0,
    archived INTEGER NOT NULL DEFAULT 0,
    tag TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

-- Entries (qualifying actions within a scope; position 1 is the opener)
CREATE TABLE IF NOT EXISTS entry (
    id TEXT PRIMARY KEY,
    scope_id TEXT NOT NULL REFERENCES scope(id) ON DELETE CASCADE,
    author_id TEXT NOT NULL,
    author_name TEXT NOT NULL,
    author_groups TEXT NOT NULL DEFAULT '',
    position INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL,
    hidden INTEGER NOT NULL DEFAULT 0,
    author_removed INTEGER NOT NULL DEFAULT 0,
    UNIQUE (scope_id, position)
);

CREATE INDEX IF NOT EXISTS idx_entry_scope_id ON entry(scope_id);

-- Drawings
CREATE TABLE IF NOT EXISTS drawing (
    id TEXT PRIMARY KEY,
    scope_id TEXT NOT NULL REFERENCES scope(id),
    organizer_id TEXT NOT NULL,
    organizer_name TEXT NOT NULL,
    name TEXT NOT NULL,
    prize_description TEXT NOT NULL,
    prize_image_url TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    draw_time TIMESTAMP NOT NULL,
    winner_count INTEGER NOT NULL,
    specific_positions TEXT NOT NULL DEFAULT '',
    min_participants INTEGER NOT NULL,
    backup_policy TEXT NOT NULL CHECK (backup_policy IN ('proceed-anyway', 'cancel')),
    selection_rule TEXT NOT NULL CHECK (selection_rule IN ('random', 'fixed-position')),
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'finished', 'cancelled')),
    locked INTEGER NOT NULL DEFAULT 0,
    locked_at TIMESTAMP,
    winners_data TEXT,
    cancellation_reason TEXT,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_drawing_status ON drawing(status);
CREATE INDEX IF NOT EXISTS idx_drawing_scope_id ON drawing(scope_id);
CREATE INDEX IF NOT EXISTS idx_drawing_draw_time ON drawing(status, draw_time);

-- Participants (recreated in bulk on every draw attempt)
CREATE TABLE IF NOT EXISTS participant (
    id TEXT PRIMARY KEY,
    drawing_id TEXT NOT NULL REFERENCES drawing(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    username TEXT NOT NULL,
    entry_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    participated_at TIMESTAMP NOT NULL,
    is_winner INTEGER NOT NULL DEFAULT 0,
    UNIQUE (drawing_id, position)
);

CREATE INDEX IF NOT EXISTS idx_participant_drawing_id ON participant(drawing_id);
`
