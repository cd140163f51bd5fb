// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// driver is "sqlite" or "postgres"; the two dialects disagree on
// autoincrement columns, so each gets its own DDL.
func CreateSchema(db *sql.DB, driver string) error {
	var schema string
	switch driver {
	case "sqlite":
		schema = sqliteSchema
	case "postgres":
		schema = postgresSchema
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are stored as unix milliseconds so both backends share the
// same column type and the store does its own time conversion.
//
// participants.id exists purely to preserve join order; (session_id,
// user_id) is the logical key.
//
// sessions.creator_claimed guards the one-time creator handoff to the
// first joiner. The claim updates the sessions row itself, so under
// READ COMMITTED a blocked concurrent claim re-evaluates the flag
// against the committed row version and loses; an existence check on
// the participants table would be rechecked against a stale snapshot
// and both claims could pass.

const sqliteSchema = `
-- Sessions
CREATE TABLE IF NOT EXISTS sessions (
    session_id TEXT PRIMARY KEY,
    ticket_name TEXT NOT NULL DEFAULT '',
    ticket_number TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'revealed', 'ended')),
    created_at BIGINT NOT NULL,
    created_by TEXT NOT NULL,
    creator_claimed INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status);

-- Participants
CREATE TABLE IF NOT EXISTS participants (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL REFERENCES sessions(session_id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    display_name TEXT NOT NULL,
    vote INTEGER CHECK (vote IN (1, 2, 3, 5, 8, 13, 21)),
    has_voted INTEGER NOT NULL DEFAULT 0,
    joined_at BIGINT NOT NULL,
    UNIQUE (session_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_participants_session_id ON participants(session_id);
`

const postgresSchema = `
-- Sessions
CREATE TABLE IF NOT EXISTS sessions (
    session_id TEXT PRIMARY KEY,
    ticket_name TEXT NOT NULL DEFAULT '',
    ticket_number TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'revealed', 'ended')),
    created_at BIGINT NOT NULL,
    created_by TEXT NOT NULL,
    creator_claimed INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status);

-- Participants
CREATE TABLE IF NOT EXISTS participants (
    id BIGSERIAL PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES sessions(session_id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    display_name TEXT NOT NULL,
    vote INTEGER CHECK (vote IN (1, 2, 3, 5, 8, 13, 21)),
    has_voted INTEGER NOT NULL DEFAULT 0,
    joined_at BIGINT NOT NULL,
    UNIQUE (session_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_participants_session_id ON participants(session_id);
`
