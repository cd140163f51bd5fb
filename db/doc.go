// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db creates the database schema.

Two tables: sessions (keyed by the uppercase share code) and participants
(keyed by session code + user ID, with an autoincrement row id that
preserves join order). Deleting a session cascades to its participants.

The DDL exists in a sqlite and a postgres variant because the dialects
disagree on autoincrement columns; everything else, including the CHECK
constraints on status and vote values, is identical. Timestamps are unix
milliseconds in BIGINT columns so both backends store the same thing.
*/
package db
