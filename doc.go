// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the PointDeck API server.

PointDeck runs anonymous planning poker rounds: one participant creates a
session for a ticket, others join with a display name, everyone casts a
Fibonacci-scale estimate, and the creator reveals all votes together with
aggregate statistics.

# Starting the Server

The server runs on a local SQLite file by default:

	go run main.go

Or against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run main.go

# Configuration

Optional settings (flags or environment, .env files are loaded):

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string, or sqlite path (default: pointdeck.db)
  - BASE_URL (-base-url): Public base URL used in session share links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (sessions, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - store: Session state machine and persistence
  - results: Vote statistics
  - ident: Share code and user ID generation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
