// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: Connection string, or sqlite path (default: pointdeck.db)
  - BaseURL: Public base URL used in share links (default: localhost)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_TYPE → -t
	DATABASE_URL  → -d
	BASE_URL      → -base-url

CLI flags take precedence over environment variables. main loads .env
files (godotenv) before parsing, so local development needs no exports.

# Validation

ParseFlags returns an error for an unknown database type and for a
postgres configuration without a connection string; sqlite falls back to
a local file.
*/
package cliparse
