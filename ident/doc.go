// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ident generates the short shareable codes used for session IDs
// and participant user IDs: 8 characters from A-Z0-9, produced with
// crypto/rand. Codes are case-insensitive on input and canonicalized to
// uppercase via Normalize.
package ident
