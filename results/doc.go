// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package results computes aggregate statistics over revealed votes:
// arithmetic mean, consensus (the unique most frequent value, if any),
// and the vote distribution. All functions are pure; an empty vote set
// yields zero values, never an error.
package results
