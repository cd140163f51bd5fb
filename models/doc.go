// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Session: one estimation round, identified by a short shareable code
  - Participant: a joined person with an optional recorded vote
  - Results: aggregate statistics attached to a reveal response

# Projections

Participants have two public projections. ParticipantView (active/ended
sessions) has no vote field at all; RevealedParticipantView always has
one, null when the participant never voted. Handlers pick the projection
from the session status, so a hidden response cannot leak votes by
construction.

# Constants

Status values:

	StatusActive   = "active"
	StatusRevealed = "revealed"
	StatusEnded    = "ended"

The estimation scale is the fixed Fibonacci set {1, 2, 3, 5, 8, 13, 21},
exposed as FibonacciScores and checked with ValidScore.
*/
package models
