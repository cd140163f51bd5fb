// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store owns all session and participant state and is the sole
authority on the legality of each lifecycle transition.

# State Machine

Sessions move through three states:

	active → revealed → ended
	active ─────────→ ended

active is the initial state, ended is terminal. Only the session creator
may reveal or end. There is no way back from revealed to active, so
re-voting after a reveal is not supported.

# Creator Ownership

Create records a placeholder creator identifier. The first participant to
join takes ownership: the claim is a conditional UPDATE executed in the
same transaction as the participant insert, so two racing first joins
produce exactly one creator. After that the creator never changes.

# Voting

A vote is one Fibonacci value per participant, last write wins. Vote
values are stored whenever cast but only become visible to readers once
the session is revealed; the projection layer in models enforces that.

# Negative Outcomes

Expected failures (unknown code, ended session, non-creator caller,
non-participant voter) are sentinel errors - ErrNotFound, ErrEnded,
ErrNotActive, ErrNotParticipant, ErrNotCreator - checked with errors.Is.
Real storage faults are returned wrapped and must not be ignored.
*/
package store
