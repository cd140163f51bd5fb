// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the PointDeck API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - SessionHandler: Session creation, retrieval, operational listing
  - VotingHandler: Joining and vote casting
  - ResultsHandler: Reveal and end transitions plus result assembly

Handlers are created via constructor functions that accept *store.Store
and Config:

	sessionHandler := handlers.NewSessionHandler(s, cfg)

# Session Lifecycle

Sessions progress through three states: active → revealed → ended

	POST /api/sessions        → CreateSession (returns share link)
	GET  /api/sessions/{id}   → GetSession (votes hidden until revealed)
	POST /api/sessions/join   → JoinSession (first joiner becomes creator)
	POST /api/sessions/vote   → Vote (active sessions only)
	POST /api/sessions/reveal → RevealVotes (creator only, computes results)
	POST /api/sessions/end    → EndSession (creator only, terminal)

Creator-gated operations authorize by the userId handed out at join time;
there is no authentication beyond possession of a session code and that
identifier.

# Vote Visibility

Participant projections never include vote values while a session is
active or ended. Once revealed, every participant entry carries a vote
field, null for participants who never voted.
*/
package handlers
