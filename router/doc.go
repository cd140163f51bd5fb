// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the PointDeck API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(sessionStore, cfg)

# Endpoints

Health:

	GET /health

Session lifecycle:

	POST /api/sessions      - Create session
	GET  /api/sessions/{id} - Session state (votes hidden until revealed)

Participation:

	POST /api/sessions/join - Join with a display name
	POST /api/sessions/vote - Cast or replace an estimate

Creator transitions:

	POST /api/sessions/reveal - Reveal votes and results
	POST /api/sessions/end    - End the session

Operational:

	GET /api/admin/sessions - List sessions, optional ?status= filter

# Handler Initialization

The router creates handler instances with dependency injection:

	sessionHandler := handlers.NewSessionHandler(s, cfg)
	votingHandler := handlers.NewVotingHandler(s, cfg)
	resultsHandler := handlers.NewResultsHandler(s, cfg)

All handlers receive the session store and configuration.
*/
package router
