// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/pointdeck/pointdeck/cliparse"
	"github.com/pointdeck/pointdeck/handlers"
	"github.com/pointdeck/pointdeck/middleware"
	"github.com/pointdeck/pointdeck/store"
)

func NewRouter(s *store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(s, cfg)
	votingHandler := handlers.NewVotingHandler(s, cfg)
	resultsHandler := handlers.NewResultsHandler(s, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session lifecycle
	mux.HandleFunc("POST /api/sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /api/sessions/{id}", middleware.WithLogging(sessionHandler.GetSession))

	// Participation
	mux.HandleFunc("POST /api/sessions/join", middleware.WithLogging(votingHandler.JoinSession))
	mux.HandleFunc("POST /api/sessions/vote", middleware.WithLogging(votingHandler.Vote))

	// Creator transitions
	mux.HandleFunc("POST /api/sessions/reveal", middleware.WithLogging(resultsHandler.RevealVotes))
	mux.HandleFunc("POST /api/sessions/end", middleware.WithLogging(resultsHandler.EndSession))

	// Operational listing
	mux.HandleFunc("GET /api/admin/sessions", middleware.WithLogging(sessionHandler.ListSessions))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pointdeck API v1"))
	})

	return mux
}
