// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/pointdeck/pointdeck/cliparse"
	"github.com/pointdeck/pointdeck/middleware"
	"github.com/pointdeck/pointdeck/models"
	"github.com/pointdeck/pointdeck/results"
	"github.com/pointdeck/pointdeck/store"
)

type ResultsHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewResultsHandler(s *store.Store, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{store: s, cfg: cfg}
}

// RevealVotes handles POST /api/sessions/reveal
// Creator only. The response carries the full participant list with vote
// values plus aggregate results.
func (h *ResultsHandler) RevealVotes(w http.ResponseWriter, r *http.Request) {
	var req models.RevealRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.SessionID == "" || req.UserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sessionId and userId are required")
		return
	}

	err := h.store.Reveal(r.Context(), req.SessionID, req.UserID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	case errors.Is(err, store.ErrNotCreator):
		middleware.ErrorResponse(w, http.StatusForbidden, "Failed to reveal votes. You must be the session creator.")
		return
	case errors.Is(err, store.ErrEnded):
		middleware.ErrorResponse(w, http.StatusConflict, "Session has ended")
		return
	case err != nil:
		slog.Error("failed to reveal votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reveal votes")
		return
	}

	session, err := h.store.Get(r.Context(), req.SessionID)
	if err != nil {
		slog.Error("failed to reload session after reveal", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("votes revealed", "session_id", session.SessionID)

	middleware.JSONResponse(w, http.StatusOK, models.RevealResponse{
		SessionID:    session.SessionID,
		TicketName:   session.TicketName,
		TicketNumber: session.TicketNumber,
		Status:       session.Status,
		Participants: models.RevealedViews(session.Participants),
		Results:      summarize(session.Participants),
	})
}

// EndSession handles POST /api/sessions/end
// Creator only; valid from active or revealed. Ended sessions reject all
// further joins and votes.
func (h *ResultsHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	var req models.EndSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.SessionID == "" || req.UserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sessionId and userId are required")
		return
	}

	err := h.store.End(r.Context(), req.SessionID, req.UserID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	case errors.Is(err, store.ErrNotCreator):
		middleware.ErrorResponse(w, http.StatusForbidden, "Failed to end session. You must be the session creator.")
		return
	case err != nil:
		slog.Error("failed to end session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to end session")
		return
	}

	slog.Info("session ended", "session_id", req.SessionID)

	middleware.JSONResponse(w, http.StatusOK, models.EndSessionResponse{
		SessionID: req.SessionID,
		Status:    models.StatusEnded,
	})
}

// summarize assembles the aggregate statistics for a revealed session.
// Average is rounded to one decimal place for display.
func summarize(participants []models.Participant) models.Results {
	votes := []int{}
	for _, p := range participants {
		if p.HasVoted && p.Vote != nil {
			votes = append(votes, *p.Vote)
		}
	}

	var consensus *int
	if value, ok := results.Consensus(votes); ok {
		consensus = &value
	}

	return models.Results{
		TotalVotes:        len(votes),
		TotalParticipants: len(participants),
		Average:           math.Round(results.Average(votes)*10) / 10,
		Consensus:         consensus,
		VoteDistribution:  results.Distribution(votes),
		Revealed:          true,
	}
}
