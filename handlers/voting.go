// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/pointdeck/pointdeck/cliparse"
	"github.com/pointdeck/pointdeck/middleware"
	"github.com/pointdeck/pointdeck/models"
	"github.com/pointdeck/pointdeck/store"
)

type VotingHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewVotingHandler(s *store.Store, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{store: s, cfg: cfg}
}

// JoinSession handles POST /api/sessions/join
func (h *VotingHandler) JoinSession(w http.ResponseWriter, r *http.Request) {
	var req models.JoinSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.SessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "displayName is required")
		return
	}
	if utf8.RuneCountInString(displayName) > models.MaxDisplayNameLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "displayName must be at most 50 characters")
		return
	}

	session, userID, err := h.store.Join(r.Context(), req.SessionID, displayName)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrEnded) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found or has ended")
		return
	}
	if err != nil {
		slog.Error("failed to join session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to join session")
		return
	}

	slog.Info("participant joined", "session_id", session.SessionID, "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.JoinSessionResponse{
		SessionID:    session.SessionID,
		TicketName:   session.TicketName,
		TicketNumber: session.TicketNumber,
		Status:       session.Status,
		UserID:       userID,
		Participants: models.HiddenViews(session.Participants),
		IsCreator:    session.CreatedBy == userID,
	})
}

// Vote handles POST /api/sessions/vote
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.SessionID == "" || req.UserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sessionId and userId are required")
		return
	}

	// Set membership is validated here; the store treats it as a
	// precondition.
	if !models.ValidScore(req.Score) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid score. Must be one of: 1, 2, 3, 5, 8, 13, 21")
		return
	}

	err := h.store.Vote(r.Context(), req.SessionID, req.UserID, req.Score)
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrNotParticipant):
		middleware.ErrorResponse(w, http.StatusNotFound, "Session or participant not found")
		return
	case errors.Is(err, store.ErrNotActive):
		middleware.ErrorResponse(w, http.StatusConflict, "Session is not accepting votes")
		return
	case err != nil:
		slog.Error("failed to record vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	session, err := h.store.Get(r.Context(), req.SessionID)
	if err != nil {
		slog.Error("failed to reload session after vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("vote recorded", "session_id", session.SessionID, "user_id", req.UserID)

	writeVoteResponse(w, session)
}

// writeVoteResponse acknowledges a recorded vote with the current state
// of the session. The reload happens outside the vote transaction, so a
// concurrent reveal may already have landed; a revealed session must
// come back with votes visible, never as a revealed status over hidden
// views.
func writeVoteResponse(w http.ResponseWriter, session models.Session) {
	if session.Status == models.StatusRevealed {
		middleware.JSONResponse(w, http.StatusOK, models.RevealedVoteResponse{
			SessionID:    session.SessionID,
			Status:       session.Status,
			Participants: models.RevealedViews(session.Participants),
			VoteRecorded: true,
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		SessionID:    session.SessionID,
		Status:       session.Status,
		Participants: models.HiddenViews(session.Participants),
		VoteRecorded: true,
	})
}
