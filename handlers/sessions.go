// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pointdeck/pointdeck/cliparse"
	"github.com/pointdeck/pointdeck/middleware"
	"github.com/pointdeck/pointdeck/models"
	"github.com/pointdeck/pointdeck/store"
)

type SessionHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewSessionHandler(s *store.Store, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{store: s, cfg: cfg}
}

// CreateSession handles POST /api/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	session, err := h.store.Create(r.Context(), req.TicketName, req.TicketNumber)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("session created", "session_id", session.SessionID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID:    session.SessionID,
		TicketName:   session.TicketName,
		TicketNumber: session.TicketNumber,
		Status:       session.Status,
		CreatedAt:    session.CreatedAt,
		ShareLink:    h.cfg.BaseURL + "/session/" + session.SessionID,
	})
}

// GetSession handles GET /api/sessions/{id}
// Vote values appear in the participant list only once the session is
// revealed; active and ended sessions never expose them.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	session, err := h.store.Get(r.Context(), sessionID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if session.Status == models.StatusRevealed {
		middleware.JSONResponse(w, http.StatusOK, models.RevealedSessionResponse{
			SessionID:    session.SessionID,
			TicketName:   session.TicketName,
			TicketNumber: session.TicketNumber,
			Status:       session.Status,
			Participants: models.RevealedViews(session.Participants),
			CreatedBy:    session.CreatedBy,
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		SessionID:    session.SessionID,
		TicketName:   session.TicketName,
		TicketNumber: session.TicketNumber,
		Status:       session.Status,
		Participants: models.HiddenViews(session.Participants),
		CreatedBy:    session.CreatedBy,
	})
}

// ListSessions handles GET /api/admin/sessions
// Operational listing; an optional ?status= query filters by lifecycle
// state. Votes stay hidden unless a session is revealed.
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != models.StatusActive && status != models.StatusRevealed && status != models.StatusEnded {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be active, revealed, or ended")
		return
	}

	var sessions []models.Session
	var err error
	if status == "" {
		sessions, err = h.store.All(r.Context())
	} else {
		sessions, err = h.store.ByStatus(r.Context(), status)
	}
	if err != nil {
		slog.Error("failed to list sessions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	views := make([]any, 0, len(sessions))
	for _, session := range sessions {
		if session.Status == models.StatusRevealed {
			views = append(views, models.RevealedSessionResponse{
				SessionID:    session.SessionID,
				TicketName:   session.TicketName,
				TicketNumber: session.TicketNumber,
				Status:       session.Status,
				Participants: models.RevealedViews(session.Participants),
				CreatedBy:    session.CreatedBy,
			})
			continue
		}
		views = append(views, models.SessionResponse{
			SessionID:    session.SessionID,
			TicketName:   session.TicketName,
			TicketNumber: session.TicketNumber,
			Status:       session.Status,
			Participants: models.HiddenViews(session.Participants),
			CreatedBy:    session.CreatedBy,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"sessions": views,
		"count":    len(views),
	})
}
