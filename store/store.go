// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pointdeck/pointdeck/ident"
	"github.com/pointdeck/pointdeck/models"
)

// Negative outcomes. These are expected "could not do it" results, not
// storage faults; callers branch on them with errors.Is. Anything else
// returned by a Store method is a real storage error.
var (
	ErrNotFound       = errors.New("session not found")
	ErrEnded          = errors.New("session has ended")
	ErrNotActive      = errors.New("session is not accepting votes")
	ErrNotParticipant = errors.New("user is not a participant in this session")
	ErrNotCreator     = errors.New("user is not the session creator")
)

// Store is the sole authority on session state transitions. All reads and
// writes go through the underlying *sql.DB; nothing is cached, so every
// Get reflects the latest committed state.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create persists a new active session under a fresh share code.
// The creator identifier is a placeholder until the first participant
// joins; Join reassigns it exactly once.
func (s *Store) Create(ctx context.Context, ticketName, ticketNumber string) (models.Session, error) {
	sessionID, err := ident.NewCode()
	if err != nil {
		return models.Session{}, err
	}
	createdBy, err := ident.NewCode()
	if err != nil {
		return models.Session{}, err
	}

	createdAt := time.Now()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (session_id, ticket_name, ticket_number, status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, sessionID, ticketName, ticketNumber, models.StatusActive, toMillis(createdAt), createdBy)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to insert session: %w", err)
	}

	return models.Session{
		SessionID:    sessionID,
		TicketName:   ticketName,
		TicketNumber: ticketNumber,
		Status:       models.StatusActive,
		CreatedAt:    createdAt,
		CreatedBy:    createdBy,
		Participants: []models.Participant{},
	}, nil
}

// Get loads a session and its full participant set, in join order.
// Lookup is case-insensitive; codes are canonicalized to uppercase.
func (s *Store) Get(ctx context.Context, sessionID string) (models.Session, error) {
	sessionID = ident.Normalize(sessionID)

	var session models.Session
	var createdAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT session_id, ticket_name, ticket_number, status, created_at, created_by
		FROM sessions
		WHERE session_id = $1
	`, sessionID).Scan(
		&session.SessionID, &session.TicketName, &session.TicketNumber,
		&session.Status, &createdAt, &session.CreatedBy,
	)
	if err == sql.ErrNoRows {
		return models.Session{}, ErrNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to query session: %w", err)
	}
	session.CreatedAt = fromMillis(createdAt)

	session.Participants, err = s.participants(ctx, sessionID)
	if err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (s *Store) participants(ctx context.Context, sessionID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, display_name, vote, has_voted, joined_at
		FROM participants
		WHERE session_id = $1
		ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		var vote sql.NullInt64
		var hasVoted int64
		var joinedAt int64
		if err := rows.Scan(&p.UserID, &p.DisplayName, &vote, &hasVoted, &joinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if vote.Valid {
			v := int(vote.Int64)
			p.Vote = &v
		}
		p.HasVoted = hasVoted != 0
		p.JoinedAt = fromMillis(joinedAt)
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read participants: %w", err)
	}
	return participants, nil
}

// Join adds a participant to a session and returns the refreshed session
// plus the new user ID. The first joiner claims the creator slot via the
// creator_claimed flag on the sessions row; the claim and the insert
// commit as one transaction, so two racing first joins produce exactly
// one creator on either backend.
// Returns ErrNotFound for unknown codes and ErrEnded for ended sessions.
func (s *Store) Join(ctx context.Context, sessionID, displayName string) (models.Session, string, error) {
	sessionID = ident.Normalize(sessionID)
	displayName = strings.TrimSpace(displayName)

	userID, err := ident.NewCode()
	if err != nil {
		return models.Session{}, "", err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Session{}, "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM sessions WHERE session_id = $1
	`, sessionID).Scan(&status)
	if err == sql.ErrNoRows {
		return models.Session{}, "", ErrNotFound
	}
	if err != nil {
		return models.Session{}, "", fmt.Errorf("failed to query session: %w", err)
	}
	if status == models.StatusEnded {
		return models.Session{}, "", ErrEnded
	}

	// Claim creator if and only if nobody has claimed it yet. The guard
	// is a flag on the sessions row itself, not an existence check on
	// participants: when two first joins race, the second claim blocks
	// on the row lock and then re-evaluates the flag against the row
	// version the first commit produced, so exactly one claim wins.
	_, err = tx.ExecContext(ctx, `
		UPDATE sessions
		SET created_by = $1, creator_claimed = 1
		WHERE session_id = $2
		  AND creator_claimed = 0
	`, userID, sessionID)
	if err != nil {
		return models.Session{}, "", fmt.Errorf("failed to claim session creator: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO participants (session_id, user_id, display_name, has_voted, joined_at)
		VALUES ($1, $2, $3, 0, $4)
	`, sessionID, userID, displayName, toMillis(time.Now()))
	if err != nil {
		return models.Session{}, "", fmt.Errorf("failed to insert participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Session{}, "", fmt.Errorf("failed to commit join: %w", err)
	}

	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return models.Session{}, "", err
	}
	return session, userID, nil
}

// Vote records score for a participant, replacing any prior vote. Last
// committed write wins; no history is kept. Set membership of score is
// the caller's precondition, backstopped by the table CHECK constraint.
// Returns ErrNotFound, ErrNotActive, or ErrNotParticipant as negative
// outcomes.
func (s *Store) Vote(ctx context.Context, sessionID, userID string, score int) error {
	sessionID = ident.Normalize(sessionID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM sessions WHERE session_id = $1
	`, sessionID).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query session: %w", err)
	}
	if status != models.StatusActive {
		return ErrNotActive
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE participants
		SET vote = $1, has_voted = 1
		WHERE session_id = $2 AND user_id = $3
	`, score, sessionID, userID)
	if err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read vote result: %w", err)
	}
	if affected == 0 {
		return ErrNotParticipant
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

// Reveal transitions an active session to revealed. Creator only.
// Revealing an already revealed session is a harmless no-op so retries
// are safe; an ended session stays ended and returns ErrEnded.
func (s *Store) Reveal(ctx context.Context, sessionID, userID string) error {
	return s.transition(ctx, ident.Normalize(sessionID), userID, models.StatusRevealed)
}

// End transitions a session to ended from any non-terminal state. Creator
// only. Ending an already ended session is a no-op.
func (s *Store) End(ctx context.Context, sessionID, userID string) error {
	return s.transition(ctx, ident.Normalize(sessionID), userID, models.StatusEnded)
}

func (s *Store) transition(ctx context.Context, sessionID, userID, target string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status, createdBy string
	err = tx.QueryRowContext(ctx, `
		SELECT status, created_by FROM sessions WHERE session_id = $1
	`, sessionID).Scan(&status, &createdBy)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query session: %w", err)
	}
	if createdBy != userID {
		return ErrNotCreator
	}
	if status == target {
		// Retry of a transition that already happened.
		return nil
	}
	if status == models.StatusEnded {
		return ErrEnded
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE sessions SET status = $1 WHERE session_id = $2
	`, target, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update session status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit status change: %w", err)
	}
	return nil
}

// All returns every stored session with participants loaded.
func (s *Store) All(ctx context.Context) ([]models.Session, error) {
	return s.list(ctx, "")
}

// ByStatus returns sessions matching the given status.
func (s *Store) ByStatus(ctx context.Context, status string) ([]models.Session, error) {
	return s.list(ctx, status)
}

func (s *Store) list(ctx context.Context, status string) ([]models.Session, error) {
	query := `SELECT session_id FROM sessions ORDER BY created_at`
	args := []any{}
	if status != "" {
		query = `SELECT session_id FROM sessions WHERE status = $1 ORDER BY created_at`
		args = append(args, status)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}

	sessions := []models.Session{}
	for _, id := range ids {
		session, err := s.Get(ctx, id)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
