// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Session status constants
const (
	StatusActive   = "active"
	StatusRevealed = "revealed"
	StatusEnded    = "ended"
)

// FibonacciScores is the fixed estimation scale. A vote outside this set
// is never accepted and never persisted.
var FibonacciScores = []int{1, 2, 3, 5, 8, 13, 21}

// ValidScore reports whether score is a member of the Fibonacci scale.
func ValidScore(score int) bool {
	for _, s := range FibonacciScores {
		if score == s {
			return true
		}
	}
	return false
}

// MaxDisplayNameLen caps participant display names, counted in runes so
// multibyte names are not penalized.
const MaxDisplayNameLen = 50

// Request types

type CreateSessionRequest struct {
	TicketName   string `json:"ticketName"`
	TicketNumber string `json:"ticketNumber"`
}

type JoinSessionRequest struct {
	SessionID   string `json:"sessionId"`
	DisplayName string `json:"displayName"`
}

type VoteRequest struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Score     int    `json:"score"`
}

type RevealRequest struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

type EndSessionRequest struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

// Response types

type CreateSessionResponse struct {
	SessionID    string    `json:"sessionId"`
	TicketName   string    `json:"ticketName,omitempty"`
	TicketNumber string    `json:"ticketNumber,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	ShareLink    string    `json:"shareLink"`
}

type SessionResponse struct {
	SessionID    string            `json:"sessionId"`
	TicketName   string            `json:"ticketName,omitempty"`
	TicketNumber string            `json:"ticketNumber,omitempty"`
	Status       string            `json:"status"`
	Participants []ParticipantView `json:"participants"`
	CreatedBy    string            `json:"createdBy"`
}

// RevealedSessionResponse is the GET projection once votes are public.
type RevealedSessionResponse struct {
	SessionID    string                    `json:"sessionId"`
	TicketName   string                    `json:"ticketName,omitempty"`
	TicketNumber string                    `json:"ticketNumber,omitempty"`
	Status       string                    `json:"status"`
	Participants []RevealedParticipantView `json:"participants"`
	CreatedBy    string                    `json:"createdBy"`
}

type JoinSessionResponse struct {
	SessionID    string            `json:"sessionId"`
	TicketName   string            `json:"ticketName,omitempty"`
	TicketNumber string            `json:"ticketNumber,omitempty"`
	Status       string            `json:"status"`
	UserID       string            `json:"userId"`
	Participants []ParticipantView `json:"participants"`
	IsCreator    bool              `json:"isCreator"`
}

type VoteResponse struct {
	SessionID    string            `json:"sessionId"`
	Status       string            `json:"status"`
	Participants []ParticipantView `json:"participants"`
	VoteRecorded bool              `json:"voteRecorded"`
}

// RevealedVoteResponse is the vote acknowledgement when a concurrent
// reveal landed between the vote commit and the reload: the vote was
// recorded while the session was still active, but the session the
// caller sees back is already revealed, so votes are public.
type RevealedVoteResponse struct {
	SessionID    string                    `json:"sessionId"`
	Status       string                    `json:"status"`
	Participants []RevealedParticipantView `json:"participants"`
	VoteRecorded bool                      `json:"voteRecorded"`
}

type RevealResponse struct {
	SessionID    string                    `json:"sessionId"`
	TicketName   string                    `json:"ticketName,omitempty"`
	TicketNumber string                    `json:"ticketNumber,omitempty"`
	Status       string                    `json:"status"`
	Participants []RevealedParticipantView `json:"participants"`
	Results      Results                   `json:"results"`
}

type EndSessionResponse struct {
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
}

// Results holds the aggregate statistics returned on reveal. Consensus is
// null when no single value strictly dominates.
type Results struct {
	TotalVotes        int         `json:"totalVotes"`
	TotalParticipants int         `json:"totalParticipants"`
	Average           float64     `json:"average"`
	Consensus         *int        `json:"consensus"`
	VoteDistribution  map[int]int `json:"voteDistribution"`
	Revealed          bool        `json:"revealed"`
}

// Domain types

type Session struct {
	SessionID    string        `json:"sessionId"`
	TicketName   string        `json:"ticketName,omitempty"`
	TicketNumber string        `json:"ticketNumber,omitempty"`
	Status       string        `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	CreatedBy    string        `json:"createdBy"`
	Participants []Participant `json:"participants"` // join order
}

type Participant struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Vote        *int      `json:"vote,omitempty"` // nil until the participant votes
	HasVoted    bool      `json:"hasVoted"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// ParticipantView is the public projection of a participant while votes
// are hidden (active or ended sessions). It carries no vote field at all,
// so a hidden projection structurally cannot leak a vote value.
type ParticipantView struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	HasVoted    bool      `json:"hasVoted"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// RevealedParticipantView is the projection once the session is revealed.
// Vote is always serialized, null for participants who never voted.
type RevealedParticipantView struct {
	ParticipantView
	Vote *int `json:"vote"`
}

// HiddenViews projects participants without vote values.
func HiddenViews(participants []Participant) []ParticipantView {
	views := make([]ParticipantView, 0, len(participants))
	for _, p := range participants {
		views = append(views, ParticipantView{
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			HasVoted:    p.HasVoted,
			JoinedAt:    p.JoinedAt,
		})
	}
	return views
}

// RevealedViews projects participants with vote values included.
func RevealedViews(participants []Participant) []RevealedParticipantView {
	views := make([]RevealedParticipantView, 0, len(participants))
	for _, p := range participants {
		views = append(views, RevealedParticipantView{
			ParticipantView: ParticipantView{
				UserID:      p.UserID,
				DisplayName: p.DisplayName,
				HasVoted:    p.HasVoted,
				JoinedAt:    p.JoinedAt,
			},
			Vote: p.Vote,
		})
	}
	return views
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
