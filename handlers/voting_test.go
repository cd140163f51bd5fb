// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pointdeck/pointdeck/models"
	"github.com/pointdeck/pointdeck/testutil"
)

func TestJoinSession(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewVotingHandler(s, testutil.GetTestConfig())

	session := testutil.CreateTestSession(t, s, "Login page", "PROJ-7")

	req := testutil.MakeRequest("POST", "/api/sessions/join", models.JoinSessionRequest{
		SessionID:   session.SessionID,
		DisplayName: "Alice",
	}, nil)
	w := httptest.NewRecorder()

	handler.JoinSession(w, req)

	testutil.AssertStatus(t, w, 200)

	var resp models.JoinSessionResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.UserID == "" {
		t.Error("Expected a user ID")
	}
	if !resp.IsCreator {
		t.Error("First joiner should be the creator")
	}
	if len(resp.Participants) != 1 || resp.Participants[0].DisplayName != "Alice" {
		t.Errorf("Unexpected participant list: %+v", resp.Participants)
	}

	// Second joiner is not the creator
	req = testutil.MakeRequest("POST", "/api/sessions/join", models.JoinSessionRequest{
		SessionID:   session.SessionID,
		DisplayName: "Bob",
	}, nil)
	w = httptest.NewRecorder()

	handler.JoinSession(w, req)

	testutil.AssertStatus(t, w, 200)
	testutil.AssertJSON(t, w, &resp)
	if resp.IsCreator {
		t.Error("Second joiner must not be the creator")
	}
	if len(resp.Participants) != 2 {
		t.Errorf("Expected 2 participants, got %d", len(resp.Participants))
	}
}

func TestJoinSessionValidation(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewVotingHandler(s, testutil.GetTestConfig())

	session := testutil.CreateTestSession(t, s, "", "")

	tests := []struct {
		name string
		req  models.JoinSessionRequest
	}{
		{"missing session ID", models.JoinSessionRequest{DisplayName: "Alice"}},
		{"missing display name", models.JoinSessionRequest{SessionID: session.SessionID}},
		{"whitespace display name", models.JoinSessionRequest{SessionID: session.SessionID, DisplayName: "   "}},
		{"display name too long", models.JoinSessionRequest{SessionID: session.SessionID, DisplayName: strings.Repeat("x", 51)}},
		{"multibyte name too long", models.JoinSessionRequest{SessionID: session.SessionID, DisplayName: strings.Repeat("平", 51)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/sessions/join", tt.req, nil)
			w := httptest.NewRecorder()
			handler.JoinSession(w, req)
			testutil.AssertStatus(t, w, 400)
		})
	}
}

func TestJoinSessionMultibyteName(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewVotingHandler(s, testutil.GetTestConfig())

	session := testutil.CreateTestSession(t, s, "", "")

	// 20 runes, 60 bytes: the cap counts characters, not bytes
	name := strings.Repeat("平", 20)
	req := testutil.MakeRequest("POST", "/api/sessions/join", models.JoinSessionRequest{
		SessionID:   session.SessionID,
		DisplayName: name,
	}, nil)
	w := httptest.NewRecorder()

	handler.JoinSession(w, req)

	testutil.AssertStatus(t, w, 200)

	var resp models.JoinSessionResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Participants) != 1 || resp.Participants[0].DisplayName != name {
		t.Errorf("Unexpected participant list: %+v", resp.Participants)
	}
}

func TestJoinSessionNotFound(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewVotingHandler(s, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/api/sessions/join", models.JoinSessionRequest{
		SessionID:   "NOPE1234",
		DisplayName: "Alice",
	}, nil)
	w := httptest.NewRecorder()

	handler.JoinSession(w, req)

	testutil.AssertStatus(t, w, 404)
}

func TestJoinEndedSession(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewVotingHandler(s, testutil.GetTestConfig())

	session := testutil.CreateTestSession(t, s, "", "")
	creatorID := testutil.JoinTestSession(t, s, session.SessionID, "Alice")
	if err := s.End(context.Background(), session.SessionID, creatorID); err != nil {
		t.Fatalf("Failed to end session: %v", err)
	}

	req := testutil.MakeRequest("POST", "/api/sessions/join", models.JoinSessionRequest{
		SessionID:   session.SessionID,
		DisplayName: "Bob",
	}, nil)
	w := httptest.NewRecorder()

	handler.JoinSession(w, req)

	// Ended sessions are indistinguishable from missing ones
	testutil.AssertStatus(t, w, 404)
}

func TestVote(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewVotingHandler(s, testutil.GetTestConfig())

	session := testutil.CreateTestSession(t, s, "", "")
	userID := testutil.JoinTestSession(t, s, session.SessionID, "Alice")

	req := testutil.MakeRequest("POST", "/api/sessions/vote", models.VoteRequest{
		SessionID: session.SessionID,
		UserID:    userID,
		Score:     13,
	}, nil)
	w := httptest.NewRecorder()

	handler.Vote(w, req)

	testutil.AssertStatus(t, w, 200)

	var resp models.VoteResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.VoteRecorded {
		t.Error("Expected voteRecorded true")
	}
	if len(resp.Participants) != 1 || !resp.Participants[0].HasVoted {
		t.Errorf("Expected participant marked as voted: %+v", resp.Participants)
	}

	// The response body must not leak the vote value while active
	if strings.Contains(w.Body.String(), `"vote"`) {
		t.Errorf("Vote value leaked in active session response: %s", w.Body.String())
	}
}

func TestVoteInvalidScore(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewVotingHandler(s, testutil.GetTestConfig())

	session := testutil.CreateTestSession(t, s, "", "")
	userID := testutil.JoinTestSession(t, s, session.SessionID, "Alice")

	for _, score := range []int{0, 4, 6, 7, 20, -1, 100} {
		req := testutil.MakeRequest("POST", "/api/sessions/vote", models.VoteRequest{
			SessionID: session.SessionID,
			UserID:    userID,
			Score:     score,
		}, nil)
		w := httptest.NewRecorder()

		handler.Vote(w, req)

		testutil.AssertStatus(t, w, 400)
	}
}

func TestVoteNotFound(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewVotingHandler(s, testutil.GetTestConfig())

	session := testutil.CreateTestSession(t, s, "", "")
	testutil.JoinTestSession(t, s, session.SessionID, "Alice")

	// Unknown session
	req := testutil.MakeRequest("POST", "/api/sessions/vote", models.VoteRequest{
		SessionID: "NOPE1234",
		UserID:    "USER0001",
		Score:     5,
	}, nil)
	w := httptest.NewRecorder()
	handler.Vote(w, req)
	testutil.AssertStatus(t, w, 404)

	// Known session, unknown participant
	req = testutil.MakeRequest("POST", "/api/sessions/vote", models.VoteRequest{
		SessionID: session.SessionID,
		UserID:    "USER0001",
		Score:     5,
	}, nil)
	w = httptest.NewRecorder()
	handler.Vote(w, req)
	testutil.AssertStatus(t, w, 404)
}

// TestVoteResponseAfterConcurrentReveal covers the window where a
// reveal commits between the vote transaction and the acknowledgement
// reload: the response must carry the revealed status with votes
// visible, never a revealed status over hidden views.
func TestVoteResponseAfterConcurrentReveal(t *testing.T) {
	score := 5
	session := models.Session{
		SessionID: "ABCD1234",
		Status:    models.StatusRevealed,
		Participants: []models.Participant{
			{UserID: "USER0001", DisplayName: "Alice", Vote: &score, HasVoted: true},
			{UserID: "USER0002", DisplayName: "Bob"},
		},
	}

	w := httptest.NewRecorder()
	writeVoteResponse(w, session)

	testutil.AssertStatus(t, w, 200)

	var resp map[string]any
	testutil.AssertJSON(t, w, &resp)
	if resp["status"] != models.StatusRevealed {
		t.Errorf("Expected revealed status, got %v", resp["status"])
	}
	if resp["voteRecorded"] != true {
		t.Errorf("Expected voteRecorded true, got %v", resp["voteRecorded"])
	}
	participants := resp["participants"].([]any)
	voter := participants[0].(map[string]any)
	if voter["vote"] != float64(5) {
		t.Errorf("Expected visible vote 5, got %v", voter["vote"])
	}
	nonVoter := participants[1].(map[string]any)
	if vote, present := nonVoter["vote"]; !present || vote != nil {
		t.Errorf("Expected explicit null vote for non-voter, got %v (present %v)", vote, present)
	}
}

func TestVoteAfterReveal(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewVotingHandler(s, testutil.GetTestConfig())

	session := testutil.CreateTestSession(t, s, "", "")
	creatorID := testutil.JoinTestSession(t, s, session.SessionID, "Alice")
	if err := s.Reveal(context.Background(), session.SessionID, creatorID); err != nil {
		t.Fatalf("Failed to reveal: %v", err)
	}

	req := testutil.MakeRequest("POST", "/api/sessions/vote", models.VoteRequest{
		SessionID: session.SessionID,
		UserID:    creatorID,
		Score:     5,
	}, nil)
	w := httptest.NewRecorder()

	handler.Vote(w, req)

	testutil.AssertStatus(t, w, 409)
}
