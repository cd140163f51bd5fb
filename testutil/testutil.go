// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/pointdeck/pointdeck/cliparse"
	"github.com/pointdeck/pointdeck/db"
	"github.com/pointdeck/pointdeck/models"
	"github.com/pointdeck/pointdeck/store"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. The single pooled connection keeps the in-memory database alive
// and serializes concurrent writers, mirroring the production setup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore creates a store backed by a fresh in-memory database.
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(SetupTestDB(t))
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		BaseURL:      "http://localhost:3318",
	}
}

// CreateTestSession creates a session and returns it.
func CreateTestSession(t *testing.T, s *store.Store, ticketName, ticketNumber string) models.Session {
	t.Helper()

	session, err := s.Create(context.Background(), ticketName, ticketNumber)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
	return session
}

// JoinTestSession joins a participant and returns the new user ID.
func JoinTestSession(t *testing.T, s *store.Store, sessionID, displayName string) string {
	t.Helper()

	_, userID, err := s.Join(context.Background(), sessionID, displayName)
	if err != nil {
		t.Fatalf("Failed to join test session: %v", err)
	}
	return userID
}

// CastTestVote records a vote and fails the test on any error.
func CastTestVote(t *testing.T, s *store.Store, sessionID, userID string, score int) {
	t.Helper()

	if err := s.Vote(context.Background(), sessionID, userID, score); err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
