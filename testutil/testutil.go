// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/voteapp-kr/server/auth"
	"github.com/voteapp-kr/server/cliparse"
	"github.com/voteapp-kr/server/db"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. The pool is pinned to a single connection: an in-memory
// database lives and dies with its connection, and a single connection
// also serializes concurrent test traffic the way a file database's
// write lock would.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8080,
		DatabaseURL:  "file::memory:",
		DatabaseType: "sqlite",
		JWTSecret:    "test-jwt-secret",
		TokenTTL:     time.Hour,
	}
}

// CreateTestUser inserts a user and returns its ID
func CreateTestUser(t *testing.T, conn *sql.DB, username string) string {
	t.Helper()

	userID := uuid.NewString()
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO app_user (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, username, username+"@example.com", hash, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// TokenFor issues an identity token for a user using the test config secret
func TokenFor(t *testing.T, cfg cliparse.Config, userID string) string {
	t.Helper()

	token, err := auth.NewToken(userID, []byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// CreateTestPoll inserts a poll whose timing window yields the given
// status ("upcoming", "active", or "ended") and returns its ID.
func CreateTestPoll(t *testing.T, conn *sql.DB, createdBy, status string, options ...string) string {
	t.Helper()

	if len(options) == 0 {
		options = []string{"Option A", "Option B"}
	}

	now := time.Now().UTC()
	var start, end time.Time
	switch status {
	case "upcoming":
		start, end = now.Add(time.Hour), now.Add(2*time.Hour)
	case "ended":
		start, end = now.Add(-2*time.Hour), now.Add(-time.Hour)
	default: // active
		start, end = now.Add(-time.Hour), now.Add(time.Hour)
	}

	pollID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO poll (id, title, description, is_anonymous, start_time, end_time, created_by, view_count, created_at)
		VALUES ($1, 'Test Poll', 'A test poll', $2, $3, $4, $5, 0, $6)
	`, pollID, false, start, end, createdBy, now)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	for i, label := range options {
		_, err := conn.Exec(`
			INSERT INTO option (poll_id, idx, label) VALUES ($1, $2, $3)
		`, pollID, i, label)
		if err != nil {
			t.Fatalf("Failed to create test option: %v", err)
		}
	}

	return pollID
}

// CastTestBallot records a vote directly in the database
func CastTestBallot(t *testing.T, conn *sql.DB, pollID, userID string, optionIdx int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO ballot (poll_id, user_id, option_idx, cast_at)
		VALUES ($1, $2, $3, $4)
	`, pollID, userID, optionIdx, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to cast test ballot: %v", err)
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
