// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/voteapp-kr/server/auth"
	"github.com/voteapp-kr/server/models"
	"github.com/voteapp-kr/server/testutil"
)

func TestRegister(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewUserHandler(conn, cfg)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.AuthResponse)
	}{
		{
			name: "valid registration",
			requestBody: models.RegisterRequest{
				Username: "alice",
				Email:    "alice@example.com",
				Password: "correct-horse",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.AuthResponse) {
				if resp.UserID == "" {
					t.Error("Expected non-empty user_id")
				}
				if resp.Username != "alice" {
					t.Errorf("Expected username 'alice', got '%s'", resp.Username)
				}

				// The issued token must verify and carry the new user's id
				sub, err := auth.ParseToken(resp.Token, []byte(cfg.JWTSecret))
				if err != nil {
					t.Fatalf("Issued token does not verify: %v", err)
				}
				if sub != resp.UserID {
					t.Errorf("Token subject %s does not match user id %s", sub, resp.UserID)
				}

				// Password must be stored hashed, never plaintext
				var hash string
				if err := conn.QueryRow("SELECT password_hash FROM app_user WHERE id = $1", resp.UserID).Scan(&hash); err != nil {
					t.Fatalf("Failed to query user: %v", err)
				}
				if hash == "correct-horse" {
					t.Error("Password stored in plaintext")
				}
				if !auth.CheckPassword(hash, "correct-horse") {
					t.Error("Stored hash does not verify the password")
				}
			},
		},
		{
			name: "korean username",
			requestBody: models.RegisterRequest{
				Username: "길동이",
				Email:    "gildong@example.com",
				Password: "비밀번호12345",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "username too short",
			requestBody: models.RegisterRequest{
				Username: "a",
				Email:    "short@example.com",
				Password: "longenough",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid email",
			requestBody: models.RegisterRequest{
				Username: "bob",
				Email:    "not-an-email",
				Password: "longenough",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			requestBody: models.RegisterRequest{
				Username: "carol",
				Email:    "carol@example.com",
				Password: "short",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			requestBody: models.RegisterRequest{
				Username: "alice2",
				Email:    "alice@example.com",
				Password: "another-pass",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate username",
			requestBody: models.RegisterRequest{
				Username: "alice",
				Email:    "alice2@example.com",
				Password: "another-pass",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "garbage",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body []byte
			var err error

			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatalf("Failed to marshal request body: %v", err)
				}
			}

			req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Register(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.expectedStatus == http.StatusCreated && tt.checkResponse != nil {
				var resp models.AuthResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewUserHandler(conn, cfg)

	// Register a user via the real path so the stored hash is authentic
	registerBody, _ := json.Marshal(models.RegisterRequest{
		Username: "login_user",
		Email:    "login@example.com",
		Password: "hunter2hunter2",
	})
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader(registerBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.Register(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Registration failed: %d - %s", w.Code, w.Body.String())
	}

	tests := []struct {
		name           string
		requestBody    models.LoginRequest
		expectedStatus int
	}{
		{
			name: "valid credentials",
			requestBody: models.LoginRequest{
				Email:    "login@example.com",
				Password: "hunter2hunter2",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			requestBody: models.LoginRequest{
				Email:    "login@example.com",
				Password: "wrong-password",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown email",
			requestBody: models.LoginRequest{
				Email:    "nobody@example.com",
				Password: "hunter2hunter2",
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Login(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.expectedStatus == http.StatusOK {
				var resp models.AuthResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if resp.Token == "" {
					t.Error("Expected non-empty token")
				}
				if resp.Username != "login_user" {
					t.Errorf("Expected username 'login_user', got '%s'", resp.Username)
				}
			}
		})
	}
}

func TestLoginSameErrorForBothFailures(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewUserHandler(conn, cfg)
	testutil.CreateTestUser(t, conn, "probe_target")

	attempt := func(email, password string) models.ErrorResponse {
		body, _ := json.Marshal(models.LoginRequest{Email: email, Password: password})
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		handler.Login(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", w.Code)
		}
		var resp models.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode error: %v", err)
		}
		return resp
	}

	// Identical rejections keep account existence unguessable
	badPassword := attempt("probe_target@example.com", "wrong-password")
	badEmail := attempt("missing@example.com", "wrong-password")

	if badPassword.Message != badEmail.Message {
		t.Errorf("Rejection messages differ: %q vs %q", badPassword.Message, badEmail.Message)
	}
	if badPassword.Message != "Invalid credentials" {
		t.Errorf("Expected 'Invalid credentials', got %q", badPassword.Message)
	}
}
