// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voteapp-kr/server/models"
	"github.com/voteapp-kr/server/testutil"
)

func postComment(handler *CommentHandler, pollID, userID, content string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(models.CreateCommentRequest{Content: content})
	req := httptest.NewRequest("POST", "/api/polls/"+pollID+"/comments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withChiParam(req, "id", pollID)
	if userID != "" {
		req = asUser(req, userID)
	}
	w := httptest.NewRecorder()
	handler.CreateComment(w, req)
	return w
}

func TestCreateComment(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCommentHandler(conn, cfg)

	creator := testutil.CreateTestUser(t, conn, "comment_creator")
	commenter := testutil.CreateTestUser(t, conn, "commenter")
	pollID := testutil.CreateTestPoll(t, conn, creator, "active")

	tests := []struct {
		name           string
		pollID         string
		userID         string
		content        string
		expectedStatus int
	}{
		{"valid comment", pollID, commenter, "좋은 투표네요!", http.StatusCreated},
		{"empty content", pollID, commenter, "   ", http.StatusBadRequest},
		{"too long", pollID, commenter, strings.Repeat("a", 501), http.StatusBadRequest},
		{"max length ok", pollID, commenter, strings.Repeat("a", 500), http.StatusCreated},
		{"poll not found", "nonexistent", commenter, "hello", http.StatusNotFound},
		{"no authenticated user", pollID, "", "hello", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postComment(handler, tt.pollID, tt.userID, tt.content)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.expectedStatus == http.StatusCreated {
				var resp models.Comment
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if resp.ID == "" {
					t.Error("Expected non-empty comment id")
				}
				if resp.Author.Username != "commenter" {
					t.Errorf("Expected author 'commenter', got '%s'", resp.Author.Username)
				}
			}
		})
	}
}

func TestListComments(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCommentHandler(conn, cfg)

	creator := testutil.CreateTestUser(t, conn, "list_comment_creator")
	commenter := testutil.CreateTestUser(t, conn, "list_commenter")
	pollID := testutil.CreateTestPoll(t, conn, creator, "active")

	for _, content := range []string{"first", "second"} {
		if w := postComment(handler, pollID, commenter, content); w.Code != http.StatusCreated {
			t.Fatalf("Failed to seed comment: %d - %s", w.Code, w.Body.String())
		}
	}

	t.Run("returns all comments with authors", func(t *testing.T) {
		req := withChiParam(httptest.NewRequest("GET", "/api/polls/"+pollID+"/comments", nil), "id", pollID)
		w := httptest.NewRecorder()
		handler.ListComments(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var comments []models.Comment
		if err := json.NewDecoder(w.Body).Decode(&comments); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(comments) != 2 {
			t.Fatalf("Expected 2 comments, got %d", len(comments))
		}
		for _, c := range comments {
			if c.Author.Username != "list_commenter" {
				t.Errorf("Expected author 'list_commenter', got '%s'", c.Author.Username)
			}
		}
	})

	t.Run("poll not found", func(t *testing.T) {
		req := withChiParam(httptest.NewRequest("GET", "/api/polls/missing/comments", nil), "id", "missing")
		w := httptest.NewRecorder()
		handler.ListComments(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestUpdateComment(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCommentHandler(conn, cfg)

	creator := testutil.CreateTestUser(t, conn, "update_creator")
	author := testutil.CreateTestUser(t, conn, "update_author")
	intruder := testutil.CreateTestUser(t, conn, "update_intruder")
	pollID := testutil.CreateTestPoll(t, conn, creator, "active")

	w := postComment(handler, pollID, author, "original text")
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to seed comment: %d", w.Code)
	}
	var seeded models.Comment
	if err := json.NewDecoder(w.Body).Decode(&seeded); err != nil {
		t.Fatalf("Failed to decode seeded comment: %v", err)
	}

	update := func(commentID, userID, content string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(models.UpdateCommentRequest{Content: content})
		req := httptest.NewRequest("PUT", "/api/comments/"+commentID, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = withChiParam(req, "id", commentID)
		if userID != "" {
			req = asUser(req, userID)
		}
		w := httptest.NewRecorder()
		handler.UpdateComment(w, req)
		return w
	}

	t.Run("author can edit", func(t *testing.T) {
		w := update(seeded.ID, author, "edited text")
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp models.Comment
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Content != "edited text" {
			t.Errorf("Expected updated content, got '%s'", resp.Content)
		}
		if !resp.UpdatedAt.After(resp.CreatedAt) && !resp.UpdatedAt.Equal(resp.CreatedAt) {
			t.Error("updated_at went backwards")
		}
	})

	t.Run("non-author is forbidden", func(t *testing.T) {
		w := update(seeded.ID, intruder, "hijacked")
		if w.Code != http.StatusForbidden {
			t.Errorf("Expected 403, got %d", w.Code)
		}

		var content string
		if err := conn.QueryRow("SELECT content FROM comment WHERE id = $1", seeded.ID).Scan(&content); err != nil {
			t.Fatalf("Failed to query comment: %v", err)
		}
		if content == "hijacked" {
			t.Error("Forbidden edit was applied")
		}
	})

	t.Run("comment not found", func(t *testing.T) {
		w := update("nonexistent", author, "whatever")
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("empty content rejected", func(t *testing.T) {
		w := update(seeded.ID, author, "  ")
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestDeleteComment(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCommentHandler(conn, cfg)

	creator := testutil.CreateTestUser(t, conn, "delete_creator")
	author := testutil.CreateTestUser(t, conn, "delete_author")
	intruder := testutil.CreateTestUser(t, conn, "delete_intruder")
	pollID := testutil.CreateTestPoll(t, conn, creator, "active")

	w := postComment(handler, pollID, author, "doomed comment")
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to seed comment: %d", w.Code)
	}
	var seeded models.Comment
	if err := json.NewDecoder(w.Body).Decode(&seeded); err != nil {
		t.Fatalf("Failed to decode seeded comment: %v", err)
	}

	del := func(commentID, userID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("DELETE", "/api/comments/"+commentID, nil)
		req = withChiParam(req, "id", commentID)
		if userID != "" {
			req = asUser(req, userID)
		}
		w := httptest.NewRecorder()
		handler.DeleteComment(w, req)
		return w
	}

	t.Run("non-author is forbidden", func(t *testing.T) {
		w := del(seeded.ID, intruder)
		if w.Code != http.StatusForbidden {
			t.Errorf("Expected 403, got %d", w.Code)
		}
	})

	t.Run("author can delete", func(t *testing.T) {
		w := del(seeded.ID, author)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var count int
		if err := conn.QueryRow("SELECT COUNT(*) FROM comment WHERE id = $1", seeded.ID).Scan(&count); err != nil {
			t.Fatalf("Failed to count comments: %v", err)
		}
		if count != 0 {
			t.Error("Comment row survived deletion")
		}
	})

	t.Run("already deleted", func(t *testing.T) {
		w := del(seeded.ID, author)
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}
