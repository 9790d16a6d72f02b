// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/voteapp-kr/server/cliparse"
	"github.com/voteapp-kr/server/middleware"
	"github.com/voteapp-kr/server/models"
)

const maxCommentLength = 500

type CommentHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCommentHandler(db *sql.DB, cfg cliparse.Config) *CommentHandler {
	return &CommentHandler{db: db, cfg: cfg}
}

// ListComments handles GET /api/polls/{id}/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	pollID := chi.URLParam(r, "id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var exists bool
	err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM poll WHERE id = $1)`, pollID).Scan(&exists)
	if err != nil {
		slog.Error("failed to check poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	rows, err := h.db.Query(`
		SELECT c.id, c.poll_id, c.content, c.created_at, c.updated_at,
		       u.id, u.username
		FROM comment c
		JOIN app_user u ON c.author = u.id
		WHERE c.poll_id = $1
		ORDER BY c.created_at DESC
	`, pollID)
	if err != nil {
		slog.Error("failed to query comments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.PollID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&c.Author.ID, &c.Author.Username,
		); err != nil {
			slog.Error("failed to scan comment", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read comments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, comments)
}

// CreateComment handles POST /api/polls/{id}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	pollID := chi.URLParam(r, "id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	userID := middleware.UserID(r.Context())
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CreateCommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "comment content is required")
		return
	}
	if len(content) > maxCommentLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "comment must be 500 characters or less")
		return
	}

	var exists bool
	err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM poll WHERE id = $1)`, pollID).Scan(&exists)
	if err != nil {
		slog.Error("failed to check poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	commentID := uuid.NewString()
	now := time.Now().UTC()

	_, err = h.db.Exec(`
		INSERT INTO comment (id, poll_id, author, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, commentID, pollID, userID, content, now, now)

	if err != nil {
		slog.Error("failed to insert comment", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create comment")
		return
	}

	var username string
	if err := h.db.QueryRow(`SELECT username FROM app_user WHERE id = $1`, userID).Scan(&username); err != nil {
		slog.Error("failed to load comment author", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("comment created", "comment_id", commentID, "poll_id", pollID)

	middleware.JSONResponse(w, http.StatusCreated, models.Comment{
		ID:        commentID,
		PollID:    pollID,
		Author:    models.UserRef{ID: userID, Username: username},
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// UpdateComment handles PUT /api/comments/{id}
// Only the author may edit their comment.
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "id")
	userID := middleware.UserID(r.Context())
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.UpdateCommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "comment content is required")
		return
	}
	if len(content) > maxCommentLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "comment must be 500 characters or less")
		return
	}

	var author, pollID string
	var createdAt time.Time
	err := h.db.QueryRow(`
		SELECT author, poll_id, created_at FROM comment WHERE id = $1
	`, commentID).Scan(&author, &pollID, &createdAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Comment not found")
		return
	}
	if err != nil {
		slog.Error("failed to query comment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if author != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "You can only edit your own comments")
		return
	}

	now := time.Now().UTC()
	_, err = h.db.Exec(`
		UPDATE comment SET content = $1, updated_at = $2 WHERE id = $3
	`, content, now, commentID)

	if err != nil {
		slog.Error("failed to update comment", "error", err, "comment_id", commentID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update comment")
		return
	}

	var username string
	if err := h.db.QueryRow(`SELECT username FROM app_user WHERE id = $1`, userID).Scan(&username); err != nil {
		slog.Error("failed to load comment author", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.Comment{
		ID:        commentID,
		PollID:    pollID,
		Author:    models.UserRef{ID: userID, Username: username},
		Content:   content,
		CreatedAt: createdAt,
		UpdatedAt: now,
	})
}

// DeleteComment handles DELETE /api/comments/{id}
// Only the author may delete their comment.
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "id")
	userID := middleware.UserID(r.Context())
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var author string
	err := h.db.QueryRow(`SELECT author FROM comment WHERE id = $1`, commentID).Scan(&author)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Comment not found")
		return
	}
	if err != nil {
		slog.Error("failed to query comment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if author != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "You can only delete your own comments")
		return
	}

	if _, err := h.db.Exec(`DELETE FROM comment WHERE id = $1`, commentID); err != nil {
		slog.Error("failed to delete comment", "error", err, "comment_id", commentID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete comment")
		return
	}

	slog.Info("comment deleted", "comment_id", commentID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Comment deleted successfully"})
}
