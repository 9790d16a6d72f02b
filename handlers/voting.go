// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/voteapp-kr/server/cliparse"
	"github.com/voteapp-kr/server/middleware"
	"github.com/voteapp-kr/server/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// CastBallot handles POST /api/polls/{id}/ballots
//
// Admission checks run in order, first failure wins: the poll must
// exist, its resolved status must be active, the option index must be
// in range, and the voter must not hold a ballot on any option of the
// poll. The voter identity is the verified token subject; nothing from
// the request body identifies the voter.
//
// The pre-insert duplicate check gives a friendly rejection on the
// common path. Under a race, two submissions can both pass it; the
// ballot table's (poll_id, user_id) primary key then admits exactly
// one, and the loser's uniqueness violation maps to the same conflict
// rejection. At most one durable mutation ever happens.
func (h *VotingHandler) CastBallot(w http.ResponseWriter, r *http.Request) {
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

	var req models.CastBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Poll must exist
	var startTime, endTime time.Time
	err := h.db.QueryRow(`
		SELECT start_time, end_time FROM poll WHERE id = $1
	`, pollID).Scan(&startTime, &endTime)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Poll must be in its active window right now
	if ResolveStatus(time.Now(), startTime, endTime) != models.StatusActive {
		middleware.ErrorResponse(w, http.StatusConflict, "Poll is not active")
		return
	}

	// Option index must be in range
	var optionCount int
	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM option WHERE poll_id = $1
	`, pollID).Scan(&optionCount)

	if err != nil {
		slog.Error("failed to count options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.OptionIndex < 0 || req.OptionIndex >= optionCount {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option")
		return
	}

	// Voter must not already hold a ballot on any option of this poll
	var alreadyVoted bool
	err = h.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM ballot
			WHERE poll_id = $1 AND user_id = $2
		)
	`, pollID, userID).Scan(&alreadyVoted)

	if err != nil {
		slog.Error("failed to check existing ballot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if alreadyVoted {
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO ballot (poll_id, user_id, option_idx, cast_at)
		VALUES ($1, $2, $3, $4)
	`, pollID, userID, req.OptionIndex, time.Now().UTC())

	if err != nil {
		// Race loser: another submission by the same user landed between
		// the check and the insert. The primary key admitted only one.
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "You have already voted")
			return
		}
		slog.Error("failed to insert ballot", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	slog.Info("ballot admitted", "poll_id", pollID, "option_index", req.OptionIndex)

	poll, err := loadPollDetail(h.db, pollID)
	if err != nil {
		slog.Error("failed to load poll after vote", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}
