// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/voteapp-kr/server/middleware"
	"github.com/voteapp-kr/server/models"
)

// bestPollLimit caps the best-of-today ranking
const bestPollLimit = 3

// PopularityScore weights a poll by attention: each view counts once,
// each admitted ballot counts three times.
func PopularityScore(viewCount, totalVotes int) int {
	return viewCount + totalVotes*3
}

// RankByPopularity sorts poll summaries by popularity score, descending,
// and returns at most bestPollLimit of them. The input is not mutated.
// The sort is stable, so among equal scores the input order wins; callers
// pass polls oldest-first to make the earliest-created poll the tiebreak
// winner.
func RankByPopularity(polls []models.PollSummary) []models.PollSummary {
	ranked := make([]models.PollSummary, len(polls))
	copy(ranked, polls)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PopularityScore > ranked[j].PopularityScore
	})

	if len(ranked) > bestPollLimit {
		ranked = ranked[:bestPollLimit]
	}
	return ranked
}

// BestToday handles GET /api/polls/best/today
// Ranks polls created since local midnight by popularity score and
// returns the top 3. Vote totals are recomputed from live ballot rows,
// never from a cached counter.
func (h *PollHandler) BestToday(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	polls, err := listPollSummaries(h.db, &startOfDay, sortCreatedAsc)
	if err != nil {
		slog.Error("failed to query today's polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, RankByPopularity(polls))
}
