// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/voteapp-kr/server/models"
)

type sortOrder string

const (
	sortCreatedDesc sortOrder = "DESC"
	sortCreatedAsc  sortOrder = "ASC"
)

// loadPollDetail assembles the full poll view: options, voter sets,
// totals, and the status resolved against the current clock. Voter
// identities are dropped for anonymous polls; only per-option counts
// survive. Returns sql.ErrNoRows when the poll does not exist.
func loadPollDetail(db *sql.DB, pollID string) (models.Poll, error) {
	var poll models.Poll
	var description sql.NullString

	err := db.QueryRow(`
		SELECT p.id, p.title, p.description, p.is_anonymous,
		       p.start_time, p.end_time, p.view_count, p.created_at,
		       u.id, u.username
		FROM poll p
		JOIN app_user u ON p.created_by = u.id
		WHERE p.id = $1
	`, pollID).Scan(
		&poll.ID, &poll.Title, &description, &poll.IsAnonymous,
		&poll.StartTime, &poll.EndTime, &poll.ViewCount, &poll.CreatedAt,
		&poll.CreatedBy.ID, &poll.CreatedBy.Username,
	)
	if err != nil {
		return models.Poll{}, err
	}
	poll.Description = description.String

	rows, err := db.Query(`
		SELECT idx, label FROM option WHERE poll_id = $1 ORDER BY idx
	`, pollID)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var idx int
		var opt models.Option
		if err := rows.Scan(&idx, &opt.Label); err != nil {
			return models.Poll{}, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return models.Poll{}, fmt.Errorf("failed to read options: %w", err)
	}

	ballots, err := db.Query(`
		SELECT b.option_idx, u.id, u.username
		FROM ballot b
		JOIN app_user u ON b.user_id = u.id
		WHERE b.poll_id = $1
		ORDER BY b.cast_at
	`, pollID)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query ballots: %w", err)
	}
	defer ballots.Close()

	total := 0
	for ballots.Next() {
		var idx int
		var voter models.UserRef
		if err := ballots.Scan(&idx, &voter.ID, &voter.Username); err != nil {
			return models.Poll{}, fmt.Errorf("failed to scan ballot: %w", err)
		}
		if idx < 0 || idx >= len(options) {
			// Orphaned ballot from a corrupted row; skip rather than fail the read
			continue
		}
		options[idx].VoteCount++
		if !poll.IsAnonymous {
			options[idx].Voters = append(options[idx].Voters, voter)
		}
		total++
	}
	if err := ballots.Err(); err != nil {
		return models.Poll{}, fmt.Errorf("failed to read ballots: %w", err)
	}

	poll.Options = options
	poll.TotalVotes = total
	poll.Status = ResolveStatus(time.Now(), poll.StartTime, poll.EndTime)
	return poll, nil
}

// listPollSummaries returns poll summaries with vote totals recomputed
// from live ballot rows. since limits results to polls created at or
// after the given instant; nil means no lower bound.
func listPollSummaries(db *sql.DB, since *time.Time, order sortOrder) ([]models.PollSummary, error) {
	query := `
		SELECT p.id, p.title, p.description, p.is_anonymous,
		       p.start_time, p.end_time, p.view_count, p.created_at,
		       u.id, u.username,
		       (SELECT COUNT(*) FROM ballot b WHERE b.poll_id = p.id)
		FROM poll p
		JOIN app_user u ON p.created_by = u.id
	`
	args := []interface{}{}
	if since != nil {
		query += ` WHERE p.created_at >= $1`
		args = append(args, since.UTC())
	}
	query += ` ORDER BY p.created_at ` + string(order)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	now := time.Now()
	polls := []models.PollSummary{}
	for rows.Next() {
		var p models.PollSummary
		var description sql.NullString
		if err := rows.Scan(
			&p.ID, &p.Title, &description, &p.IsAnonymous,
			&p.StartTime, &p.EndTime, &p.ViewCount, &p.CreatedAt,
			&p.CreatedBy.ID, &p.CreatedBy.Username,
			&p.TotalVotes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		p.Description = description.String
		p.Status = ResolveStatus(now, p.StartTime, p.EndTime)
		p.PopularityScore = PopularityScore(p.ViewCount, p.TotalVotes)
		polls = append(polls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read polls: %w", err)
	}

	return polls, nil
}

// isUniqueViolation matches constraint errors from both drivers.
// sqlite reports "UNIQUE constraint failed: ...", postgres reports
// "duplicate key value violates unique constraint ...".
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
