// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

package models

import "time"

// Poll status values, derived from the clock on every read
const (
	StatusUpcoming = "upcoming"
	StatusActive   = "active"
	StatusEnded    = "ended"
)

// Request types

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreatePollRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Options     []string  `json:"options"`
	IsAnonymous bool      `json:"is_anonymous"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// option_index selects by position within the poll's option list
type CastBallotRequest struct {
	OptionIndex int `json:"option_index"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// Response types

type AuthResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Domain types

// UserRef identifies a user in poll and comment payloads
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Option is owned by its poll and identified by position. Voters is
// omitted for anonymous polls; VoteCount is always populated.
type Option struct {
	Label     string    `json:"label"`
	VoteCount int       `json:"vote_count"`
	Voters    []UserRef `json:"voters,omitempty"`
}

// Poll is the full detail view. Status, TotalVotes and Options are
// recomputed on every read and never persisted.
type Poll struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsAnonymous bool      `json:"is_anonymous"`
	Status      string    `json:"status"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedBy   UserRef   `json:"created_by"`
	ViewCount   int       `json:"view_count"`
	TotalVotes  int       `json:"total_votes"`
	Options     []Option  `json:"options"`
	CreatedAt   time.Time `json:"created_at"`
}

// PollSummary is the list/ranking view of a poll
type PollSummary struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	IsAnonymous     bool      `json:"is_anonymous"`
	Status          string    `json:"status"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	CreatedBy       UserRef   `json:"created_by"`
	ViewCount       int       `json:"view_count"`
	TotalVotes      int       `json:"total_votes"`
	PopularityScore int       `json:"popularity_score"`
	CreatedAt       time.Time `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	Author    UserRef   `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
