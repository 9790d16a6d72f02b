// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: username, email, password
  - LoginRequest: email, password
  - CreatePollRequest: title, description, options, is_anonymous, start_time, end_time
  - CastBallotRequest: option_index
  - CreateCommentRequest / UpdateCommentRequest: content

# Response Types

  - AuthResponse: token plus the user's id, username and email
  - ErrorResponse: error, message

# Domain Types

  - Poll: full detail view with options, voters and tallies
  - PollSummary: list/ranking view with the popularity score
  - Option: label, vote count, and voter refs (hidden for anonymous polls)
  - UserRef: id + username pair used wherever a user is referenced
  - Comment: discussion entry attached to a poll

Status, TotalVotes and PopularityScore are derived values. They are
recomputed from the stored timestamps and ballot rows on every read and
are never written back to the database.

# Constants

Status values:

	StatusUpcoming = "upcoming"
	StatusActive   = "active"
	StatusEnded    = "ended"
*/
package models
