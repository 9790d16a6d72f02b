// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

/*
Package handlers contains HTTP request handlers and the vote lifecycle
engine.

# Handler Types

Each handler is a struct with database and config dependencies:

  - UserHandler: registration and login
  - PollHandler: poll list/create/detail and the best-of-today ranking
  - VotingHandler: ballot admission
  - CommentHandler: poll discussion

Handlers are created via constructor functions that accept *sql.DB and Config:

	pollHandler := handlers.NewPollHandler(db, cfg)

# Poll Lifecycle

A poll's phase is a pure function of the clock and its stored timing
window, computed by ResolveStatus on every read and never persisted:

	upcoming --(start time reached)--> active --(end time passed)--> ended

The active window is inclusive at both ends. There is no stored phase
column and no background job flipping state.

# Ballot Admission

CastBallot is the single authority that admits votes. Checks run in
order with first failure winning: poll exists (404), poll active (409),
option index in range (400), voter has no ballot anywhere on the poll
(409). The (poll_id, user_id) primary key on the ballot table makes the
final insert race-safe: when two submissions by the same user pass the
duplicate check simultaneously, exactly one row lands and the loser is
rejected with the same conflict.

# Popularity Ranking

The best-of-today endpoint scores polls created since local midnight:

	score = view_count + total_votes * 3

Totals are recomputed from live ballot rows, sorted stably so the
earliest-created poll wins ties, and the top 3 are returned.

# View Counting

GetPoll increments the view counter with a single
"SET view_count = view_count + 1" UPDATE, so concurrent detail fetches
never lose an increment.
*/
package handlers
