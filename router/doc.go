// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

/*
Package router defines HTTP routes for the voteapp API.

# Route Registration

NewRouter creates a configured chi router with all endpoints:

	mux := router.NewRouter(db, cfg)

Request logging and CORS run on every route.

# Endpoints

Health:

	GET /health

Auth (public):

	POST /api/auth/register - Create account, returns token
	POST /api/auth/login    - Verify credentials, returns token

Polls (public reads):

	GET /api/polls            - All polls, newest first
	GET /api/polls/best/today - Top 3 today's polls by popularity
	GET /api/polls/{id}       - Poll detail (bumps view counter)
	GET /api/polls/{id}/comments - Poll discussion

Mutations (require Authorization: Bearer <token>):

	POST   /api/polls               - Create poll
	POST   /api/polls/{id}/ballots  - Cast vote
	POST   /api/polls/{id}/comments - Add comment
	PUT    /api/comments/{id}       - Edit own comment
	DELETE /api/comments/{id}       - Delete own comment

# Handler Initialization

The router creates handler instances with dependency injection:

	userHandler := handlers.NewUserHandler(db, cfg)
	pollHandler := handlers.NewPollHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	commentHandler := handlers.NewCommentHandler(db, cfg)

All handlers receive the database connection and configuration. The
auth guard is mounted on the mutation group only; reads never require
an identity.
*/
package router
