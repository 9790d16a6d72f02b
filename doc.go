// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

/*
Package main provides the entry point for the voteapp API server.

voteapp is a polling service where registered users create time-windowed
polls, cast one vote each, and browse a daily popularity ranking. A
poll's status (upcoming, active, ended) is never stored; it is derived
from the clock on every read.

# Starting the Server

The server requires environment variables, a .env file, or CLI flags
for configuration:

	DATABASE_URL=vote.db JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 8080 -d vote.db -jwt-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file path or PostgreSQL connection string
  - JWT_SECRET (-jwt-secret): Secret for signing identity tokens

Optional settings:

  - PORT (-p): Server port (default: 8080)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - TOKEN_TTL (-token-ttl): Token lifetime (default: 720h)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, voting, comments, users, ranking)
  - router: Route definitions using chi
  - middleware: Auth guard, CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Password hashing and token issuing/verification
  - db: Schema creation
  - cliparse: Configuration parsing
  - testutil: Shared test fixtures

See package documentation for each component.
*/
package main
