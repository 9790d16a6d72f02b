// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8080)
  - DatabaseURL: sqlite file URL or postgres connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - JWTSecret: secret for signing identity tokens (required)
  - TokenTTL: identity token lifetime (default: 720h)

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	-jwt-secret JWT signing secret
	-token-ttl  Identity token lifetime

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	JWT_SECRET    → -jwt-secret
	TOKEN_TTL     → -token-ttl

CLI flags take precedence over environment variables. main loads a
.env file (godotenv) before parsing, so a local .env works for both.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided
  - DATABASE_TYPE must be sqlite or postgres when set
*/
package cliparse
