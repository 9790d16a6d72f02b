// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

RequestLogger is mounted on the router for every request:

	r.Use(middleware.RequestLogger)

Logs request start (method, path, remote) and completion (duration_ms).

# CORS Middleware

Enable cross-origin requests for frontend access:

	r.Use(middleware.CORS)

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type and Authorization.

# Authentication

Auth guards routes needing a verified identity. The bearer token in the
Authorization header is verified and the user ID it carries is placed
in the request context:

	guard := middleware.NewAuth(cfg.JWTSecret)
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireUser)
		r.Post("/api/polls", pollHandler.CreatePoll)
	})

Handlers read the identity back with:

	userID := middleware.UserID(r.Context())

This is the only path a voter identity takes into the admission logic;
client-supplied user IDs are never trusted.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
