// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voteapp-kr/server/cliparse"
	"github.com/voteapp-kr/server/handlers"
	"github.com/voteapp-kr/server/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger)
	r.Use(middleware.CORS)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(db, cfg)
	pollHandler := handlers.NewPollHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	commentHandler := handlers.NewCommentHandler(db, cfg)

	guard := middleware.NewAuth(cfg.JWTSecret)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth
	r.Post("/api/auth/register", userHandler.Register)
	r.Post("/api/auth/login", userHandler.Login)

	// Public reads
	r.Get("/api/polls", pollHandler.ListPolls)
	r.Get("/api/polls/best/today", pollHandler.BestToday)
	r.Get("/api/polls/{id}", pollHandler.GetPoll)
	r.Get("/api/polls/{id}/comments", commentHandler.ListComments)

	// Mutations require a verified identity
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireUser)

		r.Post("/api/polls", pollHandler.CreatePoll)
		r.Post("/api/polls/{id}/ballots", votingHandler.CastBallot)
		r.Post("/api/polls/{id}/comments", commentHandler.CreateComment)
		r.Put("/api/comments/{id}", commentHandler.UpdateComment)
		r.Delete("/api/comments/{id}", commentHandler.DeleteComment)
	})

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("voteapp API v1"))
	})

	return r
}
