// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/gridvote/appender"
	"github.com/danielhkuo/gridvote/cliparse"
	"github.com/danielhkuo/gridvote/contentstore"
	"github.com/danielhkuo/gridvote/handlers"
	"github.com/danielhkuo/gridvote/inflight"
	"github.com/danielhkuo/gridvote/layout"
	"github.com/danielhkuo/gridvote/middleware"
)

func NewRouter(store contentstore.Store, cfg cliparse.Config, l layout.Layout) *http.ServeMux {
	mux := http.NewServeMux()

	// One appender per submission log
	app := appender.New(store, cfg.SubmissionsPath, appender.Policy{MaxAttempts: cfg.MaxAttempts}, cfg.RequestTimeout)

	// Initialize handlers
	submissionHandler := handlers.NewSubmissionHandler(l, app, inflight.New(cfg.IPHashSalt), cfg.TrustProxy)
	leaderboardHandler := handlers.NewLeaderboardHandler(store, l, cfg)
	teamHandler := handlers.NewTeamHandler(l, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Grid definition and player options
	mux.HandleFunc("GET /teams/{team}/layout", middleware.WithLogging(teamHandler.GetLayout))
	mux.HandleFunc("GET /teams/{team}/players", middleware.WithLogging(teamHandler.GetPlayers))

	// Submissions
	mux.HandleFunc("POST /teams/{team}/submissions", middleware.WithLogging(submissionHandler.Submit))

	// Leaderboard
	mux.HandleFunc("GET /teams/{team}/leaderboard", middleware.WithLogging(leaderboardHandler.GetLeaderboard))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("gridvote API v1"))
	})

	return mux
}
