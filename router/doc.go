// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the gridvote API.

	mux := router.NewRouter(store, cfg, layout.Default())

# Endpoints

	GET  /health
	GET  /teams/{team}/layout
	GET  /teams/{team}/players?row=&col=&search=&pick=row|col|player
	POST /teams/{team}/submissions
	GET  /teams/{team}/leaderboard
	GET  /

All submissions share one appender, so writes from this process never
conflict with each other.
*/
package router
