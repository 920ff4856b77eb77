// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the gridvote API.

# Handler Types

  - SubmissionHandler: Complete grid submissions
  - LeaderboardHandler: Rankings recomputed from the submission log
  - TeamHandler: Grid layout and player options

Handlers are created via constructor functions:

	leaderboardHandler := handlers.NewLeaderboardHandler(store, l, cfg)

# Submission Flow

	POST /teams/{team}/submissions

A submission is accepted only when every declared cell has a player and no
player appears twice. Status codes:

  - 201: appended, possibly after one retry
  - 400: invalid JSON, unknown cell or duplicate player
  - 404: unknown team
  - 422: incomplete grid, missing cells listed
  - 429: same client already has a submission in flight
  - 409: log changed underneath both attempts
  - 502: log could not be read or written

# Leaderboard

	GET /teams/{team}/leaderboard[?format=text]

A missing log renders every declared cell as "No votes".
*/
package handlers
