// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

  - SubmitRequest: selections ([]SelectionInput: row, col, selection)

# Response Types

  - SubmitResponse: team, timestamp, rows, attempts
  - LayoutResponse: rows, cols, cells
  - PlayersResponse: players, and options for one cell
  - LeaderboardResponse: total_votes, skipped_records, cells
  - ErrorResponse: error, message, missing
*/
package models
