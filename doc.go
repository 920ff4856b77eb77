// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the gridvote relay server.

gridvote collects player picks for a grid of (row, column) award categories
per team, appends each complete grid to a shared CSV submission log, and
serves a leaderboard recomputed from that log.

# Starting the Server

The server reads CLI flags, environment variables and an optional .env file:

	GITHUB_OWNER=club GITHUB_REPO=votes GITHUB_TOKEN=... go run .

Or against a local database:

	go run . -store sql -t sqlite -d gridvote.db

# Configuration

Backend settings:

  - STORE_BACKEND (-store): github, sql or memory (default: github)
  - GITHUB_OWNER (-owner), GITHUB_REPO (-repo), GITHUB_BRANCH (-branch)
  - GITHUB_TOKEN: repository write token, environment only
  - DATABASE_URL (-d), DATABASE_TYPE (-t): sql backend

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - SUBMISSIONS_PATH (-submissions): log path (default: submissions.csv)
  - ROSTER_DIR (-rosters): roster directory (default: data)
  - LAYOUT_FILE (-layout): YAML grid layout
  - REQUEST_TIMEOUT (-timeout), MAX_ATTEMPTS (-max-attempts)
  - TRUST_PROXY (-trust-proxy): only behind a proxy that sets X-Forwarded-For

The write token stays on the server. Browsers only ever talk to this relay.

# Architecture

  - handlers: HTTP request handlers (submissions, leaderboard, teams)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - appender: Versioned read-modify-write append with bounded retry
  - contentstore: GitHub, SQL and in-memory file stores
  - csvcodec, tally, leaderboard: Log parsing and ranking
  - submission, layout, roster: Grid collection and player lists
  - inflight: One pending submission per client
  - cliparse: Configuration parsing

The roster files are produced offline by cmd/rosterscrape.
*/
package main
