// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p             Server port
	-store         Store backend (github, sql, memory)
	-owner, -repo, -branch, -github-api
	-d, -t         Database URL and type
	-submissions   Submission log path
	-rosters       Roster directory
	-layout        YAML layout file
	-timeout       Per-call store timeout
	-max-attempts  Append attempts per submission
	-ip-salt       Client key salt
	-trust-proxy   Key clients on X-Forwarded-For/X-Real-IP

# Environment Variables

Flags fall back to environment variables (PORT, STORE_BACKEND, GITHUB_OWNER,
GITHUB_REPO, GITHUB_BRANCH, GITHUB_API_URL, DATABASE_URL, DATABASE_TYPE,
SUBMISSIONS_PATH, ROSTER_DIR, LAYOUT_FILE, REQUEST_TIMEOUT, MAX_ATTEMPTS,
IP_HASH_SALT, TRUST_PROXY). CLI flags take precedence over environment variables.

GITHUB_TOKEN has no flag so the token never shows up in process listings.

# Validation

ParseFlags returns an error if the chosen backend is missing settings:

  - github: GITHUB_OWNER, GITHUB_REPO and GITHUB_TOKEN
  - sql: DATABASE_URL and a supported DATABASE_TYPE
*/
package cliparse
