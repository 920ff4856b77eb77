// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"regexp"
)

// Driver names registered by lib/pq and modernc.org/sqlite
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

var placeholder = regexp.MustCompile(`\$(\d+)`)

// Rebind rewrites $N placeholders for the given driver.
// Postgres queries pass through; SQLite gets ?N.
func Rebind(driver, query string) string {
	if driver != DriverSQLite {
		return query
	}
	return placeholder.ReplaceAllString(query, "?$1")
}

// Works on both Postgres and SQLite
const schema = `
CREATE TABLE IF NOT EXISTS content_file (
    path TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    version TEXT NOT NULL,
    message TEXT NOT NULL DEFAULT '',
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
