// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/gridvote/cliparse"
	"github.com/danielhkuo/gridvote/db"
)

// TestDBURLEnv selects a Postgres database for SQL tests; SQLite is used when unset
const TestDBURLEnv = "TEST_DATABASE_URL"

// SetupTestDB opens a fresh database with the full schema and returns it
// together with its driver name
func SetupTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()

	driver := db.DriverSQLite
	dsn := filepath.Join(t.TempDir(), "gridvote.db")
	if url := os.Getenv(TestDBURLEnv); url != "" {
		driver = db.DriverPostgres
		dsn = url
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if driver == db.DriverPostgres {
		if _, err := conn.Exec(`DROP TABLE IF EXISTS content_file CASCADE`); err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn, driver
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		StoreBackend:    cliparse.BackendMemory,
		SubmissionsPath: "submissions.csv",
		RosterDir:       "data",
		RequestTimeout:  2 * time.Second,
		MaxAttempts:     2,
		IPHashSalt:      "test-ip-salt",
	}
}

// WriteRoster writes {dir}/{team}.csv with a name header
func WriteRoster(t *testing.T, dir, team string, names ...string) {
	t.Helper()

	var b bytes.Buffer
	b.WriteString("name\n")
	for _, n := range names {
		b.WriteString(n + "\n")
	}
	if err := os.WriteFile(filepath.Join(dir, team+".csv"), b.Bytes(), 0o644); err != nil {
		t.Fatalf("Failed to write roster: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
