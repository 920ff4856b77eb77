// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contentstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/gridvote/db"
)

// SQL keeps files in the content_file table.
// Versions are fresh UUIDs and writes are compare-and-swap on the version.
type SQL struct {
	db     *sql.DB
	driver string
}

// NewSQL expects db.CreateSchema to have run on conn
func NewSQL(conn *sql.DB, driver string) *SQL {
	return &SQL{db: conn, driver: driver}
}

func (s *SQL) Get(ctx context.Context, path string) (File, error) {
	f := File{Path: path}
	err := s.db.QueryRowContext(ctx, db.Rebind(s.driver, `
		SELECT content, version FROM content_file WHERE path = $1
	`), path).Scan(&f.Content, &f.Version)

	if errors.Is(err, sql.ErrNoRows) {
		return File{}, ErrNotFound
	}
	if err != nil {
		return File{}, fmt.Errorf("failed to query %s: %w", path, err)
	}

	return f, nil
}

func (s *SQL) Put(ctx context.Context, path string, req PutRequest) (File, error) {
	version := uuid.NewString()
	now := time.Now().UTC()

	var (
		res sql.Result
		err error
	)
	if req.Version == "" {
		res, err = s.db.ExecContext(ctx, db.Rebind(s.driver, `
			INSERT INTO content_file (path, content, version, message, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (path) DO NOTHING
		`), path, req.Content, version, req.Message, now)
	} else {
		res, err = s.db.ExecContext(ctx, db.Rebind(s.driver, `
			UPDATE content_file
			SET content = $1, version = $2, message = $3, updated_at = $4
			WHERE path = $5 AND version = $6
		`), req.Content, version, req.Message, now, path, req.Version)
	}
	if err != nil {
		return File{}, fmt.Errorf("failed to write %s: %w", path, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return File{}, fmt.Errorf("failed to check write of %s: %w", path, err)
	}
	if n == 0 {
		return File{}, ErrConflict
	}

	return File{Path: path, Content: req.Content, Version: version}, nil
}
