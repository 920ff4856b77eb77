// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contentstore

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("file not found")
	ErrConflict = errors.New("version conflict")
)

// File is a snapshot of a remote file and the version token it was read at
type File struct {
	Path    string
	Content string
	Version string
}

// PutRequest describes a conditional write.
// An empty Version asks for an unconditioned create.
type PutRequest struct {
	Content string
	Version string
	Message string
}

// Store is a versioned file store.
// Put must fail with ErrConflict when Version no longer matches the stored
// version, or when Version is empty and the file already exists.
type Store interface {
	Get(ctx context.Context, path string) (File, error)
	Put(ctx context.Context, path string, req PutRequest) (File, error)
}

// StatusError is a non-conflict failure reported by a remote API
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}
