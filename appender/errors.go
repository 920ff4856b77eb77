// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package appender

import (
	"fmt"

	"github.com/danielhkuo/gridvote/contentstore"
)

// FetchError means the current file could not be read; nothing was written
type FetchError struct {
	Path string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Path, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// WriteError is a non-conflict failure of the conditional write, including timeouts
type WriteError struct {
	Path    string
	Attempt int
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s (attempt %d): %v", e.Path, e.Attempt, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ConflictError means every attempt lost the race to another writer
type ConflictError struct {
	Path     string
	Attempts int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("write %s: version conflict after %d attempts", e.Path, e.Attempts)
}

func (e *ConflictError) Unwrap() error { return contentstore.ErrConflict }
