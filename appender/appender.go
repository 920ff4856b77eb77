// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package appender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/gridvote/contentstore"
	"github.com/danielhkuo/gridvote/csvcodec"
)

// DefaultMaxAttempts allows one retry after a version conflict
const DefaultMaxAttempts = 2

// Policy bounds the fetch-mutate-write cycle. There is no backoff between attempts.
type Policy struct {
	MaxAttempts int
}

var DefaultPolicy = Policy{MaxAttempts: DefaultMaxAttempts}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Result reports how a successful append landed
type Result struct {
	Attempts int
	Version  string
}

// Appender appends lines to one CSV file in a versioned store by rewriting
// the whole file conditioned on the version token it read.
// Calls on the same Appender are serialized.
type Appender struct {
	store   contentstore.Store
	path    string
	header  string
	policy  Policy
	timeout time.Duration

	mu sync.Mutex
}

// New returns an Appender for the submission log at path.
// A zero timeout disables the per-call deadline.
func New(store contentstore.Store, path string, policy Policy, timeout time.Duration) *Appender {
	return &Appender{
		store:   store,
		path:    path,
		header:  csvcodec.SubmissionHeader,
		policy:  policy,
		timeout: timeout,
	}
}

func (a *Appender) Path() string {
	return a.path
}

// Append runs fetch, mutate and write until the write lands, a non-conflict
// error occurs, or the policy's attempts are used up.
// Lines are appended in order; a missing trailing newline is added.
func (a *Appender) Append(ctx context.Context, lines []string) (Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	max := a.policy.attempts()
	for attempt := 1; attempt <= max; attempt++ {
		current, err := a.fetch(ctx)
		if err != nil {
			return Result{Attempts: attempt}, &FetchError{Path: a.path, Err: err}
		}

		content := appendLines(current.Content, lines)

		written, err := a.write(ctx, contentstore.PutRequest{
			Content: content,
			Version: current.Version,
			Message: fmt.Sprintf("Update %s with new submission (attempt %d)", a.path, attempt),
		})
		if err == nil {
			slog.Info("appended rows",
				"path", a.path,
				"rows", len(lines),
				"attempt", attempt,
				"version", written.Version,
			)
			return Result{Attempts: attempt, Version: written.Version}, nil
		}

		if !errors.Is(err, contentstore.ErrConflict) {
			return Result{Attempts: attempt}, &WriteError{Path: a.path, Attempt: attempt, Err: err}
		}

		slog.Warn("version conflict on append",
			"path", a.path,
			"attempt", attempt,
			"max_attempts", max,
		)
	}

	return Result{Attempts: max}, &ConflictError{Path: a.path, Attempts: max}
}

// fetch reads the current file, seeding the header when the file is missing
// or blank. A missing file yields an empty version (create on write).
func (a *Appender) fetch(ctx context.Context) (contentstore.File, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	f, err := a.store.Get(ctx, a.path)
	if errors.Is(err, contentstore.ErrNotFound) {
		return contentstore.File{Path: a.path, Content: a.header}, nil
	}
	if err != nil {
		return contentstore.File{}, err
	}

	if strings.TrimSpace(f.Content) == "" {
		f.Content = a.header
	}
	return f, nil
}

func (a *Appender) write(ctx context.Context, req contentstore.PutRequest) (contentstore.File, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	return a.store.Put(ctx, a.path, req)
}

func (a *Appender) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

func appendLines(content string, lines []string) string {
	var b strings.Builder
	b.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteByte('\n')
	}
	for _, line := range lines {
		b.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
