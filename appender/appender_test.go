// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package appender

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/gridvote/contentstore"
	"github.com/danielhkuo/gridvote/csvcodec"
)

const path = "submissions.csv"

// scriptedStore wraps Memory and lets tests inject failures and interleaved writers
type scriptedStore struct {
	*contentstore.Memory

	mu        sync.Mutex
	gets      int
	puts      int
	getErr    error
	putErrs   []error
	beforePut func(n int)
	requests  []contentstore.PutRequest
	blockPut  bool
}

func newScriptedStore() *scriptedStore {
	return &scriptedStore{Memory: contentstore.NewMemory()}
}

func (s *scriptedStore) Get(ctx context.Context, p string) (contentstore.File, error) {
	s.mu.Lock()
	s.gets++
	err := s.getErr
	s.mu.Unlock()

	if err != nil {
		return contentstore.File{}, err
	}
	return s.Memory.Get(ctx, p)
}

func (s *scriptedStore) Put(ctx context.Context, p string, req contentstore.PutRequest) (contentstore.File, error) {
	s.mu.Lock()
	s.puts++
	n := s.puts
	s.requests = append(s.requests, req)
	var injected error
	if len(s.putErrs) > 0 {
		injected, s.putErrs = s.putErrs[0], s.putErrs[1:]
	}
	hook, block := s.beforePut, s.blockPut
	s.mu.Unlock()

	if block {
		<-ctx.Done()
		return contentstore.File{}, ctx.Err()
	}
	if hook != nil {
		hook(n)
	}
	if injected != nil {
		return contentstore.File{}, injected
	}
	return s.Memory.Put(ctx, p, req)
}

func (s *scriptedStore) calls() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets, s.puts
}

func content(t *testing.T, s contentstore.Store) string {
	t.Helper()
	f, err := s.Get(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to read back file: %v", err)
	}
	return f.Content
}

func TestAppendCreatesMissingFile(t *testing.T) {
	store := newScriptedStore()
	a := New(store, path, DefaultPolicy, time.Second)

	row := "womens,2025-03-01T10:00:00.000Z,Forward,Best,Alex\n"
	res, err := a.Append(context.Background(), []string{row})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if res.Attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", res.Attempts)
	}
	if res.Version == "" {
		t.Error("Expected version of the written file")
	}

	if store.requests[0].Version != "" {
		t.Errorf("First write to a missing file must be an unconditioned create, got version %q", store.requests[0].Version)
	}

	lines := strings.Split(content(t, store.Memory), "\n")
	if lines[0]+"\n" != csvcodec.SubmissionHeader {
		t.Errorf("Expected header first, got %q", lines[0])
	}
	if lines[1]+"\n" != row {
		t.Errorf("Expected submitted row second, got %q", lines[1])
	}
}

func TestAppendToExistingFile(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		expected string
	}{
		{
			name:     "terminated content",
			existing: csvcodec.SubmissionHeader + "mens,t0,Forward,Best,A\n",
			expected: csvcodec.SubmissionHeader + "mens,t0,Forward,Best,A\nmens,t1,Defense,Best,B\n",
		},
		{
			name:     "missing trailing newline",
			existing: csvcodec.SubmissionHeader + "mens,t0,Forward,Best,A",
			expected: csvcodec.SubmissionHeader + "mens,t0,Forward,Best,A\nmens,t1,Defense,Best,B\n",
		},
		{
			name:     "whitespace only content seeds header",
			existing: "  \n\n",
			expected: csvcodec.SubmissionHeader + "mens,t1,Defense,Best,B\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newScriptedStore()
			seeded := store.Seed(path, tt.existing)

			a := New(store, path, DefaultPolicy, time.Second)
			if _, err := a.Append(context.Background(), []string{"mens,t1,Defense,Best,B"}); err != nil {
				t.Fatalf("Append failed: %v", err)
			}

			if got := store.requests[0].Version; got != seeded.Version {
				t.Errorf("Expected write conditioned on %q, got %q", seeded.Version, got)
			}
			if got := content(t, store.Memory); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestAppendRetriesOnceAfterConflict(t *testing.T) {
	store := newScriptedStore()
	store.Seed(path, csvcodec.SubmissionHeader)

	// Another writer lands between our first fetch and write
	store.beforePut = func(n int) {
		if n == 1 {
			store.Seed(path, csvcodec.SubmissionHeader+"mens,t0,Forward,Best,Other\n")
		}
	}

	a := New(store, path, DefaultPolicy, time.Second)
	res, err := a.Append(context.Background(), []string{"womens,t1,Forward,Best,Ours\n"})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if res.Attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", res.Attempts)
	}

	gets, puts := store.calls()
	if gets != 2 || puts != 2 {
		t.Errorf("Expected exactly one retry (2 gets, 2 puts), got %d gets, %d puts", gets, puts)
	}

	expected := csvcodec.SubmissionHeader + "mens,t0,Forward,Best,Other\nwomens,t1,Forward,Best,Ours\n"
	if got := content(t, store.Memory); got != expected {
		t.Errorf("Retry must re-read before appending: expected %q, got %q", expected, got)
	}

	if !strings.HasSuffix(store.requests[0].Message, "(attempt 1)") ||
		!strings.HasSuffix(store.requests[1].Message, "(attempt 2)") {
		t.Errorf("Unexpected commit messages %q, %q", store.requests[0].Message, store.requests[1].Message)
	}
}

func TestAppendFailsAfterTwoConflicts(t *testing.T) {
	store := newScriptedStore()
	store.putErrs = []error{contentstore.ErrConflict, contentstore.ErrConflict}

	a := New(store, path, DefaultPolicy, time.Second)
	res, err := a.Append(context.Background(), []string{"mens,t1,Forward,Best,A\n"})

	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected ConflictError, got %v", err)
	}
	if !errors.Is(err, contentstore.ErrConflict) {
		t.Error("ConflictError should unwrap to ErrConflict")
	}
	if ce.Attempts != 2 || res.Attempts != 2 {
		t.Errorf("Expected failure after 2 attempts, got %d / %d", ce.Attempts, res.Attempts)
	}

	gets, puts := store.calls()
	if gets != 2 || puts != 2 {
		t.Errorf("Expected 2 gets and 2 puts, got %d and %d", gets, puts)
	}
	if _, err := store.Memory.Get(context.Background(), path); !errors.Is(err, contentstore.ErrNotFound) {
		t.Error("Failed append must not persist anything")
	}
}

func TestAppendPolicyBounds(t *testing.T) {
	tests := []struct {
		name         string
		policy       Policy
		expectedPuts int
	}{
		{"zero value means a single attempt", Policy{}, 1},
		{"three attempts", Policy{MaxAttempts: 3}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newScriptedStore()
			store.putErrs = []error{contentstore.ErrConflict, contentstore.ErrConflict, contentstore.ErrConflict}

			_, err := New(store, path, tt.policy, time.Second).Append(context.Background(), []string{"x"})
			if !errors.Is(err, contentstore.ErrConflict) {
				t.Fatalf("Expected conflict failure, got %v", err)
			}
			if _, puts := store.calls(); puts != tt.expectedPuts {
				t.Errorf("Expected %d puts, got %d", tt.expectedPuts, puts)
			}
		})
	}
}

func TestAppendFetchFailureAborts(t *testing.T) {
	store := newScriptedStore()
	store.getErr = &contentstore.StatusError{Op: "fetch", StatusCode: 500}

	_, err := New(store, path, DefaultPolicy, time.Second).Append(context.Background(), []string{"x"})

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Expected FetchError, got %v", err)
	}
	var se *contentstore.StatusError
	if !errors.As(err, &se) {
		t.Error("FetchError should unwrap to the store error")
	}

	gets, puts := store.calls()
	if gets != 1 || puts != 0 {
		t.Errorf("Expected 1 get and no writes, got %d gets, %d puts", gets, puts)
	}
}

func TestAppendWriteFailureIsNotRetried(t *testing.T) {
	store := newScriptedStore()
	store.putErrs = []error{&contentstore.StatusError{Op: "write", StatusCode: 422}}

	res, err := New(store, path, DefaultPolicy, time.Second).Append(context.Background(), []string{"x"})

	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("Expected WriteError, got %v", err)
	}
	if we.Attempt != 1 || res.Attempts != 1 {
		t.Errorf("Expected failure on attempt 1, got %d", we.Attempt)
	}
	if _, puts := store.calls(); puts != 1 {
		t.Errorf("Expected 1 put, got %d", puts)
	}
}

func TestAppendWriteTimeout(t *testing.T) {
	store := newScriptedStore()
	store.blockPut = true

	start := time.Now()
	_, err := New(store, path, DefaultPolicy, 50*time.Millisecond).Append(context.Background(), []string{"x"})

	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("Expected WriteError on timeout, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected DeadlineExceeded, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Timeout was not enforced")
	}
}

func TestConcurrentAppendsAreSerialized(t *testing.T) {
	store := contentstore.NewMemory()
	a := New(store, path, DefaultPolicy, time.Second)

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			line := csvcodec.EncodeRow([]string{"mens", "t", "Forward", "Best", string(rune('A' + i))})
			if _, err := a.Append(context.Background(), []string{line}); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent append failed: %v", err)
	}

	records := csvcodec.Decode(content(t, store))
	if len(records) != writers {
		t.Errorf("Expected %d rows, got %d", writers, len(records))
	}
}
