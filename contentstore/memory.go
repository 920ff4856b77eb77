// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contentstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Store for development and tests
type Memory struct {
	mu    sync.Mutex
	files map[string]File
}

func NewMemory() *Memory {
	return &Memory{files: make(map[string]File)}
}

func (m *Memory) Get(ctx context.Context, path string) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.files[path]
	if !ok {
		return File{}, ErrNotFound
	}
	return f, nil
}

func (m *Memory) Put(ctx context.Context, path string, req PutRequest) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.files[path]
	if exists != (req.Version != "") || current.Version != req.Version {
		return File{}, ErrConflict
	}

	f := File{Path: path, Content: req.Content, Version: uuid.NewString()}
	m.files[path] = f
	return f, nil
}

// Seed stores content unconditionally and returns the new snapshot
func (m *Memory) Seed(path, content string) File {
	m.mu.Lock()
	defer m.mu.Unlock()

	f := File{Path: path, Content: content, Version: uuid.NewString()}
	m.files[path] = f
	return f
}
