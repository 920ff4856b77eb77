// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package inflight rejects a second submission from a client while its first
// one is still being written.
package inflight

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Guard tracks clients with a submission in flight
type Guard struct {
	salt string

	mu     sync.Mutex
	active map[string]struct{}
}

func New(salt string) *Guard {
	return &Guard{salt: salt, active: make(map[string]struct{})}
}

// Key hashes a client IP so raw addresses are never held or logged
func (g *Guard) Key(ip string) string {
	h := hmac.New(sha256.New, []byte(g.salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits) are enough to tell clients apart
	return hex.EncodeToString(sum[:8])
}

// Acquire marks key as busy. It returns false when key already has an
// operation in flight; otherwise the returned release must be called once
// the operation resolves.
func (g *Guard) Acquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[key]; busy {
		return nil, false
	}
	g.active[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, key)
			g.mu.Unlock()
		})
	}, true
}

// Pending returns the number of operations in flight
func (g *Guard) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.active)
}
