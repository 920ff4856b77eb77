// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakeGitHub serves the subset of the Contents API used by the store:
// GET and PUT on /repos/{owner}/{repo}/contents/{path...}
type FakeGitHub struct {
	Server *httptest.Server
	Token  string

	mu    sync.Mutex
	files map[string]fakeBlob

	getStatus int
	putStatus int
	conflicts int
	rawAbove  int

	gets     int
	puts     int
	messages []string
}

type fakeBlob struct {
	content string
	sha     string
}

func NewFakeGitHub(t *testing.T, token string) *FakeGitHub {
	t.Helper()

	f := &FakeGitHub{Token: token, files: make(map[string]fakeBlob)}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/{owner}/{repo}/contents/{path...}", f.get)
	mux.HandleFunc("PUT /repos/{owner}/{repo}/contents/{path...}", f.put)
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)

	return f
}

// Seed stores a file and returns its sha
func (f *FakeGitHub) Seed(path, content string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	sha := blobSHA(content)
	f.files[path] = fakeBlob{content: content, sha: sha}
	return sha
}

// FailGets makes every GET fail with status; 0 restores normal behavior
func (f *FakeGitHub) FailGets(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getStatus = status
}

// FailPuts makes every PUT fail with status; 0 restores normal behavior
func (f *FakeGitHub) FailPuts(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putStatus = status
}

// ConflictNextPuts makes the next n writes fail with 409
func (f *FakeGitHub) ConflictNextPuts(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conflicts = n
}

// Calls returns the number of GET and PUT requests served
func (f *FakeGitHub) Calls() (gets, puts int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets, f.puts
}

// Messages returns the commit messages of every PUT received
func (f *FakeGitHub) Messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

// ServeRawAbove makes files larger than n bytes come back with encoding
// "none", as the API does for files over 1 MB
func (f *FakeGitHub) ServeRawAbove(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rawAbove = n
}

// Content returns the stored file content
func (f *FakeGitHub) Content(path string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.files[path]
	return b.content, ok
}

func (f *FakeGitHub) authorized(w http.ResponseWriter, r *http.Request) bool {
	if f.Token == "" || r.Header.Get("Authorization") == "Bearer "+f.Token {
		return true
	}
	http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
	return false
}

func (f *FakeGitHub) get(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.gets++
	if !f.authorized(w, r) {
		return
	}
	if f.getStatus != 0 {
		http.Error(w, `{"message":"forced failure"}`, f.getStatus)
		return
	}

	b, ok := f.files[r.PathValue("path")]
	if !ok {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
		return
	}

	if r.Header.Get("Accept") == "application/vnd.github.raw" {
		w.Header().Set("Content-Type", "application/vnd.github.raw")
		io.WriteString(w, b.content)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if f.rawAbove > 0 && len(b.content) > f.rawAbove {
		json.NewEncoder(w).Encode(map[string]string{
			"content":  "",
			"encoding": "none",
			"sha":      b.sha,
		})
		return
	}
	json.NewEncoder(w).Encode(map[string]string{
		"content":  wrap(base64.StdEncoding.EncodeToString([]byte(b.content)), 60),
		"encoding": "base64",
		"sha":      b.sha,
	})
}

func (f *FakeGitHub) put(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.puts++
	if !f.authorized(w, r) {
		return
	}

	var body struct {
		Message string `json:"message"`
		Content string `json:"content"`
		Branch  string `json:"branch"`
		SHA     string `json:"sha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"message":"Problems parsing JSON"}`, http.StatusBadRequest)
		return
	}
	f.messages = append(f.messages, body.Message)

	if f.putStatus != 0 {
		http.Error(w, `{"message":"forced failure"}`, f.putStatus)
		return
	}
	if f.conflicts > 0 {
		f.conflicts--
		http.Error(w, `{"message":"is at a different sha"}`, http.StatusConflict)
		return
	}

	path := r.PathValue("path")
	current, exists := f.files[path]
	switch {
	case exists && body.SHA == "":
		http.Error(w, `{"message":"sha wasn't supplied"}`, http.StatusUnprocessableEntity)
		return
	case exists && body.SHA != current.sha, !exists && body.SHA != "":
		http.Error(w, fmt.Sprintf(`{"message":"%s does not match"}`, body.SHA), http.StatusConflict)
		return
	}

	raw, err := base64.StdEncoding.DecodeString(body.Content)
	if err != nil {
		http.Error(w, `{"message":"content is not valid Base64"}`, http.StatusUnprocessableEntity)
		return
	}

	b := fakeBlob{content: string(raw), sha: blobSHA(string(raw))}
	f.files[path] = b

	status := http.StatusOK
	if !exists {
		status = http.StatusCreated
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"content": map[string]string{"path": path, "sha": b.sha},
	})
}

func blobSHA(content string) string {
	h := sha1.New()
	fmt.Fprintf(h, "blob %d\x00%s", len(content), content)
	return hex.EncodeToString(h.Sum(nil))
}

func wrap(s string, width int) string {
	var b strings.Builder
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteByte('\n')
		s = s[width:]
	}
	b.WriteString(s)
	return b.String()
}
