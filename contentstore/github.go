// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contentstore

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const DefaultGitHubAPI = "https://api.github.com"

type GitHubConfig struct {
	BaseURL string
	Owner   string
	Repo    string
	Branch  string
	Token   string
}

// GitHub stores files in a repository through the Contents API.
// The blob sha is the version token.
type GitHub struct {
	cfg    GitHubConfig
	client *http.Client
}

func NewGitHub(cfg GitHubConfig, client *http.Client) *GitHub {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGitHubAPI
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if client == nil {
		client = http.DefaultClient
	}
	return &GitHub{cfg: cfg, client: client}
}

type contentsResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
}

type putContentsRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch,omitempty"`
	SHA     string `json:"sha,omitempty"`
}

type putContentsResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

// Get handles GET /repos/{owner}/{repo}/contents/{path}?ref={branch}
// Files over 1 MB come back with encoding "none"; their content is then
// fetched again with the raw media type.
func (g *GitHub) Get(ctx context.Context, path string) (File, error) {
	resp, err := g.get(ctx, path, "application/vnd.github+json")
	if err != nil {
		return File{}, err
	}
	defer resp.Body.Close()

	var body contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return File{}, fmt.Errorf("failed to decode contents of %s: %w", path, err)
	}

	switch body.Encoding {
	case "", "base64":
	case "none":
		content, err := g.getRaw(ctx, path)
		if err != nil {
			return File{}, err
		}
		return File{Path: path, Content: content, Version: body.SHA}, nil
	default:
		return File{}, fmt.Errorf("unsupported content encoding %q for %s", body.Encoding, path)
	}

	// The API wraps base64 content across lines
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(body.Content, "\n", ""))
	if err != nil {
		return File{}, fmt.Errorf("failed to decode base64 content of %s: %w", path, err)
	}

	return File{Path: path, Content: string(raw), Version: body.SHA}, nil
}

func (g *GitHub) getRaw(ctx context.Context, path string) (string, error) {
	resp, err := g.get(ctx, path, "application/vnd.github.raw")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read raw contents of %s: %w", path, err)
	}
	return string(raw), nil
}

// get returns a 200 response; the caller closes the body
func (g *GitHub) get(ctx context.Context, path, accept string) (*http.Response, error) {
	u := g.contentsURL(path)
	if g.cfg.Branch != "" {
		u += "?ref=" + url.QueryEscape(g.cfg.Branch)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	g.setHeaders(req)
	req.Header.Set("Accept", accept)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, statusError("fetch "+path, resp)
	}
	return resp, nil
}

// Put handles PUT /repos/{owner}/{repo}/contents/{path}
func (g *GitHub) Put(ctx context.Context, path string, req PutRequest) (File, error) {
	payload, err := json.Marshal(putContentsRequest{
		Message: req.Message,
		Content: base64.StdEncoding.EncodeToString([]byte(req.Content)),
		Branch:  g.cfg.Branch,
		SHA:     req.Version,
	})
	if err != nil {
		return File{}, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, g.contentsURL(path), bytes.NewReader(payload))
	if err != nil {
		return File{}, fmt.Errorf("failed to build request: %w", err)
	}
	g.setHeaders(httpReq)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return File{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return File{}, ErrConflict
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return File{}, statusError("write "+path, resp)
	}

	var body putContentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return File{}, fmt.Errorf("failed to decode write response for %s: %w", path, err)
	}

	return File{Path: path, Content: req.Content, Version: body.Content.SHA}, nil
}

func (g *GitHub) contentsURL(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		g.cfg.BaseURL,
		url.PathEscape(g.cfg.Owner),
		url.PathEscape(g.cfg.Repo),
		strings.Join(segments, "/"),
	)
}

func (g *GitHub) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if g.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.Token)
	}
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
