// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/gridvote/contentstore"
	"github.com/danielhkuo/gridvote/csvcodec"
	"github.com/danielhkuo/gridvote/layout"
	"github.com/danielhkuo/gridvote/models"
	"github.com/danielhkuo/gridvote/testutil"
)

const sampleLog = csvcodec.SubmissionHeader +
	"womens,2025-03-14T20:09:26.535Z,Forward,Best,A\n" +
	"womens,2025-03-14T20:09:26.535Z,Forward,Best,B\n" +
	"womens,2025-03-14T20:10:00.000Z,Forward,Best,B\n" +
	"Womens,2025-03-14T20:11:00.000Z,Forward,Best,C\n" +
	"womens,2025-03-14T20:12:00.000Z,Forward,Best,\n" +
	"mens,2025-03-14T20:12:00.000Z,Forward,Best,Zed\n"

func leaderboardRequest(team, query string) *http.Request {
	req := httptest.NewRequest("GET", "/teams/"+team+"/leaderboard"+query, nil)
	req.SetPathValue("team", team)
	return req
}

func TestGetLeaderboard(t *testing.T) {
	store := contentstore.NewMemory()
	cfg := testutil.GetTestConfig()
	store.Seed(cfg.SubmissionsPath, sampleLog)
	handler := NewLeaderboardHandler(store, layout.Default(), cfg)

	w := httptest.NewRecorder()
	handler.GetLeaderboard(w, leaderboardRequest("womens", ""))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LeaderboardResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.TotalVotes != 4 {
		t.Errorf("Expected 4 votes, got %d", resp.TotalVotes)
	}
	if resp.Skipped != 1 {
		t.Errorf("Expected 1 skipped record, got %d", resp.Skipped)
	}
	if len(resp.Cells) != 6 {
		t.Fatalf("Expected 6 declared cells, got %d", len(resp.Cells))
	}

	want := models.LeaderboardCell{
		Row: "Forward",
		Col: "Best",
		Entries: []models.LeaderboardEntry{
			{Selection: "B", Count: 2},
			{Selection: "A", Count: 1},
			{Selection: "C", Count: 1},
		},
		Lines: []string{"B (2)", "A (1)", "C (1)"},
	}
	if diff := cmp.Diff(want, resp.Cells[0]); diff != "" {
		t.Errorf("First cell mismatch (-want +got):\n%s", diff)
	}

	for _, c := range resp.Cells[1:] {
		if !c.Empty || !cmp.Equal(c.Lines, []string{"No votes"}) {
			t.Errorf("Expected %s / %s to be empty, got %+v", c.Row, c.Col, c)
		}
	}
}

func TestGetLeaderboardMissingLog(t *testing.T) {
	handler := NewLeaderboardHandler(contentstore.NewMemory(), layout.Default(), testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.GetLeaderboard(w, leaderboardRequest("mens", ""))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LeaderboardResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.TotalVotes != 0 || len(resp.Cells) != 6 {
		t.Fatalf("Expected an empty 6-cell board, got %+v", resp)
	}
	for _, c := range resp.Cells {
		if !c.Empty {
			t.Errorf("Expected %s / %s to be empty", c.Row, c.Col)
		}
	}
}

func TestGetLeaderboardUndeclaredTeam(t *testing.T) {
	store := contentstore.NewMemory()
	cfg := testutil.GetTestConfig()
	store.Seed(cfg.SubmissionsPath, csvcodec.SubmissionHeader+
		"juniors,t,Goalie,Best,Kim\n"+
		"juniors,t,Defense,Best,Lee\n")
	handler := NewLeaderboardHandler(store, layout.Default(), cfg)

	w := httptest.NewRecorder()
	handler.GetLeaderboard(w, leaderboardRequest("juniors", ""))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LeaderboardResponse
	testutil.AssertJSON(t, w, &resp)

	var got []string
	for _, c := range resp.Cells {
		got = append(got, c.Row+"/"+c.Col)
	}
	if diff := cmp.Diff([]string{"Defense/Best", "Goalie/Best"}, got); diff != "" {
		t.Errorf("Cells mismatch (-want +got):\n%s", diff)
	}
}

func TestGetLeaderboardText(t *testing.T) {
	store := contentstore.NewMemory()
	cfg := testutil.GetTestConfig()
	store.Seed(cfg.SubmissionsPath, sampleLog)
	handler := NewLeaderboardHandler(store, layout.Default(), cfg)

	w := httptest.NewRecorder()
	handler.GetLeaderboard(w, leaderboardRequest("womens", "?format=text"))

	testutil.AssertStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Expected text/plain, got %q", ct)
	}

	body := w.Body.String()
	for _, want := range []string{"womens: 4 votes", "1st   B (2)", "No votes"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected %q in body:\n%s", want, body)
		}
	}
}

func TestGetLeaderboardStoreFailure(t *testing.T) {
	fake := testutil.NewFakeGitHub(t, "server-token")
	fake.FailGets(http.StatusServiceUnavailable)
	store := contentstore.NewGitHub(contentstore.GitHubConfig{
		BaseURL: fake.Server.URL,
		Owner:   "club",
		Repo:    "votes",
		Branch:  "main",
		Token:   "server-token",
	}, fake.Server.Client())
	handler := NewLeaderboardHandler(store, layout.Default(), testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.GetLeaderboard(w, leaderboardRequest("womens", ""))

	testutil.AssertStatus(t, w, http.StatusBadGateway)
}
