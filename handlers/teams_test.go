// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/gridvote/layout"
	"github.com/danielhkuo/gridvote/models"
	"github.com/danielhkuo/gridvote/testutil"
)

func newTestTeamHandler(t *testing.T) *TeamHandler {
	t.Helper()
	cfg := testutil.GetTestConfig()
	cfg.RosterDir = t.TempDir()
	testutil.WriteRoster(t, cfg.RosterDir, "womens", "Alice", "Bea", "Cleo", "Alina")
	return NewTeamHandler(layout.Default(), cfg)
}

func teamRequest(path, team string, query url.Values) *http.Request {
	target := "/teams/" + team + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req := httptest.NewRequest("GET", target, nil)
	req.SetPathValue("team", team)
	return req
}

func TestGetLayout(t *testing.T) {
	handler := newTestTeamHandler(t)

	t.Run("declared team", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetLayout(w, teamRequest("/layout", "Womens", nil))

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.LayoutResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Team != "womens" {
			t.Errorf("Expected normalized team, got %q", resp.Team)
		}
		if len(resp.Cells) != 6 {
			t.Fatalf("Expected 6 cells, got %d", len(resp.Cells))
		}
		if diff := cmp.Diff(models.CellRef{Row: "Forward", Col: "Best"}, resp.Cells[0]); diff != "" {
			t.Errorf("First cell mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown team", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetLayout(w, teamRequest("/layout", "juniors", nil))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestGetPlayers(t *testing.T) {
	handler := newTestTeamHandler(t)

	testCases := []struct {
		name            string
		team            string
		query           url.Values
		expectedStatus  int
		expectedOptions []models.PlayerOption
	}{
		{
			name:           "roster only",
			team:           "womens",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "cell options with picks",
			team:           "womens",
			query:          url.Values{"row": {"Forward"}, "col": {"Best"}, "pick": {"Forward|Best|Bea", "Defense|Best|Cleo"}},
			expectedStatus: http.StatusOK,
			expectedOptions: []models.PlayerOption{
				{Name: "Alice"},
				{Name: "Bea", Selected: true},
				{Name: "Cleo", Disabled: true},
				{Name: "Alina"},
			},
		},
		{
			name:           "search keeps current pick",
			team:           "womens",
			query:          url.Values{"row": {"Forward"}, "col": {"Best"}, "search": {"ali"}, "pick": {"Forward|Best|Bea"}},
			expectedStatus: http.StatusOK,
			expectedOptions: []models.PlayerOption{
				{Name: "Alice"},
				{Name: "Bea", Selected: true},
				{Name: "Alina"},
			},
		},
		{
			name:           "unknown cell",
			team:           "womens",
			query:          url.Values{"row": {"Goalie"}, "col": {"Best"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed pick",
			team:           "womens",
			query:          url.Values{"row": {"Forward"}, "col": {"Best"}, "pick": {"Alice"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing roster",
			team:           "mens",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown team",
			team:           "juniors",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.GetPlayers(w, teamRequest("/players", tc.team, tc.query))

			testutil.AssertStatus(t, w, tc.expectedStatus)
			if tc.expectedStatus != http.StatusOK {
				return
			}

			var resp models.PlayersResponse
			testutil.AssertJSON(t, w, &resp)
			if diff := cmp.Diff([]string{"Alice", "Bea", "Cleo", "Alina"}, resp.Players); diff != "" {
				t.Errorf("Players mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.expectedOptions, resp.Options); diff != "" {
				t.Errorf("Options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
