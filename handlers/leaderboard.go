// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/gridvote/cliparse"
	"github.com/danielhkuo/gridvote/contentstore"
	"github.com/danielhkuo/gridvote/csvcodec"
	"github.com/danielhkuo/gridvote/layout"
	"github.com/danielhkuo/gridvote/leaderboard"
	"github.com/danielhkuo/gridvote/middleware"
	"github.com/danielhkuo/gridvote/models"
	"github.com/danielhkuo/gridvote/tally"
)

type LeaderboardHandler struct {
	store  contentstore.Store
	layout layout.Layout
	cfg    cliparse.Config
}

func NewLeaderboardHandler(store contentstore.Store, l layout.Layout, cfg cliparse.Config) *LeaderboardHandler {
	return &LeaderboardHandler{store: store, layout: l, cfg: cfg}
}

// GetLeaderboard handles GET /teams/{team}/leaderboard
// Recomputes the board from the full submission log on every request.
// Teams without a declared grid get every cell present in the log.
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	team := tally.NormalizeTeam(r.PathValue("team"))
	if team == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team is required")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	// A missing log renders as an empty board
	content := ""
	file, err := h.store.Get(ctx, h.cfg.SubmissionsPath)
	switch {
	case err == nil:
		content = file.Content
	case errors.Is(err, contentstore.ErrNotFound):
	default:
		slog.Error("failed to fetch submissions", "path", h.cfg.SubmissionsPath, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Could not read submissions")
		return
	}

	t, skipped := tally.Aggregate(csvcodec.Decode(content))

	var board leaderboard.Board
	if grid, err := h.layout.Grid(team); err == nil {
		board = leaderboard.Render(t, team, grid.Cells())
	} else {
		board = leaderboard.RenderAll(t, team)
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if err := board.Text(w); err != nil {
			slog.Error("failed to write leaderboard", "error", err)
		}
		return
	}

	resp := models.LeaderboardResponse{
		Team:       board.Team,
		TotalVotes: board.Total,
		Skipped:    skipped,
		Cells:      make([]models.LeaderboardCell, 0, len(board.Cells)),
		ComputedAt: time.Now().UTC(),
	}
	for _, c := range board.Cells {
		cell := models.LeaderboardCell{
			Row:     c.Row,
			Col:     c.Col,
			Empty:   c.Empty,
			Entries: []models.LeaderboardEntry{},
			Lines:   c.Lines(),
		}
		for _, e := range c.Entries {
			cell.Entries = append(cell.Entries, models.LeaderboardEntry{Selection: e.Selection, Count: e.Count})
		}
		resp.Cells = append(resp.Cells, cell)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

func (h *LeaderboardHandler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.cfg.RequestTimeout)
}
