// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/gridvote/cliparse"
	"github.com/danielhkuo/gridvote/layout"
	"github.com/danielhkuo/gridvote/middleware"
	"github.com/danielhkuo/gridvote/models"
	"github.com/danielhkuo/gridvote/roster"
	"github.com/danielhkuo/gridvote/submission"
	"github.com/danielhkuo/gridvote/tally"
)

type TeamHandler struct {
	layout layout.Layout
	cfg    cliparse.Config
}

func NewTeamHandler(l layout.Layout, cfg cliparse.Config) *TeamHandler {
	return &TeamHandler{layout: l, cfg: cfg}
}

// GetLayout handles GET /teams/{team}/layout
func (h *TeamHandler) GetLayout(w http.ResponseWriter, r *http.Request) {
	team := tally.NormalizeTeam(r.PathValue("team"))
	grid, err := h.layout.Grid(team)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown team")
		return
	}

	resp := models.LayoutResponse{
		Team:  team,
		Rows:  grid.Rows,
		Cols:  grid.Cols,
		Cells: []models.CellRef{},
	}
	for _, c := range grid.Cells() {
		resp.Cells = append(resp.Cells, models.CellRef{Row: c.Row, Col: c.Col})
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetPlayers handles GET /teams/{team}/players
// With row and col set, also returns the options of that cell given the
// current picks, passed as repeated pick=row|col|player parameters.
func (h *TeamHandler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	team := tally.NormalizeTeam(r.PathValue("team"))
	grid, err := h.layout.Grid(team)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown team")
		return
	}

	players, err := roster.Load(h.cfg.RosterDir, team)
	if errors.Is(err, fs.ErrNotExist) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Roster not found")
		return
	}
	if err != nil {
		slog.Error("failed to load roster", "team", team, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Roster error")
		return
	}

	resp := models.PlayersResponse{Team: team, Players: players}

	q := r.URL.Query()
	row, col := strings.TrimSpace(q.Get("row")), strings.TrimSpace(q.Get("col"))
	if row == "" && col == "" {
		middleware.JSONResponse(w, http.StatusOK, resp)
		return
	}

	cell := layout.Cell{Row: row, Col: col}
	if !grid.Has(cell) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown cell: "+cell.String())
		return
	}

	picks := make(map[layout.Cell]string)
	for _, p := range q["pick"] {
		parts := strings.SplitN(p, "|", 3)
		if len(parts) != 3 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "pick must be row|col|player")
			return
		}
		picks[layout.Cell{Row: parts[0], Col: parts[1]}] = parts[2]
	}

	resp.Cell = &models.CellRef{Row: row, Col: col}
	resp.Options = []models.PlayerOption{}
	for _, o := range submission.Available(players, picks, cell, q.Get("search")) {
		resp.Options = append(resp.Options, models.PlayerOption{Name: o.Name, Selected: o.Selected, Disabled: o.Disabled})
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
