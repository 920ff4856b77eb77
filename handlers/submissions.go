// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/danielhkuo/gridvote/appender"
	"github.com/danielhkuo/gridvote/inflight"
	"github.com/danielhkuo/gridvote/layout"
	"github.com/danielhkuo/gridvote/middleware"
	"github.com/danielhkuo/gridvote/models"
	"github.com/danielhkuo/gridvote/submission"
	"github.com/danielhkuo/gridvote/tally"
)

type SubmissionHandler struct {
	layout   layout.Layout
	appender submission.Appender
	guard    *inflight.Guard
	now      func() time.Time

	// trustProxy keys clients on forwarding headers instead of the peer address
	trustProxy bool
}

func NewSubmissionHandler(l layout.Layout, a submission.Appender, g *inflight.Guard, trustProxy bool) *SubmissionHandler {
	return &SubmissionHandler{layout: l, appender: a, guard: g, trustProxy: trustProxy, now: time.Now}
}

// Submit handles POST /teams/{team}/submissions
// Validates a complete grid and appends one row per cell to the submission log
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	team := tally.NormalizeTeam(r.PathValue("team"))
	grid, err := h.layout.Grid(team)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown team")
		return
	}

	var req models.SubmitRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	picks := make(map[layout.Cell]string, len(req.Selections))
	for _, s := range req.Selections {
		cell := layout.Cell{Row: strings.TrimSpace(s.Row), Col: strings.TrimSpace(s.Col)}
		if !grid.Has(cell) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown cell: "+cell.String())
			return
		}
		if _, dup := picks[cell]; dup {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Cell selected twice: "+cell.String())
			return
		}
		picks[cell] = strings.TrimSpace(norm.NFC.String(s.Selection))
	}

	if dups := submission.Duplicates(picks); len(dups) > 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Player selected in more than one cell: "+strings.Join(dups, ", "))
		return
	}

	batch, err := submission.Collect(team, grid.Cells(), picks, h.now())
	if err != nil {
		var incomplete *submission.IncompleteError
		if errors.As(err, &incomplete) {
			resp := models.ErrorResponse{
				Error:   http.StatusText(http.StatusUnprocessableEntity),
				Message: "Please fill in every cell before submitting",
			}
			for _, c := range incomplete.Missing {
				resp.Missing = append(resp.Missing, models.CellRef{Row: c.Row, Col: c.Col})
			}
			middleware.JSONResponse(w, http.StatusUnprocessableEntity, resp)
			return
		}
		slog.Error("failed to collect submission", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Submission error")
		return
	}

	// One submission per client at a time
	key := h.guard.Key(h.clientIP(r))
	release, ok := h.guard.Acquire(key)
	if !ok {
		middleware.ErrorResponse(w, http.StatusTooManyRequests, "A submission is already in progress")
		return
	}
	defer release()

	// An in-flight write is not abandoned when the client goes away
	res, err := submission.Submit(context.WithoutCancel(r.Context()), h.appender, batch)
	if err != nil {
		h.submitError(w, team, key, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponse{
		Team:      batch.Team,
		Timestamp: batch.Timestamp,
		Rows:      len(batch.Rows),
		Attempts:  res.Attempts,
		Message:   "Submission recorded",
	})
}

func (h *SubmissionHandler) clientIP(r *http.Request) string {
	if h.trustProxy {
		return middleware.GetClientIP(r)
	}
	return middleware.RemoteIP(r)
}

func (h *SubmissionHandler) submitError(w http.ResponseWriter, team, client string, err error) {
	var conflict *appender.ConflictError
	var fetchErr *appender.FetchError
	var writeErr *appender.WriteError

	switch {
	case errors.As(err, &conflict):
		slog.Warn("submission abandoned after conflicts", "team", team, "client", client, "attempts", conflict.Attempts)
		middleware.ErrorResponse(w, http.StatusConflict, "The submissions file changed concurrently, please try again")
	case errors.As(err, &fetchErr):
		slog.Error("failed to fetch submissions", "team", team, "client", client, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Could not read submissions")
	case errors.As(err, &writeErr):
		slog.Error("failed to write submission", "team", team, "client", client, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Could not save submission")
	default:
		slog.Error("failed to submit", "team", team, "client", client, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Submission error")
	}
}
