// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"testing"

	"github.com/danielhkuo/gridvote/appender"
	"github.com/danielhkuo/gridvote/cliparse"
	"github.com/danielhkuo/gridvote/contentstore"
	"github.com/danielhkuo/gridvote/inflight"
	"github.com/danielhkuo/gridvote/layout"
	"github.com/danielhkuo/gridvote/models"
	"github.com/danielhkuo/gridvote/testutil"
)

// fullGrid returns one distinct selection per cell of the default layout
func fullGrid() []models.SelectionInput {
	var sel []models.SelectionInput
	players := []string{"Alice", "Bea", "Cleo", "Dana", "Eve", "Fay"}
	for i, c := range layout.Default().Teams["womens"].Cells() {
		sel = append(sel, models.SelectionInput{Row: c.Row, Col: c.Col, Selection: players[i]})
	}
	return sel
}

func newTestSubmissionHandler(t *testing.T, store contentstore.Store) (*SubmissionHandler, cliparse.Config) {
	t.Helper()
	cfg := testutil.GetTestConfig()
	app := appender.New(store, cfg.SubmissionsPath, appender.Policy{MaxAttempts: cfg.MaxAttempts}, cfg.RequestTimeout)
	return NewSubmissionHandler(layout.Default(), app, inflight.New(cfg.IPHashSalt), cfg.TrustProxy), cfg
}
