// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/danielhkuo/gridvote/appender"
	"github.com/danielhkuo/gridvote/csvcodec"
	"github.com/danielhkuo/gridvote/layout"
)

// TimestampFormat is ISO-8601 in UTC with millisecond precision
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Row is one (row, col, selection) tuple of a batch
type Row struct {
	Row       string `json:"row"`
	Col       string `json:"col"`
	Selection string `json:"selection"`
}

// Batch is a complete grid submission for one team.
// Timestamp is fixed at construction and shared by every row, including
// rows rewritten by a retried append.
type Batch struct {
	Team      string `json:"team"`
	Timestamp string `json:"timestamp"`
	Rows      []Row  `json:"rows"`
}

// IncompleteError lists the declared cells that had no selection
type IncompleteError struct {
	Team    string
	Missing []layout.Cell
}

func (e *IncompleteError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("incomplete submission for %s: no cells declared", e.Team)
	}
	names := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		names[i] = c.String()
	}
	return fmt.Sprintf("incomplete submission for %s: missing %s", e.Team, strings.Join(names, ", "))
}

// Collect reads one selection per declared cell, in declared order.
// Any blank cell fails the whole batch.
func Collect(team string, cells []layout.Cell, picks map[layout.Cell]string, now time.Time) (Batch, error) {
	batch := Batch{
		Team:      team,
		Timestamp: now.UTC().Format(TimestampFormat),
		Rows:      make([]Row, 0, len(cells)),
	}

	var missing []layout.Cell
	for _, c := range cells {
		selection := strings.TrimSpace(norm.NFC.String(picks[c]))
		if selection == "" {
			missing = append(missing, c)
			continue
		}
		batch.Rows = append(batch.Rows, Row{Row: c.Row, Col: c.Col, Selection: selection})
	}

	if len(missing) > 0 || len(cells) == 0 {
		return Batch{}, &IncompleteError{Team: team, Missing: missing}
	}

	return batch, nil
}

// Lines encodes the batch as team,timestamp,row,col,selection lines
func (b Batch) Lines() []string {
	lines := make([]string, len(b.Rows))
	for i, r := range b.Rows {
		lines[i] = csvcodec.EncodeRow([]string{b.Team, b.Timestamp, r.Row, r.Col, r.Selection})
	}
	return lines
}

// Appender is the write side of the submission log
type Appender interface {
	Append(ctx context.Context, lines []string) (appender.Result, error)
}

// Submit appends the batch to the submission log
func Submit(ctx context.Context, a Appender, b Batch) (appender.Result, error) {
	res, err := a.Append(ctx, b.Lines())
	if err != nil {
		return res, fmt.Errorf("failed to submit %s batch: %w", b.Team, err)
	}

	slog.Info("submission recorded",
		"team", b.Team,
		"timestamp", b.Timestamp,
		"rows", len(b.Rows),
		"attempts", res.Attempts,
	)
	return res, nil
}
