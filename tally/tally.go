// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package tally groups submission records into per-cell vote counts.
package tally

import (
	"log/slog"
	"strings"

	"github.com/danielhkuo/gridvote/csvcodec"
)

// Tally maps team -> row -> col -> selection -> count
type Tally map[string]map[string]map[string]map[string]int

// NormalizeTeam returns the canonical lowercase form of a team tag
func NormalizeTeam(team string) string {
	return strings.ToLower(strings.TrimSpace(team))
}

// Aggregate builds a fresh tally from the full submission log.
// Records missing team, row, col or selection are skipped and counted.
func Aggregate(records []csvcodec.Record) (Tally, int) {
	t := Tally{}
	skipped := 0

	for _, rec := range records {
		team := NormalizeTeam(rec["team"])
		row, col, selection := rec["row"], rec["col"], rec["selection"]
		if team == "" || strings.TrimSpace(row) == "" ||
			strings.TrimSpace(col) == "" || strings.TrimSpace(selection) == "" {
			skipped++
			continue
		}
		t.add(team, row, col, selection)
	}

	if skipped > 0 {
		slog.Warn("skipped incomplete submission records", "skipped", skipped, "total", len(records))
	}

	return t, skipped
}

func (t Tally) add(team, row, col, selection string) {
	rows, ok := t[team]
	if !ok {
		rows = map[string]map[string]map[string]int{}
		t[team] = rows
	}
	cols, ok := rows[row]
	if !ok {
		cols = map[string]map[string]int{}
		rows[row] = cols
	}
	counts, ok := cols[col]
	if !ok {
		counts = map[string]int{}
		cols[col] = counts
	}
	counts[selection]++
}

// Cell returns the selection counts of one cell, nil when nothing was recorded
func (t Tally) Cell(team, row, col string) map[string]int {
	return t[NormalizeTeam(team)][row][col]
}

// Count returns the votes for one selection in one cell
func (t Tally) Count(team, row, col, selection string) int {
	return t.Cell(team, row, col)[selection]
}

// Total returns the number of votes recorded for a team across all cells
func (t Tally) Total(team string) int {
	total := 0
	for _, cols := range t[NormalizeTeam(team)] {
		for _, counts := range cols {
			for _, n := range counts {
				total += n
			}
		}
	}
	return total
}
