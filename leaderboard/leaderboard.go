// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package leaderboard ranks tallied selections per grid cell.
package leaderboard

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/gridvote/layout"
	"github.com/danielhkuo/gridvote/tally"
)

// NoVotes is displayed for cells without any recorded selection
const NoVotes = "No votes"

// Entry is one ranked selection of a cell
type Entry struct {
	Selection string `json:"selection"`
	Count     int    `json:"count"`
}

// Cell is the ranked result of one (row, col) category pair.
// Empty is true when no selection was recorded; Entries is then nil.
type Cell struct {
	Row     string  `json:"row"`
	Col     string  `json:"col"`
	Entries []Entry `json:"entries"`
	Empty   bool    `json:"empty"`
}

// Lines formats the cell for display: "No votes" or "label (count)" per entry
func (c Cell) Lines() []string {
	if c.Empty {
		return []string{NoVotes}
	}
	lines := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		lines[i] = e.Selection + " (" + strconv.Itoa(e.Count) + ")"
	}
	return lines
}

// Board is the leaderboard of one team
type Board struct {
	Team  string `json:"team"`
	Total int    `json:"total_votes"`
	Cells []Cell `json:"cells"`
}

// Render projects the tally of one team onto the declared cells, in order
func Render(t tally.Tally, team string, cells []layout.Cell) Board {
	board := Board{
		Team:  tally.NormalizeTeam(team),
		Total: t.Total(team),
		Cells: make([]Cell, 0, len(cells)),
	}
	for _, c := range cells {
		board.Cells = append(board.Cells, rank(c.Row, c.Col, t.Cell(team, c.Row, c.Col)))
	}
	return board
}

// RenderAll renders every (row, col) pair present in the tally for the team,
// sorted by row then col
func RenderAll(t tally.Tally, team string) Board {
	var cells []layout.Cell
	for row, cols := range t[tally.NormalizeTeam(team)] {
		for col := range cols {
			cells = append(cells, layout.Cell{Row: row, Col: col})
		}
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	return Render(t, team, cells)
}

// rank orders selections by count descending, then label ascending
func rank(row, col string, counts map[string]int) Cell {
	cell := Cell{Row: row, Col: col}
	if len(counts) == 0 {
		cell.Empty = true
		return cell
	}

	cell.Entries = make([]Entry, 0, len(counts))
	for selection, n := range counts {
		cell.Entries = append(cell.Entries, Entry{Selection: selection, Count: n})
	}
	sort.Slice(cell.Entries, func(i, j int) bool {
		a, b := cell.Entries[i], cell.Entries[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Selection < b.Selection
	})

	return cell
}

// Text writes the board as a plain-text table
func (b Board) Text(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s: %s votes\n", b.Team, humanize.Comma(int64(b.Total))); err != nil {
		return err
	}
	for _, c := range b.Cells {
		if _, err := fmt.Fprintf(w, "\n%s / %s\n", c.Row, c.Col); err != nil {
			return err
		}
		if c.Empty {
			if _, err := fmt.Fprintf(w, "  %s\n", NoVotes); err != nil {
				return err
			}
			continue
		}
		for i, e := range c.Entries {
			_, err := fmt.Fprintf(w, "  %-5s %s (%s)\n", humanize.Ordinal(i+1), e.Selection, humanize.Comma(int64(e.Count)))
			if err != nil {
				return err
			}
		}
	}
	return nil
}
