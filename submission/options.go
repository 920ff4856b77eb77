// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/danielhkuo/gridvote/layout"
)

// Option is one dropdown entry of a grid cell
type Option struct {
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
	Disabled bool   `json:"disabled"`
}

// Available derives the options of one cell from the current picks.
// A player is listed when the name contains search (case-insensitive) or is
// the cell's own pick, and is disabled when picked in any other cell.
func Available(roster []string, picks map[layout.Cell]string, cell layout.Cell, search string) []Option {
	current := picks[cell]
	taken := make(map[string]bool, len(picks))
	for c, player := range picks {
		if c != cell && player != "" {
			taken[player] = true
		}
	}

	term := strings.ToLower(search)
	options := []Option{}
	for _, player := range roster {
		if player != current && !strings.Contains(strings.ToLower(player), term) {
			continue
		}
		options = append(options, Option{
			Name:     player,
			Selected: current != "" && player == current,
			Disabled: taken[player] && player != current,
		})
	}
	return options
}

// Duplicates returns players picked in more than one cell, sorted.
// Names are compared in NFC form with surrounding whitespace removed.
func Duplicates(picks map[layout.Cell]string) []string {
	counts := make(map[string]int, len(picks))
	for _, player := range picks {
		player = strings.TrimSpace(norm.NFC.String(player))
		if player != "" {
			counts[player]++
		}
	}

	var dups []string
	for player, n := range counts {
		if n > 1 {
			dups = append(dups, player)
		}
	}
	sort.Strings(dups)
	return dups
}
