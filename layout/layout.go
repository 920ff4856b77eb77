// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package layout

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/gridvote/tally"
)

var ErrUnknownTeam = errors.New("unknown team")

// Cell identifies one (row, col) category pair of a team grid
type Cell struct {
	Row string `json:"row" yaml:"row"`
	Col string `json:"col" yaml:"col"`
}

func (c Cell) String() string {
	return c.Row + " / " + c.Col
}

// Grid declares the row and column categories of one team
type Grid struct {
	Rows []string `json:"rows" yaml:"rows"`
	Cols []string `json:"cols" yaml:"cols"`
}

// Cells enumerates the grid row by row
func (g Grid) Cells() []Cell {
	cells := make([]Cell, 0, len(g.Rows)*len(g.Cols))
	for _, row := range g.Rows {
		for _, col := range g.Cols {
			cells = append(cells, Cell{Row: row, Col: col})
		}
	}
	return cells
}

// Has reports whether the cell is declared by the grid
func (g Grid) Has(c Cell) bool {
	return contains(g.Rows, c.Row) && contains(g.Cols, c.Col)
}

// Layout holds the grids of every team, keyed by normalized team name
type Layout struct {
	Teams map[string]Grid `json:"teams" yaml:"teams"`
}

// Default returns the built-in two-team layout
func Default() Layout {
	grid := Grid{
		Rows: []string{"Forward", "Defense"},
		Cols: []string{"Best", "Most Improved", "Fan Favorite"},
	}
	return Layout{Teams: map[string]Grid{
		"womens": grid,
		"mens":   grid,
	}}
}

// Load reads a YAML layout file
func Load(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to read layout: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML layout
func Parse(data []byte) (Layout, error) {
	var raw Layout
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Layout{}, fmt.Errorf("failed to parse layout: %w", err)
	}
	if len(raw.Teams) == 0 {
		return Layout{}, errors.New("layout declares no teams")
	}

	l := Layout{Teams: make(map[string]Grid, len(raw.Teams))}
	for name, grid := range raw.Teams {
		team := tally.NormalizeTeam(name)
		if team == "" {
			return Layout{}, errors.New("layout has an empty team name")
		}
		if _, dup := l.Teams[team]; dup {
			return Layout{}, fmt.Errorf("team %q declared twice", team)
		}
		if err := validate(grid.Rows); err != nil {
			return Layout{}, fmt.Errorf("team %q rows: %w", team, err)
		}
		if err := validate(grid.Cols); err != nil {
			return Layout{}, fmt.Errorf("team %q cols: %w", team, err)
		}
		l.Teams[team] = grid
	}

	return l, nil
}

// Grid returns the grid declared for a team
func (l Layout) Grid(team string) (Grid, error) {
	g, ok := l.Teams[tally.NormalizeTeam(team)]
	if !ok {
		return Grid{}, fmt.Errorf("%w: %s", ErrUnknownTeam, team)
	}
	return g, nil
}

// TeamNames returns the declared teams in sorted order
func (l Layout) TeamNames() []string {
	names := make([]string, 0, len(l.Teams))
	for name := range l.Teams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validate(labels []string) error {
	if len(labels) == 0 {
		return errors.New("at least one category required")
	}
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		if label == "" {
			return errors.New("empty category")
		}
		if seen[label] {
			return fmt.Errorf("duplicate category %q", label)
		}
		seen[label] = true
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
