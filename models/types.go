package models

import "time"

// Request types

type SelectionInput struct {
	Row       string `json:"row"`
	Col       string `json:"col"`
	Selection string `json:"selection"`
}

type SubmitRequest struct {
	Selections []SelectionInput `json:"selections"`
}

// Response types

type SubmitResponse struct {
	Team      string `json:"team"`
	Timestamp string `json:"timestamp"`
	Rows      int    `json:"rows"`
	Attempts  int    `json:"attempts"`
	Message   string `json:"message"`
}

type CellRef struct {
	Row string `json:"row"`
	Col string `json:"col"`
}

type LayoutResponse struct {
	Team  string    `json:"team"`
	Rows  []string  `json:"rows"`
	Cols  []string  `json:"cols"`
	Cells []CellRef `json:"cells"`
}

type PlayerOption struct {
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
	Disabled bool   `json:"disabled"`
}

// Options is only set when a cell was requested
type PlayersResponse struct {
	Team    string         `json:"team"`
	Players []string       `json:"players"`
	Cell    *CellRef       `json:"cell,omitempty"`
	Options []PlayerOption `json:"options,omitempty"`
}

// Leaderboard types

type LeaderboardEntry struct {
	Selection string `json:"selection"`
	Count     int    `json:"count"`
}

// Empty cells carry no entries and the single line "No votes"
type LeaderboardCell struct {
	Row     string             `json:"row"`
	Col     string             `json:"col"`
	Empty   bool               `json:"empty"`
	Entries []LeaderboardEntry `json:"entries"`
	Lines   []string           `json:"lines"`
}

type LeaderboardResponse struct {
	Team       string            `json:"team"`
	TotalVotes int               `json:"total_votes"`
	Skipped    int               `json:"skipped_records"`
	Cells      []LeaderboardCell `json:"cells"`
	ComputedAt time.Time         `json:"computed_at"`
}

// Error response

type ErrorResponse struct {
	Error   string    `json:"error"`
	Message string    `json:"message,omitempty"`
	Missing []CellRef `json:"missing,omitempty"`
}
