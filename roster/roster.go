// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package roster loads and scrapes per-team player lists.
package roster

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/danielhkuo/gridvote/csvcodec"
)

var ErrInvalidTeam = errors.New("invalid team name")

// Header is the first line of every roster file
const Header = "name"

// Parse reads a roster file: a header line followed by one player per line.
// Names are NFC-normalized and trimmed; blank lines are dropped.
func Parse(text string) []string {
	lines := csvcodec.SplitLines(strings.TrimSpace(text))
	if len(lines) < 2 {
		return []string{}
	}

	names := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		name := strings.TrimSpace(norm.NFC.String(line))
		if name == "" {
			continue
		}
		if fields := csvcodec.ParseLine(name); len(fields) == 1 {
			name = strings.TrimSpace(fields[0])
		}
		names = append(names, name)
	}
	return names
}

// Load reads {dir}/{team}.csv
func Load(dir, team string) ([]string, error) {
	path, err := Path(dir, team)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster for %s: %w", team, err)
	}
	return Parse(string(data)), nil
}

// Path returns the roster file location of a team
func Path(dir, team string) (string, error) {
	if team == "" || team != filepath.Base(team) || strings.HasPrefix(team, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidTeam, team)
	}
	return filepath.Join(dir, team+".csv"), nil
}

// Write stores names sorted and deduplicated under the name header
func Write(w io.Writer, names []string) error {
	seen := make(map[string]bool, len(names))
	unique := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(norm.NFC.String(n))
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		unique = append(unique, n)
	}
	sort.Strings(unique)

	if _, err := io.WriteString(w, csvcodec.EncodeRow([]string{Header})); err != nil {
		return err
	}
	for _, n := range unique {
		if _, err := io.WriteString(w, csvcodec.EncodeRow([]string{n})); err != nil {
			return err
		}
	}
	return nil
}
