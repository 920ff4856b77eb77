// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// DefaultBaseURL hosts the team roster pages
const DefaultBaseURL = "https://nuhuskies.com"

const playerNameClass = "sidearm-roster-player-name"

var digits = regexp.MustCompile(`\d+`)

// URL builds the roster page of a team for one season, e.g. "2023-24"
func URL(baseURL, team, season string) (string, error) {
	team = strings.ToLower(strings.TrimSpace(team))
	if team != "mens" && team != "womens" {
		return "", fmt.Errorf("%w: %q (expected mens or womens)", ErrInvalidTeam, team)
	}
	return fmt.Sprintf("%s/sports/%s-ice-hockey/roster/%s", strings.TrimRight(baseURL, "/"), team, season), nil
}

// Scrape fetches a roster page and extracts player names
func Scrape(ctx context.Context, client *http.Client, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}

	return ExtractNames(resp.Body)
}

// ExtractNames finds player names in roster markup. Names come from div
// elements with the player name class, falling back to anchors with it.
// Digits (jersey numbers) are removed.
func ExtractNames(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster page: %w", err)
	}

	names := collect(doc, "div")
	if len(names) == 0 {
		names = collect(doc, "a")
	}
	return names, nil
}

func collect(doc *html.Node, tag string) []string {
	var names []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag && hasClass(n, playerNameClass) {
			if name := cleanName(text(n)); name != "" {
				names = append(names, name)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return names
}

func cleanName(s string) string {
	return strings.Join(strings.Fields(digits.ReplaceAllString(s, "")), " ")
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}
