// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command rosterscrape builds a team reference file from season roster pages.
//
//	rosterscrape womens 2022-23 2023-24 -o data
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/gridvote/roster"
)

var (
	outputDir string
	baseURL   string
	timeout   time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rosterscrape <mens|womens> <season>...",
		Short: "Scrape team rosters into a reference player file",
		Long: `rosterscrape fetches the roster page of every given season,
deduplicates player names and writes {team}.csv with a "name" header.`,
		Args: cobra.MinimumNArgs(2),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Directory for the roster file")
	rootCmd.Flags().StringVar(&baseURL, "base-url", roster.DefaultBaseURL, "Athletics site hosting the roster pages")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Timeout per roster page")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	team, seasons := strings.ToLower(args[0]), args[1:]
	client := &http.Client{Timeout: timeout}

	var names []string
	for _, season := range seasons {
		url, err := roster.URL(baseURL, team, season)
		if err != nil {
			return err
		}

		slog.Info("scraping roster", "url", url)
		found, err := roster.Scrape(cmd.Context(), client, url)
		if err != nil {
			// A missing season should not sink the others
			slog.Warn("failed to scrape season", "season", season, "error", err)
			continue
		}
		if len(found) == 0 {
			slog.Warn("no players found, check the page structure", "season", season)
			continue
		}

		slog.Info("found players", "season", season, "count", len(found))
		names = append(names, found...)
	}

	if len(names) == 0 {
		return fmt.Errorf("no player data was collected for %s", team)
	}

	path, err := roster.Path(outputDir, team)
	if err != nil {
		return err
	}
	if err := writeRoster(path, names); err != nil {
		return err
	}

	slog.Info("roster written", "path", filepath.Clean(path))
	return nil
}

// writeRoster creates path and writes names to it; a failed close is an error
func writeRoster(path string, names []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := roster.Write(f, names); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
