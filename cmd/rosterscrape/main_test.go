// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteRoster(t *testing.T) {
	t.Run("writes sorted unique names", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mens.csv")

		if err := writeRoster(path, []string{"Zed", "Abe", "Zed"}); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "name\nAbe\nZed\n" {
			t.Errorf("Unexpected roster file: %q", data)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "absent", "mens.csv")

		if err := writeRoster(path, []string{"Abe"}); err == nil {
			t.Error("Expected error for missing directory")
		}
	})
}
