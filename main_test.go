package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCLI_Structure(t *testing.T) {
	// Compile-time check that all expected commands exist
	var cli CLI
	_ = cli.Sort
	_ = cli.Check
	_ = cli.Similar
	_ = cli.Init
	_ = cli.Version
}

func TestKongParsing(t *testing.T) {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		t.Fatalf("Kong parser should build: %v", err)
	}
	if parser == nil {
		t.Error("Kong parser should not be nil")
	}
}

func TestKongParsing_Commands(t *testing.T) {
	testDir := t.TempDir()
	_ = os.WriteFile(filepath.Join(testDir, "a.jpg"), []byte("test"), 0644)

	testCases := []struct {
		name        string
		args        []string
		wantCommand string
		expectError bool
	}{
		{"No arguments selects sort", []string{}, "sort", false},
		{"Sort with overrides", []string{"sort", "--workers", "2", "--queue", "3"}, "sort", false},
		{"Sort with config", []string{"sort", "--config", filepath.Join(testDir, "my.toml")}, "sort", false},
		{"Check without directory", []string{"check"}, "check", false},
		{"Check with directory", []string{"check", testDir}, "check", false},
		{"Check with missing directory", []string{"check", filepath.Join(testDir, "missing")}, "", true},
		{"Similar with default directory", []string{"similar"}, "similar", false},
		{"Similar with threshold", []string{"similar", "--threshold", "5", testDir}, "similar", false},
		{"Init with default file", []string{"init"}, "init", false},
		{"Init with force", []string{"init", "--force", filepath.Join(testDir, "c.toml")}, "init", false},
		{"Version", []string{"version"}, "version", false},
		{"Unknown command", []string{"tag"}, "", true},
		{"Bad log level", []string{"--log-level", "loud", "version"}, "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var cli CLI
			parser, err := newParser(&cli)
			if err != nil {
				t.Fatal(err)
			}

			ctx, err := parser.Parse(tc.args)

			if tc.expectError {
				if err == nil {
					t.Errorf("Expected error for args %v, but parsing succeeded", tc.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for args %v: %v", tc.args, err)
			}
			if !strings.HasPrefix(ctx.Command(), tc.wantCommand) {
				t.Errorf("Expected %q command, got %q", tc.wantCommand, ctx.Command())
			}
		})
	}
}

func TestKongParsing_Defaults(t *testing.T) {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := parser.Parse([]string{"similar"}); err != nil {
		t.Fatal(err)
	}

	if cli.Similar.Threshold != 10 {
		t.Errorf("Expected default threshold 10, got %d", cli.Similar.Threshold)
	}
	if cli.Similar.Workers != 0 || cli.Similar.Queue != 0 {
		t.Error("Expected pool flags to default to 0 (use config values)")
	}
	if cli.LogLevel != "warn" {
		t.Errorf("Expected default log level warn, got %q", cli.LogLevel)
	}
}

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}

	// Default version should be "dev"
	if Version != "dev" {
		t.Logf("Version is %q (expected 'dev' for development builds)", Version)
	}
}
