package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lepinkainen/imagesorter/triage"
)

func (c *Config) normalize() error {
	var err error

	c.Dir = strings.TrimSpace(c.Dir)
	if c.Dir != "" {
		if c.Dir, err = expandPath(c.Dir); err != nil {
			return fmt.Errorf("dir: %w", err)
		}
	}

	for key, dest := range c.Dests {
		dest = strings.TrimSpace(dest)
		if dest == "" || strings.EqualFold(dest, triage.SkipSentinel) {
			c.Dests[key] = dest
			continue
		}
		if c.Dests[key], err = expandPath(dest); err != nil {
			return fmt.Errorf("dests.%s: %w", key, err)
		}
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.File = strings.TrimSpace(c.Logging.File); c.Logging.File != "" {
		if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}

	return nil
}

// expandPath resolves a leading ~ and cleans the result
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Clean(path), nil
}
