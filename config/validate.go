package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/lepinkainen/imagesorter/triage"
)

// QuitKey is reserved by the interactive sorter and cannot be bound
const QuitKey = 'q'

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return errors.New("dir must be set")
	}
	if err := c.validateDests(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return errors.New("workers must be 0 (automatic) or positive")
	}
	if c.QueueCapacity < 1 {
		return errors.New("queue_capacity must be at least 1")
	}
	if c.Display.MaxWidth <= 0 || c.Display.MaxHeight <= 0 {
		return errors.New("display.max_width and display.max_height must be positive")
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

func (c *Config) validateDests() error {
	if len(c.Dests) == 0 {
		return fmt.Errorf("%w: [dests] must bind at least one key", triage.ErrInvalidMapping)
	}
	for key, dest := range c.Dests {
		if utf8.RuneCountInString(key) != 1 {
			return fmt.Errorf("%w: key %q must be a single character", triage.ErrInvalidMapping, key)
		}
		if r, _ := utf8.DecodeRuneInString(key); r == QuitKey {
			return fmt.Errorf("%w: key %q is reserved for quitting", triage.ErrInvalidMapping, key)
		}
		if dest == "" {
			return fmt.Errorf("%w: key %q has an empty destination", triage.ErrInvalidMapping, key)
		}
	}
	return nil
}

// Mapping converts [dests] into the sorter's key table.
func (c *Config) Mapping() (triage.Mapping, error) {
	raw := make(map[rune]string, len(c.Dests))
	for key, dest := range c.Dests {
		r, _ := utf8.DecodeRuneInString(key)
		raw[r] = dest
	}
	return triage.NewMapping(raw)
}
