package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/lepinkainen/imagesorter/pool"
)

//go:embed sample_config.toml
var sampleConfig string

// DefaultPath is the configuration file looked up when none is given
const DefaultPath = "config.toml"

// Display bounds the size of prepared images.
type Display struct {
	MaxWidth  int `toml:"max_width"`
	MaxHeight int `toml:"max_height"`
}

// Logging selects the log level and destination.
type Logging struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Config is the full imagesorter configuration.
type Config struct {
	Dir           string            `toml:"dir"`
	Dests         map[string]string `toml:"dests"`
	Workers       int               `toml:"workers"`
	QueueCapacity int               `toml:"queue_capacity"`
	Display       Display           `toml:"display"`
	Logging       Logging           `toml:"logging"`
}

// Default returns a Config with every optional field set.
func Default() Config {
	return Config{
		Dests:         map[string]string{},
		Workers:       0,
		QueueCapacity: pool.DefaultQueueCapacity,
		Display: Display{
			MaxWidth:  1600,
			MaxHeight: 1600,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Sample returns the commented sample configuration.
func Sample() string {
	return sampleConfig
}

// Load reads, normalizes, and validates the configuration at path. An empty
// path means DefaultPath.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}

	expanded, err := expandPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s not found (create one with 'imagesorter init')", expanded)
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	cfg := Default()
	if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", expanded, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LogFile returns the log destination, falling back to the temp directory.
func (c *Config) LogFile() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	return filepath.Join(os.TempDir(), "imagesorter.log")
}

// WriteSample writes the sample configuration to path. Existing files are
// only replaced when force is set.
func WriteSample(path string, force bool) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(expanded); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", expanded)
		}
	}

	if dir := filepath.Dir(expanded); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory %q: %w", dir, err)
		}
	}

	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
