// Package config loads, normalizes, and validates imagesorter configuration.
//
// The configuration is a TOML file naming the directory to sort and the
// key-to-destination table. Paths are expanded (including ~) and cleaned, and
// every key is checked to be a single character before the sorter starts, so
// a bad file fails at startup instead of halfway through a session.
package config
