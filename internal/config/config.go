// Package config provides configuration types, defaults, and persistence for pdc.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"pdc/internal/log"
	"pdc/internal/tracing"
)

// Config holds all configuration options for pdc.
type Config struct {
	// CatalogPath points at a YAML catalog file. Empty uses the built-in catalog.
	CatalogPath string `mapstructure:"catalog_path"`

	// HistoryPath is the sqlite file for run history.
	// Default: ~/.config/pdc/history.db
	HistoryPath string `mapstructure:"history_path"`

	// Environment selects how the backend is reached.
	// Valid values: "auto" (default), "browser", "desktop"
	Environment string `mapstructure:"environment"`

	Debug   bool           `mapstructure:"debug"`
	UI      UIConfig       `mapstructure:"ui"`
	Render  RenderConfig   `mapstructure:"render"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
	ShowLatency   bool   `mapstructure:"show_latency"`   // Show backend latency in the status bar
}

// RenderConfig holds diagram rendering configuration.
type RenderConfig struct {
	// Binary is the mermaid CLI executable used for local rendering.
	Binary string `mapstructure:"binary"`

	// DebounceMs is the settle delay for --watch mode, in milliseconds.
	DebounceMs int `mapstructure:"debounce_ms"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		CatalogPath: "",
		HistoryPath: DefaultHistoryPath(),
		Environment: "auto",
		UI: UIConfig{
			MarkdownStyle: "dark",
			ShowLatency:   true,
		},
		Render: RenderConfig{
			Binary:     "mmdc",
			DebounceMs: 300,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// DefaultHistoryPath returns the default sqlite history location.
// Returns ~/.config/pdc/history.db or empty string if home dir unavailable.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pdc", "history.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pdc", "traces", "traces.jsonl")
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# PDC Configuration

# Catalog file with businesses, strategies and templates.
# Empty uses the catalog compiled into the binary.
# catalog_path: /path/to/catalog.yaml

# Where run history is stored.
# history_path: ~/.config/pdc/history.db

# How the backend is reached: auto, browser, desktop
environment: auto

# Verbose logging to the log file
debug: false

ui:
  # Markdown rendering style: dark or light
  markdown_style: dark
  # Show backend latency in the status bar
  show_latency: true

render:
  # Mermaid CLI executable for local rendering
  binary: mmdc
  # Settle delay for --watch mode, in milliseconds
  debounce_ms: 300

# Distributed tracing (disabled by default)
# tracing:
#   enabled: true
#   exporter: file    # none, file, stdout, otlp
#   sample_rate: 1.0
`
}

// WriteDefaultConfig writes the commented default template to configPath,
// creating parent directories as needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// Validate checks config values that have closed sets.
func Validate(cfg Config) error {
	switch cfg.Environment {
	case "", "auto", "browser", "desktop":
	default:
		return fmt.Errorf("invalid environment %q (valid: auto, browser, desktop)", cfg.Environment)
	}
	switch cfg.UI.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("invalid ui.markdown_style %q (valid: dark, light)", cfg.UI.MarkdownStyle)
	}
	if cfg.Render.DebounceMs < 0 {
		return fmt.Errorf("render.debounce_ms must not be negative")
	}
	return nil
}
