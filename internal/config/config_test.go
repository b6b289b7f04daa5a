package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.Empty(t, cfg.CatalogPath, "default catalog is the built-in one")
	require.Equal(t, "auto", cfg.Environment)
	require.Equal(t, "dark", cfg.UI.MarkdownStyle)
	require.Equal(t, "mmdc", cfg.Render.Binary)
	require.Equal(t, 300, cfg.Render.DebounceMs)
	require.False(t, cfg.Tracing.Enabled)
}

func TestValidate_Defaults(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestValidate_BadEnvironment(t *testing.T) {
	cfg := Defaults()
	cfg.Environment = "cloud"
	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid environment")
}

func TestValidate_BadMarkdownStyle(t *testing.T) {
	cfg := Defaults()
	cfg.UI.MarkdownStyle = "sepia"
	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "markdown_style")
}

func TestValidate_NegativeDebounce(t *testing.T) {
	cfg := Defaults()
	cfg.Render.DebounceMs = -1
	require.Error(t, Validate(cfg))
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "environment: auto")

	// The template must stay parseable YAML.
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Equal(t, "auto", doc["environment"])
}
