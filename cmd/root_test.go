package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"pdc/internal/api"
	"pdc/internal/config"
)

func TestNewClient_EnvironmentMapping(t *testing.T) {
	orig := cfg
	t.Cleanup(func() { cfg = orig })

	tests := []struct {
		env  string
		want api.Environment
	}{
		{"browser", api.EnvBrowserProxy},
		{"desktop", api.EnvEmbeddedDesktop},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg = config.Defaults()
			cfg.Environment = tt.env
			client, err := newClient()
			require.NoError(t, err)
			require.Equal(t, tt.want, client.Environment())
		})
	}
}

func TestNewClient_InvalidEnvironment(t *testing.T) {
	orig := cfg
	t.Cleanup(func() { cfg = orig })

	cfg = config.Defaults()
	cfg.Environment = "cloud"
	_, err := newClient()
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid environment")
}

func TestNewClient_AutoDetectsFromSentinel(t *testing.T) {
	orig := cfg
	t.Cleanup(func() { cfg = orig })

	cfg = config.Defaults()
	cfg.Environment = "auto"

	t.Setenv("PDC_DESKTOP", "1")
	client, err := newClient()
	require.NoError(t, err)
	require.Equal(t, api.EnvEmbeddedDesktop, client.Environment())
}

func TestLoadRegistry_BuiltinByDefault(t *testing.T) {
	orig := cfg
	t.Cleanup(func() { cfg = orig })

	cfg = config.Defaults()
	reg, err := loadRegistry()
	require.NoError(t, err)
	require.NotEmpty(t, reg.Businesses())
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	orig := cfg
	t.Cleanup(func() { cfg = orig })

	cfg = config.Defaults()
	cfg.CatalogPath = "/nonexistent/catalog.yaml"
	_, err := loadRegistry()
	require.Error(t, err)
	require.Contains(t, err.Error(), "loading catalog")
}

func TestInitConfig_EnvOverridesNestedKeys(t *testing.T) {
	origCfg, origFile := cfg, cfgFile
	t.Cleanup(func() {
		cfg, cfgFile = origCfg, origFile
		viper.Reset()
	})
	viper.Reset()

	dir := t.TempDir()
	t.Setenv("HOME", dir)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: browser\n"), 0o644))
	cfgFile = path

	t.Setenv("PDC_UI_MARKDOWN_STYLE", "light")
	t.Setenv("PDC_RENDER_BINARY", "/opt/d2/bin/d2")
	t.Setenv("PDC_TRACING_EXPORTER", "stdout")
	t.Setenv("PDC_ENVIRONMENT", "desktop")

	initConfig()

	require.Equal(t, "light", cfg.UI.MarkdownStyle)
	require.Equal(t, "/opt/d2/bin/d2", cfg.Render.Binary)
	require.Equal(t, "stdout", cfg.Tracing.Exporter)
	require.Equal(t, "desktop", cfg.Environment)
}
