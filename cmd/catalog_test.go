package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pdc/internal/config"
)

func TestCatalogList_PrintsBusinesses(t *testing.T) {
	orig := cfg
	t.Cleanup(func() { cfg = orig })
	cfg = config.Defaults()

	var buf bytes.Buffer
	catalogListCmd.SetOut(&buf)

	require.NoError(t, catalogListCmd.RunE(catalogListCmd, nil))
	out := buf.String()
	require.Contains(t, out, "settlement")
	require.Contains(t, out, "template")
	require.Contains(t, out, "strategy")
}

func TestCatalogResolve_ShowsDefaults(t *testing.T) {
	orig := cfg
	t.Cleanup(func() { cfg = orig })
	cfg = config.Defaults()

	var buf bytes.Buffer
	catalogResolveCmd.SetOut(&buf)

	require.NoError(t, catalogResolveCmd.RunE(catalogResolveCmd, []string{"settlement"}))
	out := buf.String()
	require.Contains(t, out, "business:")
	require.Contains(t, out, "template:")
	require.Contains(t, out, "strategy:")
	require.Contains(t, out, "profile:")
}

func TestCatalogResolve_UnknownBusiness(t *testing.T) {
	orig := cfg
	t.Cleanup(func() { cfg = orig })
	cfg = config.Defaults()

	err := catalogResolveCmd.RunE(catalogResolveCmd, []string{"nope"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "known businesses")
}

func TestCatalogValidate_BadFile(t *testing.T) {
	orig := cfg
	t.Cleanup(func() { cfg = orig })
	cfg = config.Defaults()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	bad := `
version: "1"
businesses:
  - businessId: b1
    label: Broken
    defaults:
      templateId: missing
      strategyId: missing
      outputProfileId: missing
    enabledTemplates: [missing]
    enabledStrategies: [missing]
strategies: []
templates: []
outputProfiles: []
`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	var buf bytes.Buffer
	catalogValidateCmd.SetOut(&buf)

	err := catalogValidateCmd.RunE(catalogValidateCmd, []string{path})
	require.Error(t, err)
	require.Contains(t, buf.String(), "violation(s)")
}
