package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// validConfig returns a minimal well-formed catalog used as the base for
// mutation tests.
func validConfig() Config {
	return Config{
		Version: "test",
		Businesses: []Business{
			{
				BusinessID: "settlement",
				Label:      "Settlement",
				Defaults: Defaults{
					TemplateID:      "settlement.flow.v1",
					StrategyID:      "mermaid.svg.web.v1",
					OutputProfileID: "web",
				},
				EnabledTemplates:  []string{"settlement.flow.v1", "settlement.metrics.v1"},
				EnabledStrategies: []string{"mermaid.svg.web.v1", "settlement.echarts.dashboard.v1"},
			},
		},
		Strategies: []Strategy{
			{
				StrategyID:      "mermaid.svg.web.v1",
				Label:           "Mermaid to SVG",
				PipelineKind:    PipelineMermaidSVGWeb,
				LLMOutputFormat: FormatMermaid,
				Exports:         []ExportFormat{ExportSVG},
			},
			{
				StrategyID:      "settlement.echarts.dashboard.v1",
				Label:           "Metrics dashboard",
				PipelineKind:    PipelineSettlementECharts,
				LLMOutputFormat: FormatNone,
			},
		},
		Templates: []Template{
			{
				TemplateID:             "settlement.flow.v1",
				BusinessID:             "settlement",
				Label:                  "Settlement flow",
				GraphType:              GraphFlow,
				RecommendedStrategyIDs: []string{"mermaid.svg.web.v1"},
				PromptTemplateID:       strPtr("mermaid.flow.v1"),
			},
			{
				TemplateID:             "settlement.metrics.v1",
				BusinessID:             "settlement",
				Label:                  "Settlement metrics",
				GraphType:              GraphMetrics,
				RecommendedStrategyIDs: []string{"settlement.echarts.dashboard.v1"},
				PromptTemplateID:       nil,
			},
		},
		OutputProfiles: []OutputProfile{
			{OutputProfileID: "web", Label: "Web"},
		},
	}
}

func mustRegistry(t *testing.T, cfg Config) *Registry {
	t.Helper()
	r, err := New(cfg)
	require.NoError(t, err)
	return r
}

func TestResolve_ReturnsDefaultTriple(t *testing.T) {
	r := mustRegistry(t, validConfig())

	res, err := r.Resolve("settlement")
	require.NoError(t, err)
	require.Equal(t, "settlement", res.Business.BusinessID)
	require.Equal(t, "settlement.flow.v1", res.DefaultTemplate.TemplateID)
	require.Equal(t, "mermaid.svg.web.v1", res.DefaultStrategy.StrategyID)
	require.Equal(t, "web", res.DefaultProfile.OutputProfileID)
}

func TestResolve_UnknownBusiness(t *testing.T) {
	r := mustRegistry(t, validConfig())

	res, err := r.Resolve("nonexistent-business")
	require.ErrorIs(t, err, ErrNotFound)
	require.Zero(t, res)
}

func TestListTemplates_RestrictedToEnabledSet(t *testing.T) {
	r := mustRegistry(t, validConfig())

	templates, err := r.ListTemplates("settlement")
	require.NoError(t, err)
	require.Len(t, templates, 2)
	require.Equal(t, "settlement.flow.v1", templates[0].TemplateID)
	require.Equal(t, "settlement.metrics.v1", templates[1].TemplateID)
}

func TestListTemplates_UnknownBusiness(t *testing.T) {
	r := mustRegistry(t, validConfig())

	_, err := r.ListTemplates("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListStrategies_OrderedPerBusiness(t *testing.T) {
	r := mustRegistry(t, validConfig())

	strategies, err := r.ListStrategies("settlement")
	require.NoError(t, err)
	require.Len(t, strategies, 2)
	require.Equal(t, "mermaid.svg.web.v1", strategies[0].StrategyID)
	require.Equal(t, "settlement.echarts.dashboard.v1", strategies[1].StrategyID)
}

func TestLookups(t *testing.T) {
	r := mustRegistry(t, validConfig())

	tmpl, err := r.Template("settlement.metrics.v1")
	require.NoError(t, err)
	require.False(t, tmpl.UsesLLM())

	strat, err := r.Strategy("mermaid.svg.web.v1")
	require.NoError(t, err)
	require.Equal(t, PipelineMermaidSVGWeb, strat.PipelineKind)

	_, err = r.Strategy("missing")
	require.ErrorIs(t, err, ErrNotFound)

	profile, err := r.OutputProfile("web")
	require.NoError(t, err)
	require.Equal(t, "Web", profile.Label)

	_, err = r.OutputProfile("mobile")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBuiltinCatalog_IsValid(t *testing.T) {
	r := Builtin()
	require.NotNil(t, r)
	require.Equal(t, "1.0.0", r.Version())

	// Every shipped business must resolve to a full default triple.
	for _, b := range r.Businesses() {
		res, err := r.Resolve(b.BusinessID)
		require.NoError(t, err, "business %s", b.BusinessID)
		require.NotEmpty(t, res.DefaultTemplate.TemplateID)
		require.NotEmpty(t, res.DefaultStrategy.StrategyID)
		require.NotEmpty(t, res.DefaultProfile.OutputProfileID)
	}
}

func TestLoadBytes_BadYAML(t *testing.T) {
	_, err := LoadBytes([]byte("businesses: [unclosed"))
	require.Error(t, err)
}
