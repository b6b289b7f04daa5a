package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// genConfig draws a random catalog that is well formed by construction:
// every business default is taken from its own enabled sets and every
// template recommends registered strategies consistent with its prompt
// template. The property under test is that Validate accepts all of them
// and Resolve always returns members of the enabled sets.
func genConfig(r *rapid.T) Config {
	numStrategies := rapid.IntRange(1, 4).Draw(r, "numStrategies")
	strategies := make([]Strategy, 0, numStrategies+1)
	for i := 0; i < numStrategies; i++ {
		strategies = append(strategies, Strategy{
			StrategyID:      fmt.Sprintf("strategy.%d.v1", i),
			Label:           fmt.Sprintf("Strategy %d", i),
			PipelineKind:    rapid.SampledFrom([]PipelineKind{PipelineMermaidSVGWeb, PipelineDrawioEditable}).Draw(r, "kind"),
			Exports:         []ExportFormat{ExportSVG},
			LLMOutputFormat: FormatMermaid,
		})
	}
	for i := range strategies {
		if strategies[i].PipelineKind == PipelineDrawioEditable {
			strategies[i].LLMOutputFormat = FormatDrawioXML
			strategies[i].Exports = []ExportFormat{ExportDrawio, ExportPNG}
		}
	}
	// One non-LLM dashboard strategy is always present.
	strategies = append(strategies, Strategy{
		StrategyID:      "dashboard.v1",
		Label:           "Dashboard",
		PipelineKind:    PipelineSettlementECharts,
		LLMOutputFormat: FormatNone,
	})

	numBusinesses := rapid.IntRange(1, 3).Draw(r, "numBusinesses")
	var businesses []Business
	var templates []Template
	for b := 0; b < numBusinesses; b++ {
		businessID := fmt.Sprintf("business-%d", b)
		numTemplates := rapid.IntRange(1, 3).Draw(r, "numTemplates")
		enabledTemplates := make([]string, 0, numTemplates)
		for i := 0; i < numTemplates; i++ {
			templateID := fmt.Sprintf("%s.template.%d.v1", businessID, i)
			llm := rapid.Bool().Draw(r, "llm")
			tmpl := Template{
				TemplateID: templateID,
				BusinessID: businessID,
				Label:      templateID,
				GraphType:  rapid.SampledFrom([]GraphType{GraphFlow, GraphArchitecture, GraphMetrics, GraphDataflow}).Draw(r, "graphType"),
			}
			if llm {
				idx := rapid.IntRange(0, numStrategies-1).Draw(r, "recommended")
				tmpl.RecommendedStrategyIDs = []string{strategies[idx].StrategyID}
				prompt := "prompt." + templateID
				tmpl.PromptTemplateID = &prompt
			} else {
				tmpl.RecommendedStrategyIDs = []string{"dashboard.v1"}
			}
			templates = append(templates, tmpl)
			enabledTemplates = append(enabledTemplates, templateID)
		}

		enabledStrategies := make([]string, 0, len(strategies))
		for _, s := range strategies {
			enabledStrategies = append(enabledStrategies, s.StrategyID)
		}

		defaultIdx := rapid.IntRange(0, numTemplates-1).Draw(r, "defaultTemplate")
		defaultTemplate := templates[len(templates)-numTemplates+defaultIdx]
		businesses = append(businesses, Business{
			BusinessID: businessID,
			Label:      businessID,
			Defaults: Defaults{
				TemplateID:      defaultTemplate.TemplateID,
				StrategyID:      defaultTemplate.RecommendedStrategyIDs[0],
				OutputProfileID: "web",
			},
			EnabledTemplates:  enabledTemplates,
			EnabledStrategies: enabledStrategies,
		})
	}

	return Config{
		Version:        "prop",
		Businesses:     businesses,
		Strategies:     strategies,
		Templates:      templates,
		OutputProfiles: []OutputProfile{{OutputProfileID: "web", Label: "Web"}},
	}
}

func TestResolve_DefaultsAlwaysMembersOfEnabledSets(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		cfg := genConfig(r)

		reg, err := New(cfg)
		require.NoError(t, err)

		for _, b := range reg.Businesses() {
			res, err := reg.Resolve(b.BusinessID)
			require.NoError(t, err)

			require.Contains(t, b.EnabledTemplates, res.DefaultTemplate.TemplateID)
			require.Contains(t, b.EnabledStrategies, res.DefaultStrategy.StrategyID)
			require.Equal(t, b.BusinessID, res.DefaultTemplate.BusinessID)
			require.Contains(t, res.DefaultTemplate.RecommendedStrategyIDs, res.DefaultStrategy.StrategyID)
		}
	})
}

func TestValidate_PromptTemplateMatchesStrategyFormats(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		cfg := genConfig(r)
		reg, err := New(cfg)
		require.NoError(t, err)

		for _, tmpl := range cfg.Templates {
			allNone := true
			for _, sid := range tmpl.RecommendedStrategyIDs {
				s, err := reg.Strategy(sid)
				require.NoError(t, err)
				if s.LLMOutputFormat != FormatNone {
					allNone = false
				}
			}
			require.Equal(t, tmpl.PromptTemplateID == nil, allNone,
				"template %s", tmpl.TemplateID)
		}
	})
}
