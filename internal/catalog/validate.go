package catalog

import (
	"fmt"
	"slices"
)

// Validate runs the full cross-table validation pass over cfg and returns a
// description of every violation found. An empty slice means the catalog is
// well formed.
//
// All violations are collected rather than stopping at the first, so a broken
// deployment can be fixed in one round trip.
func Validate(cfg Config) []string {
	var v []string
	add := func(format string, args ...any) {
		v = append(v, fmt.Sprintf(format, args...))
	}

	businesses := make(map[string]Business)
	strategies := make(map[string]Strategy)
	templates := make(map[string]Template)
	profiles := make(map[string]OutputProfile)

	for _, b := range cfg.Businesses {
		if _, dup := businesses[b.BusinessID]; dup {
			add("business %q: duplicate id", b.BusinessID)
			continue
		}
		businesses[b.BusinessID] = b
	}
	for _, s := range cfg.Strategies {
		if _, dup := strategies[s.StrategyID]; dup {
			add("strategy %q: duplicate id", s.StrategyID)
			continue
		}
		strategies[s.StrategyID] = s
	}
	for _, t := range cfg.Templates {
		if _, dup := templates[t.TemplateID]; dup {
			add("template %q: duplicate id", t.TemplateID)
			continue
		}
		templates[t.TemplateID] = t
	}
	for _, p := range cfg.OutputProfiles {
		if _, dup := profiles[p.OutputProfileID]; dup {
			add("output profile %q: duplicate id", p.OutputProfileID)
			continue
		}
		profiles[p.OutputProfileID] = p
	}

	for _, s := range cfg.Strategies {
		if !s.PipelineKind.valid() {
			add("strategy %q: unknown pipelineKind %q", s.StrategyID, s.PipelineKind)
		}
		if !s.LLMOutputFormat.valid() {
			add("strategy %q: unknown llmOutputFormat %q", s.StrategyID, s.LLMOutputFormat)
		}
		// Format "none" is reserved for, and required by, the non-LLM
		// dashboard pipeline.
		if (s.LLMOutputFormat == FormatNone) != (s.PipelineKind == PipelineSettlementECharts) {
			add("strategy %q: llmOutputFormat %q inconsistent with pipelineKind %q",
				s.StrategyID, s.LLMOutputFormat, s.PipelineKind)
		}
		for _, e := range s.Exports {
			if !e.valid() {
				add("strategy %q: unknown export format %q", s.StrategyID, e)
			}
		}
	}

	for _, t := range cfg.Templates {
		if _, ok := businesses[t.BusinessID]; !ok {
			add("template %q: unknown businessId %q", t.TemplateID, t.BusinessID)
		}
		if !t.GraphType.valid() {
			add("template %q: unknown graphType %q", t.TemplateID, t.GraphType)
		}
		if len(t.RecommendedStrategyIDs) == 0 {
			add("template %q: recommendedStrategyIds is empty", t.TemplateID)
		}
		allNone := true
		for _, sid := range t.RecommendedStrategyIDs {
			s, ok := strategies[sid]
			if !ok {
				add("template %q: unknown recommended strategy %q", t.TemplateID, sid)
				continue
			}
			if s.LLMOutputFormat != FormatNone {
				allNone = false
			}
		}
		// A template without a prompt template never invokes an LLM, so every
		// strategy it recommends must be a non-LLM one, and vice versa.
		if len(t.RecommendedStrategyIDs) > 0 {
			if t.PromptTemplateID == nil && !allNone {
				add("template %q: promptTemplateId is null but recommends LLM strategies", t.TemplateID)
			}
			if t.PromptTemplateID != nil && allNone {
				add("template %q: promptTemplateId %q set but all recommended strategies are non-LLM",
					t.TemplateID, *t.PromptTemplateID)
			}
		}
	}

	for _, b := range cfg.Businesses {
		for _, tid := range b.EnabledTemplates {
			if _, ok := templates[tid]; !ok {
				add("business %q: enabled template %q not in catalog", b.BusinessID, tid)
			}
		}
		for _, sid := range b.EnabledStrategies {
			if _, ok := strategies[sid]; !ok {
				add("business %q: enabled strategy %q not in catalog", b.BusinessID, sid)
			}
		}

		d := b.Defaults
		if !slices.Contains(b.EnabledTemplates, d.TemplateID) {
			add("business %q: default template %q not in enabledTemplates", b.BusinessID, d.TemplateID)
		}
		if !slices.Contains(b.EnabledStrategies, d.StrategyID) {
			add("business %q: default strategy %q not in enabledStrategies", b.BusinessID, d.StrategyID)
		}
		if _, ok := profiles[d.OutputProfileID]; !ok {
			add("business %q: default output profile %q not in catalog", b.BusinessID, d.OutputProfileID)
		}
		if t, ok := templates[d.TemplateID]; ok {
			if t.BusinessID != b.BusinessID {
				add("business %q: default template %q belongs to business %q",
					b.BusinessID, d.TemplateID, t.BusinessID)
			}
			if !slices.Contains(t.RecommendedStrategyIDs, d.StrategyID) {
				add("business %q: default strategy %q not recommended by default template %q",
					b.BusinessID, d.StrategyID, d.TemplateID)
			}
		}
	}

	return v
}
