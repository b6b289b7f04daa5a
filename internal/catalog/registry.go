// Package catalog holds the static product catalog: businesses, diagram
// templates, rendering strategies and output profiles, together with the
// cross-table invariants that relate them.
//
// The registry is built once at startup from configuration data, validated in
// a single pass, and is immutable afterwards. It is safe for unbounded
// concurrent reads.
package catalog

import (
	"pdc/internal/log"
)

// Resolution is the result of resolving a business to its default
// template/strategy/output-profile triple.
type Resolution struct {
	Business        Business
	DefaultTemplate Template
	DefaultStrategy Strategy
	DefaultProfile  OutputProfile
}

// Registry is the validated, immutable catalog.
type Registry struct {
	cfg        Config
	businesses map[string]Business
	templates  map[string]Template
	strategies map[string]Strategy
	profiles   map[string]OutputProfile
}

// New builds a Registry from cfg. It runs the full validation pass first and
// returns a *ConfigInvalidError naming every violation when the catalog is
// malformed; a partially valid registry is never handed out.
func New(cfg Config) (*Registry, error) {
	if violations := Validate(cfg); len(violations) > 0 {
		log.Error(log.CatCatalog, "catalog rejected", "violations", len(violations))
		return nil, &ConfigInvalidError{Violations: violations}
	}

	r := &Registry{
		cfg:        cfg,
		businesses: make(map[string]Business, len(cfg.Businesses)),
		templates:  make(map[string]Template, len(cfg.Templates)),
		strategies: make(map[string]Strategy, len(cfg.Strategies)),
		profiles:   make(map[string]OutputProfile, len(cfg.OutputProfiles)),
	}
	for _, b := range cfg.Businesses {
		r.businesses[b.BusinessID] = b
	}
	for _, t := range cfg.Templates {
		r.templates[t.TemplateID] = t
	}
	for _, s := range cfg.Strategies {
		r.strategies[s.StrategyID] = s
	}
	for _, p := range cfg.OutputProfiles {
		r.profiles[p.OutputProfileID] = p
	}

	log.Info(log.CatCatalog, "catalog loaded",
		"version", cfg.Version,
		"businesses", len(cfg.Businesses),
		"templates", len(cfg.Templates),
		"strategies", len(cfg.Strategies))
	return r, nil
}

// Version returns the catalog data version string.
func (r *Registry) Version() string {
	return r.cfg.Version
}

// Resolve returns businessID's default template, strategy and output profile.
// The defaults are guaranteed members of the business's enabled sets by the
// validation pass; Resolve never returns a partial result.
func (r *Registry) Resolve(businessID string) (Resolution, error) {
	b, ok := r.businesses[businessID]
	if !ok {
		return Resolution{}, notFound("business", businessID)
	}
	return Resolution{
		Business:        b,
		DefaultTemplate: r.templates[b.Defaults.TemplateID],
		DefaultStrategy: r.strategies[b.Defaults.StrategyID],
		DefaultProfile:  r.profiles[b.Defaults.OutputProfileID],
	}, nil
}

// ListTemplates returns the templates enabled for businessID, in the order
// the business declares them.
func (r *Registry) ListTemplates(businessID string) ([]Template, error) {
	b, ok := r.businesses[businessID]
	if !ok {
		return nil, notFound("business", businessID)
	}
	out := make([]Template, 0, len(b.EnabledTemplates))
	for _, id := range b.EnabledTemplates {
		out = append(out, r.templates[id])
	}
	return out, nil
}

// ListStrategies returns the strategies enabled for businessID, in the order
// the business declares them.
func (r *Registry) ListStrategies(businessID string) ([]Strategy, error) {
	b, ok := r.businesses[businessID]
	if !ok {
		return nil, notFound("business", businessID)
	}
	out := make([]Strategy, 0, len(b.EnabledStrategies))
	for _, id := range b.EnabledStrategies {
		out = append(out, r.strategies[id])
	}
	return out, nil
}

// Businesses returns all businesses in declaration order.
func (r *Registry) Businesses() []Business {
	out := make([]Business, len(r.cfg.Businesses))
	copy(out, r.cfg.Businesses)
	return out
}

// Template looks up a template by id.
func (r *Registry) Template(id string) (Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return Template{}, notFound("template", id)
	}
	return t, nil
}

// Strategy looks up a strategy by id.
func (r *Registry) Strategy(id string) (Strategy, error) {
	s, ok := r.strategies[id]
	if !ok {
		return Strategy{}, notFound("strategy", id)
	}
	return s, nil
}

// OutputProfile looks up an output profile by id.
func (r *Registry) OutputProfile(id string) (OutputProfile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return OutputProfile{}, notFound("output profile", id)
	}
	return p, nil
}
