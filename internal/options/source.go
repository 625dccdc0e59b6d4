package options

import (
	"context"
	"slices"

	"timesheet-assistant/config"
	"timesheet-assistant/internal/dialogue"
)

// Source serves the option lists shown in classification prompts.
type Source struct {
	opts dialogue.Options
}

// New builds a Source from configuration. Empty lists fall back to the defaults.
func New(cfg config.OptionsConfig) *Source {
	return &Source{opts: dialogue.Options{
		Matters:       orDefault(cfg.Matters, config.DefaultMatters),
		CostCentres:   orDefault(cfg.CostCentres, config.DefaultCostCentres),
		BusinessAreas: orDefault(cfg.BusinessAreas, config.DefaultBusinessAreas),
		Subcategories: orDefault(cfg.Subcategories, config.DefaultSubcategories),
	}}
}

// Options returns a copy so callers cannot mutate the shared lists.
func (s *Source) Options(_ context.Context) dialogue.Options {
	return dialogue.Options{
		Matters:       slices.Clone(s.opts.Matters),
		CostCentres:   slices.Clone(s.opts.CostCentres),
		BusinessAreas: slices.Clone(s.opts.BusinessAreas),
		Subcategories: slices.Clone(s.opts.Subcategories),
	}
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return slices.Clone(def)
	}
	return slices.Clone(v)
}
