// Package builder turns a loaded config model into a frozen, validated
// dashboard snapshot: registry, components and action graph.
//
// All validation is eager. A malformed target, a foreign target, an unknown
// chart type or dataset, or an invalid selector aborts the build with an
// error; nothing is deferred to request time. Once Build returns, the
// snapshot is frozen and safe for unlocked concurrent reads.
package builder

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/yonkmanjl/vizro/internal/action"
	"github.com/yonkmanjl/vizro/internal/config"
	"github.com/yonkmanjl/vizro/internal/ctxlog"
	"github.com/yonkmanjl/vizro/internal/dataset"
	"github.com/yonkmanjl/vizro/internal/registry"
)

// Snapshot is one immutable build result. Rebuilds produce a new Snapshot
// which replaces the previous one wholesale; nothing inside is ever
// mutated after Build returns.
type Snapshot struct {
	Dashboard *config.Dashboard
	Registry  *registry.Registry
	Actions   *action.Graph
}

// DarkTheme reports whether the dashboard's default theme is dark.
func (s *Snapshot) DarkTheme() bool {
	return s.Dashboard.Theme == "dark"
}

// Build constructs a snapshot from the model. Modules contribute the chart
// recipes; the set registered must cover every chart type the model uses.
func Build(ctx context.Context, model *config.Model, modules ...registry.Module) (*Snapshot, error) {
	logger := ctxlog.FromContext(ctx)
	reg := registry.New()

	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("chart recipe modules registered", "count", len(modules))

	if err := loadDatasets(model, reg); err != nil {
		return nil, err
	}

	if err := addPages(model, reg); err != nil {
		return nil, err
	}

	graph, err := buildActionGraph(model, reg)
	if err != nil {
		return nil, err
	}

	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}

	if err := checkWiring(reg, graph); err != nil {
		return nil, err
	}

	reg.Freeze()
	logger.Debug("snapshot built", "pages", len(model.Pages), "datasets", len(model.Datasets))

	return &Snapshot{Dashboard: model.Dashboard, Registry: reg, Actions: graph}, nil
}

func loadDatasets(model *config.Model, reg *registry.Registry) error {
	seen := make(map[string]struct{}, len(model.Datasets))
	for _, d := range model.Datasets {
		if _, dup := seen[d.Name]; dup {
			return fmt.Errorf("duplicate dataset name %q", d.Name)
		}
		seen[d.Name] = struct{}{}

		frame, err := dataset.LoadCSV(d.Name, d.Path)
		if err != nil {
			return err
		}
		reg.AddFrame(frame)
	}
	return nil
}

func addPages(model *config.Model, reg *registry.Registry) error {
	for _, p := range model.Pages {
		if _, err := reg.AddPage(p.ID, p.Title); err != nil {
			return err
		}

		for _, c := range p.Charts {
			if err := reg.AddComponent(&registry.Component{
				ID:             c.ID,
				PageID:         p.ID,
				Kind:           registry.KindChart,
				OutputProperty: registry.PropertyFigure,
				InputProperty:  registry.PropertyClickData,
				Chart:          c,
			}); err != nil {
				return fmt.Errorf("page %q: %w", p.ID, err)
			}
		}

		for _, f := range p.Filters {
			if f.Column == "" {
				return fmt.Errorf("page %q: filter %q: column must not be empty", p.ID, f.ID)
			}
			if err := validateSelector(f.Selector); err != nil {
				return fmt.Errorf("page %q: filter %q: %w", p.ID, f.ID, err)
			}
			if err := reg.AddComponent(&registry.Component{
				ID:             f.ID,
				PageID:         p.ID,
				Kind:           registry.KindFilter,
				OutputProperty: registry.PropertyValue,
				InputProperty:  registry.PropertyValue,
				Selector:       f.Selector,
				Column:         f.Column,
			}); err != nil {
				return fmt.Errorf("page %q: %w", p.ID, err)
			}
		}

		for _, param := range p.Parameters {
			if err := validateSelector(param.Selector); err != nil {
				return fmt.Errorf("page %q: parameter %q: %w", p.ID, param.ID, err)
			}
			if err := reg.AddComponent(&registry.Component{
				ID:             param.ID,
				PageID:         p.ID,
				Kind:           registry.KindParameter,
				OutputProperty: registry.PropertyValue,
				InputProperty:  registry.PropertyValue,
				Selector:       param.Selector,
			}); err != nil {
				return fmt.Errorf("page %q: %w", p.ID, err)
			}
		}
	}
	return nil
}

// buildActionGraph constructs every page's actions. Construction is where
// target resolution happens; the resolved targets are copied back onto the
// triggering components so the update engine can consult them without
// re-parsing anything.
func buildActionGraph(model *config.Model, reg *registry.Registry) (*action.Graph, error) {
	graph := action.NewGraph()

	for _, p := range model.Pages {
		load, err := action.NewOnPageLoad(p.ID, reg)
		if err != nil {
			return nil, fmt.Errorf("page %q: %w", p.ID, err)
		}
		graph.Add(load)

		for _, f := range p.Filters {
			a, err := action.NewFilter(p.ID, f.ID, f.Targets, reg)
			if err != nil {
				return nil, fmt.Errorf("page %q: %w", p.ID, err)
			}
			control, _ := reg.Component(f.ID)
			control.Targets = a.Targets()
			graph.Add(a)
		}

		for _, param := range p.Parameters {
			a, err := action.NewParameter(p.ID, param.ID, param.Targets, reg)
			if err != nil {
				return nil, fmt.Errorf("page %q: %w", p.ID, err)
			}
			control, _ := reg.Component(param.ID)
			control.Targets = a.Targets()
			graph.Add(a)
		}

		for _, c := range p.Charts {
			if len(c.Interactions) == 0 {
				continue
			}
			a, err := action.NewFilterInteraction(p.ID, c.ID, c.Interactions, reg)
			if err != nil {
				return nil, fmt.Errorf("page %q: %w", p.ID, err)
			}
			source, _ := reg.Component(c.ID)
			source.Interactions = a.Targets()
			graph.Add(a)
		}
	}

	return graph, nil
}

// checkWiring computes every action's declared inputs and outputs once, so
// that any descriptor-level problem surfaces at build time rather than when
// the runtime wires its callback graph.
func checkWiring(reg *registry.Registry, graph *action.Graph) error {
	for _, page := range reg.Pages() {
		for _, a := range graph.ActionsOn(page.ID) {
			if _, err := a.Inputs(reg, graph); err != nil {
				return fmt.Errorf("action %q: %w", a.ID(), err)
			}
			if _, err := a.Outputs(reg); err != nil {
				return fmt.Errorf("action %q: %w", a.ID(), err)
			}
		}
	}
	return nil
}

func validateSelector(s *config.Selector) error {
	if s == nil {
		return nil
	}
	if !config.KnownSelector(s.Kind) {
		return fmt.Errorf("unknown selector kind %q", s.Kind)
	}
	switch s.Kind {
	case config.SelectorSlider, config.SelectorRangeSlider:
		if s.Min == nil || s.Max == nil {
			return fmt.Errorf("selector %q requires min and max", s.Kind)
		}
		if *s.Min >= *s.Max {
			return fmt.Errorf("selector %q: min must be below max", s.Kind)
		}
	default:
		if err := validateInitialValue(s); err != nil {
			return err
		}
	}
	return nil
}

// validateInitialValue checks that an explicit initial value is among the
// declared options, when both are present.
func validateInitialValue(s *config.Selector) error {
	if s.Value == cty.NilVal || len(s.Options) == 0 {
		return nil
	}
	for _, opt := range s.Options {
		if opt.RawEquals(s.Value) {
			return nil
		}
	}
	return fmt.Errorf("initial value %s is not among the declared options", s.Value.GoString())
}
