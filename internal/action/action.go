package action

import (
	"context"

	"github.com/yonkmanjl/vizro/internal/engine"
	"github.com/yonkmanjl/vizro/internal/figure"
	"github.com/yonkmanjl/vizro/internal/registry"
	"github.com/yonkmanjl/vizro/internal/target"
)

// Kind tags the action variants.
type Kind string

// Action kinds.
const (
	KindFilter            Kind = "filter"
	KindParameter         Kind = "parameter"
	KindFilterInteraction Kind = "filter_interaction"
	KindOnPageLoad        Kind = "on_page_load"
)

// The global theme toggle every action reads alongside its page's controls.
const (
	ThemeSelectorID       = "theme-selector"
	ThemeSelectorProperty = "checked"
)

// Input is a declared reactive dependency: a component property the runtime
// must supply the current value of on every invocation.
type Input struct {
	ComponentID string `json:"component_id"`
	Property    string `json:"property"`
}

// Output is a declared reactive destination: a component property the
// runtime may overwrite with an invocation result. AllowDuplicate permits
// several actions to write the same property within one reactive cycle.
type Output struct {
	ComponentID    string `json:"component_id"`
	Property       string `json:"property"`
	AllowDuplicate bool   `json:"allow_duplicate"`
}

// Inputs is the reactive input set of an action, grouped by category.
type Inputs struct {
	Filters           []Input `json:"filters"`
	Parameters        []Input `json:"parameters"`
	FilterInteraction []Input `json:"filter_interaction"`
	ThemeSelector     Input   `json:"theme_selector"`
}

// Action is the capability interface all variants implement. Inputs and
// Outputs are queried by the runtime when wiring the reactive graph; Invoke
// is called on every matching trigger and is stateless given the grouped
// values.
type Action interface {
	ID() string
	Kind() Kind
	PageID() string
	// Trigger is the input whose change fires this action.
	Trigger() Input
	// Targets is the ordered, immutable resolved target list.
	Targets() []target.Target
	Inputs(reg *registry.Registry, g *Graph) (Inputs, error)
	Outputs(reg *registry.Registry) ([]Output, error)
	Invoke(ctx context.Context, reg *registry.Registry, values engine.GroupedValues) (map[string]*figure.Figure, error)
}

// base carries the state shared by all variants.
type base struct {
	id      string
	pageID  string
	targets []target.Target
}

func (b *base) ID() string               { return b.id }
func (b *base) PageID() string           { return b.pageID }
func (b *base) Targets() []target.Target { return b.targets }

// Inputs aggregates the page's reactive inputs; identical for every
// variant, because any recomputation needs the full current control state.
func (b *base) Inputs(reg *registry.Registry, g *Graph) (Inputs, error) {
	return AggregateInputs(reg, g, b.pageID)
}

// Outputs maps the resolved targets to output descriptors.
func (b *base) Outputs(reg *registry.Registry) ([]Output, error) {
	return MapOutputs(reg, b.targets)
}

// invoke recomputes the figures of this action's targets.
func (b *base) invoke(ctx context.Context, reg *registry.Registry, values engine.GroupedValues) (map[string]*figure.Figure, error) {
	ids := make([]string, len(b.targets))
	for i, t := range b.targets {
		ids[i] = t.ComponentID
	}
	return engine.Update(ctx, reg, ids, values)
}
