package engine

import "github.com/zclconf/go-cty/cty"

// ControlValue is the current value of one triggering control, as supplied
// by the runtime at invocation time.
type ControlValue struct {
	ComponentID string
	Value       cty.Value
}

// InteractionValue is a cross-chart selection: a click on SourceID selecting
// the rows whose Column equals Value.
type InteractionValue struct {
	SourceID string
	Column   string
	Value    cty.Value
}

// GroupedValues is the invocation context: per-call argument values grouped
// by category. It is assembled by the runtime for each trigger and never
// persisted. Parameters must appear in page declaration order; override
// application is last-applied-wins per argument path.
type GroupedValues struct {
	Filters           []ControlValue
	Parameters        []ControlValue
	FilterInteraction []InteractionValue
	Theme             bool
}
