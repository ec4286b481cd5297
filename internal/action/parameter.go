package action

import (
	"context"
	"fmt"

	"github.com/yonkmanjl/vizro/internal/engine"
	"github.com/yonkmanjl/vizro/internal/figure"
	"github.com/yonkmanjl/vizro/internal/registry"
	"github.com/yonkmanjl/vizro/internal/target"
)

// ParameterAction propagates a parameter control's value to the argument
// paths of its targeted chart components.
type ParameterAction struct {
	base
	controlID string
}

// NewParameter constructs and validates a parameter action. rawTargets must
// be non-empty wire-format strings; each is parsed and checked against the
// owning page. Any invalid target fails construction.
func NewParameter(pageID, controlID string, rawTargets []string, reg *registry.Registry) (*ParameterAction, error) {
	if len(rawTargets) == 0 {
		return nil, fmt.Errorf("parameter %q: targets must not be empty", controlID)
	}
	targets, err := target.Resolve(rawTargets, pageID, reg)
	if err != nil {
		return nil, fmt.Errorf("parameter %q: %w", controlID, err)
	}
	for _, t := range targets {
		if err := requireChart(reg, t.ComponentID); err != nil {
			return nil, fmt.Errorf("parameter %q: %w", controlID, err)
		}
	}
	return &ParameterAction{
		base:      base{id: controlID + ".parameter", pageID: pageID, targets: targets},
		controlID: controlID,
	}, nil
}

// Kind implements Action.
func (a *ParameterAction) Kind() Kind { return KindParameter }

// Trigger implements Action: the parameter's selector value.
func (a *ParameterAction) Trigger() Input {
	return Input{ComponentID: a.controlID, Property: registry.PropertyValue}
}

// Invoke implements Action.
func (a *ParameterAction) Invoke(ctx context.Context, reg *registry.Registry, values engine.GroupedValues) (map[string]*figure.Figure, error) {
	return a.invoke(ctx, reg, values)
}

// requireChart rejects control-typed targets; only charts have a figure to
// recompute.
func requireChart(reg *registry.Registry, componentID string) error {
	component, err := reg.Component(componentID)
	if err != nil {
		return err
	}
	if component.Kind != registry.KindChart {
		return fmt.Errorf("target %q is a %s, only charts can be targeted", componentID, component.Kind)
	}
	return nil
}
