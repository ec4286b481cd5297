package action

import (
	"context"
	"fmt"

	"github.com/yonkmanjl/vizro/internal/engine"
	"github.com/yonkmanjl/vizro/internal/figure"
	"github.com/yonkmanjl/vizro/internal/registry"
	"github.com/yonkmanjl/vizro/internal/target"
)

// FilterInteractionAction cross-filters targeted charts when a point is
// clicked on the source chart.
type FilterInteractionAction struct {
	base
	sourceID string
}

// NewFilterInteraction constructs and validates an interaction action for
// one source chart. targetIDs are the charts the click subsets, declared on
// the source chart's `interactions` attribute.
func NewFilterInteraction(pageID, sourceID string, targetIDs []string, reg *registry.Registry) (*FilterInteractionAction, error) {
	if len(targetIDs) == 0 {
		return nil, fmt.Errorf("interaction on %q: targets must not be empty", sourceID)
	}
	if err := requireChart(reg, sourceID); err != nil {
		return nil, fmt.Errorf("interaction on %q: %w", sourceID, err)
	}
	targets, err := target.ResolveComponents(targetIDs, pageID, reg)
	if err != nil {
		return nil, fmt.Errorf("interaction on %q: %w", sourceID, err)
	}
	for _, t := range targets {
		if err := requireChart(reg, t.ComponentID); err != nil {
			return nil, fmt.Errorf("interaction on %q: %w", sourceID, err)
		}
	}
	return &FilterInteractionAction{
		base:     base{id: sourceID + ".filter_interaction", pageID: pageID, targets: targets},
		sourceID: sourceID,
	}, nil
}

// Kind implements Action.
func (a *FilterInteractionAction) Kind() Kind { return KindFilterInteraction }

// Trigger implements Action: click data on the source chart.
func (a *FilterInteractionAction) Trigger() Input {
	return Input{ComponentID: a.sourceID, Property: registry.PropertyClickData}
}

// Invoke implements Action.
func (a *FilterInteractionAction) Invoke(ctx context.Context, reg *registry.Registry, values engine.GroupedValues) (map[string]*figure.Figure, error) {
	return a.invoke(ctx, reg, values)
}
