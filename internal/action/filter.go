package action

import (
	"context"
	"fmt"

	"github.com/yonkmanjl/vizro/internal/engine"
	"github.com/yonkmanjl/vizro/internal/figure"
	"github.com/yonkmanjl/vizro/internal/registry"
	"github.com/yonkmanjl/vizro/internal/target"
)

// FilterAction recomputes the charts subsetted by a filter control. Its
// targets are whole components: changing a filter rewrites each targeted
// chart's figure property.
type FilterAction struct {
	base
	controlID string
}

// NewFilter constructs and validates a filter action. explicitTargets are
// bare component ids; when empty, the filter targets every chart on the
// page, in page definition order.
func NewFilter(pageID, controlID string, explicitTargets []string, reg *registry.Registry) (*FilterAction, error) {
	ids := explicitTargets
	if len(ids) == 0 {
		page, err := reg.Page(pageID)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", controlID, err)
		}
		ids = page.ChartIDs
	}
	targets, err := target.ResolveComponents(ids, pageID, reg)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", controlID, err)
	}
	for _, t := range targets {
		if err := requireChart(reg, t.ComponentID); err != nil {
			return nil, fmt.Errorf("filter %q: %w", controlID, err)
		}
	}
	return &FilterAction{
		base:      base{id: controlID + ".filter", pageID: pageID, targets: targets},
		controlID: controlID,
	}, nil
}

// Kind implements Action.
func (a *FilterAction) Kind() Kind { return KindFilter }

// Trigger implements Action: the filter's selector value.
func (a *FilterAction) Trigger() Input {
	return Input{ComponentID: a.controlID, Property: registry.PropertyValue}
}

// Invoke implements Action.
func (a *FilterAction) Invoke(ctx context.Context, reg *registry.Registry, values engine.GroupedValues) (map[string]*figure.Figure, error) {
	return a.invoke(ctx, reg, values)
}
