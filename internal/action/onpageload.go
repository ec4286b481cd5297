package action

import (
	"context"
	"fmt"

	"github.com/yonkmanjl/vizro/internal/engine"
	"github.com/yonkmanjl/vizro/internal/figure"
	"github.com/yonkmanjl/vizro/internal/registry"
	"github.com/yonkmanjl/vizro/internal/target"
)

// OnPageLoadAction recomputes every chart on a page with the current
// control values. The runtime fires it once when a session navigates to the
// page.
type OnPageLoadAction struct {
	base
}

// NewOnPageLoad constructs the page-load action, targeting all charts on
// the page in definition order.
func NewOnPageLoad(pageID string, reg *registry.Registry) (*OnPageLoadAction, error) {
	page, err := reg.Page(pageID)
	if err != nil {
		return nil, fmt.Errorf("on_page_load: %w", err)
	}
	targets, err := target.ResolveComponents(page.ChartIDs, pageID, reg)
	if err != nil {
		return nil, fmt.Errorf("on_page_load for page %q: %w", pageID, err)
	}
	return &OnPageLoadAction{
		base: base{id: pageID + ".on_page_load", pageID: pageID, targets: targets},
	}, nil
}

// Kind implements Action.
func (a *OnPageLoadAction) Kind() Kind { return KindOnPageLoad }

// Trigger implements Action: the synthetic page activation input.
func (a *OnPageLoadAction) Trigger() Input {
	return Input{ComponentID: a.pageID, Property: "active"}
}

// Invoke implements Action.
func (a *OnPageLoadAction) Invoke(ctx context.Context, reg *registry.Registry, values engine.GroupedValues) (map[string]*figure.Figure, error) {
	return a.invoke(ctx, reg, values)
}
