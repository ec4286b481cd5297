package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/yonkmanjl/vizro/internal/action"
	"github.com/yonkmanjl/vizro/internal/builder"
	"github.com/yonkmanjl/vizro/internal/engine"
	"github.com/yonkmanjl/vizro/internal/metrics"
	"github.com/yonkmanjl/vizro/internal/registry"
)

// Update is one component property overwrite sent back to the client after an
// invocation.
type Update struct {
	ComponentID string          `json:"component_id"`
	Property    string          `json:"property"`
	Figure      json.RawMessage `json:"figure"`
}

// groupValues assembles the invocation context for one page from the session
// state. Controls the client never touched fall back to their declared
// initial value; the update engine treats null values as inactive.
func groupValues(reg *registry.Registry, pageID string, sess *Session) (engine.GroupedValues, error) {
	page, err := reg.Page(pageID)
	if err != nil {
		return engine.GroupedValues{}, err
	}

	values := engine.GroupedValues{Theme: sess.Dark()}
	for _, id := range page.ComponentIDs {
		comp, err := reg.Component(id)
		if err != nil {
			return engine.GroupedValues{}, err
		}
		switch comp.Kind {
		case registry.KindFilter:
			values.Filters = append(values.Filters, engine.ControlValue{
				ComponentID: id,
				Value:       controlValue(comp, sess),
			})
		case registry.KindParameter:
			values.Parameters = append(values.Parameters, engine.ControlValue{
				ComponentID: id,
				Value:       controlValue(comp, sess),
			})
		case registry.KindChart:
			if click, ok := sess.Click(id); ok {
				values.FilterInteraction = append(values.FilterInteraction, engine.InteractionValue{
					SourceID: id,
					Column:   click.Column,
					Value:    click.Value,
				})
			}
		}
	}
	return values, nil
}

func controlValue(comp *registry.Component, sess *Session) cty.Value {
	if v := sess.Control(comp.ID); v != cty.NilVal {
		return v
	}
	if comp.Selector != nil {
		return comp.Selector.Value
	}
	return cty.NilVal
}

// dispatch invokes every action the trigger fires and flattens the results
// into per-output updates, in declared output order. mets may be nil.
func dispatch(ctx context.Context, snap *builder.Snapshot, sess *Session, trigger action.Input, mets *metrics.Metrics) ([]Update, error) {
	pageID := sess.PageID()
	if pageID == "" {
		return nil, fmt.Errorf("no page selected")
	}

	var updates []Update
	for _, a := range snap.Actions.Triggered(pageID, trigger) {
		values, err := groupValues(snap.Registry, pageID, sess)
		if err != nil {
			return nil, err
		}

		start := time.Now()
		figures, err := a.Invoke(ctx, snap.Registry, values)
		if mets != nil {
			kind := string(a.Kind())
			mets.InvocationsTotal.WithLabelValues(kind).Inc()
			mets.RecomputeDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
			if err != nil {
				mets.InvocationErrors.WithLabelValues(kind).Inc()
			}
		}
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", a.ID(), err)
		}

		outputs, err := a.Outputs(snap.Registry)
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", a.ID(), err)
		}
		for _, out := range outputs {
			fig, ok := figures[out.ComponentID]
			if !ok {
				continue
			}
			encoded, err := fig.Encode()
			if err != nil {
				return nil, fmt.Errorf("component %q: %w", out.ComponentID, err)
			}
			updates = append(updates, Update{
				ComponentID: out.ComponentID,
				Property:    out.Property,
				Figure:      encoded,
			})
		}
	}
	return updates, nil
}
