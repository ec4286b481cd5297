package engine

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/yonkmanjl/vizro/internal/config"
	"github.com/yonkmanjl/vizro/internal/ctxlog"
	"github.com/yonkmanjl/vizro/internal/dataset"
	"github.com/yonkmanjl/vizro/internal/figure"
	"github.com/yonkmanjl/vizro/internal/registry"
	"github.com/yonkmanjl/vizro/internal/target"
)

// Theme template names applied to recomputed figures.
const (
	templateDark  = "vizro_dark"
	templateLight = "vizro_light"
)

// Update recomputes the figures of the targeted components. targetIDs is the
// ordered resolved target list of the invoking action; duplicate ids
// collapse into one map entry. Components not listed are never touched.
func Update(ctx context.Context, reg *registry.Registry, targetIDs []string, values GroupedValues) (map[string]*figure.Figure, error) {
	logger := ctxlog.FromContext(ctx)
	result := make(map[string]*figure.Figure, len(targetIDs))

	for _, id := range targetIDs {
		if _, done := result[id]; done {
			continue
		}
		fig, err := updateOne(ctx, reg, id, values)
		if err != nil {
			return nil, err
		}
		result[id] = fig
		logger.Debug("figure recomputed", "component", id)
	}

	return result, nil
}

func updateOne(ctx context.Context, reg *registry.Registry, id string, values GroupedValues) (*figure.Figure, error) {
	component, err := reg.Component(id)
	if err != nil {
		return nil, err
	}
	if component.Kind != registry.KindChart {
		return nil, fmt.Errorf("component %q is a %s, only charts can be recomputed", id, component.Kind)
	}

	recipe, ok := reg.Recipe(component.Chart.Type)
	if !ok {
		return nil, fmt.Errorf("chart %q: unknown chart type %q", id, component.Chart.Type)
	}
	frame, ok := reg.Frame(component.Chart.Data)
	if !ok {
		return nil, fmt.Errorf("chart %q: unknown dataset %q", id, component.Chart.Data)
	}

	args := recipe.ApplyDefaults(component.Chart.Arguments)

	frame, err = applyFilters(reg, frame, id, values.Filters)
	if err != nil {
		return nil, fmt.Errorf("chart %q: %w", id, err)
	}
	frame, err = applyInteractions(reg, frame, id, values.FilterInteraction)
	if err != nil {
		return nil, fmt.Errorf("chart %q: %w", id, err)
	}
	frame, args, err = applyParameters(reg, recipe, frame, args, id, values.Parameters)
	if err != nil {
		return nil, err
	}

	fig, err := recipe.Build(ctx, frame, args)
	if err != nil {
		return nil, fmt.Errorf("chart %q: %w", id, err)
	}

	if fig.Layout.Title == "" {
		fig.Layout.Title = component.Chart.Title
	}
	if values.Theme {
		fig.Layout.Template = templateDark
	} else {
		fig.Layout.Template = templateLight
	}
	return fig, nil
}

// applyFilters subsets the frame by every filter whose target set includes
// chartID and whose current value represents an active selection.
func applyFilters(reg *registry.Registry, frame *dataset.Frame, chartID string, filters []ControlValue) (*dataset.Frame, error) {
	for _, fv := range filters {
		control, err := reg.Component(fv.ComponentID)
		if err != nil {
			return nil, err
		}
		if !targetsInclude(control.Targets, chartID) || !isSelection(fv.Value) {
			continue
		}
		frame, err = subsetByValue(frame, control, fv.Value)
		if err != nil {
			return nil, err
		}
	}
	return frame, nil
}

// applyInteractions subsets the frame by every cross-chart click whose
// source declares chartID as an interaction target.
func applyInteractions(reg *registry.Registry, frame *dataset.Frame, chartID string, interactions []InteractionValue) (*dataset.Frame, error) {
	for _, iv := range interactions {
		source, err := reg.Component(iv.SourceID)
		if err != nil {
			return nil, err
		}
		if !targetsInclude(source.Interactions, chartID) || !isSelection(iv.Value) {
			continue
		}
		frame, err = frame.FilterEqual(iv.Column, iv.Value)
		if err != nil {
			return nil, err
		}
	}
	return frame, nil
}

// applyParameters applies every parameter override whose declared target set
// includes chartID. Parameters arrive in page declaration order, so a later
// override to the same argument path wins.
func applyParameters(reg *registry.Registry, recipe *registry.Recipe, frame *dataset.Frame, args map[string]cty.Value, chartID string, parameters []ControlValue) (*dataset.Frame, map[string]cty.Value, error) {
	for _, pv := range parameters {
		control, err := reg.Component(pv.ComponentID)
		if err != nil {
			return nil, nil, err
		}
		if !isSelection(pv.Value) {
			continue
		}
		for _, t := range control.Targets {
			if t.ComponentID != chartID {
				continue
			}
			switch {
			case t.Path[0] == "data_frame":
				if len(t.Path) != 2 || !frame.HasColumn(t.Path[1]) {
					return nil, nil, &UnsupportedArgumentPathError{ComponentID: chartID, Path: t.ArgPath()}
				}
				if pv.Value.Type().IsTupleType() || pv.Value.Type().IsListType() {
					frame, err = frame.FilterIn(t.Path[1], pv.Value.AsValueSlice())
				} else {
					frame, err = frame.FilterEqual(t.Path[1], pv.Value)
				}
				if err != nil {
					return nil, nil, err
				}
			case recipe.SupportsArgument(t.Path[0]):
				value, err := convertOverride(recipe.Inputs[t.Path[0]].Type, t.Path[1:], pv.Value)
				if err != nil {
					return nil, nil, fmt.Errorf("chart %q: parameter %q targeting %q: %w", chartID, pv.ComponentID, t.ArgPath(), err)
				}
				args[t.Path[0]] = setAtPath(args[t.Path[0]], t.Path[1:], value)
			default:
				return nil, nil, &UnsupportedArgumentPathError{ComponentID: chartID, Path: t.ArgPath()}
			}
		}
	}
	return frame, args, nil
}

// convertOverride coerces an override value to the type the recipe declares
// at the targeted position. Values arrive from the wire, so a mismatch is a
// client error, not a programming one. Nested object paths descend the
// declared attribute types; a dynamic or unresolvable position accepts the
// value as-is.
func convertOverride(declared cty.Type, path []string, value cty.Value) (cty.Value, error) {
	for _, seg := range path {
		if !declared.IsObjectType() || !declared.HasAttribute(seg) {
			return value, nil
		}
		declared = declared.AttributeType(seg)
	}
	if declared.Equals(cty.DynamicPseudoType) {
		return value, nil
	}
	converted, err := convert.Convert(value, declared)
	if err != nil {
		return cty.NilVal, fmt.Errorf("cannot convert %s to %s: %w",
			value.Type().FriendlyName(), declared.FriendlyName(), err)
	}
	return converted, nil
}

func targetsInclude(targets []target.Target, id string) bool {
	for _, t := range targets {
		if t.ComponentID == id {
			return true
		}
	}
	return false
}

// isSelection reports whether a control value represents an active
// selection. Null means the control has no value yet; an empty collection
// means nothing is selected, which leaves the data untouched.
func isSelection(v cty.Value) bool {
	if v == cty.NilVal || v.IsNull() {
		return false
	}
	if v.Type().IsTupleType() || v.Type().IsListType() {
		return v.LengthInt() > 0
	}
	return true
}

// subsetByValue applies one filter value to the frame according to the
// filter's selector kind: range sliders bound a numeric interval,
// multi-select widgets keep any matching row, everything else matches
// equality.
func subsetByValue(frame *dataset.Frame, control *registry.Component, value cty.Value) (*dataset.Frame, error) {
	column := control.Column
	if value.Type().IsTupleType() || value.Type().IsListType() {
		elems := value.AsValueSlice()
		if control.Selector != nil && control.Selector.Kind == config.SelectorRangeSlider {
			if len(elems) != 2 {
				return nil, fmt.Errorf("filter %q: range value must have exactly two bounds", control.ID)
			}
			lo, err := rangeBound(control.ID, elems[0])
			if err != nil {
				return nil, err
			}
			hi, err := rangeBound(control.ID, elems[1])
			if err != nil {
				return nil, err
			}
			return frame.FilterRange(column, lo, hi)
		}
		return frame.FilterIn(column, elems)
	}
	return frame.FilterEqual(column, value)
}

// rangeBound coerces one wire-supplied range bound to a float64.
func rangeBound(filterID string, v cty.Value) (float64, error) {
	n, err := convert.Convert(v, cty.Number)
	if err != nil || n.IsNull() {
		return 0, fmt.Errorf("filter %q: range bound %s is not a number", filterID, v.Type().FriendlyName())
	}
	f, _ := n.AsBigFloat().Float64()
	return f, nil
}
