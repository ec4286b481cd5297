// Package scatter provides the built-in scatter chart recipe: one marker per
// row, optionally split into one trace per distinct value of a color column.
package scatter

import (
	"context"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/yonkmanjl/vizro/internal/dataset"
	"github.com/yonkmanjl/vizro/internal/figure"
	"github.com/yonkmanjl/vizro/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the scatter recipe with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRecipe(&registry.Recipe{
		Type:        "scatter",
		Description: "Scatter plot of two numeric columns.",
		Inputs: map[string]*registry.InputSpec{
			"x":     {Type: cty.String, Description: "Numeric column for the x axis.", Required: true},
			"y":     {Type: cty.String, Description: "Numeric column for the y axis.", Required: true},
			"color": {Type: cty.String, Description: "Optional categorical column; one trace per value."},
		},
		Build: build,
	})
}

func build(ctx context.Context, frame *dataset.Frame, args map[string]cty.Value) (*figure.Figure, error) {
	xCol := args["x"].AsString()
	yCol := args["y"].AsString()

	xs, err := frame.Numbers(xCol)
	if err != nil {
		return nil, err
	}
	ys, err := frame.Numbers(yCol)
	if err != nil {
		return nil, err
	}

	layout := figure.Layout{XAxis: xCol, YAxis: yCol}

	colorArg, hasColor := args["color"]
	if !hasColor || colorArg.IsNull() {
		return &figure.Figure{
			Type:   "scatter",
			Traces: []figure.Trace{{X: xs, Y: ys}},
			Layout: layout,
		}, nil
	}

	groups, err := frame.Strings(colorArg.AsString())
	if err != nil {
		return nil, err
	}

	byGroup := make(map[string]*figure.Trace)
	for i, g := range groups {
		trace, ok := byGroup[g]
		if !ok {
			trace = &figure.Trace{Name: g}
			byGroup[g] = trace
		}
		trace.X = append(trace.X, xs[i])
		trace.Y = append(trace.Y, ys[i])
	}

	names := make([]string, 0, len(byGroup))
	for g := range byGroup {
		names = append(names, g)
	}
	sort.Strings(names)

	traces := make([]figure.Trace, len(names))
	for i, g := range names {
		traces[i] = *byGroup[g]
	}

	return &figure.Figure{Type: "scatter", Traces: traces, Layout: layout}, nil
}
