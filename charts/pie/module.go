// Package pie provides the built-in pie chart recipe: one slice per distinct
// value of the names column, sized by the summed values column.
package pie

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

// Register registers the pie recipe with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRecipe(&registry.Recipe{
		Type:        "pie",
		Description: "Pie chart of summed values per category.",
		Inputs: map[string]*registry.InputSpec{
			"names":  {Type: cty.String, Description: "Categorical column naming the slices.", Required: true},
			"values": {Type: cty.String, Description: "Numeric column sized by slice.", Required: true},
			"hole":   {Type: cty.Number, Description: "Inner radius fraction; 0 is a full pie.", Default: cty.NumberFloatVal(0)},
		},
		Build: build,
	})
}

func build(ctx context.Context, frame *dataset.Frame, args map[string]cty.Value) (*figure.Figure, error) {
	names, err := frame.Strings(args["names"].AsString())
	if err != nil {
		return nil, err
	}
	values, err := frame.Numbers(args["values"].AsString())
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	for i, name := range names {
		totals[name] += values[i]
	}

	labels := make([]string, 0, len(totals))
	for name := range totals {
		labels = append(labels, name)
	}
	sort.Strings(labels)

	sizes := make([]float64, len(labels))
	for i, name := range labels {
		sizes[i] = totals[name]
	}

	hole, _ := args["hole"].AsBigFloat().Float64()
	return &figure.Figure{
		Type:   "pie",
		Traces: []figure.Trace{{Labels: labels, Values: sizes, Hole: hole}},
	}, nil
}
