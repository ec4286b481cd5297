// Package bar provides the built-in bar chart recipe: one bar per distinct
// category of the x column, aggregating the y column's values.
package bar

import (
	"context"
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/yonkmanjl/vizro/internal/dataset"
	"github.com/yonkmanjl/vizro/internal/figure"
	"github.com/yonkmanjl/vizro/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the bar recipe with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRecipe(&registry.Recipe{
		Type:        "bar",
		Description: "Aggregated bar chart over one categorical column.",
		Inputs: map[string]*registry.InputSpec{
			"x":   {Type: cty.String, Description: "Categorical column.", Required: true},
			"y":   {Type: cty.String, Description: "Numeric column to aggregate.", Required: true},
			"agg": {Type: cty.String, Description: "Aggregation: sum, mean, count, min or max.", Default: cty.StringVal("sum")},
		},
		Build: build,
	})
}

func build(ctx context.Context, frame *dataset.Frame, args map[string]cty.Value) (*figure.Figure, error) {
	xCol := args["x"].AsString()
	yCol := args["y"].AsString()
	agg := args["agg"].AsString()

	categories, err := frame.Strings(xCol)
	if err != nil {
		return nil, err
	}
	values, err := frame.Numbers(yCol)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]float64)
	for i, cat := range categories {
		grouped[cat] = append(grouped[cat], values[i])
	}

	labels := make([]string, 0, len(grouped))
	for cat := range grouped {
		labels = append(labels, cat)
	}
	sort.Strings(labels)

	bars := make([]float64, len(labels))
	for i, cat := range labels {
		bars[i], err = aggregate(agg, grouped[cat])
		if err != nil {
			return nil, err
		}
	}

	return &figure.Figure{
		Type:   "bar",
		Traces: []figure.Trace{{Labels: labels, Y: bars}},
		Layout: figure.Layout{XAxis: xCol, YAxis: fmt.Sprintf("%s(%s)", agg, yCol)},
	}, nil
}

func aggregate(agg string, values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, nil
	}
	switch agg {
	case "sum":
		var total float64
		for _, v := range values {
			total += v
		}
		return total, nil
	case "mean":
		var total float64
		for _, v := range values {
			total += v
		}
		return total / float64(len(values)), nil
	case "count":
		return float64(len(values)), nil
	case "min":
		out := values[0]
		for _, v := range values[1:] {
			if v < out {
				out = v
			}
		}
		return out, nil
	case "max":
		out := values[0]
		for _, v := range values[1:] {
			if v > out {
				out = v
			}
		}
		return out, nil
	}
	return 0, fmt.Errorf("unknown aggregation %q", agg)
}
