// Package histogram provides the built-in histogram recipe: equal-width bins
// over one numeric column.
package histogram

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/yonkmanjl/vizro/internal/dataset"
	"github.com/yonkmanjl/vizro/internal/figure"
	"github.com/yonkmanjl/vizro/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the histogram recipe with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRecipe(&registry.Recipe{
		Type:        "histogram",
		Description: "Histogram of one numeric column.",
		Inputs: map[string]*registry.InputSpec{
			"x":    {Type: cty.String, Description: "Numeric column to bin.", Required: true},
			"bins": {Type: cty.Number, Description: "Number of equal-width bins.", Default: cty.NumberIntVal(10)},
		},
		Build: build,
	})
}

func build(ctx context.Context, frame *dataset.Frame, args map[string]cty.Value) (*figure.Figure, error) {
	xCol := args["x"].AsString()
	values, err := frame.Numbers(xCol)
	if err != nil {
		return nil, err
	}

	binsFloat, _ := args["bins"].AsBigFloat().Float64()
	bins := int(binsFloat)
	if bins < 1 {
		return nil, fmt.Errorf("bins must be at least 1, got %d", bins)
	}

	layout := figure.Layout{XAxis: xCol, YAxis: "count"}
	if len(values) == 0 {
		return &figure.Figure{Type: "histogram", Traces: []figure.Trace{{}}, Layout: layout}, nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	// A constant column collapses into a single bin.
	if lo == hi {
		return &figure.Figure{
			Type:   "histogram",
			Traces: []figure.Trace{{X: []float64{lo}, Y: []float64{float64(len(values))}}},
			Layout: layout,
		}, nil
	}

	width := (hi - lo) / float64(bins)
	counts := make([]float64, bins)
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	centers := make([]float64, bins)
	for i := range centers {
		centers[i] = lo + width*(float64(i)+0.5)
	}

	return &figure.Figure{
		Type:   "histogram",
		Traces: []figure.Trace{{X: centers, Y: counts}},
		Layout: layout,
	}, nil
}
