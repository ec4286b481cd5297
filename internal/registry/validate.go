package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yonkmanjl/vizro/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Validate performs a strict parity check between the dashboard definition
// and the compiled recipes. It checks that every chart's type has a
// registered recipe, that the chart's arguments are declared by that recipe
// with convertible types, that no required input is missing, and that every
// chart references a loaded dataset. All problems are collected and reported
// together so a definition author fixes one build, not one error per build.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, page := range r.Pages() {
		for _, id := range page.ChartIDs {
			chart := r.components[id].Chart

			recipe, ok := r.recipes[chart.Type]
			if !ok {
				errs = append(errs, fmt.Sprintf("chart %q: unknown chart type %q", id, chart.Type))
				continue
			}

			frame, ok := r.frames[chart.Data]
			if !ok {
				errs = append(errs, fmt.Sprintf("chart %q: unknown dataset %q", id, chart.Data))
			} else {
				logger.Debug("chart dataset resolved", "chart", id, "dataset", chart.Data, "rows", frame.Len())
			}

			for _, name := range sortedKeys(chart.Arguments) {
				spec, declared := recipe.Inputs[name]
				if !declared {
					errs = append(errs, fmt.Sprintf("chart %q: argument %q is not declared by recipe %q", id, name, chart.Type))
					continue
				}
				if spec.Type.Equals(cty.DynamicPseudoType) {
					continue
				}
				if _, err := convert.Convert(chart.Arguments[name], spec.Type); err != nil {
					errs = append(errs, fmt.Sprintf("chart %q, argument %q: type mismatch. Recipe %q requires %s: %v",
						id, name, chart.Type, spec.Type.FriendlyName(), err))
				}
			}

			for _, name := range sortedRecipeInputs(recipe) {
				spec := recipe.Inputs[name]
				if !spec.Required {
					continue
				}
				if _, present := chart.Arguments[name]; !present {
					errs = append(errs, fmt.Sprintf("chart %q: recipe %q requires argument %q", id, chart.Type, name))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func sortedKeys(m map[string]cty.Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedRecipeInputs(rc *Recipe) []string {
	keys := make([]string, 0, len(rc.Inputs))
	for k := range rc.Inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
