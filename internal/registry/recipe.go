package registry

import (
	"context"

	"github.com/yonkmanjl/vizro/internal/dataset"
	"github.com/yonkmanjl/vizro/internal/figure"
	"github.com/zclconf/go-cty/cty"
)

// BuildFunc constructs a figure from a frame and the effective arguments.
// Implementations must be pure: no retained state, no mutation of the frame.
type BuildFunc func(ctx context.Context, frame *dataset.Frame, args map[string]cty.Value) (*figure.Figure, error)

// InputSpec declares one argument a recipe accepts: its cty type, whether it
// is required, and the default applied when it is absent.
type InputSpec struct {
	Type        cty.Type
	Description string
	Required    bool
	Default     cty.Value
}

// Recipe is a registered chart constructor: the declared argument schema
// plus the Go function that builds the figure. The schema is what config
// arguments and parameter override paths are validated against.
type Recipe struct {
	Type        string
	Description string
	Inputs      map[string]*InputSpec
	Build       BuildFunc
}

// SupportsArgument reports whether name is a declared input of the recipe.
func (rc *Recipe) SupportsArgument(name string) bool {
	_, ok := rc.Inputs[name]
	return ok
}

// ApplyDefaults returns a copy of args with every absent optional input
// filled from its declared default.
func (rc *Recipe) ApplyDefaults(args map[string]cty.Value) map[string]cty.Value {
	out := make(map[string]cty.Value, len(rc.Inputs))
	for name, spec := range rc.Inputs {
		if !spec.Required && spec.Default != cty.NilVal {
			out[name] = spec.Default
		}
	}
	for name, v := range args {
		out[name] = v
	}
	return out
}
