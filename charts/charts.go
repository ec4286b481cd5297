// Package charts collects the built-in chart recipe modules compiled into
// the vizro binary.
package charts

import (
	"github.com/yonkmanjl/vizro/charts/bar"
	"github.com/yonkmanjl/vizro/charts/histogram"
	"github.com/yonkmanjl/vizro/charts/pie"
	"github.com/yonkmanjl/vizro/charts/scatter"
	"github.com/yonkmanjl/vizro/internal/registry"
)

// Builtins is the definitive list of chart recipe modules shipped with the
// binary.
func Builtins() []registry.Module {
	return []registry.Module{
		&bar.Module{},
		&scatter.Module{},
		&pie.Module{},
		&histogram.Module{},
	}
}
