package action

import (
	"github.com/yonkmanjl/vizro/internal/registry"
)

// AggregateInputs collects the reactive input set of a page: one descriptor
// per filter, parameter and interaction action, plus the global theme
// toggle. Descriptors appear in action build order, which itself follows
// page definition order, so the result is identical on every call for a
// fixed page structure.
func AggregateInputs(reg *registry.Registry, g *Graph, pageID string) (Inputs, error) {
	if _, err := reg.Page(pageID); err != nil {
		return Inputs{}, err
	}

	ins := Inputs{
		ThemeSelector: Input{ComponentID: ThemeSelectorID, Property: ThemeSelectorProperty},
	}
	for _, a := range g.ActionsOn(pageID) {
		switch a.Kind() {
		case KindFilter:
			ins.Filters = append(ins.Filters, a.Trigger())
		case KindParameter:
			ins.Parameters = append(ins.Parameters, a.Trigger())
		case KindFilterInteraction:
			ins.FilterInteraction = append(ins.FilterInteraction, a.Trigger())
		}
	}
	return ins, nil
}
