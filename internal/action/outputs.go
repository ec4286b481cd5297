package action

import (
	"github.com/yonkmanjl/vizro/internal/registry"
	"github.com/yonkmanjl/vizro/internal/target"
)

// MapOutputs builds one output descriptor per resolved target, in target
// order, with no deduplication: duplicate target ids simply yield two
// descriptors with the same destination, which is why every descriptor
// carries AllowDuplicate.
func MapOutputs(reg *registry.Registry, targets []target.Target) ([]Output, error) {
	out := make([]Output, 0, len(targets))
	for _, t := range targets {
		component, err := reg.Component(t.ComponentID)
		if err != nil {
			return nil, err
		}
		out = append(out, Output{
			ComponentID:    t.ComponentID,
			Property:       component.OutputProperty,
			AllowDuplicate: true,
		})
	}
	return out, nil
}
