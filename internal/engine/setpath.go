package engine

import "github.com/zclconf/go-cty/cty"

// setAtPath returns a copy of base with the value at the given nested path
// replaced. Intermediate objects are copied, never mutated; missing or
// non-object intermediates are replaced with fresh single-attribute objects,
// so an override like `layout.title` works whether or not the base argument
// carried a `layout` value.
func setAtPath(base cty.Value, path []string, value cty.Value) cty.Value {
	if len(path) == 0 {
		return value
	}

	attrs := make(map[string]cty.Value)
	if base != cty.NilVal && !base.IsNull() && base.Type().IsObjectType() {
		for name, v := range base.AsValueMap() {
			attrs[name] = v
		}
	}

	attrs[path[0]] = setAtPath(attrs[path[0]], path[1:], value)
	return cty.ObjectVal(attrs)
}
