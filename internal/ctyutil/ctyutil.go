// Package ctyutil converts between loosely-typed Go values (decoded YAML,
// JSON payloads from the wire) and the cty values used throughout the model.
package ctyutil

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// FromGo converts a plain Go value into its cty equivalent. Maps become
// objects, slices become tuples; nil becomes a null of the dynamic
// pseudo-type. Integer types are widened to cty numbers.
func FromGo(v any) (cty.Value, error) {
	switch val := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case bool:
		return cty.BoolVal(val), nil
	case string:
		return cty.StringVal(val), nil
	case int:
		return cty.NumberIntVal(int64(val)), nil
	case int64:
		return cty.NumberIntVal(val), nil
	case float64:
		return cty.NumberFloatVal(val), nil
	case []any:
		if len(val) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(val))
		for i, item := range val {
			converted, err := FromGo(item)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = converted
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(val) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(val))
		for key, item := range val {
			converted, err := FromGo(item)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[key] = converted
		}
		return cty.ObjectVal(attrs), nil
	case map[any]any:
		// yaml.v3 produces this shape for maps with non-string keys; keys
		// are stringified deterministically.
		attrs := make(map[string]cty.Value, len(val))
		keys := make([]string, 0, len(val))
		byKey := make(map[string]any, len(val))
		for key, item := range val {
			s := fmt.Sprintf("%v", key)
			keys = append(keys, s)
			byKey[s] = item
		}
		sort.Strings(keys)
		for _, key := range keys {
			converted, err := FromGo(byKey[key])
			if err != nil {
				return cty.NilVal, err
			}
			attrs[key] = converted
		}
		if len(attrs) == 0 {
			return cty.EmptyObjectVal, nil
		}
		return cty.ObjectVal(attrs), nil
	default:
		return cty.NilVal, fmt.Errorf("cannot convert %T to a cty value", v)
	}
}

// SliceFromGo converts a slice of plain Go values element-wise.
func SliceFromGo(vs []any) ([]cty.Value, error) {
	out := make([]cty.Value, len(vs))
	for i, v := range vs {
		converted, err := FromGo(v)
		if err != nil {
			return nil, err
		}
		out[i] = converted
	}
	return out, nil
}
