// Package dataset provides the in-memory, column-named tables that chart
// recipes are built over, plus the pure row-subsetting operations applied by
// filters, cross-chart interactions and data-frame parameter overrides.
//
// Frames are immutable once built: every filter operation returns a new
// Frame sharing the underlying row slices of the original. Row order is
// always preserved, which keeps recomputation deterministic.
package dataset

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Frame is an immutable table: a fixed column list and rows of cty values.
type Frame struct {
	Name    string
	Columns []string
	rows    [][]cty.Value
}

// New creates a frame from explicit columns and rows. Every row must have
// exactly one cell per column.
func New(name string, columns []string, rows [][]cty.Value) (*Frame, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("dataset %q: row %d has %d cells, want %d", name, i, len(row), len(columns))
		}
	}
	return &Frame{Name: name, Columns: columns, rows: rows}, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// HasColumn reports whether the frame contains the named column.
func (f *Frame) HasColumn(name string) bool {
	return f.columnIndex(name) >= 0
}

// Column returns all cell values of the named column in row order.
func (f *Frame) Column(name string) ([]cty.Value, error) {
	idx := f.columnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("dataset %q has no column %q", f.Name, name)
	}
	out := make([]cty.Value, len(f.rows))
	for i, row := range f.rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Numbers returns the named column coerced to float64. It fails on the
// first non-numeric cell.
func (f *Frame) Numbers(name string) ([]float64, error) {
	cells, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(cells))
	for i, cell := range cells {
		if cell.Type() != cty.Number {
			return nil, fmt.Errorf("dataset %q: column %q is not numeric", f.Name, name)
		}
		v, _ := cell.AsBigFloat().Float64()
		out[i] = v
	}
	return out, nil
}

// Strings returns the named column rendered as strings. Numeric cells are
// formatted with %v of their big.Float value.
func (f *Frame) Strings(name string) ([]string, error) {
	cells, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(cells))
	for i, cell := range cells {
		out[i] = cellString(cell)
	}
	return out, nil
}

// Distinct returns the sorted set of distinct values rendered as strings.
// Sorting makes the result independent of row order, so selector options
// derived from it are stable.
func (f *Frame) Distinct(name string) ([]string, error) {
	values, err := f.Strings(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// FilterEqual returns the rows whose cell in the named column equals value.
func (f *Frame) FilterEqual(column string, value cty.Value) (*Frame, error) {
	return f.filter(column, func(cell cty.Value) bool {
		return cellsEqual(cell, value)
	})
}

// FilterIn returns the rows whose cell in the named column equals any of the
// allowed values.
func (f *Frame) FilterIn(column string, allowed []cty.Value) (*Frame, error) {
	return f.filter(column, func(cell cty.Value) bool {
		for _, v := range allowed {
			if cellsEqual(cell, v) {
				return true
			}
		}
		return false
	})
}

// FilterRange returns the rows whose numeric cell in the named column lies
// in the closed interval [lo, hi].
func (f *Frame) FilterRange(column string, lo, hi float64) (*Frame, error) {
	return f.filter(column, func(cell cty.Value) bool {
		if cell.Type() != cty.Number {
			return false
		}
		v, _ := cell.AsBigFloat().Float64()
		return v >= lo && v <= hi
	})
}

func (f *Frame) filter(column string, keep func(cty.Value) bool) (*Frame, error) {
	idx := f.columnIndex(column)
	if idx < 0 {
		return nil, fmt.Errorf("dataset %q has no column %q", f.Name, column)
	}
	out := &Frame{Name: f.Name, Columns: f.Columns}
	for _, row := range f.rows {
		if keep(row[idx]) {
			out.rows = append(out.rows, row)
		}
	}
	return out, nil
}

func (f *Frame) columnIndex(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// cellsEqual compares two cells, tolerating a string representation of a
// numeric cell (selector values arrive as strings from the wire).
func cellsEqual(cell, value cty.Value) bool {
	if cell.RawEquals(value) {
		return true
	}
	if value.Type() == cty.String {
		return cellString(cell) == value.AsString()
	}
	return false
}

func cellString(cell cty.Value) string {
	switch cell.Type() {
	case cty.String:
		return cell.AsString()
	case cty.Number:
		return cell.AsBigFloat().Text('f', -1)
	case cty.Bool:
		if cell.True() {
			return "true"
		}
		return "false"
	default:
		return cell.GoString()
	}
}
