// Package figure defines the serializable representation of a rendered chart.
//
// A Figure is the output of a chart recipe: a plain data structure the
// reactive runtime ships to clients whenever a component is recomputed.
// Rendering it is the client's concern; this package only guarantees a
// stable, deterministic encoding so that identical inputs always produce
// byte-identical payloads.
package figure

import "encoding/json"

// Figure is the recomputed representation of a chart component.
type Figure struct {
	Type   string  `json:"type"`
	Traces []Trace `json:"traces"`
	Layout Layout  `json:"layout"`
}

// Trace is a single data series within a figure. Which fields are populated
// depends on the chart type: pie charts use Labels/Values, bar charts use
// Labels/Y, scatter and histogram use X/Y.
type Trace struct {
	Name   string    `json:"name,omitempty"`
	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values,omitempty"`
	X      []float64 `json:"x,omitempty"`
	Y      []float64 `json:"y,omitempty"`
	Hole   float64   `json:"hole,omitempty"`
}

// Layout carries the non-data presentation attributes of a figure.
type Layout struct {
	Title    string `json:"title,omitempty"`
	XAxis    string `json:"xaxis,omitempty"`
	YAxis    string `json:"yaxis,omitempty"`
	Template string `json:"template,omitempty"`
}

// Encode serializes the figure to its canonical JSON form.
func (f *Figure) Encode() ([]byte, error) {
	return json.Marshal(f)
}
