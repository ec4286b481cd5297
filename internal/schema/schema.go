// Package schema defines the HCL block structures a dashboard definition
// file is decoded into. These are format-specific; the hclcfg loader
// translates them into the agnostic config model.
package schema

import "github.com/hashicorp/hcl/v2"

// ChartArgs represents the content of the 'arguments' block within a chart.
// The body is kept raw and evaluated by the loader against the recipe's
// declared inputs.
type ChartArgs struct {
	Body hcl.Body `hcl:",remain"`
}

// Chart represents a `chart` block: a figure built by a registered recipe
// over a named dataset.
type Chart struct {
	Name         string     `hcl:"name,label"`
	Type         string     `hcl:"type"`
	Data         string     `hcl:"data"`
	Title        string     `hcl:"title,optional"`
	Interactions []string   `hcl:"interactions,optional"`
	Arguments    *ChartArgs `hcl:"arguments,block"`
}

// Filter represents a `filter` block: a selector over a column, applied to
// the targeted charts.
type Filter struct {
	Name     string         `hcl:"name,label"`
	Column   string         `hcl:"column"`
	Selector string         `hcl:"selector,optional"`
	Title    string         `hcl:"title,optional"`
	Options  hcl.Expression `hcl:"options,optional"`
	Value    hcl.Expression `hcl:"value,optional"`
	Min      *float64       `hcl:"min,optional"`
	Max      *float64       `hcl:"max,optional"`
	Targets  []string       `hcl:"targets,optional"`
}

// Parameter represents a `parameter` block. Targets use the
// `<component_id>.<argument_path>` wire format and are mandatory.
type Parameter struct {
	Name     string         `hcl:"name,label"`
	Selector string         `hcl:"selector,optional"`
	Title    string         `hcl:"title,optional"`
	Options  hcl.Expression `hcl:"options,optional"`
	Value    hcl.Expression `hcl:"value,optional"`
	Min      *float64       `hcl:"min,optional"`
	Max      *float64       `hcl:"max,optional"`
	Targets  []string       `hcl:"targets"`
}

// Page represents a `page` block containing charts and controls.
type Page struct {
	Name       string       `hcl:"name,label"`
	Title      string       `hcl:"title,optional"`
	Charts     []*Chart     `hcl:"chart,block"`
	Filters    []*Filter    `hcl:"filter,block"`
	Parameters []*Parameter `hcl:"parameter,block"`
}

// Dataset represents a `data` block naming a CSV file.
type Dataset struct {
	Name string `hcl:"name,label"`
	Path string `hcl:"path"`
}

// Dashboard represents the top-level `dashboard` block.
type Dashboard struct {
	Title string `hcl:"title,optional"`
	Theme string `hcl:"theme,optional"`
}

// Root represents the top-level structure of one definition file.
type Root struct {
	Dashboard *Dashboard `hcl:"dashboard,block"`
	Datasets  []*Dataset `hcl:"data,block"`
	Pages     []*Page    `hcl:"page,block"`
}
