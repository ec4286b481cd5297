package config

import "github.com/zclconf/go-cty/cty"

// Model is the unified, format-agnostic representation of an entire dashboard
// definition. Loaders for specific formats (HCL, YAML) translate into this
// model; everything downstream of loading is format-blind.
type Model struct {
	Dashboard *Dashboard
	Datasets  []*Dataset
	Pages     []*Page
}

// Dashboard holds the top-level presentation settings.
type Dashboard struct {
	Title string
	Theme string
}

// Dataset names a CSV file to be loaded into an in-memory frame at build
// time. Path is absolute by the time the model leaves a loader.
type Dataset struct {
	Name string
	Path string
}

// Page is an ordered collection of charts and controls. Order is
// significant: it fixes the deterministic order of reactive input
// descriptors and of parameter override application.
type Page struct {
	ID         string
	Title      string
	Charts     []*Chart
	Filters    []*Filter
	Parameters []*Parameter
}

// Chart is the construction recipe reference for a single chart component:
// which recipe type builds it, which dataset feeds it, and the base
// arguments the recipe is invoked with.
type Chart struct {
	ID           string
	Type         string
	Data         string
	Title        string
	Arguments    map[string]cty.Value
	Interactions []string
}

// Filter declares a filter control: a selector over the distinct values of a
// column, applied to the targeted charts (all charts on the page when
// Targets is empty).
type Filter struct {
	ID       string
	Column   string
	Selector *Selector
	Targets  []string
}

// Parameter declares a parameter control. Targets are mandatory and use the
// `<component_id>.<argument_path>` wire format.
type Parameter struct {
	ID       string
	Selector *Selector
	Targets  []string
}

// Selector describes the input widget backing a control.
type Selector struct {
	Kind    string
	Title   string
	Options []cty.Value
	Value   cty.Value
	Min     *float64
	Max     *float64
}

// Selector kinds understood by the control model.
const (
	SelectorDropdown    = "dropdown"
	SelectorRadioItems  = "radio_items"
	SelectorChecklist   = "checklist"
	SelectorSlider      = "slider"
	SelectorRangeSlider = "range_slider"
)

// KnownSelector reports whether kind names a supported selector widget.
func KnownSelector(kind string) bool {
	switch kind {
	case SelectorDropdown, SelectorRadioItems, SelectorChecklist, SelectorSlider, SelectorRangeSlider:
		return true
	}
	return false
}
