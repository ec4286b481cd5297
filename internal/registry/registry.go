package registry

import (
	"fmt"

	"github.com/yonkmanjl/vizro/internal/config"
	"github.com/yonkmanjl/vizro/internal/dataset"
	"github.com/yonkmanjl/vizro/internal/target"
)

// Module is the interface chart packages implement to contribute their
// recipes to a registry.
type Module interface {
	Register(r *Registry)
}

// Kind distinguishes component categories within the registry.
type Kind string

// Component kinds.
const (
	KindChart     Kind = "chart"
	KindFilter    Kind = "filter"
	KindParameter Kind = "parameter"
)

// Component properties exposed to the reactive runtime.
const (
	PropertyFigure    = "figure"
	PropertyValue     = "value"
	PropertyClickData = "click_data"
)

// Component is a registered page component: a chart or a control. Charts
// carry their construction recipe reference; controls carry their selector
// and resolved targets.
type Component struct {
	ID     string
	PageID string
	Kind   Kind

	// OutputProperty is the property the runtime overwrites when an action
	// targets this component.
	OutputProperty string
	// InputProperty is the property the runtime reads when this component
	// triggers an action.
	InputProperty string

	// Chart recipe reference; set when Kind == KindChart.
	Chart *config.Chart
	// Selector and Column; set for controls. Column is only set for filters.
	Selector *config.Selector
	Column   string

	// Targets is the resolved, ordered target list for controls. For
	// filters these are whole-component targets; for parameters they carry
	// argument paths.
	Targets []target.Target

	// Interactions lists the chart ids cross-filtered by clicks on this
	// chart; set for charts configured with interactions.
	Interactions []target.Target
}

// Page is an ordered view of the components owned by one page.
type Page struct {
	ID    string
	Title string

	// ComponentIDs preserves definition order across all kinds; the
	// deterministic ordering of reactive input descriptors derives from it.
	ComponentIDs []string

	// ChartIDs preserves definition order of charts only.
	ChartIDs []string
}

// Registry holds all registered recipes, frames, pages and components for a
// single dashboard snapshot.
type Registry struct {
	recipes    map[string]*Recipe
	frames     map[string]*dataset.Frame
	components map[string]*Component
	pages      map[string]*Page
	pageOrder  []string
	frozen     bool
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		recipes:    make(map[string]*Recipe),
		frames:     make(map[string]*dataset.Frame),
		components: make(map[string]*Component),
		pages:      make(map[string]*Page),
	}
}

// Freeze ends the build phase. All mutating calls after Freeze panic: a
// write to a serving registry is a programmer error, not a runtime
// condition.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether the registry has left the build phase.
func (r *Registry) Frozen() bool {
	return r.frozen
}

func (r *Registry) mutable(op string) {
	if r.frozen {
		panic(fmt.Sprintf("registry: %s called after Freeze", op))
	}
}

// RegisterRecipe adds a chart recipe under its type name.
func (r *Registry) RegisterRecipe(recipe *Recipe) {
	r.mutable("RegisterRecipe")
	r.recipes[recipe.Type] = recipe
}

// Recipe looks up the recipe registered for a chart type.
func (r *Registry) Recipe(chartType string) (*Recipe, bool) {
	recipe, ok := r.recipes[chartType]
	return recipe, ok
}

// AddFrame stores a loaded dataset frame under its name.
func (r *Registry) AddFrame(f *dataset.Frame) {
	r.mutable("AddFrame")
	r.frames[f.Name] = f
}

// Frame looks up a dataset frame by name.
func (r *Registry) Frame(name string) (*dataset.Frame, bool) {
	f, ok := r.frames[name]
	return f, ok
}

// AddPage registers an empty page. Page ids must be unique.
func (r *Registry) AddPage(id, title string) (*Page, error) {
	r.mutable("AddPage")
	if _, exists := r.pages[id]; exists {
		return nil, fmt.Errorf("duplicate page id %q", id)
	}
	page := &Page{ID: id, Title: title}
	r.pages[id] = page
	r.pageOrder = append(r.pageOrder, id)
	return page, nil
}

// AddComponent registers a component under its page. Component ids are
// unique across the whole dashboard, matching the process-wide lookup
// contract.
func (r *Registry) AddComponent(c *Component) error {
	r.mutable("AddComponent")
	page, ok := r.pages[c.PageID]
	if !ok {
		return &PageNotFoundError{ID: c.PageID}
	}
	if existing, exists := r.components[c.ID]; exists {
		return fmt.Errorf("duplicate component id %q (already on page %q)", c.ID, existing.PageID)
	}
	r.components[c.ID] = c
	page.ComponentIDs = append(page.ComponentIDs, c.ID)
	if c.Kind == KindChart {
		page.ChartIDs = append(page.ChartIDs, c.ID)
	}
	return nil
}

// Component looks up a component by id.
func (r *Registry) Component(id string) (*Component, error) {
	c, ok := r.components[id]
	if !ok {
		return nil, &ComponentNotFoundError{ID: id}
	}
	return c, nil
}

// OwningPage returns the page id owning the given component. It implements
// target.Ownership.
func (r *Registry) OwningPage(componentID string) (string, bool) {
	c, ok := r.components[componentID]
	if !ok {
		return "", false
	}
	return c.PageID, true
}

// Page looks up a page by id.
func (r *Registry) Page(id string) (*Page, error) {
	p, ok := r.pages[id]
	if !ok {
		return nil, &PageNotFoundError{ID: id}
	}
	return p, nil
}

// Pages returns all pages in definition order.
func (r *Registry) Pages() []*Page {
	out := make([]*Page, len(r.pageOrder))
	for i, id := range r.pageOrder {
		out[i] = r.pages[id]
	}
	return out
}
