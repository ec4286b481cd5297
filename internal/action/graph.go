package action

// Graph is the per-snapshot action graph: every action of every page, in
// build order. It is populated during the build phase and read-only
// afterwards, like the registry it accompanies.
type Graph struct {
	byPage map[string][]Action
}

// NewGraph creates an empty action graph.
func NewGraph() *Graph {
	return &Graph{byPage: make(map[string][]Action)}
}

// Add appends an action to its page's ordered list.
func (g *Graph) Add(a Action) {
	g.byPage[a.PageID()] = append(g.byPage[a.PageID()], a)
}

// ActionsOn returns the page's actions in build order.
func (g *Graph) ActionsOn(pageID string) []Action {
	return g.byPage[pageID]
}

// Triggered returns the page's actions fired by the given input, in build
// order. Several actions may share a trigger across categories.
func (g *Graph) Triggered(pageID string, trigger Input) []Action {
	var out []Action
	for _, a := range g.byPage[pageID] {
		if a.Trigger() == trigger {
			out = append(out, a)
		}
	}
	return out
}
