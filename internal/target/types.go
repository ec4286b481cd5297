// internal/target/types.go
package target

import "strings"

// Target is the structured representation of a validated target reference.
// ComponentID names the component whose output the owning action may
// overwrite; Path is the argument path within that component's construction
// recipe. Path may be empty for whole-component targets (filter and
// on-page-load actions target components, not individual arguments).
type Target struct {
	ComponentID string
	Path        []string
}

// ArgPath returns the argument path in its canonical dotted form, or the
// empty string for a whole-component target.
func (t Target) ArgPath() string {
	return strings.Join(t.Path, separator)
}

// String serializes the target back into its canonical wire format.
func (t Target) String() string {
	if len(t.Path) == 0 {
		return t.ComponentID
	}
	return t.ComponentID + separator + t.ArgPath()
}

// Equal checks for deep equality between two targets.
func (t Target) Equal(other Target) bool {
	if t.ComponentID != other.ComponentID || len(t.Path) != len(other.Path) {
		return false
	}
	for i := range t.Path {
		if t.Path[i] != other.Path[i] {
			return false
		}
	}
	return true
}
