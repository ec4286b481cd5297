package engine

import "fmt"

// UnsupportedArgumentPathError reports a parameter override whose argument
// path is not settable on the targeted component's construction recipe.
type UnsupportedArgumentPathError struct {
	ComponentID string
	Path        string
}

// Error implements the error interface for UnsupportedArgumentPathError.
func (e *UnsupportedArgumentPathError) Error() string {
	return fmt.Sprintf("component %q does not support argument path %q", e.ComponentID, e.Path)
}
