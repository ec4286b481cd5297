package registry

import "fmt"

// ComponentNotFoundError reports a component id that no page owns.
type ComponentNotFoundError struct {
	ID string
}

// Error implements the error interface for ComponentNotFoundError.
func (e *ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component %q is not registered", e.ID)
}

// PageNotFoundError reports a page id the registry does not know.
type PageNotFoundError struct {
	ID string
}

// Error implements the error interface for PageNotFoundError.
func (e *PageNotFoundError) Error() string {
	return fmt.Sprintf("page %q is not registered", e.ID)
}
