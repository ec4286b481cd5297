// internal/target/errors.go
package target

import "fmt"

// MalformedTargetError reports a target string that does not follow the
// `<component_id>.<argument_path>` wire format.
type MalformedTargetError struct {
	Raw string
}

// Error implements the error interface for MalformedTargetError.
func (e *MalformedTargetError) Error() string {
	return fmt.Sprintf("invalid target %q: targets must be supplied in the form <component_id>.<argument_path>", e.Raw)
}

// ForeignTargetError reports a target whose component belongs to a different
// page than the action that declared it.
type ForeignTargetError struct {
	ComponentID string
	PageID      string
}

// Error implements the error interface for ForeignTargetError.
func (e *ForeignTargetError) Error() string {
	return fmt.Sprintf("component %q does not exist on page %q", e.ComponentID, e.PageID)
}
