// internal/target/parser.go
package target

import (
	"regexp"
	"strings"
)

const separator = "."

// segmentRegex validates a single segment of a target path, e.g. `data_frame`.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Parse creates a Target by parsing its canonical wire representation. The
// substring before the first separator is the component id; the remainder is
// the argument path. A string without a separator, or with an empty or
// ill-formed segment, fails with MalformedTargetError.
func Parse(raw string) (Target, error) {
	if !strings.Contains(raw, separator) {
		return Target{}, &MalformedTargetError{Raw: raw}
	}

	segments := strings.Split(raw, separator)
	for _, segment := range segments {
		if !segmentRegex.MatchString(segment) {
			return Target{}, &MalformedTargetError{Raw: raw}
		}
	}

	return Target{ComponentID: segments[0], Path: segments[1:]}, nil
}

// Ownership is the registry lookup the resolver needs: which page owns a
// given component id. The second return is false when the id is unknown.
type Ownership interface {
	OwningPage(componentID string) (string, bool)
}

// Resolve parses each raw target string and validates that the referenced
// component exists and belongs to pageID. The result preserves input order;
// downstream output mapping depends on it. Resolve runs once, at action
// construction time.
func Resolve(raws []string, pageID string, owners Ownership) ([]Target, error) {
	targets := make([]Target, 0, len(raws))
	for _, raw := range raws {
		t, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		if err := checkOwnership(t.ComponentID, pageID, owners); err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// ResolveComponents validates a list of bare component ids (whole-component
// targets, as used by filter actions) against pageID. Order is preserved.
func ResolveComponents(ids []string, pageID string, owners Ownership) ([]Target, error) {
	targets := make([]Target, 0, len(ids))
	for _, id := range ids {
		if !segmentRegex.MatchString(id) {
			return nil, &MalformedTargetError{Raw: id}
		}
		if err := checkOwnership(id, pageID, owners); err != nil {
			return nil, err
		}
		targets = append(targets, Target{ComponentID: id})
	}
	return targets, nil
}

func checkOwnership(componentID, pageID string, owners Ownership) error {
	owner, ok := owners.OwningPage(componentID)
	if !ok || owner != pageID {
		return &ForeignTargetError{ComponentID: componentID, PageID: pageID}
	}
	return nil
}
