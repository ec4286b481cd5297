// Package registry is the central model registry for a single dashboard
// snapshot.
//
// The Registry is responsible for storing the mappings between component
// identifiers and component instances, between components and the pages that
// own them, between chart type names and the compiled Go recipes that build
// their figures, and between dataset names and their loaded frames.
//
// A registry passes through two phases. During the build phase it is mutable:
// the builder registers recipes, loads frames, and adds pages and components,
// then runs validation so that any mismatch between definitions and code
// fails startup rather than a request. Freeze marks the end of the build
// phase; from then on the registry is read-only and safe for concurrent use
// without locking. A rebuild produces a whole new registry which replaces
// the old one as an atomic snapshot swap.
package registry
