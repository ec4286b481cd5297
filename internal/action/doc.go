// Package action implements the reactive actions that propagate control
// changes to chart components.
//
// An action is bound to exactly one page and holds an ordered, immutable
// list of resolved targets, computed once at construction. Construction is
// where all validation happens: a malformed or foreign target aborts the
// page build, converting a whole class of request-time failures into
// build-time failures.
//
// There are four variants, one per trigger category: ParameterAction,
// FilterAction, FilterInteractionAction and OnPageLoadAction. All satisfy
// the same capability interface the runtime wires against: declared inputs,
// declared outputs, and a pure Invoke over the grouped current values.
package action
