// internal/target/doc.go

/*
Package target provides the structured, type-safe representation for the
declarative target references actions are configured with, based on the
canonical wire format `<component_id>.<argument_path>`.

The component id is the substring before the first separator; everything
after it is the argument path, itself a dot-separated sequence of segments,
e.g. `my_chart.data_frame.country`.

Targets are parsed and validated exactly once, when a page's action graph is
built. The parsed form is what circulates at invocation time; raw strings are
never re-parsed on the hot path.
*/
package target
