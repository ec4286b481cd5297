// Package engine recomputes figures for targeted components.
//
// Given the resolved target component ids and the grouped current values of
// a page's controls, the engine re-derives each targeted chart's effective
// arguments (base arguments, then filter row subsetting, then interaction
// selections, then parameter overrides along typed argument paths) and
// reconstructs the figure through the chart's registered recipe. Only
// targeted components are touched; everything else on the page keeps its
// previous representation.
//
// The engine is pure: no state survives a call, and identical grouped values
// always yield byte-identical figures.
package engine
