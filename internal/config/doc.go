// Package config defines the format-agnostic dashboard model and the Loader
// interface implemented by each supported definition format.
//
// The model is the single translation target for all loaders: a dashboard,
// its datasets, and its pages with their charts, filters and parameters.
// Argument values are carried as cty.Value so that the type system used for
// recipe validation and override application is uniform regardless of the
// source format.
package config
