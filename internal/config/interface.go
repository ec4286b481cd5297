package config

import "context"

// Loader is the interface for a format-specific dashboard definition loader.
type Loader interface {
	// Load reads definition files from the given paths and translates them
	// into the format-agnostic model. Dataset paths in the returned model
	// are resolved relative to the file that declared them.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
