package config

import "context"

// Loader reads settings from a file.
type Loader interface {
	// Load reads the settings file at path and applies it on top of base.
	Load(ctx context.Context, path string, base Settings) (Settings, error)
}
