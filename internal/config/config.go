// Package config defines service configuration and loading.
//
// Conventions:
// - Defaults come from New; Load layers a YAML file and env vars on top.
// - External errors are wrapped via this package's sentinel kinds.
package config

import "context"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataPath is the embedded database file holding app state.
	DataPath string `koanf:"data_path"`

	// MaxHistory caps retained completed meets; 0 keeps everything.
	MaxHistory int `koanf:"max_history"`
}

// New returns the default configuration. Context is accepted first to
// satisfy the project-wide convention; it is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:   "info",
		Addr:       ":8080",
		DataPath:   "palaestra.db",
		MaxHistory: 0,
	}
}
