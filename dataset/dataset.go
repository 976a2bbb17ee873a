// Package dataset provides load/save/exists adapters for single-file
// datasets on local disk. Every adapter implements the same contract over
// one storage/format combination, and all of them share the versioned path
// scheme from the version package.
package dataset

import (
	"github.com/datashed/datashed/version"
)

// Dataset is the uniform contract implemented by every adapter.
type Dataset interface {
	// Load reads the dataset and decodes it into a value.
	Load() (any, error)

	// Save encodes value and writes it to the dataset.
	Save(value any) error

	// Exists reports whether the dataset resolves to a regular file.
	// An unresolvable version reads as "does not exist", not as an error.
	Exists() (bool, error)

	// Describe returns the adapter configuration for diagnostic display.
	Describe() map[string]any
}

// Options carries format-specific codec configuration. Keys are interpreted
// by the individual adapter; unknown keys are ignored.
type Options map[string]any

// mergeOptions overlays user options on top of adapter defaults.
func mergeOptions(defaults, overrides Options) Options {
	merged := make(Options, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// intOption reads an integer option, tolerating the numeric types that JSON
// and YAML config decoding produce.
func intOption(opts Options, key string, fallback int) int {
	switch v := opts[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// boolOption reads a boolean option.
func boolOption(opts Options, key string) bool {
	v, _ := opts[key].(bool)
	return v
}

// config collects the constructor settings shared by all adapters.
type config struct {
	loadArgs Options
	saveArgs Options
	version  *version.Version
}

// Option configures an adapter at construction time.
type Option func(*config)

// WithLoadArgs merges args over the adapter's load defaults.
func WithLoadArgs(args Options) Option {
	return func(c *config) {
		c.loadArgs = args
	}
}

// WithSaveArgs merges args over the adapter's save defaults.
func WithSaveArgs(args Options) Option {
	return func(c *config) {
		c.saveArgs = args
	}
}

// WithVersion enables versioned resolution for the adapter.
func WithVersion(v *version.Version) Option {
	return func(c *config) {
		c.version = v
	}
}

func applyOptions(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
