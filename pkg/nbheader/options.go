// Package nbheader injects the cells of a header notebook into notebooks.
package nbheader

import "go.uber.org/zap"

// DefaultExtension is the file extension of target notebooks.
const DefaultExtension = ".ipynb"

// Options configures injection behavior.
type Options struct {
	// Extension selects target files by suffix (e.g. ".ipynb").
	// If empty, DefaultExtension is used.
	Extension string
	// Atomic parses and splices every target before writing any of them,
	// and writes each through a temporary file and rename.
	Atomic bool
	// RenewIDs gives every inserted header cell that carries an id a fresh one.
	RenewIDs bool
	// Logger receives per-file debug output. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default injection options.
func DefaultOptions() Options {
	return Options{
		Extension: DefaultExtension,
	}
}

func (o Options) extension() string {
	if o.Extension == "" {
		return DefaultExtension
	}
	return o.Extension
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
