package duckdoc

import (
	"errors"
	"runtime"

	"github.com/duckdoc/go-duckdoc/format"
	"github.com/duckdoc/go-duckdoc/tags"
)

// Config represents the configuration required to create a documentation
// processor.
type Config struct {
	// Tags is the tag set to register, in order. When nil, the builtin
	// set is used.
	Tags []tags.Tag
	// ExtraTags are appended after Tags; typically catalog-defined custom
	// tags. A pattern collision with Tags is a startup error.
	ExtraTags []tags.Tag
	// Formatter converts markup-carrying doc text to HTML before
	// rendering. When nil, a plain paragraph formatter is applied.
	Formatter format.Formatter
	// MaxWorkers caps the number of comments processed concurrently by
	// ProcessAll. Zero means one worker per CPU.
	MaxWorkers int
}

// ConfigFunc defines a function that can modify or validate a Config.
type ConfigFunc func(*Config) error

// Validate applies the given ConfigFunc validators to the config.
// Panics if any validator returns an error.
func (config *Config) Validate(validators ...ConfigFunc) {
	for _, fn := range validators {
		if err := fn(config); err != nil {
			panic(err)
		}
	}
}

// withTags sets the builtin tag set if none is provided.
func withTags(config *Config) error {
	if config.Tags == nil {
		config.Tags = tags.Builtin()
	}
	if len(config.Tags)+len(config.ExtraTags) == 0 {
		return errors.New("config must register at least one tag")
	}
	return nil
}

// withFormatter returns a ConfigFunc that sets a default formatter if none
// is provided.
func withFormatter(formatter format.Formatter) ConfigFunc {
	return func(config *Config) error {
		if config.Formatter == nil {
			config.Formatter = formatter
		}
		return nil
	}
}

// withMaxWorkers returns a ConfigFunc that sets the worker cap if not
// explicitly provided.
func withMaxWorkers(config *Config) error {
	if config.MaxWorkers < 0 {
		return errors.New("max workers must not be negative")
	}
	if config.MaxWorkers == 0 {
		config.MaxWorkers = runtime.NumCPU()
	}
	return nil
}
