package app

import (
	"github.com/vk/preconfig/internal/errs"
	"github.com/vk/preconfig/internal/format"
)

// Config holds everything one transpile run needs.
type Config struct {
	// InputPath is the template file; empty means read stdin.
	InputPath string
	// Format is the output format: text, json or yaml.
	Format string
	// OutputPath receives the result; empty means write stdout.
	OutputPath string
	// Parameters feed `para:` controls.
	Parameters map[string]string

	LogLevel  string
	LogFormat string
}

// Validate normalizes the config and rejects unusable values before any
// work starts.
func (c *Config) Validate() error {
	if c.Format == "" {
		c.Format = format.Text
	}
	if !format.Valid(c.Format) {
		return errs.Validationf("invalid output format %q: must be text, json or yaml", c.Format)
	}
	if c.Parameters == nil {
		c.Parameters = map[string]string{}
	}
	return nil
}
