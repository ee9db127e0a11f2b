package config

import (
	"fmt"
	"time"

	"github.com/moby/patternmatcher"

	"github.com/grovetools/hooklint/errors"
)

var ecosystems = map[string]bool{
	"web":    true,
	"rust":   true,
	"python": true,
	"jvm":    true,
	"go":     true,
}

// Validate checks values the schema cannot express.
func (c *Config) Validate() error {
	if c.ToolTimeout != "" {
		d, err := time.ParseDuration(c.ToolTimeout)
		if err != nil {
			return errors.ConfigInvalid(fmt.Sprintf("tool_timeout %q is not a duration", c.ToolTimeout)).
				WithDetail("tool_timeout", c.ToolTimeout)
		}
		if d < 0 {
			return errors.ConfigInvalid("tool_timeout cannot be negative").
				WithDetail("tool_timeout", c.ToolTimeout)
		}
	}

	if len(c.Ignore) > 0 {
		if _, err := patternmatcher.New(c.Ignore); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid ignore pattern").
				WithDetail("ignore", c.Ignore)
		}
	}

	for _, eco := range c.Disabled {
		if !ecosystems[eco] {
			return errors.ConfigInvalid(fmt.Sprintf("unknown ecosystem %q in disabled", eco)).
				WithDetail("disabled", eco)
		}
	}

	return nil
}
