package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

// SessionConfig controls where collected files are recorded between runs.
type SessionConfig struct {
	Dir    string `yaml:"dir,omitempty" toml:"dir,omitempty" json:"dir,omitempty" jsonschema:"description=Directory for session records (default: the platform temporary directory)"`
	Prefix string `yaml:"prefix,omitempty" toml:"prefix,omitempty" json:"prefix,omitempty" jsonschema:"description=Filename prefix for session records (default: hooklint)"`
}

// Config is the hooklint configuration file.
type Config struct {
	Version     string        `yaml:"version,omitempty" toml:"version,omitempty" json:"version,omitempty" jsonschema:"description=Configuration version (e.g. '1.0')"`
	Verbose     bool          `yaml:"verbose,omitempty" toml:"verbose,omitempty" json:"verbose,omitempty" jsonschema:"description=Include informational messages in continue decisions"`
	Lenient     bool          `yaml:"lenient,omitempty" toml:"lenient,omitempty" json:"lenient,omitempty" jsonschema:"description=Relax unused-variable and undefined-name rules"`
	Session     SessionConfig `yaml:"session,omitempty" toml:"session,omitempty" json:"session,omitempty" jsonschema:"description=Session record storage"`
	ToolTimeout string        `yaml:"tool_timeout,omitempty" toml:"tool_timeout,omitempty" json:"tool_timeout,omitempty" jsonschema:"description=Maximum run time for one linter (Go duration; empty means no limit)"`
	Ignore      []string      `yaml:"ignore,omitempty" toml:"ignore,omitempty" json:"ignore,omitempty" jsonschema:"description=Patterns of files that are never linted"`
	Disabled    []string      `yaml:"disabled,omitempty" toml:"disabled,omitempty" json:"disabled,omitempty" jsonschema:"description=Ecosystems that are never linted,enum=web,enum=rust,enum=python,enum=jvm,enum=go"`

	// Extensions captures all other top-level keys for extensibility.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`
}

// knownKeys are the top-level keys decoded into Config fields.
var knownKeys = map[string]bool{
	"version":      true,
	"verbose":      true,
	"lenient":      true,
	"session":      true,
	"tool_timeout": true,
	"ignore":       true,
	"disabled":     true,
}

// DefaultSessionPrefix is the record filename prefix used when none is set.
const DefaultSessionPrefix = "hooklint"

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.Session.Prefix == "" {
		c.Session.Prefix = DefaultSessionPrefix
	}
}

// Timeout returns the per-linter timeout. Zero means none.
func (c *Config) Timeout() time.Duration {
	if c.ToolTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.ToolTimeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded file into the provided target struct. The target must be a pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// ConfigSource identifies the origin of a configuration value.
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceGlobal  ConfigSource = "global"
	SourceProject ConfigSource = "project"
	SourceFlag    ConfigSource = "flag"
	SourceEnv     ConfigSource = "env"
)

// LayeredConfig holds the raw configuration from each source file,
// as well as the final merged configuration, for analysis purposes.
type LayeredConfig struct {
	Default   *Config                 // Config with only default values applied.
	Global    *Config                 // Raw config from the global file.
	Project   *Config                 // Raw config from the nearest project file.
	Explicit  *Config                 // Raw config from a file named on the command line.
	Final     *Config                 // The fully merged and validated config.
	FilePaths map[ConfigSource]string // Maps sources to their file paths.
}
