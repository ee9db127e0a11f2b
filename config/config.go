package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/hooklint/errors"
	"github.com/grovetools/hooklint/pkg/paths"
	"github.com/grovetools/hooklint/util/pathutil"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configNames are searched for, in order, in each directory.
var configNames = []string{
	".hooklint.yml",
	".hooklint.yaml",
	"hooklint.yml",
	"hooklint.yaml",
	".hooklint.toml",
	"hooklint.toml",
}

// Load reads, validates and applies defaults to a single configuration file.
func Load(path string) (*Config, error) {
	cfg, err := loadRaw(path)
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads the layered configuration for the current directory.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}
	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical merging starting from the given directory
func LoadFrom(startDir string) (*Config, error) {
	return LoadFromWithLogger(startDir, "", logrus.New())
}

// LoadFromWithLogger merges, in increasing precedence:
// 1. Global config (~/.config/hooklint/hooklint.yml)
// 2. Nearest project config found walking up from startDir
// 3. The explicit file, when one is given
// 4. HOOKLINT_SESSION_DIR
// No file is required; with none present the defaults are returned.
func LoadFromWithLogger(startDir, explicit string, logger *logrus.Logger) (*Config, error) {
	layered, err := loadLayers(startDir, explicit, logger)
	if err != nil {
		return nil, err
	}
	return layered.Final, nil
}

// LoadLayered finds and loads all configuration layers without merging them,
// for analysis purposes. It also computes the final merged config.
func LoadLayered(startDir, explicit string) (*LayeredConfig, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return loadLayers(startDir, explicit, logger)
}

func loadLayers(startDir, explicit string, logger *logrus.Logger) (*LayeredConfig, error) {
	if logger == nil {
		logger = logrus.New()
	}
	layered := &LayeredConfig{
		FilePaths: make(map[ConfigSource]string),
	}

	defaults := &Config{}
	defaults.SetDefaults()
	layered.Default = defaults

	final := &Config{}

	// 1. Global layer (optional). A broken global file is skipped.
	if globalPath := GlobalConfigPath(); globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			logger.WithField("path", globalPath).Debug("Loading global configuration")
			globalConfig, err := loadRaw(globalPath)
			if err != nil {
				logger.WithError(err).Warn("Failed to load global configuration, continuing without it")
			} else {
				layered.Global = globalConfig
				layered.FilePaths[SourceGlobal] = globalPath
				final = mergeConfigs(final, globalConfig)
			}
		}
	}

	// 2. Project layer (optional)
	if projectPath, err := FindConfigFile(startDir); err == nil {
		logger.WithField("path", projectPath).Debug("Loading project configuration")
		projectConfig, err := loadRaw(projectPath)
		if err != nil {
			return nil, err
		}
		layered.Project = projectConfig
		layered.FilePaths[SourceProject] = projectPath
		final = mergeConfigs(final, projectConfig)
	}

	// 3. Explicit file (must exist)
	if explicit != "" {
		logger.WithField("path", explicit).Debug("Loading explicit configuration")
		explicitConfig, err := loadRaw(explicit)
		if err != nil {
			return nil, err
		}
		layered.Explicit = explicitConfig
		layered.FilePaths[SourceFlag] = explicit
		final = mergeConfigs(final, explicitConfig)
	}

	// 4. Environment
	if dir := os.Getenv("HOOKLINT_SESSION_DIR"); dir != "" {
		final.Session.Dir = dir
		layered.FilePaths[SourceEnv] = "HOOKLINT_SESSION_DIR"
	}
	dir, err := pathutil.Expand(final.Session.Dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid session.dir").
			WithDetail("session.dir", final.Session.Dir)
	}
	final.Session.Dir = dir

	final.SetDefaults()
	if err := final.Validate(); err != nil {
		return nil, err
	}
	layered.Final = final

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		if data, err := yaml.Marshal(final); err == nil {
			logger.Debugf("Merged configuration:\n%s", string(data))
		}
	}

	return layered, nil
}

// loadRaw reads one file without defaults, checking it against the schema.
func loadRaw(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := LoadFromBytes(data, formatFor(path))
	if err != nil {
		if hookErr, ok := err.(*errors.HookError); ok {
			return nil, hookErr.WithDetail("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

func formatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// LoadFromBytes parses configuration in the given format after expanding
// environment variables, and validates it against the schema.
func LoadFromBytes(data []byte, format Format) (*Config, error) {
	expanded := []byte(expandEnvVars(string(data)))

	var doc map[string]interface{}
	var cfg Config

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(expanded, &doc); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
		if err := toml.Unmarshal(expanded, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
		for key, value := range doc {
			if knownKeys[key] {
				continue
			}
			if cfg.Extensions == nil {
				cfg.Extensions = make(map[string]interface{})
			}
			cfg.Extensions[key] = value
		}
	default:
		if err := yaml.Unmarshal(expanded, &doc); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
		}
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
		}
	}

	if doc != nil {
		validator, err := NewSchemaValidator()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create validator")
		}
		if err := validator.Validate(doc); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "schema validation failed")
		}
	}

	return &cfg, nil
}

// FindConfigFile searches from startDir up to the filesystem root for a
// hooklint configuration file and returns the first one found.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.ConfigNotFound(startDir).WithDetail("searchPath", startDir)
}

// GlobalConfigPath returns the first existing global configuration file, or
// the default YAML location when none exists.
func GlobalConfigPath() string {
	dir := paths.ConfigDir()
	if dir == "" {
		return ""
	}
	for _, name := range []string{"hooklint.yml", "hooklint.yaml", "hooklint.toml"} {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return filepath.Join(dir, "hooklint.yml")
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}
