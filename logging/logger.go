// Package logging builds the per-component logrus loggers used for
// diagnostics. Logs never go to stdout, which carries the hook's decision.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/hooklint/config"
	"github.com/grovetools/hooklint/pkg/paths"
	"github.com/grovetools/hooklint/util/pathutil"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	// logCfg is loaded from the configuration file on first use unless
	// SetConfig supplied it.
	logCfg *Config
)

var stderr io.Writer = os.Stderr

var isStderrTerminal = func() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// SetConfig sets the logging configuration for loggers created afterwards.
func SetConfig(cfg Config) {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	logCfg = &cfg
	loggers = make(map[string]*logrus.Entry)
}

// ConfigFrom extracts the logging section of cfg.
func ConfigFrom(cfg *config.Config) (Config, error) {
	var lc Config
	if cfg == nil {
		return lc, nil
	}
	err := cfg.UnmarshalExtension("logging", &lc)
	return lc, err
}

// loadConfig must be called with loggersMu held.
func loadConfig() Config {
	if logCfg != nil {
		return *logCfg
	}
	var lc Config
	if cfg, err := config.LoadDefault(); err == nil {
		if lc, err = ConfigFrom(cfg); err != nil {
			logrus.Warnf("Failed to parse 'logging' config: %v", err)
		}
	}
	logCfg = &lc
	return lc
}

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	cfg := loadConfig()
	logger := logrus.New()

	// Configure Level
	levelStr := "warn"
	if env := os.Getenv("HOOKLINT_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if os.Getenv("HOOKLINT_DEBUG") == "1" {
		levelStr = "debug"
	} else if cfg.Level != "" {
		levelStr = cfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)

	// Configure Caller Reporting
	if os.Getenv("HOOKLINT_LOG_CALLER") == "true" || cfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	// Configure Formatter
	switch cfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: cfg.Format, Renderer: NewStderrRenderer()})
	}

	// Configure Output Sinks
	var writers []io.Writer

	if cfg.File.Enabled {
		if path := logFilePath(cfg.File); path != "" {
			if file, err := openLogFile(path); err != nil {
				fmt.Fprintf(stderr, "hooklint: failed to open log file %s: %v\n", path, err)
			} else {
				writers = append(writers, file)
			}
		}
	}

	if toStderr(cfg.Format.StructuredToStderr, level) {
		writers = append(writers, stderr)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// toStderr reports whether logs go to stderr. In "auto" mode that is when
// debugging or when stderr is not an interactive terminal.
func toStderr(mode string, level logrus.Level) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return level >= logrus.DebugLevel || !isStderrTerminal()
	}
}

func logFilePath(sink FileSinkConfig) string {
	if sink.Path != "" {
		path, err := pathutil.Expand(sink.Path)
		if err != nil {
			return sink.Path
		}
		return path
	}
	dir := paths.LogDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, fmt.Sprintf("hooklint-%s.log", time.Now().Format("2006-01-02")))
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
