// Package paths provides XDG-compliant path resolution for hooklint.
//
// Resolution order:
// 1. HOOKLINT_HOME (portable root) → $HOOKLINT_HOME/{config,state}
// 2. XDG env vars → $XDG_*_HOME/hooklint
// 3. Platform defaults → ~/.config/hooklint, ~/.local/state/hooklint
package paths

import (
	"os"
	"path/filepath"
)

const appName = "hooklint"

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if home := os.Getenv("HOOKLINT_HOME"); home != "" {
		return filepath.Join(home, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getStateHome returns the base state home directory.
func getStateHome() string {
	if home := os.Getenv("HOOKLINT_HOME"); home != "" {
		return filepath.Join(home, "state")
	}
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// ConfigDir returns the hooklint configuration directory.
// Used for the global hooklint.yml.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}

// StateDir returns the hooklint state directory.
// Used for log files.
func StateDir() string {
	base := getStateHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}

// LogDir returns the default directory for log files.
func LogDir() string {
	state := StateDir()
	if state == "" {
		return ""
	}
	return filepath.Join(state, "logs")
}
