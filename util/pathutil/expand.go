// Package pathutil expands user-supplied paths from configuration.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Expand expands the home directory (~) and environment variables in a path
// and returns it as an absolute path. An empty path stays empty.
func Expand(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	path = os.ExpandEnv(path)

	return filepath.Abs(path)
}
