package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHookLintHome(t *testing.T) {
	t.Setenv("HOOKLINT_HOME", "/opt/hl")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")

	assert.Equal(t, filepath.Join("/opt/hl", "config", "hooklint"), ConfigDir())
	assert.Equal(t, filepath.Join("/opt/hl", "state", "hooklint"), StateDir())
	assert.Equal(t, filepath.Join("/opt/hl", "state", "hooklint", "logs"), LogDir())
}

func TestXDGDirs(t *testing.T) {
	t.Setenv("HOOKLINT_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")

	assert.Equal(t, filepath.Join("/xdg/config", "hooklint"), ConfigDir())
	assert.Equal(t, filepath.Join("/xdg/state", "hooklint"), StateDir())
}

func TestPlatformDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOOKLINT_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".config", "hooklint"), ConfigDir())
	assert.Equal(t, filepath.Join(home, ".local", "state", "hooklint"), StateDir())
}
