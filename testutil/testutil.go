package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireUnix skips the test on platforms where fake tools cannot be
// written as shell scripts.
func RequireUnix(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake tools are shell scripts")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
}

// WriteFile creates root/rel with content, making parent directories.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()

	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Project creates a temporary project directory containing the given marker
// files, each empty. The returned path has symlinks resolved so it compares
// equal to paths derived from it.
func Project(t *testing.T, markers ...string) string {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for _, m := range markers {
		WriteFile(t, root, m, "")
	}
	return root
}

// FakeTool writes an executable shell script named name into dir. The body
// runs under /bin/sh with the tool's arguments available as "$@".
func FakeTool(t *testing.T, dir, name, body string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755)) // #nosec G306 -- test executable
	return path
}

// IsolatedPath points PATH at a fresh directory holding only the given
// passthrough utilities, and returns that directory. Tools created there
// with FakeTool are the only linters the code under test can see.
func IsolatedPath(t *testing.T) string {
	t.Helper()

	RequireUnix(t)
	bin := t.TempDir()
	for _, util := range []string{"sh", "cat", "echo", "printf", "pwd"} {
		for _, dir := range []string{"/bin", "/usr/bin"} {
			src := filepath.Join(dir, util)
			if _, err := os.Stat(src); err == nil {
				_ = os.Symlink(src, filepath.Join(bin, util))
				break
			}
		}
	}
	t.Setenv("PATH", bin)
	return bin
}

// RandomString generates a random string of the specified length
func RandomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		panic(err)
	}
	return hex.EncodeToString(bytes)[:length]
}
