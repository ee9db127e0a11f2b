package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	cwd, err := os.Getwd()
	require.NoError(t, err)
	t.Setenv("HOOKLINT_TEST_ROOT", "/srv/hooks")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/records", filepath.Join(home, "records")},
		{"$HOOKLINT_TEST_ROOT/records", "/srv/hooks/records"},
		{"/abs/../abs/dir", "/abs/dir"},
		{"relative", filepath.Join(cwd, "relative")},
		{"~user/x", filepath.Join(cwd, "~user/x")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Expand(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
