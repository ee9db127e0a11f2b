package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/hooklint/config"
	"github.com/grovetools/hooklint/errors"
	"github.com/grovetools/hooklint/project"
)

func TestFilterSkip(t *testing.T) {
	f, err := NewFilter(&config.Config{
		Ignore:   []string{"vendor", "**/*.gen.go", "!vendor/keep.go", "tmp/scratch/*.py"},
		Disabled: []string{"jvm"},
	})
	require.NoError(t, err)

	goProject := &project.Descriptor{Root: "/src/app", Ecosystem: project.Go}

	tests := []struct {
		name       string
		path       string
		desc       *project.Descriptor
		wantSkip   bool
		wantReason string
	}{
		{"plain file", "/src/app/main.go", goProject, false, ""},
		{"ignored directory", "/src/app/vendor/lib/a.go", goProject, true, "ignored by configuration"},
		{"negated pattern", "/src/app/vendor/keep.go", goProject, false, ""},
		{"glob pattern", "/src/app/pkg/api.gen.go", goProject, true, "ignored by configuration"},
		{"absolute path pattern", "/tmp/scratch/try.py", &project.Descriptor{Root: "/other", Ecosystem: project.Python}, true, "ignored by configuration"},
		{
			"disabled ecosystem",
			"/src/svc/App.java",
			&project.Descriptor{Root: "/src/svc", Ecosystem: project.JVM},
			true,
			"ecosystem jvm disabled by configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, skip := f.Skip(tt.path, tt.desc)
			assert.Equal(t, tt.wantSkip, skip)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestNewFilter(t *testing.T) {
	f, err := NewFilter(nil)
	require.NoError(t, err)
	_, skip := f.Skip("/a/b.go", &project.Descriptor{Root: "/a", Ecosystem: project.Go})
	assert.False(t, skip)

	_, err = NewFilter(&config.Config{Disabled: []string{"cobol"}})
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))

	_, err = NewFilter(&config.Config{Ignore: []string{"["}})
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))
}
