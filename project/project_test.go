package project

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/hooklint/command"
	"github.com/grovetools/hooklint/errors"
	"github.com/grovetools/hooklint/testutil"
)

func TestEcosystemFor(t *testing.T) {
	tests := []struct {
		path     string
		expected Ecosystem
		ok       bool
	}{
		{"/a/b.ts", Web, true},
		{"/a/b.tsx", Web, true},
		{"b.js", Web, true},
		{"b.jsx", Web, true},
		{"b.mjs", Web, true},
		{"b.cjs", Web, true},
		{"/src/main.rs", Rust, true},
		{"/x/y.py", Python, true},
		{"/x/y.pyi", Python, true},
		{"/x/Y.java", JVM, true},
		{"/x/main.go", Go, true},
		{"/x/README.md", "", false},
		{"/x/Makefile", "", false},
		{"/x/archive.tar.gz", "", false},
		{"/x/noext", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			eco, ok := EcosystemFor(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, eco)
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("rust"))
	assert.True(t, Valid("web"))
	assert.False(t, Valid("cobol"))
	assert.False(t, Valid(""))
}

func TestFindMarker(t *testing.T) {
	root := testutil.Project(t, "go.mod", "svc/nested/go.mod")
	deep := filepath.Join(root, "svc", "nested", "pkg", "x")
	testutil.WriteFile(t, deep, "a.go", "")

	t.Run("nearest manifest wins", func(t *testing.T) {
		assert.Equal(t, filepath.Join(root, "svc", "nested"), FindMarker(deep, []string{"go.mod"}))
	})

	t.Run("falls back to ancestor", func(t *testing.T) {
		assert.Equal(t, root, FindMarker(filepath.Join(root, "svc"), []string{"go.mod"}))
	})

	t.Run("any marker matches", func(t *testing.T) {
		py := testutil.Project(t, "setup.cfg")
		assert.Equal(t, py, FindMarker(py, Markers[Python]))
	})

	t.Run("relative dir", func(t *testing.T) {
		t.Chdir(deep)
		assert.Equal(t, filepath.Join(root, "svc", "nested"), FindMarker(".", []string{"go.mod"}))
	})

	t.Run("nothing found", func(t *testing.T) {
		assert.Empty(t, FindMarker(deep, []string{"no-such-manifest.lock"}))
	})
}

func TestResolve(t *testing.T) {
	bin := testutil.IsolatedPath(t)
	r := NewResolver(command.NewRunner())
	ctx := context.Background()

	t.Run("monorepo shadowing", func(t *testing.T) {
		root := testutil.Project(t, "Cargo.toml", "crates/inner/Cargo.toml")
		file := testutil.WriteFile(t, root, "crates/inner/src/lib.rs", "")

		desc, err := r.Resolve(ctx, file)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "crates", "inner"), desc.Root)
		assert.Equal(t, Rust, desc.Ecosystem)
	})

	t.Run("relative path walks above the working directory", func(t *testing.T) {
		root := testutil.Project(t, "Cargo.toml")
		testutil.WriteFile(t, root, "crates/x/src/main.rs", "")
		t.Chdir(filepath.Join(root, "crates", "x"))

		desc, err := r.Resolve(ctx, filepath.Join("src", "main.rs"))
		require.NoError(t, err)
		assert.Equal(t, root, desc.Root)
		assert.Equal(t, Rust, desc.Ecosystem)
	})

	t.Run("python markers", func(t *testing.T) {
		root := testutil.Project(t, "requirements.txt")
		file := testutil.WriteFile(t, root, "pkg/mod.py", "")

		desc, err := r.Resolve(ctx, file)
		require.NoError(t, err)
		assert.Equal(t, root, desc.Root)
		assert.Equal(t, Python, desc.Ecosystem)
	})

	t.Run("gradle kotlin dsl", func(t *testing.T) {
		root := testutil.Project(t, "build.gradle.kts")
		file := testutil.WriteFile(t, root, "src/main/java/App.java", "")

		desc, err := r.Resolve(ctx, file)
		require.NoError(t, err)
		assert.Equal(t, root, desc.Root)
		assert.Equal(t, JVM, desc.Ecosystem)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := r.Resolve(ctx, "/tmp/notes.txt")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeUnsupportedFile))
	})

	t.Run("no project", func(t *testing.T) {
		dir := testutil.Project(t)
		file := testutil.WriteFile(t, dir, "orphan.go", "")

		_, err := r.Resolve(ctx, file)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeNoProject))
	})

	t.Run("web uses npm prefix", func(t *testing.T) {
		root := testutil.Project(t, "package.json")
		file := testutil.WriteFile(t, root, "src/app.ts", "")
		testutil.FakeTool(t, bin, "npm", `[ "$1" = "prefix" ] || exit 2; echo "`+root+`"`)

		desc, err := r.Resolve(ctx, file)
		require.NoError(t, err)
		assert.Equal(t, root, desc.Root)
		assert.Equal(t, Web, desc.Ecosystem)
	})

	t.Run("web without project", func(t *testing.T) {
		dir := testutil.Project(t)
		file := testutil.WriteFile(t, dir, "app.js", "")

		testutil.FakeTool(t, bin, "npm", `exit 1`)
		_, err := r.Resolve(ctx, file)
		assert.True(t, errors.Is(err, errors.ErrCodeNoProject))

		testutil.FakeTool(t, bin, "npm", `printf "  \n"`)
		_, err = r.Resolve(ctx, file)
		assert.True(t, errors.Is(err, errors.ErrCodeNoProject))
	})
}
