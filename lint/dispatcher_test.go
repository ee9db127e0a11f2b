package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/hooklint/command"
	"github.com/grovetools/hooklint/errors"
	"github.com/grovetools/hooklint/project"
	"github.com/grovetools/hooklint/testutil"
)

func TestLabel(t *testing.T) {
	assert.Equal(t, "/a.rs", Label([]string{"/a.rs"}))
	assert.Equal(t, "3 files", Label([]string{"/a", "/b", "/c"}))
}

func TestProfilesCoverEveryEcosystem(t *testing.T) {
	for _, eco := range project.All {
		p, ok := Profiles[eco]
		require.True(t, ok, "missing profile for %s", eco)
		assert.Equal(t, eco, p.Ecosystem)
		require.NotEmpty(t, p.Toolchains)
		for _, chain := range p.Toolchains {
			assert.NotEmpty(t, chain.Candidates)
			assert.Contains(t, chain.Hint, "%s")
		}
	}
}

func TestExpandArgs(t *testing.T) {
	tool := Tool{Name: "x", Args: []string{"check", FilePlaceholder, "-q"}, Lenient: []string{"--relax"}}

	assert.Equal(t, []string{"check", "/a.py", "-q"}, expandArgs(tool, []string{"/a.py"}, PerFile, false))
	assert.Equal(t, []string{"check", "/a.py", "/b.py", "-q", "--relax"}, expandArgs(tool, []string{"/a.py", "/b.py"}, PerFile, true))
	assert.Equal(t, []string{"check", "-q"}, expandArgs(tool, []string{"/a.rs"}, ProjectFiltered, false))
}

func newDispatcher() *Dispatcher {
	return NewDispatcher(command.NewRunner())
}

func TestDispatchWeb(t *testing.T) {
	bin := testutil.IsolatedPath(t)
	ctx := context.Background()

	t.Run("first local tool wins even when it crashes", func(t *testing.T) {
		root := testutil.Project(t, "package.json")
		local := filepath.Join(root, "node_modules", ".bin")
		testutil.FakeTool(t, local, "oxlint", `echo "oxlint crashed" >&2; exit 2`)
		testutil.FakeTool(t, local, "eslint", `exit 0`)
		file := testutil.WriteFile(t, root, "src/app.ts", "")

		out, err := newDispatcher().Dispatch(ctx, []string{file}, root, project.Web, false)
		require.NoError(t, err)
		assert.Equal(t, "oxlint", out.Tool)
		assert.False(t, out.Passed)
		assert.Equal(t, "oxlint crashed", out.Message)
		assert.Equal(t, file, out.Label)
	})

	t.Run("lenient overlay and combined output", func(t *testing.T) {
		root := testutil.Project(t, "package.json")
		local := filepath.Join(root, "node_modules", ".bin")
		testutil.FakeTool(t, local, "eslint", `echo "args: $*"; echo "warn" >&2; exit 1`)
		file := testutil.WriteFile(t, root, "a.js", "")

		out, err := newDispatcher().Dispatch(ctx, []string{file}, root, project.Web, true)
		require.NoError(t, err)
		assert.Equal(t, "eslint", out.Tool)
		assert.Equal(t, "args: "+file+" --rule no-unused-vars: off --rule @typescript-eslint/no-unused-vars: off --rule no-undef: off --rule react/jsx-no-undef: off\nwarn", out.Message)
	})

	t.Run("passing tool", func(t *testing.T) {
		root := testutil.Project(t, "package.json")
		testutil.FakeTool(t, filepath.Join(root, "node_modules", ".bin"), "biome", `[ "$1" = "lint" ] || exit 9; echo ok`)
		file := testutil.WriteFile(t, root, "a.tsx", "")

		out, err := newDispatcher().Dispatch(ctx, []string{file}, root, project.Web, false)
		require.NoError(t, err)
		assert.True(t, out.Passed)
		assert.Equal(t, "biome", out.Tool)
		assert.Empty(t, out.Message)
	})

	t.Run("npm script not configured", func(t *testing.T) {
		root := testutil.Project(t, "package.json")
		file := testutil.WriteFile(t, root, "a.js", "")
		testutil.FakeTool(t, bin, "npm", `echo 'npm error Missing script: "lint"' >&2; exit 1`)
		t.Cleanup(func() { _ = os.Remove(filepath.Join(bin, "npm")) })

		out, err := newDispatcher().Dispatch(ctx, []string{file}, root, project.Web, false)
		require.NoError(t, err)
		assert.True(t, out.NoLinter)
		assert.Equal(t, "no linter found for "+file+".", out.Message)
	})

	t.Run("npm script runs", func(t *testing.T) {
		root := testutil.Project(t, "package.json")
		file := testutil.WriteFile(t, root, "a.js", "")
		testutil.FakeTool(t, bin, "npm", `echo "lint: $*"; exit 1`)
		t.Cleanup(func() { _ = os.Remove(filepath.Join(bin, "npm")) })

		out, err := newDispatcher().Dispatch(ctx, []string{file}, root, project.Web, false)
		require.NoError(t, err)
		assert.Equal(t, "npm run lint", out.Tool)
		assert.Equal(t, "lint: run lint --if-present -- "+file, out.Message)
	})

	t.Run("nothing installed", func(t *testing.T) {
		root := testutil.Project(t, "package.json")
		file := testutil.WriteFile(t, root, "a.js", "")

		out, err := newDispatcher().Dispatch(ctx, []string{file}, root, project.Web, false)
		require.NoError(t, err)
		assert.True(t, out.NoLinter)
		assert.False(t, out.Passed)
	})
}

func TestDispatchPython(t *testing.T) {
	bin := testutil.IsolatedPath(t)
	testutil.FakeTool(t, bin, "ruff", `echo "global ruff"; exit 1`)
	ctx := context.Background()

	t.Run("virtualenv before PATH", func(t *testing.T) {
		root := testutil.Project(t, "pyproject.toml")
		testutil.FakeTool(t, filepath.Join(root, "venv", "bin"), "ruff", `echo "venv ruff: $*"; exit 1`)
		file := testutil.WriteFile(t, root, "m.py", "")

		out, err := newDispatcher().Dispatch(ctx, []string{file}, root, project.Python, true)
		require.NoError(t, err)
		assert.Equal(t, "ruff", out.Tool)
		assert.Equal(t, "venv ruff: check --output-format=concise "+file+" --ignore F841,F401,F821", out.Message)
	})

	t.Run("PATH fallback", func(t *testing.T) {
		root := testutil.Project(t, "setup.py")
		file := testutil.WriteFile(t, root, "m.py", "")

		out, err := newDispatcher().Dispatch(ctx, []string{file}, root, project.Python, false)
		require.NoError(t, err)
		assert.Equal(t, "global ruff", out.Message)
	})
}

func TestDispatchRust(t *testing.T) {
	bin := testutil.IsolatedPath(t)
	ctx := context.Background()
	root := testutil.Project(t, "Cargo.toml")
	main := filepath.Join(root, "src", "main.rs")
	lib := filepath.Join(root, "src", "lib.rs")

	t.Run("filters project output", func(t *testing.T) {
		testutil.FakeTool(t, bin, "cargo", `cat >&2 <<'EOF'
src/main.rs:10:5: error: unused variable
src/lib.rs:20:3: error: needless return
src/other.rs:1:1: error: not ours
EOF
exit 101`)

		out, err := newDispatcher().Dispatch(ctx, []string{main, lib}, root, project.Rust, false)
		require.NoError(t, err)
		assert.Equal(t, "clippy", out.Tool)
		assert.Equal(t, "2 files", out.Label)
		assert.False(t, out.Passed)
		assert.Equal(t, "src/main.rs:10:5: error: unused variable\nsrc/lib.rs:20:3: error: needless return", out.Message)
	})

	t.Run("findings only in other files", func(t *testing.T) {
		testutil.FakeTool(t, bin, "cargo", `echo "src/other.rs:1:1: error: not ours" >&2; exit 101`)

		out, err := newDispatcher().Dispatch(ctx, []string{main}, root, project.Rust, false)
		require.NoError(t, err)
		assert.True(t, out.Passed)
		assert.NotEmpty(t, out.Note)
	})

	t.Run("lenient arguments", func(t *testing.T) {
		testutil.FakeTool(t, bin, "cargo", `echo "src/main.rs: $*" >&2; exit 1`)

		out, err := newDispatcher().Dispatch(ctx, []string{main}, root, project.Rust, true)
		require.NoError(t, err)
		assert.Equal(t, "src/main.rs: clippy --message-format=short -- -D warnings -A unused_variables -A unused_imports -A dead_code", out.Message)
	})

	t.Run("clean", func(t *testing.T) {
		testutil.FakeTool(t, bin, "cargo", `echo "Finished" >&2; exit 0`)

		out, err := newDispatcher().Dispatch(ctx, []string{main}, root, project.Rust, false)
		require.NoError(t, err)
		assert.True(t, out.Passed)
		assert.Empty(t, out.Note)
	})
}

func TestDispatchJVM(t *testing.T) {
	bin := testutil.IsolatedPath(t)
	ctx := context.Background()

	t.Run("maven skips unconfigured plugin", func(t *testing.T) {
		root := testutil.Project(t, "pom.xml")
		file := testutil.WriteFile(t, root, "src/main/java/App.java", "")
		testutil.FakeTool(t, bin, "mvn", `if [ "$1" = "pmd:check" ]; then echo "[ERROR] No plugin found for prefix 'pmd' in the current project" >&2; exit 1; fi
echo "Bug: null dereference"; exit 1`)
		t.Cleanup(func() { _ = os.Remove(filepath.Join(bin, "mvn")) })

		out, err := newDispatcher().Dispatch(ctx, []string{file}, root, project.JVM, true)
		require.NoError(t, err)
		assert.Equal(t, "mvn spotbugs:check", out.Tool)
		assert.Equal(t, "Bug: null dereference", out.Message)
	})

	t.Run("maven without plugins", func(t *testing.T) {
		root := testutil.Project(t, "pom.xml")
		testutil.FakeTool(t, bin, "mvn", `echo "[ERROR] Unknown lifecycle phase" >&2; exit 1`)
		t.Cleanup(func() { _ = os.Remove(filepath.Join(bin, "mvn")) })

		out, err := newDispatcher().Dispatch(ctx, []string{"/x/A.java", "/x/B.java"}, root, project.JVM, false)
		require.NoError(t, err)
		assert.True(t, out.NoLinter)
		assert.Equal(t, "no Java linter configured for 2 files. Add maven-pmd-plugin or spotbugs-maven-plugin to pom.xml.", out.Message)
	})

	t.Run("gradle wrapper in project", func(t *testing.T) {
		root := testutil.Project(t, "build.gradle.kts", "gradle/wrapper/gradle-wrapper.properties")
		testutil.FakeTool(t, root, "gradlew", `echo "ran $*"; exit 0`)

		out, err := newDispatcher().Dispatch(ctx, []string{filepath.Join(root, "A.java")}, root, project.JVM, false)
		require.NoError(t, err)
		assert.Equal(t, "gradlew pmdMain", out.Tool)
		assert.True(t, out.Passed)
	})

	t.Run("no build tool", func(t *testing.T) {
		root := testutil.Project(t)

		out, err := newDispatcher().Dispatch(ctx, []string{"/x/A.java"}, root, project.JVM, false)
		require.NoError(t, err)
		assert.True(t, out.NoLinter)
		assert.Equal(t, "no Java build tool found for /x/A.java. Add pom.xml or build.gradle.", out.Message)
	})
}

func TestDispatchGo(t *testing.T) {
	bin := testutil.IsolatedPath(t)
	ctx := context.Background()
	root := testutil.Project(t, "go.mod")
	file := testutil.WriteFile(t, root, "main.go", "")

	testutil.FakeTool(t, bin, "go", `echo "vet: $*"; exit 1`)
	out, err := newDispatcher().Dispatch(ctx, []string{file}, root, project.Go, true)
	require.NoError(t, err)
	assert.Equal(t, "go vet", out.Tool)
	assert.Equal(t, "vet: vet "+file, out.Message)

	testutil.FakeTool(t, bin, "golangci-lint", `echo "golangci: $*"; exit 1`)
	out, err = newDispatcher().Dispatch(ctx, []string{file}, root, project.Go, true)
	require.NoError(t, err)
	assert.Equal(t, "golangci-lint", out.Tool)
	assert.Equal(t, "golangci: run --fast "+file+" --disable=unused", out.Message)
}

func TestDispatchErrors(t *testing.T) {
	testutil.IsolatedPath(t)
	ctx := context.Background()

	t.Run("empty file list", func(t *testing.T) {
		_, err := newDispatcher().Dispatch(ctx, nil, "/", project.Go, false)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	})

	t.Run("unknown ecosystem", func(t *testing.T) {
		_, err := newDispatcher().Dispatch(ctx, []string{"/a.cob"}, "/", project.Ecosystem("cobol"), false)
		assert.True(t, errors.Is(err, errors.ErrCodeUnsupportedFile))
	})

	t.Run("tool cannot be started", func(t *testing.T) {
		root := testutil.Project(t, "package.json")
		testutil.WriteFile(t, root, "node_modules/.bin/eslint", "not executable")

		_, err := newDispatcher().Dispatch(ctx, []string{"/a.js"}, root, project.Web, false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeCommandFailed))
	})

	t.Run("tool exceeds timeout", func(t *testing.T) {
		if _, err := os.Stat("/bin/sleep"); err != nil {
			t.Skip("/bin/sleep not available")
		}
		root := testutil.Project(t, "package.json")
		testutil.FakeTool(t, filepath.Join(root, "node_modules", ".bin"), "oxlint", `exec /bin/sleep 5`)

		d := NewDispatcher(command.NewRunner().WithTimeout(100 * time.Millisecond))
		_, err := d.Dispatch(ctx, []string{"/a.js"}, root, project.Web, false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeCommandTimeout))
	})
}
