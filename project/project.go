// Package project maps a source file to the project that owns it and the
// language ecosystem used to lint it.
package project

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/hooklint/command"
	"github.com/grovetools/hooklint/errors"
	"github.com/grovetools/hooklint/logging"
)

// Ecosystem is a language and tooling family with its own manifest
// convention and lint tools.
type Ecosystem string

const (
	Web    Ecosystem = "web"
	Rust   Ecosystem = "rust"
	Python Ecosystem = "python"
	JVM    Ecosystem = "jvm"
	Go     Ecosystem = "go"
)

// All lists every supported ecosystem.
var All = []Ecosystem{Web, Rust, Python, JVM, Go}

var extensions = map[string]Ecosystem{
	".ts":   Web,
	".tsx":  Web,
	".js":   Web,
	".jsx":  Web,
	".mjs":  Web,
	".cjs":  Web,
	".rs":   Rust,
	".py":   Python,
	".pyi":  Python,
	".java": JVM,
	".go":   Go,
}

// Markers holds the manifest filenames whose presence marks a project root.
// Web projects are located with the package manager instead.
var Markers = map[Ecosystem][]string{
	Rust:   {"Cargo.toml"},
	Python: {"pyproject.toml", "setup.py", "setup.cfg", "Pipfile", "requirements.txt"},
	JVM:    {"pom.xml", "build.gradle", "build.gradle.kts"},
	Go:     {"go.mod"},
}

// Descriptor identifies the project owning a file.
type Descriptor struct {
	Root      string
	Ecosystem Ecosystem
}

// EcosystemFor returns the ecosystem for path's extension.
func EcosystemFor(path string) (Ecosystem, bool) {
	eco, ok := extensions[filepath.Ext(path)]
	return eco, ok
}

// Valid reports whether s names a supported ecosystem.
func Valid(s string) bool {
	for _, eco := range All {
		if string(eco) == s {
			return true
		}
	}
	return false
}

// Resolver computes Descriptors from the current filesystem state. Nothing
// is cached between calls.
type Resolver struct {
	runner *command.Runner
	logger *logrus.Entry
}

// NewResolver creates a Resolver that uses runner for package-manager queries.
func NewResolver(runner *command.Runner) *Resolver {
	return &Resolver{
		runner: runner,
		logger: logging.NewLogger("project"),
	}
}

// Resolve returns the project owning path. Unsupported extensions yield an
// UNSUPPORTED_FILE error; supported files outside any project yield NO_PROJECT.
func (r *Resolver) Resolve(ctx context.Context, path string) (*Descriptor, error) {
	eco, ok := EcosystemFor(path)
	if !ok {
		return nil, errors.UnsupportedFile(path)
	}

	var root string
	if eco == Web {
		root = r.packageRoot(ctx, path)
	} else {
		root = FindMarker(filepath.Dir(path), Markers[eco])
	}
	if root == "" {
		return nil, errors.NoProject(path, string(eco))
	}

	r.logger.WithFields(logrus.Fields{
		"file":      path,
		"root":      root,
		"ecosystem": eco,
	}).Debug("Resolved project")
	return &Descriptor{Root: root, Ecosystem: eco}, nil
}

// packageRoot asks npm for the package root of path's directory.
func (r *Resolver) packageRoot(ctx context.Context, path string) string {
	res, err := r.runner.Run(ctx, filepath.Dir(path), "npm", "prefix")
	if err != nil {
		r.logger.WithError(err).Debug("npm prefix failed")
		return ""
	}
	if !res.Success() {
		return ""
	}
	return strings.TrimSpace(res.Stdout)
}

// FindMarker walks upward from dir and returns the first directory that
// contains any of markers, or "" when the walk reaches the top. A relative
// dir is taken from the working directory and the walk continues above it.
func FindMarker(dir string, markers []string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		for _, m := range markers {
			if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
