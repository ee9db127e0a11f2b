// Package lint selects and runs the external linter for a project and
// normalizes what it reports.
package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/hooklint/command"
	"github.com/grovetools/hooklint/errors"
	"github.com/grovetools/hooklint/logging"
	"github.com/grovetools/hooklint/project"
)

// Outcome is the normalized result of one dispatch.
type Outcome struct {
	// Tool is the name of the linter that ran. Empty when NoLinter is set.
	Tool string
	// Label names the files linted: the single path, or "N files".
	Label string
	// Passed is true when the linter exited successfully.
	Passed bool
	// Message holds the linter output on failure, or the hint when NoLinter is set.
	Message string
	// NoLinter is set when no candidate tool was present or configured.
	NoLinter bool
	// Note carries extra context for a passing outcome.
	Note string
}

// Dispatcher runs linters through a command.Runner.
type Dispatcher struct {
	runner   *command.Runner
	profiles map[project.Ecosystem]Profile
	logger   *logrus.Entry
}

// NewDispatcher creates a Dispatcher using the built-in Profiles.
func NewDispatcher(runner *command.Runner) *Dispatcher {
	return &Dispatcher{
		runner:   runner,
		profiles: Profiles,
		logger:   logging.NewLogger("lint"),
	}
}

// Scope returns how eco's tools cover files. Unknown ecosystems are PerFile.
func (d *Dispatcher) Scope(eco project.Ecosystem) Scope {
	return d.profiles[eco].Scope
}

// Label names a batch of files in messages.
func Label(files []string) string {
	if len(files) == 1 {
		return files[0]
	}
	return fmt.Sprintf("%d files", len(files))
}

// Dispatch lints files, which must all belong to the project at root.
// An error is returned only when a selected tool could not be run to
// completion; lint findings and missing linters are reported in the Outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, files []string, root string, eco project.Ecosystem, lenient bool) (*Outcome, error) {
	if len(files) == 0 {
		return nil, errors.InvalidInput("no files to lint")
	}
	profile, ok := d.profiles[eco]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedFile, fmt.Sprintf("no lint profile for ecosystem %q", eco))
	}

	label := Label(files)
	logger := d.logger.WithFields(logrus.Fields{
		"ecosystem": eco,
		"root":      root,
		"label":     label,
	})

	chain, ok := selectToolchain(profile, root)
	if !ok {
		logger.Debug("No toolchain applies")
		return &Outcome{Label: label, NoLinter: true, Message: fmt.Sprintf(profile.NoToolchain, label)}, nil
	}

	for _, tool := range chain.Candidates {
		bin, err := d.resolveTool(tool, root, chain.LocalDirs)
		if err != nil {
			logger.WithField("tool", toolName(tool, "")).Debug("Tool not available")
			continue
		}

		name := toolName(tool, bin)
		args := expandArgs(tool, files, profile.Scope, lenient)
		logger.WithFields(logrus.Fields{
			"tool": name,
			"bin":  bin,
			"args": args,
		}).Debug("Running linter")

		res, err := d.runner.Run(ctx, root, bin, args...)
		if err != nil {
			return nil, err
		}

		if marker, found := notConfigured(tool, res); found {
			logger.WithFields(logrus.Fields{
				"tool":   name,
				"marker": marker,
			}).Debug("Tool not configured for project")
			continue
		}

		return normalize(name, label, profile.Scope, res, files, root), nil
	}

	return &Outcome{Label: label, NoLinter: true, Message: fmt.Sprintf(chain.Hint, label)}, nil
}

// selectToolchain returns the first toolchain whose markers are present in root.
func selectToolchain(profile Profile, root string) (Toolchain, bool) {
	for _, chain := range profile.Toolchains {
		if len(chain.When) == 0 {
			return chain, true
		}
		for _, marker := range chain.When {
			if _, err := os.Stat(filepath.Join(root, marker)); err == nil {
				return chain, true
			}
		}
	}
	return Toolchain{}, false
}

func (d *Dispatcher) resolveTool(tool Tool, root string, localDirs []string) (string, error) {
	bins := tool.Bins
	if len(bins) == 0 {
		bins = []string{tool.Name}
	}

	var lastErr error
	for _, bin := range bins {
		path, err := d.runner.Resolve(root, bin, localDirs...)
		if err == nil {
			return path, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func toolName(tool Tool, bin string) string {
	name := tool.Name
	if name == "" && len(tool.Bins) > 0 {
		name = tool.Bins[0]
	}
	if bin != "" {
		name = strings.ReplaceAll(name, BinPlaceholder, filepath.Base(bin))
	}
	return name
}

func expandArgs(tool Tool, files []string, scope Scope, lenient bool) []string {
	args := make([]string, 0, len(tool.Args)+len(files)+len(tool.Lenient))
	for _, a := range tool.Args {
		if a == FilePlaceholder {
			if scope == PerFile {
				args = append(args, files...)
			}
			continue
		}
		args = append(args, a)
	}
	if lenient {
		args = append(args, tool.Lenient...)
	}
	return args
}

func notConfigured(tool Tool, res *command.Result) (string, bool) {
	combined := res.Stdout + res.Stderr
	for _, marker := range tool.NotConfigured {
		if strings.Contains(combined, marker) {
			return marker, true
		}
	}
	return "", false
}

func normalize(name, label string, scope Scope, res *command.Result, files []string, root string) *Outcome {
	out := &Outcome{Tool: name, Label: label}

	if scope == ProjectFiltered {
		filtered := FilterOutput(res.Stdout, res.Stderr, files, root)
		switch {
		case res.Success():
			out.Passed = true
		case filtered == "":
			out.Passed = true
			out.Note = fmt.Sprintf("%s reported problems outside %s", name, label)
		default:
			out.Message = strings.TrimSpace(filtered)
		}
		return out
	}

	if res.Success() {
		out.Passed = true
		return out
	}
	out.Message = res.Combined()
	return out
}
