package hook

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"

	"github.com/grovetools/hooklint/config"
	"github.com/grovetools/hooklint/errors"
	"github.com/grovetools/hooklint/project"
)

// Filter skips files matched by the configured ignore patterns and files of
// disabled ecosystems.
type Filter struct {
	matcher  *patternmatcher.PatternMatcher
	disabled map[project.Ecosystem]bool
}

// NewFilter builds a Filter from cfg. A nil cfg skips nothing.
func NewFilter(cfg *config.Config) (*Filter, error) {
	f := &Filter{disabled: make(map[project.Ecosystem]bool)}
	if cfg == nil {
		return f, nil
	}

	if len(cfg.Ignore) > 0 {
		pm, err := patternmatcher.New(cfg.Ignore)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid ignore pattern")
		}
		f.matcher = pm
	}

	for _, name := range cfg.Disabled {
		if !project.Valid(name) {
			return nil, errors.ConfigInvalid(fmt.Sprintf("unknown ecosystem %q in disabled", name))
		}
		f.disabled[project.Ecosystem(name)] = true
	}
	return f, nil
}

// Skip implements Skipper. Patterns match the path relative to the project
// root first, then the path as given.
func (f *Filter) Skip(path string, desc *project.Descriptor) (string, bool) {
	if desc != nil && f.disabled[desc.Ecosystem] {
		return fmt.Sprintf("ecosystem %s disabled by configuration", desc.Ecosystem), true
	}
	if f.matcher == nil {
		return "", false
	}

	candidates := make([]string, 0, 2)
	if desc != nil {
		if rel, err := filepath.Rel(desc.Root, path); err == nil && !strings.HasPrefix(rel, "..") {
			candidates = append(candidates, filepath.ToSlash(rel))
		}
	}
	candidates = append(candidates, strings.TrimPrefix(filepath.ToSlash(path), "/"))

	for _, candidate := range candidates {
		// Parent matching lets "build" cover everything below it.
		if ok, err := f.matcher.MatchesOrParentMatches(candidate); err == nil && ok {
			return "ignored by configuration", true
		}
	}
	return "", false
}
