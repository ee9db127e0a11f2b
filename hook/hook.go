// Package hook turns one event payload into one Decision, in one of three
// modes: lint immediately, collect for later, or drain and lint what was
// collected.
package hook

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/hooklint/extract"
	"github.com/grovetools/hooklint/lint"
	"github.com/grovetools/hooklint/logging"
	"github.com/grovetools/hooklint/project"
	"github.com/grovetools/hooklint/response"
	"github.com/grovetools/hooklint/session"
)

// Mode selects what an invocation does with its payload.
type Mode int

const (
	// ModeLint lints the payload's file immediately.
	ModeLint Mode = iota
	// ModeCollect records the payload's file for its session.
	ModeCollect
	// ModeDrain lints every file recorded for the payload's session.
	ModeDrain
)

func (m Mode) String() string {
	switch m {
	case ModeLint:
		return "lint"
	case ModeCollect:
		return "collect"
	case ModeDrain:
		return "lint-collected"
	default:
		return "unknown"
	}
}

// Options control a single invocation.
type Options struct {
	Mode    Mode
	Lenient bool
}

// Skipper decides whether a resolved file is excluded from linting.
type Skipper interface {
	Skip(path string, desc *project.Descriptor) (reason string, skip bool)
}

type noSkip struct{}

func (noSkip) Skip(string, *project.Descriptor) (string, bool) { return "", false }

// Runner wires the resolver, dispatcher and session store together.
type Runner struct {
	resolver   *project.Resolver
	dispatcher *lint.Dispatcher
	store      *session.Store
	skipper    Skipper
	logger     *logrus.Entry
}

// NewRunner creates a Runner. A nil skipper lints every resolved file.
func NewRunner(resolver *project.Resolver, dispatcher *lint.Dispatcher, store *session.Store, skipper Skipper) *Runner {
	if skipper == nil {
		skipper = noSkip{}
	}
	return &Runner{
		resolver:   resolver,
		dispatcher: dispatcher,
		store:      store,
		skipper:    skipper,
		logger:     logging.NewLogger("hook"),
	}
}

// Run handles payload according to opts. Errors are internal failures the
// caller must still turn into a Decision.
func (r *Runner) Run(ctx context.Context, payload string, opts Options) (response.Decision, error) {
	logger := r.logger.WithFields(logrus.Fields{
		"run_id": uuid.NewString(),
		"mode":   opts.Mode,
	})
	logger.Debug("Handling event")

	switch opts.Mode {
	case ModeCollect:
		return r.collect(payload, logger)
	case ModeDrain:
		return r.drain(ctx, payload, opts, logger)
	default:
		return r.lintOne(ctx, payload, opts, logger)
	}
}

func (r *Runner) lintOne(ctx context.Context, payload string, opts Options, logger *logrus.Entry) (response.Decision, error) {
	path, ok := extract.FilePath(payload)
	if !ok || path == "" {
		return response.Continuef("no file_path provided, skipping lint hook."), nil
	}

	desc, err := r.resolver.Resolve(ctx, path)
	if err != nil {
		logger.WithError(err).Debug("Resolution failed")
		return response.Continuef("skipping lint: unsupported file type or no project found for %s.", path), nil
	}

	if reason, skip := r.skipper.Skip(path, desc); skip {
		return response.Continuef("skipping lint for %s: %s.", path, reason), nil
	}

	files := []string{path}
	outcome, err := r.dispatcher.Dispatch(ctx, files, desc.Root, desc.Ecosystem, opts.Lenient)
	if err != nil {
		logger.WithError(err).Warn("Dispatch failed")
		return response.Blockf("error linting %s: %v", lint.Label(files), err), nil
	}
	return decide(outcome), nil
}

func (r *Runner) collect(payload string, logger *logrus.Entry) (response.Decision, error) {
	sid, ok := extract.SessionID(payload)
	if !ok || sid == "" {
		return response.Continuef("no session_id, skipping collect."), nil
	}

	path, ok := extract.FilePath(payload)
	if !ok || path == "" {
		return response.Continuef("no file_path provided, skipping collect."), nil
	}

	if err := r.store.Record(sid, path); err != nil {
		return response.Decision{}, err
	}
	logger.WithField("path", path).Debug("Collected file")
	return response.Continuef("collected %s for deferred lint.", path), nil
}

// group is a set of files linted by one dispatch.
type group struct {
	desc  project.Descriptor
	files []string
}

func (r *Runner) drain(ctx context.Context, payload string, opts Options, logger *logrus.Entry) (response.Decision, error) {
	sid, ok := extract.SessionID(payload)
	if !ok || sid == "" {
		return response.Continuef("no session_id, skipping lint-collected."), nil
	}

	paths, err := r.store.Drain(sid)
	if err != nil {
		return response.Decision{}, err
	}
	if len(paths) == 0 {
		return response.Continuef("no files collected, skipping lint."), nil
	}

	groups := r.groupFiles(ctx, paths, logger)

	var reasons []string
	for _, g := range groups {
		outcome, err := r.dispatcher.Dispatch(ctx, g.files, g.desc.Root, g.desc.Ecosystem, opts.Lenient)
		if err != nil {
			logger.WithError(err).WithField("root", g.desc.Root).Warn("Dispatch failed")
			reasons = append(reasons, response.Prefix+fmt.Sprintf("error linting %s: %v", lint.Label(g.files), err))
			continue
		}
		if d := decide(outcome); d.Block {
			reasons = append(reasons, d.Message)
		}
	}

	if len(reasons) > 0 {
		return response.Block(strings.Join(reasons, "\n\n---\n\n")), nil
	}
	return response.Continuef("all %d collected file(s) passed lint.", len(paths)), nil
}

// groupFiles resolves paths and batches those that share a project root and
// ecosystem, in first-seen order. Per-file ecosystems get one group per file.
// Files that cannot be resolved or are skipped are dropped.
func (r *Runner) groupFiles(ctx context.Context, paths []string, logger *logrus.Entry) []*group {
	var groups []*group
	byKey := make(map[project.Descriptor]*group)

	for _, path := range paths {
		desc, err := r.resolver.Resolve(ctx, path)
		if err != nil {
			logger.WithError(err).WithField("path", path).Debug("Skipping unresolvable file")
			continue
		}
		if reason, skip := r.skipper.Skip(path, desc); skip {
			logger.WithFields(logrus.Fields{"path": path, "reason": reason}).Debug("Skipping file")
			continue
		}

		if r.dispatcher.Scope(desc.Ecosystem) == lint.PerFile {
			groups = append(groups, &group{desc: *desc, files: []string{path}})
			continue
		}
		if g, ok := byKey[*desc]; ok {
			g.files = append(g.files, path)
			continue
		}
		g := &group{desc: *desc, files: []string{path}}
		byKey[*desc] = g
		groups = append(groups, g)
	}
	return groups
}

// decide maps a lint outcome to the Decision reported for it.
func decide(o *lint.Outcome) response.Decision {
	switch {
	case o.NoLinter:
		return response.Continuef("%s", o.Message)
	case o.Passed && o.Note != "":
		return response.Continuef("lint passed for %s using %s (%s).", o.Label, o.Tool, o.Note)
	case o.Passed:
		return response.Continuef("lint passed for %s using %s.", o.Label, o.Tool)
	default:
		return response.Blockf("lint errors in %s using %s:\n\n%s\n\nFix lint errors.", o.Label, o.Tool, o.Message)
	}
}
