package command

import (
	"context"
	"os"
	"os/exec"
)

// Executor is the Runner's view of the operating system: it builds child
// processes and answers whether a linter binary exists. Tests substitute it
// to control which tools appear installed.
type Executor interface {
	// CommandContext creates a context-aware exec.Cmd.
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd

	// LookPath searches the executable search path for a binary.
	LookPath(file string) (string, error)

	// Stat reports on a candidate binary inside a project directory.
	Stat(path string) (os.FileInfo, error)
}

// RealExecutor uses os/exec and the real filesystem.
type RealExecutor struct{}

func (e *RealExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}

func (e *RealExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (e *RealExecutor) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}
