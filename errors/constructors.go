package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
)

// InvalidInput creates an error for a malformed or incomplete hook payload
func InvalidInput(reason string) *HookError {
	return New(ErrCodeInvalidInput, reason)
}

// UnsupportedFile creates an error for a file whose extension maps to no ecosystem
func UnsupportedFile(path string) *HookError {
	return New(ErrCodeUnsupportedFile, fmt.Sprintf("unsupported file type: %s", path)).
		WithDetail("path", path)
}

// NoProject creates an error for a supported file without an enclosing project
func NoProject(path, ecosystem string) *HookError {
	return New(ErrCodeNoProject, fmt.Sprintf("no %s project found for %s", ecosystem, path)).
		WithDetail("path", path).
		WithDetail("ecosystem", ecosystem)
}

// CommandNotFound creates an error for a binary missing from every probed location
func CommandNotFound(name string) *HookError {
	return New(ErrCodeCommandNotFound, fmt.Sprintf("command not found: %s", name)).
		WithDetail("command", name)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *HookError {
	hookErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		hookErr = hookErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return hookErr
}

// CommandTimeout creates an error for a command killed by its deadline
func CommandTimeout(cmd string, timeout string) *HookError {
	return Wrap(context.DeadlineExceeded, ErrCodeCommandTimeout,
		fmt.Sprintf("command '%s' did not finish within %s", cmd, timeout)).
		WithDetail("command", cmd).
		WithDetail("timeout", timeout)
}

// SessionStore creates an error for a failed read or write of a session record
func SessionStore(op, path string, err error) *HookError {
	return Wrap(err, ErrCodeSessionStore, fmt.Sprintf("session store %s failed", op)).
		WithDetail("path", path)
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *HookError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *HookError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}
