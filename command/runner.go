package command

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/grovetools/hooklint/errors"
)

// MaxTimeout is the maximum allowed timeout
const MaxTimeout = 10 * time.Minute

const waitDelay = 2 * time.Second

// Result is the captured outcome of a finished child process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the process exited with status zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Combined joins non-empty stdout and stderr with a newline and trims the result.
func (r *Result) Combined() string {
	var out string
	switch {
	case r.Stdout != "" && r.Stderr != "":
		out = r.Stdout + "\n" + r.Stderr
	case r.Stdout != "":
		out = r.Stdout
	default:
		out = r.Stderr
	}
	return strings.TrimSpace(out)
}

// Runner runs child processes to completion and captures their output.
type Runner struct {
	executor Executor
	timeout  time.Duration
}

// NewRunner creates a Runner backed by a RealExecutor with no timeout.
func NewRunner() *Runner {
	return NewRunnerWithExecutor(&RealExecutor{})
}

// NewRunnerWithExecutor creates a Runner with a custom Executor.
func NewRunnerWithExecutor(exec Executor) *Runner {
	return &Runner{executor: exec}
}

// WithTimeout sets a per-command timeout. Zero disables it.
func (r *Runner) WithTimeout(timeout time.Duration) *Runner {
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}
	if timeout < 0 {
		timeout = 0
	}
	r.timeout = timeout
	return r
}

// Timeout returns the configured per-command timeout.
func (r *Runner) Timeout() time.Duration {
	return r.timeout
}

// Run executes name with args in dir and blocks until it exits. A non-zero
// exit status is reported through Result, not as an error; errors are
// reserved for processes that could not be started or were killed by the
// timeout.
func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) (*Result, error) {
	if name == "" {
		return nil, errors.InvalidInput("command name cannot be empty")
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := r.executor.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if r.timeout > 0 {
		// Grandchildren holding the output pipes must not outlive the deadline.
		cmd.WaitDelay = waitDelay
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	display := strings.TrimSpace(name + " " + strings.Join(args, " "))

	if ctx.Err() == context.DeadlineExceeded {
		return nil, errors.CommandTimeout(display, r.timeout.String())
	}

	if err != nil && !stderrors.Is(err, exec.ErrWaitDelay) {
		var exitErr *exec.ExitError
		if !stderrors.As(err, &exitErr) {
			return nil, errors.CommandFailed(display, err)
		}
	}

	return &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}, nil
}

// Resolve locates bin, first under each of localDirs (relative entries are
// taken relative to root), then on the executable search path. It returns
// the path to run.
func (r *Runner) Resolve(root, bin string, localDirs ...string) (string, error) {
	for _, dir := range localDirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		candidate := filepath.Join(dir, bin)
		if info, err := r.executor.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	path, err := r.executor.LookPath(bin)
	if err != nil || path == "" {
		return "", errors.CommandNotFound(bin)
	}
	return path, nil
}
