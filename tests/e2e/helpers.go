package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

// findHooklintBinary finds the hooklint binary under test, from HOOKLINT_BIN
// or PATH.
func findHooklintBinary() (string, error) {
	if bin := os.Getenv("HOOKLINT_BIN"); bin != "" {
		return filepath.Abs(bin)
	}
	path, err := exec.LookPath("hooklint")
	if err != nil {
		return "", fmt.Errorf("could not find 'hooklint' binary in PATH or HOOKLINT_BIN")
	}
	return path, nil
}

// fakeTool writes an executable shell script into dir.
func fakeTool(dir, name, body string) error {
	if err := fs.CreateDir(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	if err := fs.WriteString(path, "#!/bin/sh\n"+body+"\n"); err != nil {
		return err
	}
	return os.Chmod(path, 0o755)
}

// goProject creates a Go module with one source file and returns the file.
func goProject(ctx *harness.Context, name string) (string, error) {
	dir := ctx.NewDir(name)
	if err := fs.CreateDir(dir); err != nil {
		return "", err
	}
	if err := fs.WriteString(filepath.Join(dir, "go.mod"), "module example.com/"+name+"\n"); err != nil {
		return "", err
	}
	file := filepath.Join(dir, "main.go")
	return file, fs.WriteString(file, "package main\n")
}

// event renders a tool event for file.
func event(sessionID, file string) string {
	return fmt.Sprintf(`{"session_id":%q,"tool_name":"Edit","tool_input":{"file_path":%q}}`, sessionID, file)
}

type hookRun struct {
	stdout   string
	stderr   string
	exitCode int
	err      error
}

// runHook feeds payload to hooklint on stdin with toolBin first on PATH.
func runHook(ctx *harness.Context, toolBin, payload string, args ...string) hookRun {
	bin, err := findHooklintBinary()
	if err != nil {
		return hookRun{err: err}
	}

	events := ctx.NewDir("events")
	if err := fs.CreateDir(events); err != nil {
		return hookRun{err: err}
	}
	input := filepath.Join(events, fmt.Sprintf("event-%d.json", len(payload)))
	if err := fs.WriteString(input, payload); err != nil {
		return hookRun{err: err}
	}

	quoted := make([]string, 0, len(args))
	for _, a := range args {
		quoted = append(quoted, "'"+a+"'")
	}
	script := fmt.Sprintf(
		"XDG_CONFIG_HOME=\"$HOME/.config\" HOOKLINT_HOME= PATH='%s':/usr/bin:/bin '%s' %s < '%s'",
		toolBin, bin, strings.Join(quoted, " "), input,
	)

	cmd := ctx.Command("sh", "-c", script)
	result := cmd.Run()
	ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
	return hookRun{stdout: result.Stdout, stderr: result.Stderr, exitCode: result.ExitCode, err: result.Error}
}
