package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"

	"github.com/grovetools/hooklint/response"
)

// LintPassScenario lints a clean file: silent by default, a message with -v.
func LintPassScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "hooklint-lint-pass",
		Description: "A file whose linter exits 0 produces a continue decision.",
		Tags:        []string{"hook", "lint"},
		Steps: []harness.Step{
			harness.NewStep("Lint a clean Go file", func(ctx *harness.Context) error {
				toolBin := ctx.NewDir("tools")
				if err := fakeTool(toolBin, "go", "exit 0"); err != nil {
					return err
				}
				file, err := goProject(ctx, "clean")
				if err != nil {
					return err
				}

				run := runHook(ctx, toolBin, event("s-pass", file))
				if run.err != nil {
					return run.err
				}
				if err := assert.Equal(`{"continue":true}`, strings.TrimSpace(run.stdout), "quiet continue expected"); err != nil {
					return err
				}

				run = runHook(ctx, toolBin, event("s-pass", file), "-v")
				if run.err != nil {
					return run.err
				}
				return assert.Contains(run.stdout, "lint passed for "+file+" using go vet.", "verbose message expected")
			}),
		},
	}
}

// LintBlockScenario lints a file with findings and expects a block decision.
func LintBlockScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "hooklint-lint-block",
		Description: "Linter findings block with the tool output as the reason.",
		Tags:        []string{"hook", "lint"},
		Steps: []harness.Step{
			harness.NewStep("Lint a Go file with findings", func(ctx *harness.Context) error {
				toolBin := ctx.NewDir("tools")
				if err := fakeTool(toolBin, "go", `echo "./main.go:1:1: something is wrong" >&2; exit 1`); err != nil {
					return err
				}
				file, err := goProject(ctx, "dirty")
				if err != nil {
					return err
				}

				run := runHook(ctx, toolBin, event("s-block", file))
				if run.err != nil {
					return run.err
				}
				if err := assert.Equal(0, run.exitCode, "hooklint always exits 0"); err != nil {
					return err
				}
				if err := assert.Contains(run.stdout, `"decision":"block"`, "block decision expected"); err != nil {
					return err
				}
				if err := assert.Contains(run.stdout, `something is wrong\n\nFix lint errors.`, "escaped tool output expected"); err != nil {
					return err
				}
				d, ok := response.Parse(strings.TrimSpace(run.stdout))
				if !ok {
					return fmt.Errorf("unparsable decision %q", run.stdout)
				}
				return assert.Equal(response.Prefix+"lint errors in "+file+" using go vet:\n\n./main.go:1:1: something is wrong\n\nFix lint errors.", d.Message, "decoded reason expected")
			}),
		},
	}
}

// CollectDrainScenario records files across invocations and lints them once.
func CollectDrainScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "hooklint-collect-drain",
		Description: "Files collected during a session are linted together and the record is consumed.",
		Tags:        []string{"hook", "session"},
		Steps: []harness.Step{
			harness.NewStep("Collect two files", func(ctx *harness.Context) error {
				toolBin := ctx.NewDir("tools")
				if err := fakeTool(toolBin, "go", "exit 0"); err != nil {
					return err
				}
				ctx.Set("toolBin", toolBin)

				for _, name := range []string{"one", "two"} {
					file, err := goProject(ctx, name)
					if err != nil {
						return err
					}
					run := runHook(ctx, toolBin, event("s-drain", file), "--collect", "-v")
					if run.err != nil {
						return run.err
					}
					if err := assert.Contains(run.stdout, "collected "+file+" for deferred lint.", "collect message expected"); err != nil {
						return err
					}
				}
				return nil
			}),
			harness.NewStep("Drain the session", func(ctx *harness.Context) error {
				toolBin := ctx.GetString("toolBin")

				run := runHook(ctx, toolBin, `{"session_id":"s-drain"}`, "--lint-collected", "-v")
				if run.err != nil {
					return run.err
				}
				if err := assert.Contains(run.stdout, "all 2 collected file(s) passed lint.", "drain summary expected"); err != nil {
					return err
				}

				run = runHook(ctx, toolBin, `{"session_id":"s-drain"}`, "--lint-collected", "-v")
				if run.err != nil {
					return run.err
				}
				return assert.Contains(run.stdout, "no files collected", "second drain finds nothing")
			}),
		},
	}
}

// ConfigLayeringScenario checks that global and project files are merged.
func ConfigLayeringScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "hooklint-config-layering",
		Description: "Global and project configuration files are merged by 'hooklint config'.",
		Tags:        []string{"config"},
		Steps: []harness.Step{
			harness.NewStep("Merge global and project config", func(ctx *harness.Context) error {
				globalDir := filepath.Join(ctx.HomeDir(), ".config", "hooklint")
				if err := fs.CreateDir(globalDir); err != nil {
					return fmt.Errorf("failed to create global config dir: %w", err)
				}
				if err := fs.WriteString(filepath.Join(globalDir, "hooklint.yml"), "verbose: true\nignore:\n  - \"**/generated/**\"\n"); err != nil {
					return err
				}

				projectDir := ctx.NewDir("configured")
				if err := fs.CreateDir(projectDir); err != nil {
					return err
				}
				if err := fs.WriteString(filepath.Join(projectDir, ".hooklint.toml"), "tool_timeout = \"30s\"\nignore = [\"vendor\"]\n"); err != nil {
					return err
				}

				bin, err := findHooklintBinary()
				if err != nil {
					return err
				}
				cmd := ctx.Command("sh", "-c", fmt.Sprintf("XDG_CONFIG_HOME=\"$HOME/.config\" HOOKLINT_HOME= '%s' config", bin)).Dir(projectDir)
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
				if result.Error != nil {
					return fmt.Errorf("`hooklint config` failed: %w", result.Error)
				}

				output := result.Stdout
				for _, want := range []string{"GLOBAL CONFIG", "PROJECT CONFIG", "FINAL MERGED CONFIG", "tool_timeout: 30s", "- vendor", "generated"} {
					if err := assert.Contains(output, want, want+" should be shown"); err != nil {
						return err
					}
				}
				return nil
			}),
		},
	}
}

// BrokenConfigScenario checks that an invalid project file never breaks the hook.
func BrokenConfigScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "hooklint-broken-config",
		Description: "An invalid configuration degrades to defaults and the hook still decides.",
		Tags:        []string{"config", "edge-cases"},
		Steps: []harness.Step{
			harness.NewStep("Lint with an invalid explicit config", func(ctx *harness.Context) error {
				toolBin := ctx.NewDir("tools")
				if err := fakeTool(toolBin, "go", "exit 0"); err != nil {
					return err
				}
				file, err := goProject(ctx, "broken")
				if err != nil {
					return err
				}
				cfgDir := ctx.NewDir("cfg")
				if err := fs.CreateDir(cfgDir); err != nil {
					return err
				}
				cfg := filepath.Join(cfgDir, "bad.yml")
				if err := fs.WriteString(cfg, "disabled: [cobol]\n"); err != nil {
					return err
				}

				run := runHook(ctx, toolBin, event("s-broken", file), "--config", cfg, "-v")
				if run.err != nil {
					return run.err
				}
				if err := assert.Equal(0, run.exitCode, "hooklint always exits 0"); err != nil {
					return err
				}
				return assert.Contains(run.stdout, "configuration ignored", "config problem should be mentioned")
			}),
		},
	}
}
