package main

import (
	"fmt"
	"strings"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/command"
	"github.com/grovetools/tend/pkg/harness"
)

// VersionScenario tests the --version flag and the 'version' command.
func VersionScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "hooklint-version",
		Tags: []string{"cli"},
		Steps: []harness.Step{
			harness.NewStep("Run 'hooklint version'", func(ctx *harness.Context) error {
				bin, err := findHooklintBinary()
				if err != nil {
					return err
				}

				cmd := command.New(bin, "version")
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(0, result.ExitCode, "hooklint version should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "Commit:", "Output should contain Commit"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, "Go version:", "Output should contain Go version")
			}),
			harness.NewStep("Run 'hooklint -V'", func(ctx *harness.Context) error {
				bin, err := findHooklintBinary()
				if err != nil {
					return err
				}

				cmd := command.New(bin, "-V")
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(0, result.ExitCode, "hooklint -V should exit successfully"); err != nil {
					return err
				}
				if strings.Contains(result.Stdout, "Commit:") {
					return fmt.Errorf("-V should print only the version, got %q", result.Stdout)
				}
				return nil
			}),
		},
	}
}
