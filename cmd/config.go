package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/hooklint/cli"
	"github.com/grovetools/hooklint/config"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Display the layered configuration for the current directory",
		Long: `Shows how the final configuration is built by merging layers:
1. Global config (~/.config/hooklint/hooklint.yml)
2. Project config (nearest .hooklint.yml or .hooklint.toml)
3. The file given with --config
This is useful for debugging configuration issues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layered, err := cli.LoadLayeredConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load layered config: %w", err)
			}

			out := cmd.OutOrStdout()
			printLayer := func(title string, path string, cfg *config.Config) {
				if cfg == nil {
					return
				}
				fmt.Fprintf(out, "--- # %s\n", title)
				if path != "" {
					fmt.Fprintf(out, "# Source: %s\n", path)
				}
				data, _ := yaml.Marshal(cfg)
				fmt.Fprintln(out, string(data))
			}

			printLayer("GLOBAL CONFIG", layered.FilePaths[config.SourceGlobal], layered.Global)
			printLayer("PROJECT CONFIG", layered.FilePaths[config.SourceProject], layered.Project)
			printLayer("EXPLICIT CONFIG", layered.FilePaths[config.SourceFlag], layered.Explicit)
			if env := layered.FilePaths[config.SourceEnv]; env != "" {
				fmt.Fprintf(out, "# session.dir overridden by %s\n", env)
			}
			printLayer("FINAL MERGED CONFIG", "", layered.Final)

			return nil
		},
	}
	return cmd
}
