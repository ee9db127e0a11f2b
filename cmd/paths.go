package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/hooklint/cli"
	"github.com/grovetools/hooklint/config"
	"github.com/grovetools/hooklint/pkg/paths"
	"github.com/grovetools/hooklint/session"
)

// PathsOutput represents the paths hooklint reads and writes.
type PathsOutput struct {
	SessionDir    string `json:"session_dir"`
	SessionPrefix string `json:"session_prefix"`
	GlobalConfig  string `json:"global_config"`
	ProjectConfig string `json:"project_config,omitempty"`
	LogDir        string `json:"log_dir"`
}

func NewPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the paths used by hooklint",
		Long: `Print the paths used by hooklint as JSON.

- session_dir: where collected files are recorded between runs
- global_config: the user-wide configuration file
- project_config: the nearest project configuration file, if any
- log_dir: default directory for the optional log file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			store := session.NewStore(cfg.Session.Dir, cfg.Session.Prefix)

			output := PathsOutput{
				SessionDir:    store.Dir(),
				SessionPrefix: cfg.Session.Prefix,
				GlobalConfig:  config.GlobalConfigPath(),
				LogDir:        paths.LogDir(),
			}
			if cwd, err := os.Getwd(); err == nil {
				if path, err := config.FindConfigFile(cwd); err == nil {
					output.ProjectConfig = path
				}
			}

			jsonData, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal paths to JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		},
	}

	return cmd
}
