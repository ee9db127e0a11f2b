package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/hooklint/config"
	"github.com/grovetools/hooklint/logging"
)

// CommandOptions holds common options for hooklint commands
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
}

// NewStandardCommand creates a new command with the standard flags
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Include informational messages in the decision")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to a hooklint config file")

	SetStyledHelp(cmd)

	return cmd
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
	}
}

// LoadConfig loads the layered configuration for the working directory,
// including the file named by --config.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(
		WithOutput(cmd.ErrOrStderr()),
		WithLevel(logrus.WarnLevel),
		WithFormatter(&logging.TextFormatter{Config: logging.FormatConfig{DisableTimestamp: true}}),
	)
	return config.LoadFromWithLogger(cwd, GetOptions(cmd).ConfigFile, logger)
}

// LoadLayeredConfig is LoadConfig keeping every layer.
func LoadLayeredConfig(cmd *cobra.Command) (*config.LayeredConfig, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.LoadLayered(cwd, GetOptions(cmd).ConfigFile)
}
