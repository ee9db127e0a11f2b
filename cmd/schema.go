package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/hooklint/config"
	"github.com/grovetools/hooklint/schema"
)

func NewSchemaCmd() *cobra.Command {
	var generated bool
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		Long: `Print the JSON schema used to validate hooklint configuration files.

By default the embedded schema is printed. With --generated the schema is
reflected from the configuration types instead, without extension sections.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := schema.Schema()
			if generated {
				var err error
				if data, err = config.GenerateSchema(); err != nil {
					return fmt.Errorf("failed to generate schema: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&generated, "generated", false, "Reflect the schema from the configuration types")
	return cmd
}
