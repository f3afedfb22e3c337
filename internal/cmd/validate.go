package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and print the effective settings",
		Long: `Load .combiner/config.yaml (or --config), apply the variant preset and any
flags, validate the result and print the effective configuration as YAML.

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			base, err := cfg.ResolveBaseFolder()
			if err != nil {
				return err
			}

			data, err := cfg.Marshal()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# base_folder resolves to %s\n", base)
			fmt.Fprint(out, string(data))
			return nil
		},
		SilenceUsage: true,
	}

	addConfigFlags(cmd)

	return cmd
}
