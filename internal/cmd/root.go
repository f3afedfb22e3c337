package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for combiner
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combiner",
		Short: "Concatenate a directory tree into a single text file",
		Long: `Combiner walks an ordered list of directories under a base folder and
concatenates every regular file it finds into one output file.

Each file's content is preceded by a header line naming its source:

  --- Content from {file} ---

Directories and exclusion rules are read from .combiner/config.yaml.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the returned error once
		SilenceErrors: true,
	}

	// Add subcommands
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewInitCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
