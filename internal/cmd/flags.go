package cmd

import (
	"fmt"

	"github.com/harrison/combiner/internal/config"
	"github.com/spf13/cobra"
)

// addConfigFlags registers the flags shared by commands that load configuration
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: .combiner/config.yaml)")
	cmd.Flags().StringP("output", "o", "", "Output file path (prompted for when unset)")
	cmd.Flags().String("variant", "", "Preset to apply: strict or permissive")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Directory for per-run log files")
	cmd.Flags().String("report", "", "Write a YAML run report to this path")
}

// loadConfig loads the configuration named by --config, or
// .combiner/config.yaml in the working directory, and merges changed flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		// Load from explicit config path
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		// Load from default .combiner/config.yaml
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// Merge CLI flags with config (flags take precedence)
	cfg.MergeWithFlags(
		changedString(cmd, "output"),
		changedString(cmd, "variant"),
		changedString(cmd, "log-level"),
		changedString(cmd, "log-dir"),
		changedString(cmd, "report"),
	)

	// Validate merged configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// changedString returns a pointer to the flag's value if it was set on the command line
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetString(name)
	return &value
}
