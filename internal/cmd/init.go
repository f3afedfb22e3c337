package cmd

import (
	"fmt"
	"os"

	"github.com/harrison/combiner/internal/config"
	"github.com/harrison/combiner/internal/filelock"
	"github.com/harrison/combiner/internal/models"
	"github.com/spf13/cobra"
)

const starterHeader = `# combiner configuration
#
# directories are walked in the order listed, and that order is the
# order of the combined output. Keys set here override the variant preset.
`

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .combiner/config.yaml",
		Args:  cobra.NoArgs,
		RunE:  initCommand,
	}

	cmd.Flags().String("dir", ".", "Project directory to initialize")
	cmd.Flags().String("variant", string(models.VariantStrict), "Preset to start from: strict or permissive")
	cmd.Flags().Bool("force", false, "Overwrite an existing configuration")

	return cmd
}

func initCommand(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	variant, _ := cmd.Flags().GetString("variant")
	force, _ := cmd.Flags().GetBool("force")

	v := models.Variant(variant)
	if !v.Valid() {
		return fmt.Errorf("invalid variant %q, must be one of: strict, permissive", variant)
	}

	path := config.Path(dir)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	cfg.ApplyVariant(v)

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	if err := filelock.LockAndWrite(path, append([]byte(starterHeader), data...)); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
