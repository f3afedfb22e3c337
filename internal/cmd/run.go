package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/harrison/combiner/internal/aggregator"
	"github.com/harrison/combiner/internal/display"
	"github.com/harrison/combiner/internal/filelock"
	"github.com/harrison/combiner/internal/filter"
	"github.com/harrison/combiner/internal/history"
	"github.com/harrison/combiner/internal/logger"
	"github.com/harrison/combiner/internal/models"
	"github.com/harrison/combiner/internal/prompt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// errEmptyOutput is reported when the prompt returns a blank file name
var errEmptyOutput = errors.New("output file name cannot be empty")

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Combine the configured directories into one file",
		Long: `Combine every regular file under the configured directories into a single
output file, in directory order and then walk order.

Configuration is loaded from .combiner/config.yaml if present.
CLI flags override configuration file settings. When no output file is
configured, run prompts for one.

Run failures are printed as "An error occurred: ..." and exit with status 0
unless --fail-on-error is set.

Examples:
  combiner run -o combined_output.txt
  combiner run --variant permissive -o all.txt
  combiner run --config team/.combiner/config.yaml --report run.yaml
  combiner run --log-dir .combiner/logs --log-level debug`,
		Args: cobra.NoArgs,
		RunE: runCommand,
	}

	addConfigFlags(cmd)
	cmd.Flags().Bool("fail-on-error", false, "Exit non-zero when the run fails")

	return cmd
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	failOnError, _ := cmd.Flags().GetBool("fail-on-error")
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	if cfg.Output == "" {
		name, err := prompt.Ask(cmd.InOrStdin(), stdout)
		if err == nil && name == "" {
			err = errEmptyOutput
		}
		if err != nil {
			return reportFailure(stdout, err, failOnError)
		}
		cfg.Output = name
	}

	base, err := cfg.ResolveBaseFolder()
	if err != nil {
		return reportFailure(stdout, err, failOnError)
	}

	runID := uuid.NewString()
	loggers := []logger.Logger{logger.NewConsoleLogger(stderr, cfg.LogLevel)}
	if cfg.LogDir != "" {
		fileLogger, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel, runID)
		if err != nil {
			return reportFailure(stdout, fmt.Errorf("failed to create file logger: %w", err), failOnError)
		}
		defer fileLogger.Close()
		loggers = append(loggers, fileLogger)
	}
	log := logger.NewMultiLogger(loggers...)

	agg := aggregator.New(aggregator.Options{
		RunID:               runID,
		BaseFolder:          base,
		Directories:         cfg.Directories,
		OutputPath:          cfg.Output,
		Filters:             filter.New(cfg.Exclusions),
		Identifier:          cfg.Identifier,
		ContinueOnFileError: cfg.ContinueOnFileError,
		MaxDepth:            cfg.MaxDepth,
	}, log, display.NewProgressIndicator(stderr))

	report, runErr := agg.Run()

	if len(report.MissingDirectories) > 0 {
		display.WarnMissingDirectories(report.MissingDirectories).Display(stderr)
	}
	if skipped := report.SkippedFiles(); len(skipped) > 0 {
		display.WarnSkippedFiles(skipped).Display(stderr)
	}

	if cfg.Report != "" {
		if err := writeReport(cfg.Report, report); err != nil {
			log.LogError(err.Error())
		} else {
			log.LogDebug(fmt.Sprintf("Run report written to %s", cfg.Report))
		}
	}

	if cfg.HistoryDB != "" {
		if err := recordHistory(cmd, cfg.HistoryDB, report); err != nil {
			log.LogWarn(err.Error())
		}
	}

	if runErr != nil {
		return reportFailure(stdout, runErr, failOnError)
	}

	fmt.Fprintf(stdout, "Files combined successfully into %s\n", cfg.Output)
	return nil
}

// reportFailure prints the run error. The error is only returned, and so
// turned into a non-zero exit, when failOnError is set.
func reportFailure(out io.Writer, err error, failOnError bool) error {
	fmt.Fprintf(out, "An error occurred: %v\n", err)
	if failOnError {
		return err
	}
	return nil
}

// writeReport writes the run report as YAML
func writeReport(path string, report *models.Report) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode run report: %w", err)
	}
	if err := filelock.LockAndWrite(path, data); err != nil {
		return fmt.Errorf("failed to write run report: %w", err)
	}
	return nil
}

// recordHistory appends the run to the history database
func recordHistory(cmd *cobra.Command, dbPath string, report *models.Report) error {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer store.Close()

	if err := store.RecordRun(cmd.Context(), report); err != nil {
		return fmt.Errorf("failed to record run history: %w", err)
	}
	return nil
}
