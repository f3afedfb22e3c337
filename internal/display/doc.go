// Package display provides terminal output for combiner runs: per-file
// progress lines and warning blocks for skipped files and missing directories.
//
// Colors come from fatih/color. They are used only when the writer being
// printed to is a terminal, and NO_COLOR switches them off everywhere.
//
// # Progress Indicators
//
//	progress := display.NewProgressIndicator(os.Stderr)
//	progress.Start(len(files))
//	for _, file := range files {
//	    progress.Step(file)
//	}
//	progress.Complete(included)
//
// # Warning Messages
//
//	warning := display.Warning{
//	    Title:      "Configuration Issue",
//	    Message:    "Directory 'blockchain-testing' does not exist",
//	    Suggestion: "Check the directories list in .combiner/config.yaml",
//	}
//	warning.Display(os.Stderr)
//
// Factories build warnings straight from a run report:
//
//	display.WarnSkippedFiles(report.SkippedFiles()).Display(os.Stderr)
//	display.WarnMissingDirectories(report.MissingDirectories).Display(os.Stderr)
package display
