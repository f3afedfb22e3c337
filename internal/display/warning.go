package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/combiner/internal/logger"
	"github.com/harrison/combiner/internal/models"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning, in yellow when out is a terminal
func (w Warning) Display(out io.Writer) {
	w.render(out, logger.ColorEnabled(out))
}

func (w Warning) render(out io.Writer, colored bool) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}

		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	fmt.Fprint(out, paint(colored, color.FgYellow, b.String()))
}

// WarnSkippedFiles creates a warning listing files that could not be read
func WarnSkippedFiles(skipped []models.FileResult) Warning {
	files := make([]string, 0, len(skipped))
	for _, f := range skipped {
		entry := f.Path
		if f.Error != "" {
			entry = fmt.Sprintf("%s (%s: %s)", f.Path, f.Reason, f.Error)
		} else if f.Reason != "" {
			entry = fmt.Sprintf("%s (%s)", f.Path, f.Reason)
		}
		files = append(files, entry)
	}

	return Warning{
		Title:      fmt.Sprintf("%d file(s) skipped", len(skipped)),
		Message:    "These files could not be read as text and were left out of the output",
		Files:      files,
		Suggestion: "Check permissions and encoding, or set continue_on_file_error: false to stop on the first failure",
	}
}

// WarnMissingDirectories creates a warning for configured directories that were not found
func WarnMissingDirectories(dirs []string) Warning {
	title := fmt.Sprintf("%d configured directories not found", len(dirs))
	if len(dirs) == 1 {
		title = "1 configured directory not found"
	}

	return Warning{
		Title:      title,
		Files:      dirs,
		Suggestion: "Check base_folder and directories in the configuration",
	}
}
