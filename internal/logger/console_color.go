package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/combiner/internal/models"
)

// colorScheme defines consistent colors for summary counters.
// Green: included files
// Red: files skipped on read errors
// Yellow: excluded files
// Cyan: labels
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

// newColorScheme creates the standard color scheme for counters.
func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats a single counter with colorized label and value.
// Format: "label: value"
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	labelColored := scheme.label.Sprint(label)
	valueColored := scheme.value.Sprintf("%v", value)
	return fmt.Sprintf("%s: %s", labelColored, valueColored)
}

// formatColorizedSummary formats the report counters with color coding.
// Format: "included: N, excluded: N, skipped: N, bytes: N"
// Non-zero excluded counts are yellow and non-zero skipped counts red.
// Colors are disabled when output is not a TTY via fatih/color's built-in detection.
func formatColorizedSummary(report *models.Report) string {
	if report == nil {
		return ""
	}

	scheme := newColorScheme()
	parts := make([]string, 0, 4)

	parts = append(parts, fmt.Sprintf("%s: %s",
		scheme.success.Sprint("included"), scheme.value.Sprintf("%d", report.Included)))

	if report.Excluded > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s",
			scheme.warn.Sprint("excluded"), scheme.warn.Sprintf("%d", report.Excluded)))
	} else {
		parts = append(parts, formatColorizedMetric("excluded", 0, scheme))
	}

	if report.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s",
			scheme.fail.Sprint("skipped"), scheme.fail.Sprintf("%d", report.Skipped)))
	} else {
		parts = append(parts, formatColorizedMetric("skipped", 0, scheme))
	}

	parts = append(parts, formatColorizedMetric("bytes", report.TotalBytes, scheme))

	return strings.Join(parts, ", ")
}
