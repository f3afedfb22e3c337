package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harrison/combiner/internal/logger"
)

// ProgressIndicator prints one line per processed file: [N/Total] path
type ProgressIndicator struct {
	writer      io.Writer
	totalFiles  int
	current     int
	colorOutput bool
}

// NewProgressIndicator creates a new progress indicator.
// Color output is enabled when w is a terminal.
func NewProgressIndicator(w io.Writer) *ProgressIndicator {
	return &ProgressIndicator{writer: w, colorOutput: logger.ColorEnabled(w)}
}

// Start resets the counter for a run over total candidate files
func (p *ProgressIndicator) Start(total int) {
	p.totalFiles = total
	p.current = 0
	fmt.Fprintf(p.writer, "Combining %d candidate file(s):\n", total)
}

// Step displays progress for the current file (cyan)
func (p *ProgressIndicator) Step(path string) {
	p.current++
	line := fmt.Sprintf("  [%d/%d] %s", p.current, p.totalFiles, path)
	fmt.Fprintln(p.writer, paint(p.colorOutput, color.FgCyan, line))
}

// Complete displays the number of files written, with a green checkmark
func (p *ProgressIndicator) Complete(included int) {
	fmt.Fprintf(p.writer, "%s Combined %d of %d file(s)\n", paint(p.colorOutput, color.FgGreen, "✓"), included, p.totalFiles)
}

// paint colors s only when enabled
func paint(enabled bool, attr color.Attribute, s string) string {
	if !enabled {
		return s
	}
	return color.New(attr).Sprint(s)
}
