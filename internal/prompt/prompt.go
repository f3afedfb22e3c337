// Package prompt asks the user for the output file name.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harrison/combiner/internal/logger"
)

// Message is shown before the user types the output file name
const Message = "Enter the output file name (e.g., combined_output.txt): "

var (
	// ErrCancelled is returned when the user quits the prompt with esc or ctrl+c
	ErrCancelled = errors.New("prompt cancelled")
	// ErrNoInput is returned when input ends before a line is read
	ErrNoInput = errors.New("no input provided")
)

// Ask prompts for the output file name and returns it trimmed of surrounding
// whitespace. When both in and out are terminals it runs an interactive text
// input; otherwise it prints Message and reads one line from in.
func Ask(in io.Reader, out io.Writer) (string, error) {
	if logger.IsTerminal(in) && logger.IsTerminal(out) {
		return askInteractive(in, out)
	}
	return askLine(in, out)
}

// askLine prints the prompt and reads a single line
func askLine(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, Message)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read output file name: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", ErrNoInput
	}
	return strings.TrimSpace(line), nil
}

// askInteractive runs the text input model until enter, esc or ctrl+c
func askInteractive(in io.Reader, out io.Writer) (string, error) {
	p := tea.NewProgram(newModel(), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("failed to run prompt: %w", err)
	}

	m, ok := final.(model)
	if !ok {
		return "", fmt.Errorf("unexpected prompt model %T", final)
	}
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.value, nil
}
