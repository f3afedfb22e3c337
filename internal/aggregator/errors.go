package aggregator

import (
	"errors"
	"fmt"

	"github.com/harrison/combiner/internal/models"
)

// ErrNotText is returned by a Reader when file content is not valid UTF-8
var ErrNotText = errors.New("content is not valid UTF-8 text")

// ErrNoOutput is returned when Run is called without an output path
var ErrNoOutput = errors.New("output path is required")

// FileError reports a file that could not be read when the run does not
// continue past file errors.
type FileError struct {
	Path string // Full path of the file that failed
	Err  error  // Underlying read or decode error
}

// Error implements the error interface for FileError.
func (e *FileError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *FileError) Unwrap() error {
	return e.Err
}

// reasonFor maps a read error to the skip reason recorded in the report
func reasonFor(err error) string {
	if errors.Is(err, ErrNotText) {
		return models.ReasonNotText
	}
	return models.ReasonReadError
}
