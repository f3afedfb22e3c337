package aggregator

import (
	"os"
	"unicode/utf8"

	"github.com/harrison/combiner/internal/fileutil"
	"github.com/harrison/combiner/internal/models"
)

// scanLister lists directories with fileutil.ScanDirectory
type scanLister struct {
	maxDepth int
}

func (l scanLister) List(dir string) (*fileutil.ScanResult, error) {
	return fileutil.ScanDirectory(dir, fileutil.ScanOptions{MaxDepth: l.maxDepth})
}

// fsReader reads whole files and rejects content that is not UTF-8.
// Line endings are kept as stored.
type fsReader struct{}

func (fsReader) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrNotText
	}
	return string(data), nil
}

type noopLogger struct{}

func (noopLogger) LogDebug(string)           {}
func (noopLogger) LogInfo(string)            {}
func (noopLogger) LogWarn(string)            {}
func (noopLogger) LogSummary(*models.Report) {}

type noopProgress struct{}

func (noopProgress) Start(int)    {}
func (noopProgress) Step(string)  {}
func (noopProgress) Complete(int) {}
