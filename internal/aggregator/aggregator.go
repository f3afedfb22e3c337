package aggregator

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/combiner/internal/filelock"
	"github.com/harrison/combiner/internal/fileutil"
	"github.com/harrison/combiner/internal/filter"
	"github.com/harrison/combiner/internal/models"
)

// Logger is the logging surface the aggregator reports through.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogSummary(report *models.Report)
}

// Progress receives one Step per file written to the output.
type Progress interface {
	Start(total int)
	Step(path string)
	Complete(included int)
}

// Lister lists the regular files below a directory in walk order.
// Errors in the returned ScanResult are non-fatal.
type Lister interface {
	List(dir string) (*fileutil.ScanResult, error)
}

// Reader reads a file's full text content.
type Reader interface {
	ReadText(path string) (string, error)
}

// Options configures a single aggregation run
type Options struct {
	RunID               string                // Report identifier; generated when empty
	BaseFolder          string                // Absolute root the directories are joined to
	Directories         []string              // Walked in this order
	OutputPath          string                // Truncated and rewritten on every run
	Filters             *filter.Set           // Exclusion rules; nil excludes nothing
	Identifier          models.IdentifierMode // What each header names
	ContinueOnFileError bool                  // Skip unreadable files instead of aborting
	MaxDepth            int                   // Walk depth below each directory (0 = unlimited)
}

// Aggregator concatenates the files under a list of directories into one
// output file, each preceded by a header naming its source.
type Aggregator struct {
	opts     Options
	log      Logger
	progress Progress
	lister   Lister
	reader   Reader
}

// Option customizes an Aggregator
type Option func(*Aggregator)

// WithLister replaces the filesystem directory listing
func WithLister(l Lister) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.lister = l
		}
	}
}

// WithReader replaces the filesystem file reader
func WithReader(r Reader) Option {
	return func(a *Aggregator) {
		if r != nil {
			a.reader = r
		}
	}
}

// New creates an Aggregator. A nil log or progress discards that output.
func New(opts Options, log Logger, progress Progress, options ...Option) *Aggregator {
	if log == nil {
		log = noopLogger{}
	}
	if progress == nil {
		progress = noopProgress{}
	}
	a := &Aggregator{
		opts:     opts,
		log:      log,
		progress: progress,
		lister:   scanLister{maxDepth: opts.MaxDepth},
		reader:   fsReader{},
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

// Header returns the marker line written before a file's content
func Header(identifier string) string {
	return fmt.Sprintf("\n--- Content from %s ---\n", identifier)
}

// candidate is one listed file, with its exclusion result when excluded
type candidate struct {
	dir      string
	path     string
	excluded *models.FileResult
}

// Run performs the whole aggregation synchronously. The returned report is
// never nil and holds the results recorded up to the point of any error.
func (a *Aggregator) Run() (report *models.Report, err error) {
	runID := a.opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	report = &models.Report{
		RunID:      runID,
		OutputPath: a.opts.OutputPath,
		BaseFolder: a.opts.BaseFolder,
		StartedAt:  time.Now(),
		Files:      []models.FileResult{},
	}
	defer func() {
		report.FinishedAt = time.Now()
		if err != nil {
			report.Error = err.Error()
		}
		a.log.LogSummary(report)
	}()

	if a.opts.OutputPath == "" {
		return report, ErrNoOutput
	}

	lock, err := filelock.Acquire(a.opts.OutputPath)
	if err != nil {
		return report, fmt.Errorf("failed to lock output file: %w", err)
	}
	defer lock.Unlock()

	out, err := os.Create(a.opts.OutputPath)
	if err != nil {
		return report, fmt.Errorf("failed to open output file: %w", err)
	}
	w := bufio.NewWriter(out)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to flush output file: %w", flushErr))
		}
		if closeErr := out.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close output file: %w", closeErr))
		}
	}()

	a.log.LogDebug(fmt.Sprintf("Run %s: combining %d directories under %s into %s (%d exclusion rules)",
		report.RunID, len(a.opts.Directories), a.opts.BaseFolder, a.opts.OutputPath, a.opts.Filters.Len()))

	candidates, err := a.collect(report)
	if err != nil {
		return report, err
	}

	total := 0
	for _, c := range candidates {
		if c.excluded == nil {
			total++
		}
	}
	a.progress.Start(total)

	for _, c := range candidates {
		if c.excluded != nil {
			a.log.LogDebug(fmt.Sprintf("Excluded %s (%s)", c.path, c.excluded.Reason))
			report.Add(*c.excluded)
			continue
		}
		if err := a.process(w, c, report); err != nil {
			return report, err
		}
	}

	a.progress.Complete(report.Included)
	return report, nil
}

// collect lists every configured directory in order and classifies each
// file against the output name and the exclusion rules.
func (a *Aggregator) collect(report *models.Report) ([]candidate, error) {
	outputName := filepath.Base(a.opts.OutputPath)
	var candidates []candidate

	for _, dir := range a.opts.Directories {
		dirPath := filepath.Join(a.opts.BaseFolder, dir)

		result, err := a.lister.List(dirPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fileutil.ErrNotDirectory) {
				a.log.LogInfo(fmt.Sprintf("Directory %s not found, skipping", dirPath))
				report.MissingDirectories = append(report.MissingDirectories, dir)
				continue
			}
			if a.opts.ContinueOnFileError {
				a.log.LogWarn(fmt.Sprintf("Failed to list %s, skipping: %v", dirPath, err))
				continue
			}
			return nil, fmt.Errorf("failed to list directory %s: %w", dirPath, err)
		}

		for _, walkErr := range result.Errors {
			a.log.LogWarn(fmt.Sprintf("Walk error under %s: %v", dirPath, walkErr))
		}

		for _, path := range result.Files {
			c := candidate{dir: dir, path: path}
			name := filepath.Base(path)
			if name == outputName {
				c.excluded = &models.FileResult{
					Directory: dir,
					Path:      path,
					Name:      name,
					Status:    models.StatusExcluded,
					Reason:    models.ReasonOutputFile,
				}
			} else if rule, ok := a.opts.Filters.Match(path); ok {
				c.excluded = &models.FileResult{
					Directory: dir,
					Path:      path,
					Name:      name,
					Status:    models.StatusExcluded,
					Reason:    models.ReasonRule,
					Rule:      rule.String(),
				}
			}
			candidates = append(candidates, c)
		}
	}

	return candidates, nil
}

// process reads one file and appends its header and content to the output
func (a *Aggregator) process(w *bufio.Writer, c candidate, report *models.Report) error {
	name := filepath.Base(c.path)

	content, err := a.reader.ReadText(c.path)
	if err != nil {
		if !a.opts.ContinueOnFileError {
			return &FileError{Path: c.path, Err: err}
		}
		a.log.LogWarn(fmt.Sprintf("Skipping %s: %v", c.path, err))
		report.Add(models.FileResult{
			Directory: c.dir,
			Path:      c.path,
			Name:      name,
			Status:    models.StatusSkipped,
			Reason:    reasonFor(err),
			Error:     err.Error(),
		})
		return nil
	}

	identifier := name
	if a.opts.Identifier == models.IdentifierPath {
		identifier = c.path
	}

	a.progress.Step(c.path)
	if _, err := w.WriteString(Header(identifier)); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if _, err := w.WriteString(content); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if _, err := w.WriteString("\n"); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	report.Add(models.FileResult{
		Directory:  c.dir,
		Path:       c.path,
		Name:       name,
		Identifier: identifier,
		Status:     models.StatusIncluded,
		Bytes:      int64(len(content)),
	})
	return nil
}
