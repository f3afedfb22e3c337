package models

import "time"

// Report is the diagnostics record of a single aggregation run.
// It is separate from the output artifact and never written into it.
type Report struct {
	RunID              string       `yaml:"run_id"`
	OutputPath         string       `yaml:"output_path"`
	BaseFolder         string       `yaml:"base_folder"`
	StartedAt          time.Time    `yaml:"started_at"`
	FinishedAt         time.Time    `yaml:"finished_at"`
	MissingDirectories []string     `yaml:"missing_directories,omitempty"`
	Files              []FileResult `yaml:"files"`
	Included           int          `yaml:"included"`
	Excluded           int          `yaml:"excluded"`
	Skipped            int          `yaml:"skipped"`
	TotalBytes         int64        `yaml:"total_bytes"`
	Error              string       `yaml:"error,omitempty"`
}

// Add appends a file result and updates the counters
func (r *Report) Add(res FileResult) {
	r.Files = append(r.Files, res)
	switch res.Status {
	case StatusIncluded:
		r.Included++
		r.TotalBytes += res.Bytes
	case StatusExcluded:
		r.Excluded++
	case StatusSkipped:
		r.Skipped++
	}
}

// SkippedFiles returns the results of files that failed to read
func (r *Report) SkippedFiles() []FileResult {
	var skipped []FileResult
	for _, f := range r.Files {
		if f.Status == StatusSkipped {
			skipped = append(skipped, f)
		}
	}
	return skipped
}

// IncludedPaths returns the paths of included files in output order
func (r *Report) IncludedPaths() []string {
	paths := make([]string, 0, r.Included)
	for _, f := range r.Files {
		if f.IsIncluded() {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// Duration returns the wall time of the run, or zero if it has not finished
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
