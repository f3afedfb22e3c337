package models

// File result status constants
const (
	StatusIncluded = "included" // Content written to the output
	StatusExcluded = "excluded" // Dropped by the output-name check or an exclusion rule
	StatusSkipped  = "skipped"  // Read failed and the run continued
)

// Skip and exclusion reasons
const (
	ReasonOutputFile = "output_file" // Filename equals the output filename
	ReasonRule       = "rule"        // Matched an exclusion rule
	ReasonReadError  = "read_error"  // Open or read failed
	ReasonNotText    = "not_text"    // Content is not valid UTF-8
)

// FileResult records what happened to one file found during traversal
type FileResult struct {
	Directory  string `yaml:"directory"`            // Configured subdirectory the file was found under
	Path       string `yaml:"path"`                 // Full file path
	Name       string `yaml:"name"`                 // Filename
	Identifier string `yaml:"identifier,omitempty"` // Header identifier, set for included files
	Status     string `yaml:"status"`               // included, excluded, skipped
	Reason     string `yaml:"reason,omitempty"`     // Why the file was excluded or skipped
	Rule       string `yaml:"rule,omitempty"`       // Matching exclusion rule, if any
	Bytes      int64  `yaml:"bytes,omitempty"`      // Content bytes written
	Error      string `yaml:"error,omitempty"`      // Read error text for skipped files
}

// IsIncluded reports whether the file's content was written to the output
func (r FileResult) IsIncluded() bool {
	return r.Status == StatusIncluded
}
