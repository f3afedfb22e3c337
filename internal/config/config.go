package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/combiner/internal/filter"
	"github.com/harrison/combiner/internal/logger"
	"github.com/harrison/combiner/internal/models"
	"gopkg.in/yaml.v3"
)

// DirName is the per-project configuration directory
const DirName = ".combiner"

// FileName is the configuration file inside DirName
const FileName = "config.yaml"

// Config represents combiner configuration options
type Config struct {
	// BaseFolder is the root the directories are resolved against.
	// A relative value is resolved against the project directory.
	BaseFolder string `yaml:"base_folder"`

	// Directories are walked in this order, which is also the output order
	Directories []string `yaml:"directories"`

	// Output is the combined file path; empty means prompt for it
	Output string `yaml:"output"`

	// Variant selects the preset for Identifier, ContinueOnFileError and Exclusions
	Variant models.Variant `yaml:"variant"`

	// Identifier selects whether headers name the file or its full path
	Identifier models.IdentifierMode `yaml:"identifier"`

	// ContinueOnFileError skips unreadable files instead of aborting the run
	ContinueOnFileError bool `yaml:"continue_on_file_error"`

	// Exclusions are checked in order; the first match excludes the file
	Exclusions []models.ExclusionRule `yaml:"exclusions"`

	// MaxDepth limits the walk below each directory (0 = unlimited)
	MaxDepth int `yaml:"max_depth"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables a per-run log file in this directory when set
	LogDir string `yaml:"log_dir,omitempty"`

	// Report writes the run diagnostics as YAML to this path when set
	Report string `yaml:"report,omitempty"`

	// HistoryDB records every run in this SQLite database when set
	HistoryDB string `yaml:"history_db,omitempty"`

	// root is the project directory relative paths are resolved against
	root string
}

// DefaultConfig returns a Config using the strict variant
func DefaultConfig() *Config {
	cfg := &Config{
		BaseFolder:  ".",
		Directories: []string{},
		LogLevel:    "info",
	}
	cfg.ApplyVariant(models.VariantStrict)
	return cfg
}

// ApplyVariant sets the variant and replaces the options it presets
func (c *Config) ApplyVariant(v models.Variant) {
	c.Variant = v
	switch v {
	case models.VariantStrict:
		c.Identifier = models.IdentifierName
		c.ContinueOnFileError = true
	case models.VariantPermissive:
		c.Identifier = models.IdentifierPath
		c.ContinueOnFileError = false
	}
	c.Exclusions = filter.RulesFor(v)
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
//
// A variant key applies its preset first; identifier,
// continue_on_file_error and exclusions then override the preset when
// present, including an explicit false or an empty list.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.root = projectRoot(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unknown keys are rejected so a misspelled option is not silently ignored
	var fileCfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fileCfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Presence map so explicit zero values still override defaults
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	has := func(key string) bool {
		_, exists := rawMap[key]
		return exists
	}

	if has("variant") {
		cfg.ApplyVariant(fileCfg.Variant)
	}
	if has("identifier") {
		cfg.Identifier = fileCfg.Identifier
	}
	if has("continue_on_file_error") {
		cfg.ContinueOnFileError = fileCfg.ContinueOnFileError
	}
	if has("exclusions") {
		cfg.Exclusions = fileCfg.Exclusions
		if cfg.Exclusions == nil {
			cfg.Exclusions = []models.ExclusionRule{}
		}
	}
	if fileCfg.BaseFolder != "" {
		cfg.BaseFolder = fileCfg.BaseFolder
	}
	if has("directories") && fileCfg.Directories != nil {
		cfg.Directories = fileCfg.Directories
	}
	if fileCfg.Output != "" {
		cfg.Output = fileCfg.Output
	}
	if fileCfg.MaxDepth != 0 {
		cfg.MaxDepth = fileCfg.MaxDepth
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogDir != "" {
		cfg.LogDir = fileCfg.LogDir
	}
	if fileCfg.Report != "" {
		cfg.Report = fileCfg.Report
	}
	if fileCfg.HistoryDB != "" {
		cfg.HistoryDB = fileCfg.HistoryDB
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .combiner/config.yaml in the specified directory.
// If the directory or file doesn't exist, returns default configuration without error.
func LoadConfigFromDir(dir string) (*Config, error) {
	cfg, err := LoadConfig(Path(dir))
	if err != nil {
		return nil, err
	}
	cfg.root = dir
	return cfg, nil
}

// Path returns the configuration file location for a project directory
func Path(dir string) string {
	return filepath.Join(dir, DirName, FileName)
}

// projectRoot returns the directory a config file belongs to: the parent of
// .combiner for the standard layout, otherwise the file's own directory.
func projectRoot(path string) string {
	dir := filepath.Dir(path)
	if filepath.Base(dir) == DirName {
		return filepath.Dir(dir)
	}
	return dir
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values. A variant flag
// re-applies that variant's full preset.
func (c *Config) MergeWithFlags(output, variant, logLevel, logDir, report *string) {
	if output != nil {
		c.Output = *output
	}
	if variant != nil {
		c.ApplyVariant(models.Variant(*variant))
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if report != nil {
		c.Report = *report
	}
}

// Validate validates the configuration values.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	if !c.Variant.Valid() {
		return fmt.Errorf("invalid variant %q, must be one of: strict, permissive", c.Variant)
	}
	if !c.Identifier.Valid() {
		return fmt.Errorf("invalid identifier %q, must be one of: name, path", c.Identifier)
	}
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0, got %d", c.MaxDepth)
	}
	if strings.TrimSpace(c.BaseFolder) == "" {
		return fmt.Errorf("base_folder cannot be empty")
	}
	for i, dir := range c.Directories {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("directories[%d] cannot be empty", i)
		}
	}
	for i, rule := range c.Exclusions {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("exclusions[%d]: %w", i, err)
		}
	}
	return nil
}

// ResolveBaseFolder returns BaseFolder as an absolute path
func (c *Config) ResolveBaseFolder() (string, error) {
	base := c.BaseFolder
	if !filepath.IsAbs(base) && c.root != "" {
		base = filepath.Join(c.root, base)
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base_folder %q: %w", c.BaseFolder, err)
	}
	return abs, nil
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
