// =============================================================================
// Standard 18 Reader - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file, fills in
// defaults for anything left unset and validates the result.
//
// CONFIGURATION FILE:
//   std18.yaml (or the file named by --config / STD18_CONFIG)
//
// A missing default configuration file is not an error: the application runs
// on defaults. A file that was asked for explicitly must exist.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/bacs-std18/internal/std18"
)

// DefaultPath is the configuration file used when none is named.
const DefaultPath = "std18.yaml"

// EnvConfigPath names the environment variable that may point at the
// configuration file.
const EnvConfigPath = "STD18_CONFIG"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for interchange files to convert.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir receives the generated workbooks and the summary log.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives input files after a successful conversion,
	// when ArchiveInputs is set.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// FilePatterns are glob patterns matched against file names in InputDir.
	// Default: ["*.std18", "*.txt", "*.dat"]
	FilePatterns []string `yaml:"file_patterns"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines the workbook file name.
	// Placeholders:
	//   {name}      - Input file name without extension
	//   {uuid}      - The run id of the conversion
	//   {timestamp} - Conversion start time (YYYYMMDD_HHMMSS)
	// Default: "{name}_{uuid}.xlsx"
	OutputNameFormat string `yaml:"output_name_format"`

	// Rows lists the record kinds to decode and export, by tag name.
	// Kinds not listed are classified and counted but never decoded.
	// Default: every kind
	Rows []string `yaml:"rows"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the log encoding: "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files converted at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ArchiveInputs moves each successfully converted input file to
	// InputArchiveDir.
	// Default: false
	ArchiveInputs bool `yaml:"archive_inputs"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads, defaults and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault behaves like Load but returns the defaults when path does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes a YAML document into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns a configuration with every option at its default.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	if c.InputDir == "" {
		c.InputDir = "./input"
	}
	if c.OutputDir == "" {
		c.OutputDir = "./output"
	}
	if c.InputArchiveDir == "" {
		c.InputArchiveDir = "./input_archive"
	}
	if len(c.FilePatterns) == 0 {
		c.FilePatterns = []string{"*.std18", "*.txt", "*.dat"}
	}
	if c.OutputNameFormat == "" {
		c.OutputNameFormat = "{name}_{uuid}.xlsx"
	}
	if len(c.Rows) == 0 {
		for _, row := range std18.Rows() {
			c.Rows = append(c.Rows, row.String())
		}
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = 4
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks every option and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if c.InputDir == "" {
		errs = append(errs, "input_dir is required")
	}
	if c.OutputDir == "" {
		errs = append(errs, "output_dir is required")
	}
	if c.ArchiveInputs && c.InputArchiveDir == "" {
		errs = append(errs, "input_archive_dir is required when archive_inputs is set")
	}
	if c.MaxConcurrency < 1 {
		errs = append(errs, fmt.Sprintf("max_concurrency must be at least 1, got %d", c.MaxConcurrency))
	}
	if !strings.HasSuffix(strings.ToLower(c.OutputNameFormat), ".xlsx") {
		errs = append(errs, fmt.Sprintf("output_name_format must end in .xlsx, got %q", c.OutputNameFormat))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("log_level %q is not one of debug, info, warn, error", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log_format %q is not one of text, json", c.LogFormat))
	}
	for _, name := range c.Rows {
		if _, err := std18.ParseRow(name); err != nil {
			errs = append(errs, fmt.Sprintf("rows: %v", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// RowTags returns the configured record kinds. Validate has already
// rejected unknown names, so lookup failures are dropped.
func (c *Config) RowTags() []std18.Row {
	rows := make([]std18.Row, 0, len(c.Rows))
	for _, name := range c.Rows {
		if row, err := std18.ParseRow(name); err == nil {
			rows = append(rows, row)
		}
	}
	return rows
}

// EnsureDirs creates the output directory and, when archiving is enabled,
// the archive directory.
func (c *Config) EnsureDirs() error {
	dirs := []string{c.OutputDir}
	if c.ArchiveInputs {
		dirs = append(dirs, c.InputArchiveDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
