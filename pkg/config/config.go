// Package config provides configuration management for adiftest.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Generate: spec_path, entities_path, plan_path, output_dir, styles,
//     program_id, seed
//   - Log: level, format, destination, max_size_mb, max_backups,
//     max_age_days, compress
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Generate.Date, Report, Watch (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use ADIFTEST_ prefix with underscores for nesting:
//
//	ADIFTEST_GENERATE_SPEC_PATH=/data/adif/all.xml
//	ADIFTEST_GENERATE_OUTPUT_DIR=/tmp/adif
//	ADIFTEST_LOG_LEVEL=info
//	ADIFTEST_JOBS_NUMBER=2
package config

import (
	"runtime"
)

// Config represents the complete adiftest configuration.
type Config struct {
	// Generate contains settings of the generate command.
	Generate GenerateConfig `mapstructure:"generate" yaml:"generate"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber limits how many output files are generated concurrently.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// GenerateConfig contains settings of test file generation.
type GenerateConfig struct {
	// SpecPath is the path to the ADIF specification export (all.xml).
	SpecPath string `mapstructure:"spec_path" yaml:"spec_path"`

	// EntitiesPath is the path to the DXCC entities document.
	EntitiesPath string `mapstructure:"entities_path" yaml:"entities_path"`

	// PlanPath is the path to the record plan (YAML or TOML).
	// Empty means plan.yaml in the config directory.
	PlanPath string `mapstructure:"plan_path" yaml:"plan_path"`

	// OutputDir receives the generated files.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// Styles lists the output styles: "adi", "adx" or both.
	Styles []string `mapstructure:"styles" yaml:"styles"`

	// ProgramID is the value of ${PROGRAMID} in plans.
	ProgramID string `mapstructure:"program_id" yaml:"program_id"`

	// Seed initializes the random generator. The same seed, inputs and
	// date give byte-identical files.
	Seed uint64 `mapstructure:"seed" yaml:"seed"`

	// Date overrides the current day (YYYY-MM-DD). It sets the QSO
	// baseline, the created timestamp and the file names.
	Date string `mapstructure:"date" yaml:"-"`

	// Report overrides the report level of the plan:
	// "none", "short" or "full".
	Report string `mapstructure:"report" yaml:"-"`

	// Watch keeps the process running and regenerates files when an
	// input changes.
	Watch bool `mapstructure:"watch" yaml:"-"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`

	// MaxSizeMB is the size of the log file that triggers rotation.
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
	// MaxAgeDays is the number of days to keep rotated files.
	MaxAgeDays int `mapstructure:"max_age_days" yaml:"max_age_days"`
	// Compress rotated files with gzip.
	Compress bool `mapstructure:"compress" yaml:"compress"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Generate: GenerateConfig{
			SpecPath:     "all.xml",
			EntitiesPath: "Entities.xml",
			OutputDir:    ".",
			Styles:       []string{"adi", "adx"},
			ProgramID:    AppName,
			Seed:         1,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
			MaxSizeMB:   10,
			MaxBackups:  3,
			MaxAgeDays:  28,
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}

// PlanPath returns the plan file to read: the configured one or plan.yaml
// in the config directory.
func (c *Config) PlanPath() string {
	if c.Generate.PlanPath != "" {
		return c.Generate.PlanPath
	}
	return PlanFilePath(c.HomeDir)
}
