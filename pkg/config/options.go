package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptGenerateSpecPath sets the path to the specification export.
func OptGenerateSpecPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Specification Path", s) {
			c.Generate.SpecPath = s
		}
	}
}

// OptGenerateEntitiesPath sets the path to the entities document.
func OptGenerateEntitiesPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Entities Path", s) {
			c.Generate.EntitiesPath = s
		}
	}
}

// OptGeneratePlanPath sets the path to the record plan.
func OptGeneratePlanPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Plan Path", s) {
			c.Generate.PlanPath = s
		}
	}
}

// OptGenerateOutputDir sets the directory of generated files.
func OptGenerateOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Directory", s) {
			c.Generate.OutputDir = s
		}
	}
}

// OptGenerateStyles sets the output styles. Valid values: "adi", "adx".
// Duplicates are removed, an empty or invalid list is ignored.
func OptGenerateStyles(ss []string) Option {
	var styles []string
	seen := make(map[string]struct{})
	for _, v := range ss {
		v = strings.ToLower(strings.TrimSpace(v))
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		styles = append(styles, v)
	}
	return func(c *Config) {
		if len(styles) == 0 {
			return
		}
		for _, v := range styles {
			if !isValidEnum("Generate.Styles", v) {
				return
			}
		}
		c.Generate.Styles = styles
	}
}

// OptGenerateProgramID sets the value of ${PROGRAMID}.
func OptGenerateProgramID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Program ID", s) {
			c.Generate.ProgramID = s
		}
	}
}

// OptGenerateSeed sets the seed of the random generator.
func OptGenerateSeed(i uint64) Option {
	return func(c *Config) {
		if isValidInt("Seed", int(i)) {
			c.Generate.Seed = i
		}
	}
}

// OptGenerateDate overrides the current day. Format: YYYY-MM-DD.
// Runtime-only field - not in ToOptions().
func OptGenerateDate(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidDate("Date", s) {
			c.Generate.Date = s
		}
	}
}

// OptGenerateReport overrides the report level of the plan.
// Valid values: "none", "short", "full".
// Runtime-only field - not in ToOptions().
func OptGenerateReport(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Generate.Report", s) {
			c.Generate.Report = s
		}
	}
}

// OptGenerateWatch turns the watch mode on or off.
// Runtime-only field - not in ToOptions().
func OptGenerateWatch(b bool) Option {
	return func(c *Config) {
		c.Generate.Watch = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptLogMaxSizeMB sets the size in megabytes that triggers log rotation.
func OptLogMaxSizeMB(i int) Option {
	return func(c *Config) {
		if isValidInt("Log Max Size", i) {
			c.Log.MaxSizeMB = i
		}
	}
}

// OptLogMaxBackups sets the number of rotated log files to keep.
func OptLogMaxBackups(i int) Option {
	return func(c *Config) {
		if isValidInt("Log Max Backups", i) {
			c.Log.MaxBackups = i
		}
	}
}

// OptLogMaxAgeDays sets how many days rotated log files are kept.
func OptLogMaxAgeDays(i int) Option {
	return func(c *Config) {
		if isValidInt("Log Max Age", i) {
			c.Log.MaxAgeDays = i
		}
	}
}

// OptLogCompress turns gzip compression of rotated log files on or off.
func OptLogCompress(b bool) Option {
	return func(c *Config) {
		c.Log.Compress = b
	}
}

// OptJobsNumber sets the number of files generated concurrently.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

// DateLayout is the format of Generate.Date.
const DateLayout = time.DateOnly
