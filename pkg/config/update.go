package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Date, Report, Watch).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	s = c.Generate.SpecPath
	if s != "" {
		res = append(res, OptGenerateSpecPath(s))
	}
	s = c.Generate.EntitiesPath
	if s != "" {
		res = append(res, OptGenerateEntitiesPath(s))
	}
	s = c.Generate.PlanPath
	if s != "" {
		res = append(res, OptGeneratePlanPath(s))
	}
	s = c.Generate.OutputDir
	if s != "" {
		res = append(res, OptGenerateOutputDir(s))
	}
	if len(c.Generate.Styles) > 0 {
		res = append(res, OptGenerateStyles(c.Generate.Styles))
	}
	s = c.Generate.ProgramID
	if s != "" {
		res = append(res, OptGenerateProgramID(s))
	}
	if c.Generate.Seed > 0 {
		res = append(res, OptGenerateSeed(c.Generate.Seed))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}
	i = c.Log.MaxSizeMB
	if i > 0 {
		res = append(res, OptLogMaxSizeMB(i))
	}
	i = c.Log.MaxBackups
	if i > 0 {
		res = append(res, OptLogMaxBackups(i))
	}
	i = c.Log.MaxAgeDays
	if i > 0 {
		res = append(res, OptLogMaxAgeDays(i))
	}
	res = append(res, OptLogCompress(c.Log.Compress))

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidDate(name, s string) bool {
	_, err := time.Parse(DateLayout, s)
	if err != nil {
		gn.Warn("<em>%s</em> must be in YYYY-MM-DD format, ignoring '%s'",
			name, s)
		return false
	}
	return true
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Generate.Styles": {"adi": s, "adx": s},
		"Generate.Report": {"none": s, "short": s, "full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
