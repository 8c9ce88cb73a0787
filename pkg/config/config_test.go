package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/g3zod/CreateADIFTestFiles/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "adiftest"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "adiftest", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "adiftest", "config.yaml"),
		},
		{
			msg: "plan file",
			fn:  config.PlanFilePath,
			res: filepath.Join(tempHome, ".config", "adiftest", "plan.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, "all.xml", cfg.Generate.SpecPath)
	assert.Equal(t, "Entities.xml", cfg.Generate.EntitiesPath)
	assert.Empty(t, cfg.Generate.PlanPath)
	assert.Equal(t, ".", cfg.Generate.OutputDir)
	assert.Equal(t, []string{"adi", "adx"}, cfg.Generate.Styles)
	assert.Equal(t, "adiftest", cfg.Generate.ProgramID)
	assert.Equal(t, uint64(1), cfg.Generate.Seed)
	assert.False(t, cfg.Generate.Watch)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.False(t, cfg.Log.Compress)

	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	assert.Empty(t, cfg.HomeDir)
}

func TestPlanPath(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/op")})
	assert.Equal(t, filepath.Join("/home/op", ".config", "adiftest", "plan.yaml"),
		cfg.PlanPath())

	cfg.Update([]config.Option{config.OptGeneratePlanPath("my.toml")})
	assert.Equal(t, "my.toml", cfg.PlanPath())
}

func TestOptionStrings(t *testing.T) {
	tests := []struct {
		name  string
		opt   func(string) config.Option
		get   func(*config.Config) string
		input string
		exp   string
	}{
		{
			name:  "spec path",
			opt:   config.OptGenerateSpecPath,
			get:   func(c *config.Config) string { return c.Generate.SpecPath },
			input: "  /data/all.xml ",
			exp:   "/data/all.xml",
		},
		{
			name:  "empty spec path keeps default",
			opt:   config.OptGenerateSpecPath,
			get:   func(c *config.Config) string { return c.Generate.SpecPath },
			input: "   ",
			exp:   "all.xml",
		},
		{
			name:  "entities path",
			opt:   config.OptGenerateEntitiesPath,
			get:   func(c *config.Config) string { return c.Generate.EntitiesPath },
			input: "ents.xml",
			exp:   "ents.xml",
		},
		{
			name:  "output dir",
			opt:   config.OptGenerateOutputDir,
			get:   func(c *config.Config) string { return c.Generate.OutputDir },
			input: "/tmp/out",
			exp:   "/tmp/out",
		},
		{
			name:  "program id",
			opt:   config.OptGenerateProgramID,
			get:   func(c *config.Config) string { return c.Generate.ProgramID },
			input: "",
			exp:   "adiftest",
		},
		{
			name:  "date",
			opt:   config.OptGenerateDate,
			get:   func(c *config.Config) string { return c.Generate.Date },
			input: "2024-05-01",
			exp:   "2024-05-01",
		},
		{
			name:  "bad date",
			opt:   config.OptGenerateDate,
			get:   func(c *config.Config) string { return c.Generate.Date },
			input: "01/05/2024",
			exp:   "",
		},
		{
			name:  "report",
			opt:   config.OptGenerateReport,
			get:   func(c *config.Config) string { return c.Generate.Report },
			input: " SHORT",
			exp:   "short",
		},
		{
			name:  "bad report",
			opt:   config.OptGenerateReport,
			get:   func(c *config.Config) string { return c.Generate.Report },
			input: "long",
			exp:   "",
		},
		{
			name:  "log level",
			opt:   config.OptLogLevel,
			get:   func(c *config.Config) string { return c.Log.Level },
			input: "DEBUG",
			exp:   "debug",
		},
		{
			name:  "bad log level",
			opt:   config.OptLogLevel,
			get:   func(c *config.Config) string { return c.Log.Level },
			input: "verbose",
			exp:   "info",
		},
		{
			name:  "log format",
			opt:   config.OptLogFormat,
			get:   func(c *config.Config) string { return c.Log.Format },
			input: "text",
			exp:   "text",
		},
		{
			name:  "bad log format",
			opt:   config.OptLogFormat,
			get:   func(c *config.Config) string { return c.Log.Format },
			input: "tint",
			exp:   "json",
		},
		{
			name:  "log destination",
			opt:   config.OptLogDestination,
			get:   func(c *config.Config) string { return c.Log.Destination },
			input: "stderr",
			exp:   "stderr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt(tt.input)})
			assert.Equal(t, tt.exp, tt.get(cfg))
		})
	}
}

func TestOptionInts(t *testing.T) {
	tests := []struct {
		name  string
		opt   func(int) config.Option
		get   func(*config.Config) int
		input int
		exp   int
	}{
		{
			name:  "jobs",
			opt:   config.OptJobsNumber,
			get:   func(c *config.Config) int { return c.JobsNumber },
			input: 2,
			exp:   2,
		},
		{
			name:  "zero jobs",
			opt:   config.OptJobsNumber,
			get:   func(c *config.Config) int { return c.JobsNumber },
			input: 0,
			exp:   runtime.NumCPU(),
		},
		{
			name:  "max size",
			opt:   config.OptLogMaxSizeMB,
			get:   func(c *config.Config) int { return c.Log.MaxSizeMB },
			input: 50,
			exp:   50,
		},
		{
			name:  "negative backups",
			opt:   config.OptLogMaxBackups,
			get:   func(c *config.Config) int { return c.Log.MaxBackups },
			input: -1,
			exp:   3,
		},
		{
			name:  "max age",
			opt:   config.OptLogMaxAgeDays,
			get:   func(c *config.Config) int { return c.Log.MaxAgeDays },
			input: 7,
			exp:   7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt(tt.input)})
			assert.Equal(t, tt.exp, tt.get(cfg))
		})
	}
}

func TestOptionStyles(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		exp   []string
	}{
		{"one", []string{"ADX"}, []string{"adx"}},
		{"duplicates", []string{"adi", " adi", "adx"}, []string{"adi", "adx"}},
		{"empty", nil, []string{"adi", "adx"}},
		{"invalid", []string{"adi", "csv"}, []string{"adi", "adx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptGenerateStyles(tt.input)})
			assert.Equal(t, tt.exp, cfg.Generate.Styles)
		})
	}
}

func TestOptionSeed(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptGenerateSeed(0)})
	assert.Equal(t, uint64(1), cfg.Generate.Seed)
	cfg.Update([]config.Option{config.OptGenerateSeed(42)})
	assert.Equal(t, uint64(42), cfg.Generate.Seed)
}

func TestMultipleOptions(t *testing.T) {
	t.Run("applies multiple options in order", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptGenerateOutputDir("/out"),
			config.OptGenerateWatch(true),
			config.OptLogLevel("debug"),
			config.OptLogCompress(true),
			config.OptJobsNumber(16),
		}

		cfg.Update(opts)

		assert.Equal(t, "/out", cfg.Generate.OutputDir)
		assert.True(t, cfg.Generate.Watch)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.True(t, cfg.Log.Compress)
		assert.Equal(t, 16, cfg.JobsNumber)

		// Unchanged fields keep defaults
		assert.Equal(t, "all.xml", cfg.Generate.SpecPath)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptGenerateOutputDir("/first"),
			config.OptGenerateOutputDir("/second"),
		}

		cfg.Update(opts)

		assert.Equal(t, "/second", cfg.Generate.OutputDir)
	})
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		original := config.New()
		original.Update([]config.Option{
			config.OptGenerateSpecPath("/spec/all.xml"),
			config.OptGenerateEntitiesPath("/spec/Entities.xml"),
			config.OptGeneratePlanPath("/spec/plan.toml"),
			config.OptGenerateOutputDir("/out"),
			config.OptGenerateStyles([]string{"adx"}),
			config.OptGenerateProgramID("MyLogger"),
			config.OptGenerateSeed(7),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptLogMaxSizeMB(1),
			config.OptLogMaxBackups(1),
			config.OptLogMaxAgeDays(1),
			config.OptLogCompress(true),
			config.OptJobsNumber(8),
		})

		newCfg := config.New()
		newCfg.Update(original.ToOptions())

		assert.Equal(t, original.Generate, newCfg.Generate)
		assert.Equal(t, original.Log, newCfg.Log)
		assert.Equal(t, original.JobsNumber, newCfg.JobsNumber)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
			config.OptGenerateDate("2024-01-01"),
			config.OptGenerateReport("none"),
			config.OptGenerateWatch(true),
		})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())

		assert.Equal(t, "", newCfg.HomeDir)
		assert.Equal(t, "", newCfg.Generate.Date)
		assert.Equal(t, "", newCfg.Generate.Report)
		assert.False(t, newCfg.Generate.Watch)
	})
}
