package iologger_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/g3zod/CreateADIFTestFiles/internal/iologger"
	"github.com/g3zod/CreateADIFTestFiles/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileConfig(format string) config.LogConfig {
	cfg := config.New().Log
	cfg.Format = format
	cfg.Destination = "file"
	return cfg
}

func TestInitFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	defer slog.SetDefault(slog.Default())
	logDir := filepath.Join(t.TempDir(), "logs")
	logPath := filepath.Join(logDir, iologger.LogFile)

	tests := []struct {
		msg, format, exp string
	}{
		{"json", "json", `"msg":"generated"`},
		{"text", "text", "msg=generated"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			require.NoError(t, iologger.Init(logDir, fileConfig(v.format), false))
			slog.Info("generated", "records", 42)
			require.NoError(t, iologger.Close())

			content, err := os.ReadFile(logPath)
			require.NoError(t, err)
			assert.Contains(t, string(content), v.exp)
			assert.Equal(t, 1, strings.Count(string(content), "generated"),
				"a fresh run starts with an empty file")
		})
	}
}

func TestInitAppend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	defer slog.SetDefault(slog.Default())
	logDir := t.TempDir()
	logPath := filepath.Join(logDir, iologger.LogFile)

	for range 2 {
		require.NoError(t, iologger.Init(logDir, fileConfig("json"), true))
		slog.Info("watch")
		require.NoError(t, iologger.Close())
	}

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(content), `"msg":"watch"`))
}

func TestInitLevel(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	cfg := config.New().Log
	cfg.Destination = "stderr"
	cfg.Level = "warn"
	require.NoError(t, iologger.Init("", cfg, true))
	assert.False(t, slog.Default().Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, slog.Default().Enabled(t.Context(), slog.LevelWarn))
}
