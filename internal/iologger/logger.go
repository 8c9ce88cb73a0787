// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/g3zod/CreateADIFTestFiles/pkg/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFile is the name of the log file in the log directory.
const LogFile = "adiftest.log"

var rotator *lumberjack.Logger

// Init initializes the global slog logger with the given configuration.
// Destination "file" writes to LogFile in logDir, rotated by size.
// If append is false, the previous log is rotated away first, so the run
// starts with an empty file.
func Init(logDir string, cfg config.LogConfig, append bool) error {
	var writer io.Writer

	switch cfg.Destination {
	case "stdout":
		writer = os.Stdout
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return CreateLogFileError(logPath, err)
		}
		lj := &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    cfg.MaxSizeMB,
			MaxAge:     cfg.MaxAgeDays,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.Compress,
		}
		if !append {
			if err := rotateExisting(lj, logPath); err != nil {
				return CreateLogFileError(logPath, err)
			}
		}
		_ = Close()
		rotator = lj
		writer = lj
	default:
		writer = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(writer, handlerOpts)
	default:
		handler = slog.NewJSONHandler(writer, handlerOpts)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

func rotateExisting(lj *lumberjack.Logger, path string) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return nil
	}
	return lj.Rotate()
}

// Close closes the log file opened by Init, if any.
func Close() error {
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
