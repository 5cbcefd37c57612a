package logging

import (
	"log/slog"
	"os"
)

type LoggingService struct {
	Logger *slog.Logger
}

var DefaultLoggingService *LoggingService

// InitLogger initializes the global logger instance
func InitLogger(logDir string, retentionWeeks int) {
	DefaultLoggingService = &LoggingService{
		Logger: SetupLoggerWithRetention(logDir, retentionWeeks),
	}
	slog.SetDefault(DefaultLoggingService.Logger)
}

// Logger returns the configured logger, or a console fallback before
// InitLogger has run.
func Logger() *slog.Logger {
	if DefaultLoggingService != nil && DefaultLoggingService.Logger != nil {
		return DefaultLoggingService.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}
