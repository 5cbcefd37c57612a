// Package logging sets up slog with a weekly rotating file and provides
// the request logging middleware.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// RotatingLogger writes to one log file per ISO week and deletes files
// older than the retention period.
type RotatingLogger struct {
	logDir      string
	retention   time.Duration
	mu          sync.Mutex
	currentFile *os.File
	currentWeek string
	cancel      context.CancelFunc
	cleanupDone chan struct{}
}

// NewRotatingLogger creates a rotating logger writing under logDir.
func NewRotatingLogger(logDir string, retentionWeeks int) *RotatingLogger {
	return &RotatingLogger{
		logDir:      logDir,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		cleanupDone: make(chan struct{}),
	}
}

// getWeekKey returns the week key in YYYY-Www format (ISO week)
func getWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// doRotate opens the log file for targetWeek (caller must hold the lock).
func (rl *RotatingLogger) doRotate(targetWeek string) error {
	if rl.currentFile != nil {
		if err := rl.currentFile.Close(); err != nil {
			slog.Warn("Failed to close log file during rotation", "error", err)
		}
	}

	logPath := filepath.Join(rl.logDir, fmt.Sprintf("app-%s.log", targetWeek))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	rl.currentFile = file
	rl.currentWeek = targetWeek
	return nil
}

// Write writes to the current week's file, rotating first when the week
// has changed.
func (rl *RotatingLogger) Write(p []byte) (n int, err error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	currentWeek := getWeekKey(time.Now())
	if rl.currentWeek != currentWeek {
		if err = rl.doRotate(currentWeek); err != nil {
			return 0, err
		}
	}

	if rl.currentFile == nil {
		return 0, fmt.Errorf("no log file available")
	}

	return rl.currentFile.Write(p)
}

// cleanupOldLogs removes log files older than the retention period.
func (rl *RotatingLogger) cleanupOldLogs() error {
	entries, err := os.ReadDir(rl.logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := time.Now().Add(-rl.retention)
	var deletedCount int

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "app-") || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(rl.logDir, entry.Name())); err == nil {
				deletedCount++
			}
		}
	}

	if deletedCount > 0 {
		slog.Info("Cleaned up old log files", "count", deletedCount)
	}

	return nil
}

// Close stops background cleanup and closes the current file.
func (rl *RotatingLogger) Close() error {
	if rl.cancel != nil {
		rl.cancel()
		select {
		case <-rl.cleanupDone:
		case <-time.After(5 * time.Second):
		}
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.currentFile != nil {
		return rl.currentFile.Close()
	}
	return nil
}

// SetupLogger configures slog to log to both console and rotating file
func SetupLogger(logDir string) *slog.Logger {
	return SetupLoggerWithRetention(logDir, 4) // Default 4 weeks retention
}

// SetupLoggerWithRetention configures slog with a custom retention period.
// Falls back to console-only logging when the log directory is unusable.
func SetupLoggerWithRetention(logDir string, retentionWeeks int) *slog.Logger {
	consoleHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	if err := os.MkdirAll(logDir, 0755); err != nil {
		consoleLogger := slog.New(consoleHandler)
		consoleLogger.Error("Failed to create logs directory", "error", err)
		return consoleLogger
	}

	rotatingLogger := NewRotatingLogger(logDir, retentionWeeks)

	rotatingLogger.mu.Lock()
	rotateErr := rotatingLogger.doRotate(getWeekKey(time.Now()))
	rotatingLogger.mu.Unlock()
	if rotateErr != nil {
		consoleLogger := slog.New(consoleHandler)
		consoleLogger.Error("Failed to initialize rotating logger", "error", rotateErr)
		return consoleLogger
	}

	ctx, cancel := context.WithCancel(context.Background())
	rotatingLogger.cancel = cancel

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		defer close(rotatingLogger.cleanupDone)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := rotatingLogger.cleanupOldLogs(); err != nil {
					slog.Warn("Failed to cleanup old logs", "error", err)
				}
			}
		}
	}()

	// Console gets text format, file gets JSON format for better parsing
	fileHandler := slog.NewJSONHandler(rotatingLogger, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	return slog.New(&multiHandler{
		handlers: []slog.Handler{consoleHandler, fileHandler},
	})
}

// multiHandler implements slog.Handler to write to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}
