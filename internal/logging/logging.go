// =============================================================================
// Clinical Catalog Builder - Logging
// =============================================================================
//
// Structured logging on log/slog. The root command calls InitLogger once the
// configuration is loaded; the package-level helpers write to the default
// service, or to a debug-level stderr logger before initialization.
//
// =============================================================================

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LoggingService wraps the configured logger and the log file it owns.
type LoggingService struct {
	Logger *slog.Logger
	file   *os.File
}

// DefaultLoggingService is the service used by the package-level helpers.
var DefaultLoggingService *LoggingService

// fallbackOutput receives log lines written before InitLogger runs.
var fallbackOutput io.Writer = os.Stderr

// ParseLevel maps a config level name to a slog level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitLogger initializes the global logger instance.
// With an empty logFile, text lines go to stderr; otherwise JSON lines are
// appended to logFile.
func InitLogger(level, logFile string) error {
	service, err := NewLoggingService(level, logFile, os.Stderr)
	if err != nil {
		return err
	}

	Close()
	DefaultLoggingService = service
	slog.SetDefault(service.Logger)
	return nil
}

// NewLoggingService builds a logger writing text to w, or JSON to logFile when set.
func NewLoggingService(level, logFile string, w io.Writer) (*LoggingService, error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	if logFile == "" {
		return &LoggingService{Logger: slog.New(slog.NewTextHandler(w, opts))}, nil
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logFile, err)
	}

	return &LoggingService{
		Logger: slog.New(slog.NewJSONHandler(file, opts)),
		file:   file,
	}, nil
}

// Close releases the log file of the global logger, if any.
func Close() {
	if DefaultLoggingService != nil && DefaultLoggingService.file != nil {
		_ = DefaultLoggingService.file.Close()
		DefaultLoggingService.file = nil
	}
}

// Package-level functions for direct access

func logger() *slog.Logger {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		// Fallback to console logger if not initialized
		return slog.New(slog.NewTextHandler(fallbackOutput, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return DefaultLoggingService.Logger
}

// Info logs at info level.
func Info(msg string, args ...any) {
	logger().Info(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	logger().Error(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	logger().Warn(msg, args...)
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	logger().Debug(msg, args...)
}
