// Package logging provides the structured logger shared by the gscript packages.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// LogLevel represents different logging levels
type LogLevel int

// Logging levels, lowest first.
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogConfig holds configuration for the logger.
type LogConfig struct {
	// Level sets the minimum log level.
	Level LogLevel
	// EnableCallerInfo includes file and line number in logs.
	EnableCallerInfo bool
	// Writer receives the log records. Defaults to os.Stderr.
	Writer io.Writer
}

// DefaultLogConfig returns a default logging configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  LogLevelInfo,
		Writer: os.Stderr,
	}
}

// Logger wraps slog. The zero value and a nil *Logger both discard everything.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a text logger with the given configuration.
func NewLogger(config LogConfig) *Logger {
	w := config.Writer
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     config.Level.slogLevel(),
		AddSource: config.EnableCallerInfo,
	})
	return &Logger{logger: slog.New(handler)}
}

// FromSlog wraps an existing slog logger.
func FromSlog(l *slog.Logger) *Logger {
	return &Logger{logger: l}
}

// NewNopLogger creates a logger that discards all log messages.
func NewNopLogger() *Logger {
	return &Logger{}
}

// Debug logs debug-level messages
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.DebugContext(ctx, msg, args...)
	}
}

// Info logs info-level messages
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.InfoContext(ctx, msg, args...)
	}
}

// Warn logs warning-level messages
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.WarnContext(ctx, msg, args...)
	}
}

// Error logs error-level messages
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.ErrorContext(ctx, msg, args...)
	}
}

// With returns a logger with additional context fields
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.logger == nil {
		return l
	}
	return &Logger{logger: l.logger.With(args...)}
}

// WithTool returns a logger carrying the tool name.
func (l *Logger) WithTool(tool string) *Logger {
	return l.With("tool", tool)
}

// WithInvocation returns a logger carrying an invocation id.
func (l *Logger) WithInvocation(id string) *Logger {
	return l.With("invocation_id", id)
}

// LogInvocation records the outcome of a finished tool invocation.
func LogInvocation(
	ctx context.Context,
	logger *Logger,
	command string,
	exitCode int,
	duration time.Duration,
	err error,
) {
	if logger == nil {
		return
	}

	fields := []any{
		"command", command,
		"exit_code", exitCode,
		"duration_ms", duration.Milliseconds(),
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		logger.Warn(ctx, "tool invocation failed", fields...)
		return
	}

	logger.Debug(ctx, "tool invocation completed", fields...)
}

// ParseLogLevel parses a string log level into a LogLevel.
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LogLevelDebug, nil
	case "", "info":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	default:
		return LogLevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}
