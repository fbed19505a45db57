// Package logger provides the structured logging sink consumed by the hook
// engine. Messages go to stderr as key=value text; debug output is gated by
// the --debug flag or the HOOKGATE_DEBUG environment variable.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logger is the structured logging contract the engine depends on.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	mu  sync.RWMutex
	def Logger = newSlog(os.Stderr, slog.LevelInfo)
)

// Init configures the default logger based on flags and environment variables
func Init(verbose, debug bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	if debug || os.Getenv("HOOKGATE_DEBUG") == "1" {
		level = slog.LevelDebug
	}

	mu.Lock()
	def = newSlog(os.Stderr, level)
	mu.Unlock()
}

// Default returns the process-wide logger
func Default() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return def
}

// SetDefault replaces the process-wide logger (used by tests)
func SetDefault(l Logger) {
	mu.Lock()
	def = l
	mu.Unlock()
}

func newSlog(w io.Writer, level slog.Level) Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Debug logs a debug message with structured fields
func Debug(msg string, args ...any) { Default().Debug(msg, args...) }

// Info logs an informational message with structured fields
func Info(msg string, args ...any) { Default().Info(msg, args...) }

// Warn logs a warning message with structured fields
func Warn(msg string, args ...any) { Default().Warn(msg, args...) }

// Error logs an error message with structured fields
func Error(msg string, args ...any) { Default().Error(msg, args...) }
