// Package logging provides structured logging using Go's slog package.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger *slog.Logger
)

func init() {
	// Initialize with a default logger (text format, Info level, stderr)
	InitLogger(LevelInfo, FormatText)
}

// Level represents a log level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// Format represents a log output format.
type Format int

const (
	// FormatText outputs logs in human-readable text format.
	FormatText Format = iota
	// FormatJSON outputs logs in JSON format.
	FormatJSON
)

// InitLogger initializes the global logger with the specified level and format.
// Log output goes to stderr so it never interleaves with portion output on stdout.
func InitLogger(level Level, format Format) {
	InitLoggerWriter(level, format, os.Stderr)
}

// InitLoggerWriter initializes the global logger writing to w.
func InitLoggerWriter(level Level, format Format, w io.Writer) {
	var slogLevel slog.Level
	switch level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelInfo:
		slogLevel = slog.LevelInfo
	case LevelWarn:
		slogLevel = slog.LevelWarn
	case LevelError:
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Customize timestamp format
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// GetLogger returns the global logger instance.
func GetLogger() *slog.Logger {
	return defaultLogger
}

// Helper functions for common logging patterns

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// BookLoaded logs a successfully extracted book.
func BookLoaded(path, title string, totalWords int, args ...any) {
	allArgs := []any{
		"path", path,
		"title", title,
		"total_words", totalWords,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("book_loaded", allArgs...)
}

// MidSentenceCut logs the degraded case where a portion had to be cut
// mid-sentence because no boundary fell inside the search window.
func MidSentenceCut(portionIndex, cutOffset int, args ...any) {
	allArgs := []any{
		"portion", portionIndex,
		"cut_offset", cutOffset,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Warn("mid_sentence_cut", allArgs...)
}

// SplitCompleted logs final run statistics.
func SplitCompleted(portions, totalWords int, hours float64, args ...any) {
	allArgs := []any{
		"portions", portions,
		"total_words", totalWords,
		"hours", hours,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("split_completed", allArgs...)
}

// PortionWritten logs a single written portion file.
func PortionWritten(index int, path string, wordCount int, args ...any) {
	allArgs := []any{
		"portion", index,
		"path", path,
		"word_count", wordCount,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Debug("portion_written", allArgs...)
}
