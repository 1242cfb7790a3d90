package pairq

import (
	"errors"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with pairq-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithLen adds a queue length field to the logger.
func (l *Logger) WithLen(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("len", n),
	}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(length int, err error) {
	if err != nil {
		l.Error("insert failed",
			"error", err,
		)
	} else {
		l.Debug("insert completed",
			"len", length,
		)
	}
}

// LogExtract logs an extract-min operation. Extracting from an empty queue
// is an ordinary outcome for drain loops and logs at debug level.
func (l *Logger) LogExtract(length int, err error) {
	switch {
	case err == nil:
		l.Debug("extract completed",
			"len", length,
		)
	case errors.Is(err, ErrEmpty):
		l.Debug("extract on empty queue")
	default:
		l.Error("extract failed",
			"error", err,
		)
	}
}

// LogFind logs a find operation. A miss is an ordinary outcome and logs at
// debug level.
func (l *Logger) LogFind(err error) {
	switch {
	case err == nil:
		l.Debug("find completed",
			"found", true,
		)
	case errors.Is(err, ErrNotFound):
		l.Debug("find completed",
			"found", false,
		)
	default:
		l.Error("find failed",
			"error", err,
		)
	}
}

// LogUpdate logs an update operation.
func (l *Logger) LogUpdate(err error) {
	if err != nil {
		l.Error("update failed",
			"error", err,
		)
	} else {
		l.Debug("update completed")
	}
}
