package vecscript

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with vecscript-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithSession adds a session id field to the logger.
func (l *Logger) WithSession(id uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("session", id),
	}
}

// WithOp adds an operation field to the logger.
func (l *Logger) WithOp(op string) *Logger {
	return &Logger{
		Logger: l.Logger.With("op", op),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogOpen logs the start of a session.
func (l *Logger) LogOpen(ctx context.Context, threads, sortThreshold int, memoryLimit int64) {
	l.InfoContext(ctx, "session opened",
		"threads", threads,
		"sort_threshold", sortThreshold,
		"memory_limit", memoryLimit,
	)
}

// LogClose logs the end of a session.
func (l *Logger) LogClose(ctx context.Context, stats Stats) {
	if stats.LiveValues > 0 {
		l.WarnContext(ctx, "session closed with live values",
			"live_values", stats.LiveValues,
			"memory_used", stats.MemoryUsed,
		)
		return
	}
	l.InfoContext(ctx, "session closed",
		"values_allocated", stats.ValuesAllocated,
	)
}

// LogDispatch logs an element dispatch of the object layer.
func (l *Logger) LogDispatch(ctx context.Context, op string, elements int, bulk bool, d time.Duration, err error) {
	if err != nil {
		l.DebugContext(ctx, "dispatch failed",
			"op", op,
			"elements", elements,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "dispatch completed",
			"op", op,
			"elements", elements,
			"bulk", bulk,
			"duration", d,
		)
	}
}
