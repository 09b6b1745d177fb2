package hwt

import (
	"context"
	"log/slog"
	"os"
)

// LevelTrace is below slog.LevelDebug and is used for per-node traversal events.
const LevelTrace = slog.LevelDebug - 4

// Logger wraps slog.Logger with hwt-specific context.
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
// level sets the minimum log level (e.g., LevelTrace, slog.LevelDebug).
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithRadius adds a radius field to the logger.
func (l *Logger) WithRadius(radius uint32) *Logger {
	return &Logger{
		Logger: l.Logger.With("radius", radius),
	}
}

// tracing reports whether per-node trace events would be emitted.
func (l *Logger) tracing(ctx context.Context) bool {
	return l.Enabled(ctx, LevelTrace)
}

// trace logs a per-node traversal event.
func (l *Logger) trace(ctx context.Context, msg string, args ...any) {
	l.Log(ctx, LevelTrace, msg, args...)
}

// LogConvert logs a leaf turning into a branch.
func (l *Logger) LogConvert(ctx context.Context, node uint32, level, features, children int) {
	l.DebugContext(ctx, "leaf converted",
		"node", node,
		"level", level,
		"features", features,
		"children", children,
	)
}

// LogNearest logs a completed nearest neighbor search.
func (l *Logger) LogNearest(ctx context.Context, k, found, visits int) {
	l.DebugContext(ctx, "nearest completed",
		"k", k,
		"results", found,
		"visits", visits,
	)
}

// LogBatch logs a batch of nearest neighbor searches.
func (l *Logger) LogBatch(ctx context.Context, queries, k int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "nearest batch failed",
			"queries", queries,
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "nearest batch completed",
			"queries", queries,
			"k", k,
		)
	}
}
