package sfatrie

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/sfatrie/index"
)

// Logger wraps slog.Logger with sfatrie-specific context.
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
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

// WithMode adds the matching mode to the logger.
func (l *Logger) WithMode(mode index.Mode) *Logger {
	return &Logger{
		Logger: l.Logger.With("mode", mode.String()),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogBuild logs the outcome of an index build.
func (l *Logger) LogBuild(ctx context.Context, mode index.Mode, entries int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"mode", mode.String(),
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "build completed",
			"mode", mode.String(),
			"entries", entries,
			"elapsed", elapsed,
		)
	}
}

// LogSearch logs a k-NN search.
func (l *Logger) LogSearch(ctx context.Context, k, resultsFound int, costs index.IOCosts, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"k", k,
			"results", resultsFound,
			"nodes", costs.NodesVisited,
			"examined", costs.EntriesExamined,
		)
	}
}

// LogRangeSearch logs an epsilon-range search.
func (l *Logger) LogRangeSearch(ctx context.Context, epsilon float64, resultsFound uint64, costs index.IOCosts, err error) {
	if err != nil {
		l.ErrorContext(ctx, "range search failed",
			"epsilon", epsilon,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "range search completed",
			"epsilon", epsilon,
			"results", resultsFound,
			"nodes", costs.NodesVisited,
			"examined", costs.EntriesExamined,
		)
	}
}

// LogCheck logs the outcome of an integrity check.
func (l *Logger) LogCheck(ctx context.Context, err error) {
	if err != nil {
		l.WarnContext(ctx, "integrity check found violations",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "integrity check passed")
	}
}
