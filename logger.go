package kmeans

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with kmeans-specific context.
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
	return NewJSONLoggerWithWriter(os.Stderr, level)
}

// NewJSONLoggerWithWriter creates a JSON Logger writing to w.
func NewJSONLoggerWithWriter(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
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
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRunID adds a run_id field to the logger.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithMethod adds an init_method field to the logger.
func (l *Logger) WithMethod(m InitMethod) *Logger {
	return &Logger{
		Logger: l.Logger.With("init_method", string(m)),
	}
}

// LogDropped logs records rejected during ingestion.
func (l *Logger) LogDropped(ctx context.Context, index int, name string, err error) {
	l.DebugContext(ctx, "record dropped",
		"index", index,
		"name", name,
		"error", err,
	)
}

// LogInitialize logs an initialization attempt.
func (l *Logger) LogInitialize(ctx context.Context, points int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "initialize failed",
			"points", points,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "initialize completed",
			"points", points,
		)
	}
}

// LogIteration logs one assignment/update round.
func (l *Logger) LogIteration(ctx context.Context, iteration, moved, converged int) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", iteration,
		"moved", moved,
		"converged_clusters", converged,
	)
}

// LogSolve logs the outcome of Solve.
func (l *Logger) LogSolve(ctx context.Context, iterations int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "solve failed",
			"iterations", iterations,
			"elapsed", elapsed,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "solve converged",
			"iterations", iterations,
			"elapsed", elapsed,
		)
	}
}
