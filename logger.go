package collatzgo

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with collatzgo-specific context.
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

// NewJSONLogger creates a Logger that writes JSON-formatted logs to w.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable text logs to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithInvocation adds an invocation id field to the logger.
func (l *Logger) WithInvocation(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("invocation", id),
	}
}

// WithStrategy adds a strategy field to the logger.
func (l *Logger) WithStrategy(s Strategy) *Logger {
	return &Logger{
		Logger: l.Logger.With("strategy", s.String()),
	}
}

// LogRun logs a finished Run.
func (l *Logger) LogRun(ctx context.Context, items int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"items", items,
			"duration", duration,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "run completed",
			"items", items,
			"duration", duration,
		)
	}
}

// LogConfig logs the effective configuration at debug level.
func (l *Logger) LogConfig(ctx context.Context, cfg Config) {
	l.DebugContext(ctx, "solver configured",
		"strategy", cfg.Strategy.String(),
		"workers", cfg.Workers,
		"memoize", cfg.Memoize,
		"partial_cache_capacity", cfg.PartialCacheCapacity,
		"memory_limit_bytes", cfg.MemoryLimitBytes,
		"max_workers", cfg.MaxWorkers,
		"spawns_per_second", cfg.SpawnsPerSecond,
	)
}
