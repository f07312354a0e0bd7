package hmsearch

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with hmsearch-specific context.
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

// WithBuckets adds a buckets field to the logger.
func (l *Logger) WithBuckets(b int) *Logger {
	return &Logger{Logger: l.Logger.With("buckets", b)}
}

// LogBuild logs a completed Build call.
func (l *Logger) LogBuild(n, length int, alphabet uint32, buckets int, d time.Duration, err error) {
	if err != nil {
		l.Error("build failed",
			"keys", n, "length", length, "alphabet", alphabet, "buckets", buckets,
			"error", err,
		)
		return
	}
	l.Info("build completed",
		"keys", n, "length", length, "alphabet", alphabet, "buckets", buckets,
		"duration", d,
	)
}

// LogSearch logs a completed Search call.
func (l *Logger) LogSearch(radius, candidates int, d time.Duration, err error) {
	if err != nil {
		l.Error("search failed", "radius", radius, "error", err)
		return
	}
	l.Debug("search completed", "radius", radius, "candidates", candidates, "duration", d)
}

// LogFilter logs the outcome of the enhanced filter for one candidate.
// Only emitted at Debug level; cheap enough to call unconditionally since
// slog checks the level before formatting arguments.
func (l *Logger) LogFilter(id uint32, bucketHits int, passed bool) {
	l.Debug("enhanced filter", "id", id, "bucket_hits", bucketHits, "passed", passed)
}
