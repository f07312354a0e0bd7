package hmsearch

import "log/slog"

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	vertical         bool // use column-major bit-plane layout vs row-major fallback
	parallelBuild    bool // build per-bucket ODV indexes concurrently
}

// Option configures Index construction and build behavior.
//
// Breaking changes are expected while hmsearch is pre-release.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &hmsearch.BasicMetricsCollector{}
//	idx := hmsearch.New(hmsearch.WithMetricsCollector(metrics))
//	// ... build and search ...
//	stats := metrics.GetStats()
//	fmt.Printf("searches: %d, avg latency: %dns\n", stats.SearchCount, stats.SearchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	if mc == nil {
		mc = NoopMetricsCollector{}
	}
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for Build and Search.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := hmsearch.NewJSONLogger(slog.LevelInfo)
//	idx := hmsearch.New(hmsearch.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	if logger == nil {
		logger = NoopLogger()
	}
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithVerticalKeys selects between the default column-major bit-plane
// verification layout (enabled by default) and the row-major packed-key
// fallback kept for debugging/benchmarking. Most callers should leave
// this at its default.
func WithVerticalKeys(enabled bool) Option {
	return func(o *options) {
		o.vertical = enabled
	}
}

// WithParallelBuild builds each bucket's ODV index concurrently using
// golang.org/x/sync/errgroup. Buckets read disjoint position ranges of the
// same keys and write to independent slots, so this is safe; it has no
// effect on Search, which always runs single-threaded per call.
func WithParallelBuild(enabled bool) Option {
	return func(o *options) {
		o.parallelBuild = enabled
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		vertical:         true,
		parallelBuild:    false,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
