package pairq

import "log/slog"

type options struct {
	capacity         int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures queue construction.
type Option func(*options)

// WithCapacity pre-sizes the slot arena for the expected number of items.
// Zero or negative values leave sizing to append.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		o.capacity = capacity
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations.
//
// If nil is passed, the no-op collector is used.
//
// Example with BasicMetricsCollector:
//
//	metrics := &pairq.BasicMetricsCollector{}
//	q := pairq.New[int](pairq.WithMetricsCollector(metrics))
//	// ... use q ...
//	stats := metrics.GetStats()
//	fmt.Printf("Inserts: %d, Avg latency: %dns\n", stats.InsertCount, stats.InsertAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
//
// If nil is passed, logging stays disabled.
//
// Example with JSON logging:
//
//	logger := pairq.NewJSONLogger(slog.LevelInfo)
//	q := pairq.New[int](pairq.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
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

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
