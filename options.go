package meshbvh

import (
	"log/slog"
)

type options struct {
	epsilon  float64
	leafSize int
	logger   *Logger
	metrics  MetricsCollector
}

// Option configures Builder construction.
type Option func(*options)

// WithEpsilon inflates every inserted bounding volume on all sides. Use a
// small positive value to catch boundary hits on thin primitives.
func WithEpsilon(epsilon float64) Option {
	return func(o *options) {
		o.epsilon = epsilon
	}
}

// WithLeafSize sets the maximum number of primitives per tree leaf.
// Values below one fall back to the engine default.
func WithLeafSize(leafSize int) Option {
	return func(o *options) {
		o.leafSize = leafSize
	}
}

// WithLogger configures structured logging for builds and invalidations.
// Pass nil to disable logging.
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

// WithMetricsCollector configures a metrics collector for build and query
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
