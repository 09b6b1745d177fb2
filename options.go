package hwt

import "runtime"

const (
	// DefaultLeafThreshold is the number of features a leaf holds before it
	// is converted into a branch. It is also the default fan-out below which
	// searches scan a branch instead of enumerating matching keys.
	DefaultLeafThreshold = 1024

	// initialLeafCapacity is the capacity of a freshly allocated leaf.
	initialLeafCapacity = 4
)

type options struct {
	leafThreshold    int
	bruteForce       [7]int
	logger           *Logger
	metricsCollector MetricsCollector
	batchConcurrency int
}

func defaultOptions() options {
	o := options{
		leafThreshold:    DefaultLeafThreshold,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		batchConcurrency: runtime.GOMAXPROCS(0),
	}
	for i := range o.bruteForce {
		o.bruteForce[i] = -1
	}
	return o
}

// Option configures a Tree.
type Option func(*options)

// WithLeafThreshold sets how many features a leaf holds before it splits.
//
// If n <= 0, DefaultLeafThreshold is used. Branch scan thresholds that were
// not set explicitly follow this value.
func WithLeafThreshold(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = DefaultLeafThreshold
		}
		o.leafThreshold = n
	}
}

// WithBruteForceThreshold sets the fan-out of branches whose children hold
// keys of level+1, below which searches visit every child instead of
// enumerating the keys that can match. level ranges over 0..6.
//
// Out of range levels and n <= 0 are ignored.
func WithBruteForceThreshold(level, n int) Option {
	return func(o *options) {
		if level < 0 || level >= len(o.bruteForce) || n <= 0 {
			return
		}
		o.bruteForce[level] = n
	}
}

// WithLogger configures the logger.
//
// If nil is passed, NoopLogger is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures the metrics collector.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithBatchConcurrency bounds the number of queries NearestBatch runs at once.
//
// If n <= 0, GOMAXPROCS is used.
func WithBatchConcurrency(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.batchConcurrency = n
	}
}
