package kmeans

import (
	"log/slog"
	"math/rand"
)

// InitMethod selects how cluster means are seeded.
type InitMethod string

const (
	// InitRandom uses k distinct random data points as the initial means.
	InitRandom InitMethod = "random"

	// InitPartition assigns every point to a random cluster and averages.
	InitPartition InitMethod = "partition"

	// InitPreset keeps the means of caller-supplied clusters.
	InitPreset InitMethod = "preset"
)

// IsValid returns true if the method is a recognized value.
func (m InitMethod) IsValid() bool {
	switch m {
	case InitRandom, InitPartition, InitPreset:
		return true
	default:
		return false
	}
}

type options struct {
	initMethod       InitMethod
	rng              *rand.Rand
	maxIterations    int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures KMeans construction.
type Option func(*options)

// WithInitMethod selects the initialization method for engines created with a
// cluster count. It is ignored when clusters are supplied up front, which
// always use InitPreset.
func WithInitMethod(m InitMethod) Option {
	return func(o *options) {
		o.initMethod = m
	}
}

// WithSeed makes random initialization reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the random source used for initialization.
// If nil is passed, a time-seeded source is used.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithMaxIterations caps the number of assignment/update rounds in Solve.
// n <= 0 means no cap, which is the default.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &kmeans.BasicMetricsCollector{}
//	km, _ := kmeans.New(dims, 3, records, kmeans.WithMetricsCollector(metrics))
//	// ... initialize and solve ...
//	stats := metrics.GetStats()
//	fmt.Printf("Iterations: %d\n", stats.Iterations)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
//	logger := kmeans.NewJSONLogger(slog.LevelDebug)
//	km, _ := kmeans.New(dims, 3, records, kmeans.WithLogger(logger))
func WithLogger(logger *Logger) Option {
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
