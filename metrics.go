package kmeans

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting clustering metrics.
// Implement this interface to integrate with monitoring systems; the
// metric/prometheus package ships a Prometheus implementation.
type MetricsCollector interface {
	// RecordInitialize is called after each Initialize call.
	RecordInitialize(method InitMethod, duration time.Duration, err error)

	// RecordIteration is called after each assignment/update round.
	// moved is the number of points that changed cluster compared with the
	// previous round (every point counts as moved in the first round).
	RecordIteration(moved int)

	// RecordSolve is called when Solve returns.
	RecordSolve(iterations int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInitialize(InitMethod, time.Duration, error) {}
func (NoopMetricsCollector) RecordIteration(int)                               {}
func (NoopMetricsCollector) RecordSolve(int, time.Duration, error)             {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InitializeCount  atomic.Int64
	InitializeErrors atomic.Int64
	Iterations       atomic.Int64
	PointsMoved      atomic.Int64
	SolveCount       atomic.Int64
	SolveErrors      atomic.Int64
	SolveTotalNanos  atomic.Int64
}

// RecordInitialize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInitialize(_ InitMethod, _ time.Duration, err error) {
	b.InitializeCount.Add(1)
	if err != nil {
		b.InitializeErrors.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(moved int) {
	b.Iterations.Add(1)
	b.PointsMoved.Add(int64(moved))
}

// RecordSolve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSolve(_ int, duration time.Duration, err error) {
	b.SolveCount.Add(1)
	b.SolveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SolveErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InitializeCount:  b.InitializeCount.Load(),
		InitializeErrors: b.InitializeErrors.Load(),
		Iterations:       b.Iterations.Load(),
		PointsMoved:      b.PointsMoved.Load(),
		SolveCount:       b.SolveCount.Load(),
		SolveErrors:      b.SolveErrors.Load(),
		SolveAvgNanos:    b.getAvgSolveNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgSolveNanos() int64 {
	count := b.SolveCount.Load()
	if count == 0 {
		return 0
	}
	return b.SolveTotalNanos.Load() / count
}

// BasicMetricsStats is a point-in-time snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	InitializeCount  int64
	InitializeErrors int64
	Iterations       int64
	PointsMoved      int64
	SolveCount       int64
	SolveErrors      int64
	SolveAvgNanos    int64
}
