// Package metric exports kmeans run metrics to Prometheus.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/kmeans"
)

const defaultNamespace = "kmeans"

// PrometheusCollector implements kmeans.MetricsCollector on top of
// Prometheus counters and histograms.
//
//	reg := prometheus.NewRegistry()
//	km, _ := kmeans.New(dims, k, records,
//	    kmeans.WithMetricsCollector(metric.NewPrometheusCollector(reg, "")))
type PrometheusCollector struct {
	initializeTotal   *prometheus.CounterVec
	initializeLatency prometheus.Histogram
	iterationsTotal   prometheus.Counter
	pointsMoved       prometheus.Histogram
	solveTotal        *prometheus.CounterVec
	solveLatency      prometheus.Histogram
	solveIterations   prometheus.Histogram
}

var _ kmeans.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector registers the kmeans metrics with reg. An empty
// namespace defaults to "kmeans"; a nil reg uses the default registerer.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &PrometheusCollector{
		initializeTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "initialize_total",
				Help:      "Total Initialize calls",
			},
			[]string{"method", "status"}, // status: success/error
		),
		initializeLatency: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "initialize_latency_seconds",
				Help:      "Initialize latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		iterationsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "iterations_total",
				Help:      "Total assignment/update rounds",
			},
		),
		pointsMoved: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "points_moved",
				Help:      "Points that changed cluster per round",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		solveTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "solve_total",
				Help:      "Total Solve calls",
			},
			[]string{"status"},
		),
		solveLatency: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "solve_latency_seconds",
				Help:      "Solve latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		solveIterations: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "solve_iterations",
				Help:      "Rounds needed per successful Solve call",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
	}
}

// RecordInitialize implements kmeans.MetricsCollector.
func (p *PrometheusCollector) RecordInitialize(method kmeans.InitMethod, duration time.Duration, err error) {
	p.initializeTotal.WithLabelValues(string(method), status(err)).Inc()
	p.initializeLatency.Observe(duration.Seconds())
}

// RecordIteration implements kmeans.MetricsCollector.
func (p *PrometheusCollector) RecordIteration(moved int) {
	p.iterationsTotal.Inc()
	p.pointsMoved.Observe(float64(moved))
}

// RecordSolve implements kmeans.MetricsCollector.
func (p *PrometheusCollector) RecordSolve(iterations int, duration time.Duration, err error) {
	p.solveTotal.WithLabelValues(status(err)).Inc()
	p.solveLatency.Observe(duration.Seconds())
	if err == nil {
		p.solveIterations.Observe(float64(iterations))
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
