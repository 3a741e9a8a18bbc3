package metric

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kmeans"
)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewPrometheusCollector(reg, "test")

	c.RecordInitialize(kmeans.InitRandom, time.Millisecond, nil)
	c.RecordInitialize(kmeans.InitRandom, time.Millisecond, errors.New("fail"))
	c.RecordIteration(3)
	c.RecordIteration(0)
	c.RecordSolve(2, time.Millisecond, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.initializeTotal.WithLabelValues("random", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.initializeTotal.WithLabelValues("random", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.iterationsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.solveTotal.WithLabelValues("success")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["test_points_moved"])
	assert.True(t, names["test_solve_iterations"])
}

func TestPrometheusCollectorWithEngine(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewPrometheusCollector(reg, "")

	km, err := kmeans.New(kmeans.NewDimensions("x"), 2, []kmeans.Record{
		{Values: map[string]float64{"x": 0}},
		{Values: map[string]float64{"x": 1}},
		{Values: map[string]float64{"x": 9}},
		{Values: map[string]float64{"x": 10}},
	}, kmeans.WithSeed(1), kmeans.WithMetricsCollector(c))
	require.NoError(t, err)
	require.NoError(t, km.Initialize())
	require.NoError(t, km.Solve(context.Background()))

	assert.Equal(t, float64(km.Iterations()), testutil.ToFloat64(c.iterationsTotal))
	assert.Equal(t, 1, testutil.CollectAndCount(c.solveTotal, "kmeans_solve_total"))
}
