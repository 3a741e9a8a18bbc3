package kmeans

import (
	"context"
	"fmt"
	"maps"
	"math"
	"math/rand"
	"slices"
	"strconv"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/google/uuid"
)

// State is the lifecycle state of a KMeans engine.
type State int

const (
	// StateUninitialized is the state before a successful Initialize, and the
	// state an engine falls back to when Solve hits an inconsistency.
	StateUninitialized State = iota
	// StateInitialized means every cluster has a mean and Solve may run.
	StateInitialized
	// StateConverged is terminal: Solve finished with every cluster converged.
	StateConverged
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateConverged:
		return "converged"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Record is one raw input point. Values is keyed by dimension name.
type Record struct {
	Name   string
	Values map[string]float64
}

// KMeans partitions data points into clusters around their means.
//
// An engine is single-use: construct it, call Initialize, call Solve, then
// read the clusters. It is not safe for concurrent use.
type KMeans struct {
	dims     []*Dimension
	clusters []*Cluster
	data     []*DataPoint
	rejected []*RecordError

	method     InitMethod
	state      State
	converged  bool
	iterations int

	// members[i] holds the indices of the points assigned to clusters[i] in
	// the last round.
	members []*roaring.Bitmap

	runID         string
	rng           *rand.Rand
	maxIterations int
	logger        *Logger
	metrics       MetricsCollector
}

// New creates an engine with k fresh clusters named "1".."k" that share the
// engine's dimension handles. The default initialization method is
// InitRandom.
func New(dims []*Dimension, k int, records []Record, opts ...Option) (*KMeans, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}

	o := applyOptions(opts)
	if o.initMethod == "" {
		o.initMethod = InitRandom
	}
	if o.initMethod != InitRandom && o.initMethod != InitPartition {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInitMethod, o.initMethod)
	}

	km, err := newKMeans(dims, o)
	if err != nil {
		return nil, err
	}

	km.clusters = make([]*Cluster, k)
	for i := range km.clusters {
		c, err := NewCluster(strconv.Itoa(i+1), km.dims, nil)
		if err != nil {
			return nil, err
		}
		km.clusters[i] = c
	}

	km.finish(records)
	return km, nil
}

// NewWithClusters creates an engine that adopts the given clusters as they
// are. The initialization method is always InitPreset: Initialize only checks
// that every cluster carries a mean.
//
// The clusters must be built over the same dimension handles as dims.
func NewWithClusters(dims []*Dimension, clusters []*Cluster, records []Record, opts ...Option) (*KMeans, error) {
	for i, c := range clusters {
		if c == nil {
			return nil, fmt.Errorf("cluster %d: %w", i, ErrInvalidCluster)
		}
	}

	o := applyOptions(opts)
	o.initMethod = InitPreset

	km, err := newKMeans(dims, o)
	if err != nil {
		return nil, err
	}
	km.clusters = slices.Clone(clusters)

	km.finish(records)
	return km, nil
}

func applyOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	return o
}

func newKMeans(dims []*Dimension, o options) (*KMeans, error) {
	unique, err := uniqueDimensions(dims)
	if err != nil {
		return nil, err
	}

	return &KMeans{
		dims:          unique,
		method:        o.initMethod,
		runID:         uuid.NewString(),
		rng:           o.rng,
		maxIterations: o.maxIterations,
		logger:        o.logger,
		metrics:       o.metricsCollector,
	}, nil
}

func (km *KMeans) finish(records []Record) {
	km.logger = km.logger.
		WithRunID(km.runID).
		WithMethod(km.method).
		WithK(len(km.clusters))
	km.ingest(records)
}

// uniqueDimensions drops repeated handles and repeated names, keeping the
// first occurrence.
func uniqueDimensions(dims []*Dimension) ([]*Dimension, error) {
	seen := make(map[string]struct{}, len(dims))
	out := make([]*Dimension, 0, len(dims))
	for i, d := range dims {
		if d == nil {
			return nil, fmt.Errorf("dimension %d: %w", i, ErrInvalidDimension)
		}
		if _, ok := seen[d.name]; ok {
			continue
		}
		seen[d.name] = struct{}{}
		out = append(out, d)
	}
	return out, nil
}

// ingest wraps the records into data points over the engine's dimension
// handles. Malformed records are dropped and kept in km.rejected.
func (km *KMeans) ingest(records []Record) {
	if len(km.dims) == 0 {
		return
	}

	ctx := context.Background()
	for i, r := range records {
		name := r.Name
		if name == "" {
			name = "Data point " + strconv.Itoa(i)
		}

		p, err := km.newPoint(name, r.Values)
		if err != nil {
			re := &RecordError{Index: i, Name: name, Err: err}
			km.rejected = append(km.rejected, re)
			km.logger.LogDropped(ctx, i, name, err)
			continue
		}
		km.data = append(km.data, p)
	}
}

// newPoint builds a point over the engine's handles plus fresh handles for any
// extra keys.
func (km *KMeans) newPoint(name string, values map[string]float64) (*DataPoint, error) {
	if values == nil {
		return nil, ErrMalformedRecord
	}

	dims := slices.Clone(km.dims)
	for _, key := range slices.Sorted(maps.Keys(values)) {
		if !slices.ContainsFunc(km.dims, func(d *Dimension) bool { return d.name == key }) {
			dims = append(dims, NewDimension(key))
		}
	}

	p, err := NewDataPoint(name, dims, values)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return p, nil
}

// Initialize seeds the cluster means according to the init method.
//
// InitRandom falls back to InitPartition when there are fewer points than
// clusters.
func (km *KMeans) Initialize() error {
	start := time.Now()
	err := km.initialize()
	km.metrics.RecordInitialize(km.method, time.Since(start), err)
	km.logger.LogInitialize(context.Background(), len(km.data), err)
	return err
}

func (km *KMeans) initialize() error {
	if km.state != StateUninitialized {
		return &StateError{Op: "initialize", State: km.state, cause: ErrInvalidState}
	}

	switch {
	case len(km.clusters) == 0:
		return ErrNoClusters
	case len(km.dims) == 0:
		return ErrNoDimensions
	case len(km.data) == 0:
		return ErrNoData
	}

	var err error
	switch {
	case km.method == InitPreset:
		err = km.initPreset()
	case km.method == InitRandom && len(km.data) >= len(km.clusters):
		err = km.initRandom()
	default:
		err = km.initPartition()
	}
	if err != nil {
		return err
	}

	km.state = StateInitialized
	return nil
}

// initRandom uses k distinct points, in ascending input order, as the means.
func (km *KMeans) initRandom() error {
	picks := km.rng.Perm(len(km.data))[:len(km.clusters)]
	slices.Sort(picks)

	for i, j := range picks {
		if err := km.clusters[i].SetMean(km.data[j]); err != nil {
			return fmt.Errorf("seed cluster %q: %w", km.clusters[i].name, err)
		}
	}
	return nil
}

func (km *KMeans) initPreset() error {
	for _, c := range km.clusters {
		if c.mean == nil {
			return fmt.Errorf("cluster %q: %w", c.name, ErrNoMean)
		}
	}
	return nil
}

// initPartition assigns every point to a random cluster and derives the means
// from that partition. A cluster left without points has no mean, which is an
// error.
func (km *KMeans) initPartition() error {
	members := km.newMembers()
	for _, c := range km.clusters {
		c.ClearData()
	}

	for i, p := range km.data {
		j := km.rng.Intn(len(km.clusters))
		if err := km.clusters[j].AssignPoint(p); err != nil {
			return fmt.Errorf("partition %q: %w", p.name, err)
		}
		members[j].Add(uint32(i))
	}
	km.members = members

	if err := km.updateMeans(); err != nil {
		return err
	}
	return km.initPreset()
}

// Solve runs assignment and update rounds until every cluster has converged.
//
// Solve is only valid in StateInitialized. An inconsistency during a round
// returns the error and drops the engine back to StateUninitialized. If ctx is
// cancelled or the iteration cap is hit, the engine stays initialized.
func (km *KMeans) Solve(ctx context.Context) error {
	switch km.state {
	case StateInitialized:
	case StateUninitialized:
		return &StateError{Op: "solve", State: km.state, cause: ErrNotInitialized}
	default:
		return &StateError{Op: "solve", State: km.state, cause: ErrInvalidState}
	}

	start := time.Now()
	err := km.solve(ctx)
	elapsed := time.Since(start)
	km.metrics.RecordSolve(km.iterations, elapsed, err)
	km.logger.LogSolve(ctx, km.iterations, elapsed, err)
	return err
}

func (km *KMeans) solve(ctx context.Context) error {
	for round := 0; !km.converged; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if km.maxIterations > 0 && round >= km.maxIterations {
			return fmt.Errorf("%w (%d)", ErrMaxIterations, km.maxIterations)
		}

		for _, c := range km.clusters {
			c.ClearData()
		}

		moved, err := km.assignPoints()
		if err != nil {
			km.state = StateUninitialized
			return err
		}
		if err := km.updateMeans(); err != nil {
			km.state = StateUninitialized
			return err
		}
		km.iterations++

		done := 0
		for _, c := range km.clusters {
			if c.converged {
				done++
			}
		}
		km.converged = done == len(km.clusters)

		km.metrics.RecordIteration(moved)
		km.logger.LogIteration(ctx, km.iterations, moved, done)
	}

	km.state = StateConverged
	return nil
}

// assignPoints moves every point to its nearest cluster and returns how many
// points changed cluster since the previous round.
func (km *KMeans) assignPoints() (int, error) {
	members := km.newMembers()

	for i, p := range km.data {
		j, err := nearestCluster(p, km.clusters, km.dims)
		if err != nil {
			return 0, fmt.Errorf("assign %q: %w", p.name, err)
		}
		if err := km.clusters[j].AssignPoint(p); err != nil {
			return 0, fmt.Errorf("assign %q: %w", p.name, err)
		}
		members[j].Add(uint32(i))
	}

	moved := len(km.data)
	if km.members != nil {
		for j, m := range members {
			moved -= int(m.AndCardinality(km.members[j]))
		}
	}
	km.members = members
	return moved, nil
}

func (km *KMeans) updateMeans() error {
	for _, c := range km.clusters {
		if err := c.UpdateMean(); err != nil {
			return fmt.Errorf("update cluster %q: %w", c.name, err)
		}
	}
	return nil
}

func (km *KMeans) newMembers() []*roaring.Bitmap {
	members := make([]*roaring.Bitmap, len(km.clusters))
	for i := range members {
		members[i] = roaring.New()
	}
	return members
}

// nearestCluster returns the index of the cluster whose mean has the smallest
// squared Euclidean distance to p over dims. Only a strictly smaller distance
// replaces the current best, so the earliest cluster wins ties.
func nearestCluster(p *DataPoint, clusters []*Cluster, dims []*Dimension) (int, error) {
	best := -1
	minDist := math.Inf(1)

	for i, c := range clusters {
		var dist float64
		for _, d := range dims {
			pv, err := p.Value(d)
			if err != nil {
				return -1, err
			}
			cv, err := c.Value(d)
			if err != nil {
				return -1, err
			}
			diff := pv - cv
			dist += diff * diff
		}

		if dist < minDist {
			minDist = dist
			best = i
		}
	}

	if best < 0 {
		return -1, ErrNoNearestCluster
	}
	return best, nil
}

// Clusters returns the clusters in insertion order.
func (km *KMeans) Clusters() []*Cluster { return slices.Clone(km.clusters) }

// Dimensions returns the canonical dimension handles.
func (km *KMeans) Dimensions() []*Dimension { return slices.Clone(km.dims) }

// Data returns the ingested data points in input order.
func (km *KMeans) Data() []*DataPoint { return slices.Clone(km.data) }

// Rejected returns the records dropped during ingestion.
func (km *KMeans) Rejected() []*RecordError { return slices.Clone(km.rejected) }

// Converged reports whether every cluster converged in the last round.
func (km *KMeans) Converged() bool { return km.converged }

// State returns the lifecycle state.
func (km *KMeans) State() State { return km.state }

// InitMethod returns the initialization method in effect.
func (km *KMeans) InitMethod() InitMethod { return km.method }

// Iterations returns the number of completed assignment/update rounds.
func (km *KMeans) Iterations() int { return km.iterations }

// RunID returns the identifier attached to this engine's log records.
func (km *KMeans) RunID() string { return km.runID }
