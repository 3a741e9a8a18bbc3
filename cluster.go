package kmeans

import (
	"fmt"
	"slices"
)

// Cluster owns a mean and the points assigned to it during one iteration.
type Cluster struct {
	name      string
	dims      []*Dimension
	mean      *DataPoint
	data      []*DataPoint
	converged bool
}

// NewCluster creates a cluster over dims. mean may be nil; if set it must
// cover every dimension.
func NewCluster(name string, dims []*Dimension, mean *DataPoint) (*Cluster, error) {
	for _, d := range dims {
		if d == nil {
			return nil, ErrInvalidDimension
		}
	}

	c := &Cluster{
		name: name,
		dims: slices.Clone(dims),
	}

	if mean != nil {
		if err := c.SetMean(mean); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// NewClusterWithMean creates a cluster whose initial mean is built from values
// over the same dims.
func NewClusterWithMean(name string, dims []*Dimension, values map[string]float64) (*Cluster, error) {
	mean, err := NewDataPoint("", dims, values)
	if err != nil {
		return nil, fmt.Errorf("cluster %q mean: %w", name, err)
	}
	return NewCluster(name, dims, mean)
}

// Name returns the cluster identifier.
func (c *Cluster) Name() string { return c.name }

// Dimensions returns the dimension handles of the cluster.
func (c *Cluster) Dimensions() []*Dimension { return slices.Clone(c.dims) }

// Mean returns the current centroid, or nil if none was set.
func (c *Cluster) Mean() *DataPoint { return c.mean }

// Points returns the points assigned during the last iteration.
func (c *Cluster) Points() []*DataPoint { return slices.Clone(c.data) }

// Len returns the number of assigned points.
func (c *Cluster) Len() int { return len(c.data) }

// Converged reports whether the last UpdateMean left the mean unchanged.
func (c *Cluster) Converged() bool { return c.converged }

func (c *Cluster) meanName() string {
	return "Cluster " + c.name + " mean"
}

// SetMean replaces the mean and clears assigned points. The mean must have a
// value for every cluster dimension; on failure the cluster is unchanged.
func (c *Cluster) SetMean(mean *DataPoint) error {
	if mean == nil {
		return ErrNoMean
	}
	if err := mean.covers(c.dims); err != nil {
		return err
	}

	c.data = nil
	c.mean = mean.WithName(c.meanName())
	return nil
}

// AssignPoint adds p to the cluster. p must have a value for every cluster
// dimension; on failure the cluster is unchanged.
func (c *Cluster) AssignPoint(p *DataPoint) error {
	if err := p.covers(c.dims); err != nil {
		return err
	}
	c.data = append(c.data, p)
	return nil
}

// Value returns the mean's value for dim.
func (c *Cluster) Value(dim *Dimension) (float64, error) {
	if c.mean == nil {
		return 0, fmt.Errorf("cluster %q: %w", c.name, ErrNoMean)
	}
	return c.mean.Value(dim)
}

// ClearData drops all assigned points.
func (c *Cluster) ClearData() {
	c.data = c.data[:0]
}

// UpdateMean recomputes the mean from the assigned points.
//
// A cluster without points keeps its mean and counts as converged. Otherwise
// the cluster converges only when every per-dimension average equals the
// current mean value exactly.
func (c *Cluster) UpdateMean() error {
	if len(c.data) == 0 {
		c.converged = true
		return nil
	}

	n := float64(len(c.data))
	next := make(map[string]float64, len(c.dims))
	converged := c.mean != nil

	for _, d := range c.dims {
		var sum float64
		for _, p := range c.data {
			v, err := p.Value(d)
			if err != nil {
				return err
			}
			sum += v
		}
		avg := sum / n

		if converged {
			cur, err := c.mean.Value(d)
			if err != nil {
				return err
			}
			converged = avg == cur
		}
		next[d.name] = avg
	}

	if !converged {
		mean, err := NewDataPoint(c.meanName(), c.dims, next)
		if err != nil {
			return err
		}
		c.mean = mean
	}
	c.converged = converged
	return nil
}
