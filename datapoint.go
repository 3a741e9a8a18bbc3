package kmeans

import (
	"maps"
	"math"
	"slices"
)

// DataPoint is a labelled vector of per-dimension values.
//
// A DataPoint never changes after construction; WithName returns a relabelled
// copy that shares the dimension handles.
type DataPoint struct {
	name   string
	dims   []*Dimension
	values map[string]float64
}

// NewDataPoint creates a point over dims. Every dimension must have a finite
// value in values, keyed by dimension name. Keys without a matching handle are
// kept but cannot be queried through Value.
func NewDataPoint(name string, dims []*Dimension, values map[string]float64) (*DataPoint, error) {
	for _, d := range dims {
		if err := checkValue(name, d.name, values); err != nil {
			return nil, err
		}
	}

	return &DataPoint{
		name:   name,
		dims:   slices.Clone(dims),
		values: maps.Clone(values),
	}, nil
}

// PointFromValues creates a point whose dimensions are fresh handles derived
// from the keys of values, ordered by name.
//
// The resulting handles are not shared with anything else, so the point will
// not answer for another list's same-named dimensions.
func PointFromValues(name string, values map[string]float64) (*DataPoint, error) {
	names := slices.Sorted(maps.Keys(values))
	return NewDataPoint(name, NewDimensions(names...), values)
}

func checkValue(point, dim string, values map[string]float64) error {
	v, ok := values[dim]
	if !ok {
		return &DimensionError{Point: point, Dimension: dim, Reason: ErrMissingDimension}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &DimensionError{Point: point, Dimension: dim, Reason: ErrNonFiniteValue}
	}
	return nil
}

// Name returns the point label.
func (p *DataPoint) Name() string { return p.name }

// Dimensions returns the dimension handles the point was built with.
func (p *DataPoint) Dimensions() []*Dimension { return slices.Clone(p.dims) }

// Values returns a copy of the value map.
func (p *DataPoint) Values() map[string]float64 { return maps.Clone(p.values) }

// Value returns the value for dim. dim must be one of the handles the point
// was built with, otherwise ErrMissingDimension is returned even if a value
// with the same name exists.
func (p *DataPoint) Value(dim *Dimension) (float64, error) {
	if dim == nil || !containsDimension(p.dims, dim) {
		name := ""
		if dim != nil {
			name = dim.name
		}
		return 0, &DimensionError{Point: p.name, Dimension: name, Reason: ErrMissingDimension}
	}
	return p.values[dim.name], nil
}

// WithName returns a copy of p labelled name.
func (p *DataPoint) WithName(name string) *DataPoint {
	return &DataPoint{
		name:   name,
		dims:   p.dims,
		values: p.values,
	}
}

// covers returns the first error hit looking up each of dims on p.
func (p *DataPoint) covers(dims []*Dimension) error {
	for _, d := range dims {
		if _, err := p.Value(d); err != nil {
			return err
		}
	}
	return nil
}
