package kmeans

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimension(t *testing.T) {
	d := NewDimension("x")
	assert.Equal(t, "x", d.Name())
	assert.Equal(t, "", d.Description())

	d.SetDescription("horizontal")
	assert.Equal(t, "horizontal", d.Description())

	d = NewDimension("y", "vertical")
	assert.Equal(t, "vertical", d.Description())

	dims := NewDimensions("a", "b", "c")
	require.Len(t, dims, 3)
	assert.Equal(t, "b", dims[1].Name())
}

func TestNewDataPoint(t *testing.T) {
	dims := NewDimensions("x", "y")

	p, err := NewDataPoint("p", dims, map[string]float64{"x": 1, "y": 2, "z": 3})
	require.NoError(t, err)
	assert.Equal(t, "p", p.Name())
	assert.Equal(t, dims, p.Dimensions())
	assert.Equal(t, map[string]float64{"x": 1, "y": 2, "z": 3}, p.Values())

	v, err := p.Value(dims[1])
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestNewDataPoint_Invalid(t *testing.T) {
	dims := NewDimensions("x", "y")

	tests := []struct {
		name   string
		values map[string]float64
		reason error
	}{
		{"missing", map[string]float64{"x": 1}, ErrMissingDimension},
		{"nil values", nil, ErrMissingDimension},
		{"NaN", map[string]float64{"x": 1, "y": math.NaN()}, ErrNonFiniteValue},
		{"Inf", map[string]float64{"x": math.Inf(-1), "y": 1}, ErrNonFiniteValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewDataPoint("bad", dims, tt.values)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, tt.reason)

			var de *DimensionError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, "bad", de.Point)
		})
	}
}

func TestDataPoint_ValueIsIdentityGated(t *testing.T) {
	dims := NewDimensions("x")
	p, err := NewDataPoint("p", dims, map[string]float64{"x": 1, "extra": 2})
	require.NoError(t, err)

	// Same name, different handle.
	_, err = p.Value(NewDimension("x"))
	assert.ErrorIs(t, err, ErrMissingDimension)

	// Value present in the map but never declared.
	_, err = p.Value(NewDimension("extra"))
	assert.ErrorIs(t, err, ErrMissingDimension)

	_, err = p.Value(nil)
	assert.ErrorIs(t, err, ErrMissingDimension)
}

func TestPointFromValues(t *testing.T) {
	p, err := PointFromValues("p", map[string]float64{"b": 2, "a": 1})
	require.NoError(t, err)

	dims := p.Dimensions()
	require.Len(t, dims, 2)
	assert.Equal(t, "a", dims[0].Name())
	assert.Equal(t, "b", dims[1].Name())

	v, err := p.Value(dims[1])
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	// Fresh handles do not match another list's dimensions.
	_, err = p.Value(NewDimensions("a")[0])
	assert.ErrorIs(t, err, ErrMissingDimension)
}

func TestDataPoint_IsImmutable(t *testing.T) {
	dims := NewDimensions("x")
	values := map[string]float64{"x": 1}
	p, err := NewDataPoint("p", dims, values)
	require.NoError(t, err)

	values["x"] = 99
	p.Values()["x"] = 42
	dims[0] = NewDimension("other")

	v, err := p.Value(p.Dimensions()[0])
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	assert.Equal(t, "x", p.Dimensions()[0].Name())

	renamed := p.WithName("q")
	assert.Equal(t, "q", renamed.Name())
	assert.Equal(t, "p", p.Name())
}
