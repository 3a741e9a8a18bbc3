// Package dataset loads clustering runs from YAML or JSON files.
//
// A run file names the dimensions, either a cluster count or preset clusters,
// and the points to partition:
//
//	dimensions: [x, y]
//	k: 2
//	init_method: random
//	points:
//	  - name: a
//	    values: {x: 0, y: 0}
//	  - values: {x: 10, y: "10.5"}
//
// Files may be compressed with gzip (.gz), zstd (.zst) or lz4 (.lz4).
// Point values accept numbers and numeric strings. Any other value leaves the
// key unset, so the point is dropped by the engine as malformed.
package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/codec"
)

var (
	// ErrUnknownCompression is returned for an unsupported Compression value.
	ErrUnknownCompression = errors.New("unknown compression")

	// ErrNoClusterSource is returned when a file has neither k nor clusters.
	ErrNoClusterSource = errors.New("either k or clusters must be set")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// File is a clustering run description.
type File struct {
	Dimensions    []string          `json:"dimensions" yaml:"dimensions" validate:"required,min=1,unique,dive,required"`
	Descriptions  map[string]string `json:"descriptions,omitempty" yaml:"descriptions,omitempty"`
	K             int               `json:"k,omitempty" yaml:"k,omitempty" validate:"min=0"`
	InitMethod    string            `json:"init_method,omitempty" yaml:"init_method,omitempty" validate:"omitempty,oneof=random partition"`
	Seed          *int64            `json:"seed,omitempty" yaml:"seed,omitempty"`
	MaxIterations int               `json:"max_iterations,omitempty" yaml:"max_iterations,omitempty" validate:"min=0"`
	Clusters      []Cluster         `json:"clusters,omitempty" yaml:"clusters,omitempty" validate:"dive"`
	Points        []Point           `json:"points" yaml:"points"`
}

// Cluster is a preset cluster with its initial mean.
type Cluster struct {
	Name string         `json:"name" yaml:"name" validate:"required"`
	Mean map[string]any `json:"mean" yaml:"mean" validate:"required"`
}

// Point is one raw data point.
type Point struct {
	Name   string         `json:"name,omitempty" yaml:"name,omitempty"`
	Values map[string]any `json:"values" yaml:"values"`
}

// Open reads, decompresses, decodes and validates the run file at path.
// Compression and format follow the file extension.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rc, err := NewReader(f, CompressionForPath(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer rc.Close()

	file, err := Decode(rc, codec.ForPath(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return file, nil
}

// Decode reads a run file from r using c and validates it.
func Decode(r io.Reader, c codec.Codec) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var f File
	if err := c.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.Name(), err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Save encodes f and writes it to path, compressing by extension.
func Save(path string, f *File) error {
	data, err := codec.ForPath(path).Marshal(f)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	w, err := NewWriter(&buf, CompressionForPath(path))
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Validate checks the struct constraints and that a cluster source is set.
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("invalid run file: %w", err)
	}
	if f.K == 0 && len(f.Clusters) == 0 {
		return fmt.Errorf("invalid run file: %w", ErrNoClusterSource)
	}
	return nil
}

// DimensionHandles returns one handle per dimension name, with descriptions.
func (f *File) DimensionHandles() []*kmeans.Dimension {
	dims := make([]*kmeans.Dimension, len(f.Dimensions))
	for i, name := range f.Dimensions {
		dims[i] = kmeans.NewDimension(name, f.Descriptions[name])
	}
	return dims
}

// Records converts the points into engine records. Values that are not
// numeric are left out.
func (f *File) Records() []kmeans.Record {
	records := make([]kmeans.Record, len(f.Points))
	for i, p := range f.Points {
		records[i] = kmeans.Record{
			Name:   p.Name,
			Values: numericValues(p.Values),
		}
	}
	return records
}

// Build creates an engine for the run. Settings from the file come first, so
// opts override them.
func (f *File) Build(opts ...kmeans.Option) (*kmeans.KMeans, error) {
	dims := f.DimensionHandles()

	var base []kmeans.Option
	if f.InitMethod != "" {
		base = append(base, kmeans.WithInitMethod(kmeans.InitMethod(f.InitMethod)))
	}
	if f.Seed != nil {
		base = append(base, kmeans.WithSeed(*f.Seed))
	}
	if f.MaxIterations > 0 {
		base = append(base, kmeans.WithMaxIterations(f.MaxIterations))
	}
	opts = append(base, opts...)

	if len(f.Clusters) == 0 {
		return kmeans.New(dims, f.K, f.Records(), opts...)
	}

	clusters := make([]*kmeans.Cluster, len(f.Clusters))
	for i, c := range f.Clusters {
		cl, err := kmeans.NewClusterWithMean(c.Name, dims, numericValues(c.Mean))
		if err != nil {
			return nil, err
		}
		clusters[i] = cl
	}
	return kmeans.NewWithClusters(dims, clusters, f.Records(), opts...)
}

// numericValues keeps the entries of raw that hold a number or a numeric
// string. A nil map stays nil.
func numericValues(raw map[string]any) map[string]float64 {
	if raw == nil {
		return nil
	}
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		if f, ok := toFloat(v); ok {
			out[k] = f
		}
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
