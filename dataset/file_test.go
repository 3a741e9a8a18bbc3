package dataset

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/codec"
)

const runYAML = `
dimensions: [x, y]
descriptions:
  x: horizontal
k: 2
seed: 7
points:
  - name: a
    values: {x: 0, y: 0}
  - name: b
    values: {x: 0, y: "1"}
  - name: c
    values: {x: 10, y: 10}
  - name: d
    values: {x: 10, y: 11}
  - name: broken
    values: {x: 3, y: "n/a"}
`

func TestDecodeYAML(t *testing.T) {
	f, err := Decode(strings.NewReader(runYAML), codec.YAML{})
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y"}, f.Dimensions)
	assert.Equal(t, 2, f.K)
	require.NotNil(t, f.Seed)
	assert.Equal(t, int64(7), *f.Seed)
	assert.Len(t, f.Points, 5)

	records := f.Records()
	assert.Equal(t, map[string]float64{"x": 0, "y": 1}, records[1].Values)
	// "n/a" is not numeric, so y is missing.
	assert.Equal(t, map[string]float64{"x": 3}, records[4].Values)

	dims := f.DimensionHandles()
	assert.Equal(t, "horizontal", dims[0].Description())
	assert.Equal(t, "", dims[1].Description())
}

func TestBuildAndSolve(t *testing.T) {
	f, err := Decode(strings.NewReader(runYAML), codec.YAML{})
	require.NoError(t, err)

	km, err := f.Build()
	require.NoError(t, err)
	assert.Len(t, km.Data(), 4)
	require.Len(t, km.Rejected(), 1)
	assert.Equal(t, "broken", km.Rejected()[0].Name)

	require.NoError(t, km.Initialize())
	require.NoError(t, km.Solve(context.Background()))

	sizes := []int{}
	for _, c := range km.Clusters() {
		sizes = append(sizes, c.Len())
	}
	assert.ElementsMatch(t, []int{2, 2}, sizes)
}

func TestBuildPresetClusters(t *testing.T) {
	doc := `{
		"dimensions": ["a"],
		"clusters": [
			{"name": "low", "mean": {"a": 0}},
			{"name": "high", "mean": {"a": "100"}}
		],
		"points": [{"name": "p", "values": {"a": 10}}]
	}`

	f, err := Decode(strings.NewReader(doc), codec.GoJSON{})
	require.NoError(t, err)

	km, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, kmeans.InitPreset, km.InitMethod())

	require.NoError(t, km.Initialize())
	require.NoError(t, km.Solve(context.Background()))

	clusters := km.Clusters()
	low, err := clusters[0].Value(km.Dimensions()[0])
	require.NoError(t, err)
	high, err := clusters[1].Value(km.Dimensions()[0])
	require.NoError(t, err)
	assert.Equal(t, 10.0, low)
	assert.Equal(t, 100.0, high)
}

func TestBuildOptionsOverrideFile(t *testing.T) {
	f := &File{
		Dimensions: []string{"x"},
		K:          1,
		InitMethod: "random",
		Points:     []Point{{Values: map[string]any{"x": 1}}},
	}

	km, err := f.Build(kmeans.WithInitMethod(kmeans.InitPartition))
	require.NoError(t, err)
	assert.Equal(t, kmeans.InitPartition, km.InitMethod())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		file File
		ok   bool
	}{
		{"valid k", File{Dimensions: []string{"x"}, K: 1}, true},
		{"no dimensions", File{K: 1}, false},
		{"duplicate dimensions", File{Dimensions: []string{"x", "x"}, K: 1}, false},
		{"empty dimension name", File{Dimensions: []string{""}, K: 1}, false},
		{"no cluster source", File{Dimensions: []string{"x"}}, false},
		{"negative k", File{Dimensions: []string{"x"}, K: -1}, false},
		{"bad init method", File{Dimensions: []string{"x"}, K: 1, InitMethod: "kmeans++"}, false},
		{"cluster without name", File{
			Dimensions: []string{"x"},
			Clusters:   []Cluster{{Mean: map[string]any{"x": 1}}},
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.file.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateNoClusterSource(t *testing.T) {
	f := File{Dimensions: []string{"x"}}
	assert.ErrorIs(t, f.Validate(), ErrNoClusterSource)
}

func TestSaveOpenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	seed := int64(3)
	in := &File{
		Dimensions: []string{"x", "y"},
		K:          2,
		Seed:       &seed,
		Points: []Point{
			{Name: "a", Values: map[string]any{"x": 0.0, "y": 0.0}},
			{Name: "b", Values: map[string]any{"x": 10.0, "y": 10.0}},
		},
	}

	for _, name := range []string{"run.json", "run.yaml", "run.json.gz", "run.yaml.zst", "run.json.lz4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, in))

			out, err := Open(path)
			require.NoError(t, err)
			assert.Equal(t, in.Dimensions, out.Dimensions)
			assert.Equal(t, in.K, out.K)
			assert.Equal(t, *in.Seed, *out.Seed)
			assert.Equal(t, in.Records(), out.Records())
		})
	}
}

func TestOpenCompressedIsNotPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json.zst")
	require.NoError(t, Save(path, &File{Dimensions: []string{"x"}, K: 1}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(raw, []byte("{")))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompressionStreams(t *testing.T) {
	payload := []byte(strings.Repeat("kmeans ", 100))

	for _, c := range []Compression{CompressionNone, CompressionGzip, CompressionZSTD, CompressionLZ4} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, c)
			require.NoError(t, err)
			_, err = w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			r, err := NewReader(&buf, c)
			require.NoError(t, err)
			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}

	_, err := NewReader(&bytes.Buffer{}, Compression(99))
	assert.ErrorIs(t, err, ErrUnknownCompression)
	_, err = NewWriter(&bytes.Buffer{}, Compression(99))
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestCompressionForPath(t *testing.T) {
	assert.Equal(t, CompressionGzip, CompressionForPath("a.json.gz"))
	assert.Equal(t, CompressionZSTD, CompressionForPath("a.yaml.ZST"))
	assert.Equal(t, CompressionLZ4, CompressionForPath("a.lz4"))
	assert.Equal(t, CompressionNone, CompressionForPath("a.yaml"))
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{1.5, 1.5, true},
		{float32(2), 2, true},
		{3, 3, true},
		{int64(4), 4, true},
		{uint64(5), 5, true},
		{" 6.5 ", 6.5, true},
		{"abc", 0, false},
		{true, 0, false},
		{nil, 0, false},
		{[]any{1}, 0, false},
	}

	for _, tt := range tests {
		got, ok := toFloat(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "%v", tt.in)
		}
	}
}

func TestRecordsKeepNilValues(t *testing.T) {
	f := &File{Points: []Point{{Name: "empty"}}}
	assert.Nil(t, f.Records()[0].Values)
}
