package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string             `json:"name" yaml:"name"`
	Values map[string]float64 `json:"values" yaml:"values"`
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json", "yaml"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"run.yaml", "yaml"},
		{"run.YML", "yaml"},
		{"data/run.yaml.zst", "yaml"},
		{"run.json", Default.Name()},
		{"run.json.gz", Default.Name()},
		{"run.lz4", Default.Name()},
		{"run", Default.Name()},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ForPath(tt.path).Name())
		})
	}
}

func TestCodecsDecodeSameDocument(t *testing.T) {
	in := sample{Name: "p", Values: map[string]float64{"x": 1.5, "y": -2}}

	for _, c := range []Codec{JSON{}, GoJSON{}, YAML{}} {
		t.Run(c.Name(), func(t *testing.T) {
			b := MustMarshal(c, in)

			var out sample
			require.NoError(t, c.Unmarshal(b, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestJSONOutputIsIndented(t *testing.T) {
	b := MustMarshal(JSON{}, map[string]int{"a": 1})
	assert.Equal(t, "{\n  \"a\": 1\n}", string(b))
}

func TestMustMarshalPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustMarshal(JSON{}, make(chan int))
	})
}
