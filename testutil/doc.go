// Package testutil provides data generators for kmeans tests, benchmarks and
// examples.
//
// This package is intended for use in tests and benchmarks only.
//
// # Gaussian Blobs
//
//	rng := testutil.NewRNG(seed)
//	centers := [][]float64{{0, 0}, {10, 10}}
//	points := rng.Blobs(centers, 50, 0.5) // 100 points, 50 per center
//	values := testutil.Values([]string{"x", "y"}, points)
package testutil
