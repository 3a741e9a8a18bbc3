// Package kmeans implements k-means clustering over named numeric dimensions.
//
// A KMeans engine owns a list of dimension handles, a set of clusters and the
// data points to partition. Initialize seeds the cluster means, Solve repeats
// assignment and update rounds until no mean changes.
//
// # Quick Start
//
//	dims := kmeans.NewDimensions("x", "y")
//	records := []kmeans.Record{
//	    {Values: map[string]float64{"x": 0, "y": 0}},
//	    {Values: map[string]float64{"x": 0, "y": 1}},
//	    {Values: map[string]float64{"x": 10, "y": 10}},
//	    {Values: map[string]float64{"x": 10, "y": 11}},
//	}
//
//	km, _ := kmeans.New(dims, 2, records, kmeans.WithSeed(42))
//	if err := km.Initialize(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := km.Solve(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range km.Clusters() {
//	    fmt.Print(c)
//	}
//
// # Initialization Methods
//
//   - InitRandom (default): k distinct data points become the means.
//     Falls back to InitPartition when there are fewer points than clusters.
//   - InitPartition: every point goes to a random cluster, then means are
//     averaged once.
//   - InitPreset: clusters passed to NewWithClusters keep their means.
//
// # Dimension Handles
//
// Dimensions match by handle, not by name. A cluster built with
// NewDimensions("a") does not answer for another NewDimensions("a") list.
// Build the handle list once and pass it to the engine and every cluster.
//
// # Lifecycle
//
// An engine moves from StateUninitialized to StateInitialized on a successful
// Initialize, and to StateConverged when Solve finishes. Solve has no
// iteration cap unless WithMaxIterations is set; cancel ctx to stop it.
package kmeans
