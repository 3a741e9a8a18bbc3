package kmeans

// Result is a serializable snapshot of an engine.
//
// Encode it with any codec.Codec:
//
//	b, _ := codec.Default.Marshal(km.Result())
type Result struct {
	RunID      string          `json:"run_id"`
	InitMethod InitMethod      `json:"init_method"`
	State      string          `json:"state"`
	Converged  bool            `json:"converged"`
	Iterations int             `json:"iterations"`
	Dimensions []string        `json:"dimensions"`
	Points     int             `json:"points"`
	Rejected   int             `json:"rejected"`
	Clusters   []ClusterResult `json:"clusters"`
}

// ClusterResult describes one cluster inside a Result.
type ClusterResult struct {
	Name      string             `json:"name"`
	Mean      map[string]float64 `json:"mean,omitempty"`
	Converged bool               `json:"converged"`
	// Points holds the names of the assigned points.
	Points []string `json:"points"`
	// Members holds the input-order indices of the assigned points. It is
	// empty for clusters that were never part of an assignment round.
	Members []uint32 `json:"members,omitempty"`
}

// Result returns a snapshot of the engine's current clusters.
func (km *KMeans) Result() *Result {
	r := &Result{
		RunID:      km.runID,
		InitMethod: km.method,
		State:      km.state.String(),
		Converged:  km.converged,
		Iterations: km.iterations,
		Dimensions: make([]string, len(km.dims)),
		Points:     len(km.data),
		Rejected:   len(km.rejected),
		Clusters:   make([]ClusterResult, len(km.clusters)),
	}

	for i, d := range km.dims {
		r.Dimensions[i] = d.name
	}

	for i, c := range km.clusters {
		cr := ClusterResult{
			Name:      c.name,
			Converged: c.converged,
			Points:    make([]string, len(c.data)),
		}
		if c.mean != nil {
			cr.Mean = c.mean.Values()
		}
		for j, p := range c.data {
			cr.Points[j] = p.name
		}
		if i < len(km.members) {
			cr.Members = km.members[i].ToArray()
		}
		r.Clusters[i] = cr
	}

	return r
}

// Biggest returns the cluster with the most points. The earliest cluster wins
// ties. It returns nil if there are no clusters.
func (r *Result) Biggest() *ClusterResult {
	var best *ClusterResult
	for i := range r.Clusters {
		if best == nil || len(r.Clusters[i].Points) > len(best.Points) {
			best = &r.Clusters[i]
		}
	}
	return best
}
