package kmeans

// Dimension identifies one numeric axis.
//
// Dimensions are compared by handle, not by name: a point or cluster only
// answers for the *Dimension values it was built with. Share the same handles
// between the engine, its clusters and any hand-built means.
type Dimension struct {
	name        string
	description string
}

// NewDimension creates a new axis handle. The optional description is the
// first element of description, if any.
func NewDimension(name string, description ...string) *Dimension {
	d := &Dimension{name: name}
	if len(description) > 0 {
		d.description = description[0]
	}
	return d
}

// NewDimensions creates one fresh handle per name, in order.
func NewDimensions(names ...string) []*Dimension {
	dims := make([]*Dimension, len(names))
	for i, n := range names {
		dims[i] = NewDimension(n)
	}
	return dims
}

// Name returns the axis name.
func (d *Dimension) Name() string { return d.name }

// Description returns the free-form axis description.
func (d *Dimension) Description() string { return d.description }

// SetDescription replaces the description. The name is immutable.
func (d *Dimension) SetDescription(description string) { d.description = description }

// containsDimension reports whether dims holds the handle d.
func containsDimension(dims []*Dimension, d *Dimension) bool {
	for _, x := range dims {
		if x == d {
			return true
		}
	}
	return false
}
