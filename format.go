package kmeans

import (
	"strconv"
	"strings"
)

func (d *Dimension) String() string {
	var sb strings.Builder
	sb.WriteString("Dimension ")
	sb.WriteString(d.name)
	if d.description != "" {
		sb.WriteString("\n  description: ")
		sb.WriteString(d.description)
	}
	sb.WriteByte('\n')
	return sb.String()
}

func (p *DataPoint) String() string {
	var sb strings.Builder
	sb.WriteString("DataPoint ")
	sb.WriteString(p.name)
	sb.WriteString("\n  values: ")
	writeValues(&sb, p)
	sb.WriteByte('\n')
	return sb.String()
}

func (c *Cluster) String() string {
	var sb strings.Builder
	sb.WriteString("Cluster ")
	sb.WriteString(c.name)
	sb.WriteString("\n  # of data points: ")
	sb.WriteString(strconv.Itoa(len(c.data)))
	if c.mean != nil {
		sb.WriteString("\n  mean: ")
		writeValues(&sb, c.mean)
	}
	sb.WriteByte('\n')
	return sb.String()
}

func (km *KMeans) String() string {
	var sb strings.Builder
	sb.WriteString("KMeans ")
	sb.WriteString(km.state.String())
	sb.WriteString("\n  # of clusters: ")
	sb.WriteString(strconv.Itoa(len(km.clusters)))
	sb.WriteString("\n  dimensions: ")
	for i, d := range km.dims {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(d.name)
	}
	sb.WriteString("\n  # of data points: ")
	sb.WriteString(strconv.Itoa(len(km.data)))
	sb.WriteByte('\n')
	return sb.String()
}

// writeValues writes "name = value" pairs in dimension order.
func writeValues(sb *strings.Builder, p *DataPoint) {
	for i, d := range p.dims {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(d.name)
		sb.WriteString(" = ")
		sb.WriteString(strconv.FormatFloat(p.values[d.name], 'g', -1, 64))
	}
}
