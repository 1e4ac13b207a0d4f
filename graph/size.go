package graph

import "math"

// Size sets every node to base, or to max(base, base*(1+degree/2)) when
// byConnections is set. It returns g.
func Size(g *Graph, base float64, byConnections bool) *Graph {
	for i, n := range g.nodes {
		size := base
		if byConnections {
			size = math.Max(base, base*(1+float64(g.Degree(n.ID))/2))
		}
		g.nodes[i].Size = size
	}
	return g
}
