// Package graph builds positioned directed graphs from relation edges.
package graph

import (
	"encoding/json"

	"github.com/liamcoop/logicgraph/relation"
)

// Palette cycles through node colours in first-seen order
var Palette = []string{"#4285F4", "#EA4335", "#FBBC05", "#34A853", "#8958E8", "#00ACC1"}

const (
	EdgeColor = "#999"
	EdgeType  = "arrow"

	DefaultNodeSize = 10
)

type Node struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Size  float64 `json:"size"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
}

type Edge struct {
	ID    string `json:"id"`
	From  string `json:"source"`
	To    string `json:"target"`
	Label string `json:"label"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

type edgeKey struct {
	from, to string
}

// Graph is a simple directed graph: at most one edge per ordered pair.
// Nodes and edges keep insertion order.
type Graph struct {
	nodes []Node
	index map[string]int
	edges []Edge
	seen  map[edgeKey]bool
	in    map[string]int
	out   map[string][]string
}

func New() *Graph {
	return &Graph{
		index: make(map[string]int),
		seen:  make(map[edgeKey]bool),
		in:    make(map[string]int),
		out:   make(map[string][]string),
	}
}

// AddNode adds id unless present and reports whether it was added
func (g *Graph) AddNode(id string, size float64, color string) bool {
	if _, ok := g.index[id]; ok {
		return false
	}
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, Node{ID: id, Label: id, Size: size, Color: color})
	return true
}

// AddEdge adds a directed edge between existing nodes. It reports false when
// an endpoint is missing or the edge already exists.
func (g *Graph) AddEdge(from, to, label string) bool {
	if !g.HasNode(from) || !g.HasNode(to) || g.HasEdge(from, to) {
		return false
	}
	g.seen[edgeKey{from, to}] = true
	g.in[to]++
	g.out[from] = append(g.out[from], to)
	g.edges = append(g.edges, Edge{
		ID:    from + "-" + to,
		From:  from,
		To:    to,
		Label: label,
		Color: EdgeColor,
		Type:  EdgeType,
	})
	return true
}

func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

func (g *Graph) HasEdge(from, to string) bool {
	return g.seen[edgeKey{from, to}]
}

// Node returns a copy of the node with id
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Nodes returns a copy of the nodes in insertion order
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns a copy of the edges in insertion order
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Order is the number of nodes
func (g *Graph) Order() int {
	return len(g.nodes)
}

func (g *Graph) InDegree(id string) int {
	return g.in[id]
}

func (g *Graph) OutNeighbors(id string) []string {
	return g.out[id]
}

// Degree counts incoming plus outgoing edges
func (g *Graph) Degree(id string) int {
	return g.in[id] + len(g.out[id])
}

func (g *Graph) setPosition(i int, x, y float64) {
	g.nodes[i].X, g.nodes[i].Y = x, y
}

func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Nodes []Node `json:"nodes"`
		Edges []Edge `json:"edges"`
	}{Nodes: g.Nodes(), Edges: g.Edges()})
}

// Build creates a graph from parsed relation edges. Nodes take palette
// colours in first-seen order. A bidirectional edge also adds its reverse,
// and duplicate directed edges are ignored.
func Build(edges []relation.Edge, nodeSize float64) *Graph {
	g := New()

	for _, e := range edges {
		for _, id := range []string{e.From, e.To} {
			g.AddNode(id, nodeSize, Palette[g.Order()%len(Palette)])
		}
	}

	for _, e := range edges {
		label := relation.Arrow
		if e.Bidirectional {
			label = relation.BidirectArrow
		}
		g.AddEdge(e.From, e.To, label)
		if e.Bidirectional {
			g.AddEdge(e.To, e.From, relation.BidirectArrow)
		}
	}

	return g
}
