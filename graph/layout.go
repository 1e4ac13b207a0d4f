package graph

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Kind names a layout algorithm
type Kind string

const (
	KindForce    Kind = "force"
	KindCircular Kind = "circular"
	KindTree     Kind = "tree"
	KindGrid     Kind = "grid"
)

const (
	// PrimitiveScale is applied to the unit coordinates a Primitive returns
	PrimitiveScale = 100

	circleRadius = 100
	layerHeight  = 100
	layerHalfW   = 100
	gridPitch    = 50
	randomExtent = 100
)

// Position is a point in layout space
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Primitive is an external layout algorithm. It returns unit-scale
// coordinates keyed by node ID.
type Primitive interface {
	Assign(g *Graph) (map[string]Position, error)
}

// PrimitiveFunc adapts a function to Primitive
type PrimitiveFunc func(g *Graph) (map[string]Position, error)

func (f PrimitiveFunc) Assign(g *Graph) (map[string]Position, error) {
	return f(g)
}

// Strategy overwrites every node position in g
type Strategy interface {
	Place(g *Graph)
}

// Engine dispatches a layout kind to its Primitive when one is registered
// and to the built-in fallback otherwise.
type Engine struct {
	primitives map[Kind]Primitive
	fallbacks  map[Kind]Strategy
	random     Strategy
}

type EngineOption func(*Engine)

// WithPrimitive registers an external algorithm for kind
func WithPrimitive(kind Kind, p Primitive) EngineOption {
	return func(e *Engine) {
		e.primitives[kind] = p
	}
}

// WithRand sets the source for the random fallback. r must not be shared
// across goroutines.
func WithRand(r *rand.Rand) EngineOption {
	return func(e *Engine) {
		e.random = RandomLayout{Float64: r.Float64}
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		primitives: make(map[Kind]Primitive),
		random:     RandomLayout{Float64: rand.Float64},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.fallbacks = map[Kind]Strategy{
		KindForce:    e.random,
		KindCircular: CircularLayout{},
		KindTree:     TreeLayout{},
		KindGrid:     GridLayout{},
	}
	return e
}

var defaultEngine = NewEngine()

// Layout positions g with the default Engine
func Layout(g *Graph, kind Kind) *Graph {
	return defaultEngine.Layout(g, kind)
}

// Layout writes positions for every node of g and returns g. A Primitive
// that fails or leaves a node unplaced is ignored in favour of the fallback.
// Unknown kinds use the random placement of the force fallback.
func (e *Engine) Layout(g *Graph, kind Kind) *Graph {
	if g.Order() == 0 {
		return g
	}

	fallback, ok := e.fallbacks[kind]
	if !ok {
		e.random.Place(g)
		return g
	}

	if p, ok := e.primitives[kind]; ok {
		if err := applyPrimitive(g, p); err == nil {
			return g
		}
	}

	fallback.Place(g)
	return g
}

func applyPrimitive(g *Graph, p Primitive) error {
	positions, err := p.Assign(g)
	if err != nil {
		return fmt.Errorf("layout primitive: %w", err)
	}
	for _, n := range g.nodes {
		if _, ok := positions[n.ID]; !ok {
			return fmt.Errorf("layout primitive: node %q not placed", n.ID)
		}
	}
	for i, n := range g.nodes {
		pos := positions[n.ID]
		g.setPosition(i, pos.X*PrimitiveScale, pos.Y*PrimitiveScale)
	}
	return nil
}

// ParseKind maps a layout name to a Kind; the empty string is force
func ParseKind(name string) Kind {
	if name == "" {
		return KindForce
	}
	return Kind(name)
}

// RandomLayout scatters nodes uniformly over [0,100)². Results are not reproducible
// unless Float64 is seeded by the caller.
type RandomLayout struct {
	Float64 func() float64
}

func (r RandomLayout) Place(g *Graph) {
	for i := range g.nodes {
		g.setPosition(i, r.Float64()*randomExtent, r.Float64()*randomExtent)
	}
}

// CircularLayout puts node i of N at angle 2πi/N on a circle of radius 100
type CircularLayout struct{}

func (CircularLayout) Place(g *Graph) {
	n := float64(len(g.nodes))
	for i := range g.nodes {
		angle := 2 * math.Pi * float64(i) / n
		g.setPosition(i, circleRadius*math.Cos(angle), circleRadius*math.Sin(angle))
	}
}

// TreeLayout layers nodes breadth first from the nodes without incoming
// edges, or from the first node when every node has one. Nodes the search
// cannot reach start a new search from layer 0. Each layer sits 100 below
// the previous one and spreads its nodes evenly over [-100, 100].
type TreeLayout struct{}

func (TreeLayout) Place(g *Graph) {
	layer := make(map[string]int, len(g.nodes))
	var order []string

	bfs := func(roots []string) {
		queue := make([]string, 0, len(roots))
		for _, r := range roots {
			if _, done := layer[r]; done {
				continue
			}
			layer[r] = 0
			order = append(order, r)
			queue = append(queue, r)
		}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for _, next := range g.OutNeighbors(id) {
				if _, done := layer[next]; done {
					continue
				}
				layer[next] = layer[id] + 1
				order = append(order, next)
				queue = append(queue, next)
			}
		}
	}

	var roots []string
	for _, n := range g.nodes {
		if g.InDegree(n.ID) == 0 {
			roots = append(roots, n.ID)
		}
	}
	if len(roots) == 0 {
		roots = []string{g.nodes[0].ID}
	}
	bfs(roots)

	for _, n := range g.nodes {
		if _, done := layer[n.ID]; !done {
			bfs([]string{n.ID})
		}
	}

	count := map[int]int{}
	for _, id := range order {
		count[layer[id]]++
	}

	slot := map[int]int{}
	for _, id := range order {
		l := layer[id]
		x := 0.0
		if c := count[l]; c > 1 {
			x = float64(slot[l])/float64(c-1)*2*layerHalfW - layerHalfW
		}
		slot[l]++
		g.setPosition(g.index[id], x, float64(l*layerHeight))
	}
}

// GridLayout fills ceil(√N) columns row by row with a pitch of 50, centred on the origin
type GridLayout struct{}

func (GridLayout) Place(g *Graph) {
	n := len(g.nodes)
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := math.Ceil(float64(n) / float64(cols))

	for i := range g.nodes {
		row, col := i/cols, i%cols
		x := (float64(col) - float64(cols)/2) * gridPitch
		y := (float64(row) - rows/2) * gridPitch
		g.setPosition(i, x, y)
	}
}
