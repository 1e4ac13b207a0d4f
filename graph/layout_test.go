package graph_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/liamcoop/logicgraph/graph"
	"github.com/liamcoop/logicgraph/relation"
)

const eps = 1e-9

// LayoutSuite checks each fallback against its formula.
type LayoutSuite struct {
	suite.Suite
	engine *graph.Engine
}

func (s *LayoutSuite) SetupTest() {
	s.engine = graph.NewEngine(graph.WithRand(rand.New(rand.NewPCG(1, 2))))
}

func positions(g *graph.Graph) map[string]graph.Position {
	out := map[string]graph.Position{}
	for _, n := range g.Nodes() {
		out[n.ID] = graph.Position{X: n.X, Y: n.Y}
	}
	return out
}

func (s *LayoutSuite) requireAt(pos map[string]graph.Position, id string, x, y float64) {
	s.T().Helper()
	p, ok := pos[id]
	require.True(s.T(), ok, "node %s missing", id)
	require.InDelta(s.T(), x, p.X, eps, "x of %s", id)
	require.InDelta(s.T(), y, p.Y, eps, "y of %s", id)
}

// TestCircularCycle: a 4-cycle lands at 0°, 90°, 180°, 270° on radius 100.
func (s *LayoutSuite) TestCircularCycle() {
	g := graph.Build(relation.Parse("A→B→C→D→A"), graph.DefaultNodeSize)
	pos := positions(s.engine.Layout(g, graph.KindCircular))

	s.requireAt(pos, "A", 100, 0)
	s.requireAt(pos, "B", 0, 100)
	s.requireAt(pos, "C", -100, 0)
	s.requireAt(pos, "D", 0, -100)
}

// TestTreeLayers: rows are 100 apart and each layer spans [-100, 100].
func (s *LayoutSuite) TestTreeLayers() {
	g := graph.Build(relation.Parse("A→{B,C}, B→D"), graph.DefaultNodeSize)
	pos := positions(s.engine.Layout(g, graph.KindTree))

	s.requireAt(pos, "A", 0, 0)
	s.requireAt(pos, "B", -100, 100)
	s.requireAt(pos, "C", 100, 100)
	s.requireAt(pos, "D", 0, 200)
}

// TestTreeCycleStartsAtFirstNode: with no roots the first node is layer 0.
func (s *LayoutSuite) TestTreeCycleStartsAtFirstNode() {
	g := graph.Build(relation.Parse("A→B→C→A"), graph.DefaultNodeSize)
	pos := positions(s.engine.Layout(g, graph.KindTree))

	s.requireAt(pos, "A", 0, 0)
	s.requireAt(pos, "B", 0, 100)
	s.requireAt(pos, "C", 0, 200)
}

// TestTreeUnreachedComponent: a rootless component is searched from its first node.
func (s *LayoutSuite) TestTreeUnreachedComponent() {
	g := graph.Build(relation.Parse("A→B, C↔D"), graph.DefaultNodeSize)
	pos := positions(s.engine.Layout(g, graph.KindTree))

	s.requireAt(pos, "A", -100, 0)
	s.requireAt(pos, "C", 100, 0)
	s.requireAt(pos, "B", -100, 100)
	s.requireAt(pos, "D", 100, 100)
}

// TestGrid: ceil(sqrt(N)) columns, pitch 50, centred on the origin.
func (s *LayoutSuite) TestGrid() {
	g := graph.Build(relation.Parse("A→B→C→D→E"), graph.DefaultNodeSize)
	pos := positions(s.engine.Layout(g, graph.KindGrid))

	s.requireAt(pos, "A", -75, -50)
	s.requireAt(pos, "B", -25, -50)
	s.requireAt(pos, "C", 25, -50)
	s.requireAt(pos, "D", -75, 0)
	s.requireAt(pos, "E", -25, 0)
}

// TestForceFallbackRange: random placement stays inside [0,100)².
func (s *LayoutSuite) TestForceFallbackRange() {
	for _, kind := range []graph.Kind{graph.KindForce, "spiral"} {
		g := graph.Build(relation.Parse("A→B→C→D→E→F"), graph.DefaultNodeSize)
		for id, p := range positions(s.engine.Layout(g, kind)) {
			require.GreaterOrEqual(s.T(), p.X, 0.0, "x of %s", id)
			require.Less(s.T(), p.X, 100.0, "x of %s", id)
			require.GreaterOrEqual(s.T(), p.Y, 0.0, "y of %s", id)
			require.Less(s.T(), p.Y, 100.0, "y of %s", id)
		}
	}
}

// TestPrimitiveScaled: a registered primitive wins and is scaled by 100.
func (s *LayoutSuite) TestPrimitiveScaled() {
	prim := graph.PrimitiveFunc(func(g *graph.Graph) (map[string]graph.Position, error) {
		return map[string]graph.Position{"A": {X: 0.5, Y: 0.25}, "B": {X: -1, Y: 1}}, nil
	})
	engine := graph.NewEngine(graph.WithPrimitive(graph.KindCircular, prim))

	pos := positions(engine.Layout(graph.Build(relation.Parse("A→B"), 1), graph.KindCircular))
	s.requireAt(pos, "A", 50, 25)
	s.requireAt(pos, "B", -100, 100)
}

// TestPrimitiveFailureFallsBack: an erroring or incomplete primitive is ignored.
func (s *LayoutSuite) TestPrimitiveFailureFallsBack() {
	failing := graph.PrimitiveFunc(func(g *graph.Graph) (map[string]graph.Position, error) {
		return nil, errors.New("unavailable")
	})
	partial := graph.PrimitiveFunc(func(g *graph.Graph) (map[string]graph.Position, error) {
		return map[string]graph.Position{"A": {X: 9, Y: 9}}, nil
	})

	for _, prim := range []graph.Primitive{failing, partial} {
		engine := graph.NewEngine(graph.WithPrimitive(graph.KindTree, prim))
		pos := positions(engine.Layout(graph.Build(relation.Parse("A→B"), 1), graph.KindTree))
		s.requireAt(pos, "A", 0, 0)
		s.requireAt(pos, "B", 0, 100)
	}
}

// TestUnknownKindIgnoresPrimitives: unknown kinds never reach a registered primitive.
func (s *LayoutSuite) TestUnknownKindIgnoresPrimitives() {
	called := false
	prim := graph.PrimitiveFunc(func(g *graph.Graph) (map[string]graph.Position, error) {
		called = true
		return nil, nil
	})
	engine := graph.NewEngine(graph.WithPrimitive("spiral", prim))

	engine.Layout(graph.Build(relation.Parse("A→B"), 1), "spiral")
	require.False(s.T(), called)
}

func (s *LayoutSuite) TestEmptyGraph() {
	g := s.engine.Layout(graph.New(), graph.KindCircular)
	require.Equal(s.T(), 0, g.Order())
}

func TestLayoutSuite(t *testing.T) {
	suite.Run(t, new(LayoutSuite))
}

func TestParseKind(t *testing.T) {
	require.Equal(t, graph.KindForce, graph.ParseKind(""))
	require.Equal(t, graph.KindGrid, graph.ParseKind("grid"))
}
