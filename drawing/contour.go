package drawing

import (
	"fmt"
	"math"

	"kerf-view/graph"
)

// DefaultEpsilon is the distance under which two endpoints are one joint.
const DefaultEpsilon = 1e-6

// Contour is a chain of entities joined end to end.
type Contour struct {
	// Entities indexes into Drawing.Entities.
	Entities []int
	Closed   bool
}

// Topology is the joint structure of a drawing.
type Topology struct {
	Contours []Contour
	// Dangling are joints used by a single entity end: gaps in an otherwise
	// closed outline, or the ends of open strokes.
	Dangling []Point
}

// Analyze chains line and arc entities whose endpoints coincide within
// epsilon. Circles are closed contours on their own.
func Analyze(d *Drawing, epsilon float64) Topology {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}

	var (
		nodes   []graph.Node
		edges   []graph.Edge
		edgeIdx []int
		topo    Topology
	)
	joint := func(p Point) string {
		for _, n := range nodes {
			if math.Hypot(n.X-p.X, n.Y-p.Y) < epsilon {
				return n.ID
			}
		}
		id := fmt.Sprintf("j%d", len(nodes))
		nodes = append(nodes, graph.Node{ID: id, X: p.X, Y: p.Y})
		return id
	}

	for i, e := range d.Entities {
		start, end, ok := e.Endpoints()
		if !ok {
			if e.Kind == KindCircle {
				topo.Contours = append(topo.Contours, Contour{Entities: []int{i}, Closed: true})
			}
			continue
		}
		edges = append(edges, graph.Edge{FromID: joint(start), ToID: joint(end)})
		edgeIdx = append(edgeIdx, i)
	}

	for _, comp := range graph.Components(edges) {
		c := Contour{Closed: graph.IsCycle(edges, comp)}
		for _, k := range comp {
			c.Entities = append(c.Entities, edgeIdx[k])
		}
		topo.Contours = append(topo.Contours, c)
	}

	for _, n := range graph.Dangling(nodes, edges) {
		topo.Dangling = append(topo.Dangling, Point{X: n.X, Y: n.Y})
	}
	return topo
}

// ClosedSet returns, per entity, whether it belongs to a closed contour.
func (t Topology) ClosedSet(n int) []bool {
	out := make([]bool, n)
	for _, c := range t.Contours {
		if !c.Closed {
			continue
		}
		for _, i := range c.Entities {
			if i < n {
				out[i] = true
			}
		}
	}
	return out
}
