package graph

// Node is a joint between drawing entities
type Node struct {
	ID string
	X  float64
	Y  float64
}

// Edge is an entity connecting two joints. FromID == ToID for an entity
// that closes on itself.
type Edge struct {
	FromID string
	ToID   string
}

// Components groups edges into connected components using union-find.
// Each component lists edge indexes in ascending order; components are
// ordered by their first edge.
func Components(edges []Edge) [][]int {
	parent := make(map[string]string)
	var find func(string) string
	find = func(id string) string {
		p, ok := parent[id]
		if !ok {
			parent[id] = id
			return id
		}
		if p == id {
			return id
		}
		root := find(p)
		parent[id] = root
		return root
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	for _, e := range edges {
		union(e.FromID, e.ToID)
	}

	byRoot := make(map[string][]int)
	roots := []string{}
	for i, e := range edges {
		r := find(e.FromID)
		if _, ok := byRoot[r]; !ok {
			roots = append(roots, r)
		}
		byRoot[r] = append(byRoot[r], i)
	}

	result := make([][]int, 0, len(roots))
	for _, r := range roots {
		result = append(result, byRoot[r])
	}
	return result
}

// Degrees counts edge ends per node. A self-loop adds two.
func Degrees(edges []Edge) map[string]int {
	deg := make(map[string]int)
	for _, e := range edges {
		deg[e.FromID]++
		deg[e.ToID]++
	}
	return deg
}

// IsCycle reports whether the edges at idx form closed loops: every node they
// touch has exactly two edge ends.
func IsCycle(edges []Edge, idx []int) bool {
	if len(idx) == 0 {
		return false
	}
	sub := make([]Edge, 0, len(idx))
	for _, i := range idx {
		sub = append(sub, edges[i])
	}
	for _, d := range Degrees(sub) {
		if d != 2 {
			return false
		}
	}
	return true
}

// Dangling returns the nodes touched by exactly one edge end, in input order.
func Dangling(nodes []Node, edges []Edge) []Node {
	deg := Degrees(edges)
	out := []Node{}
	for _, n := range nodes {
		if deg[n.ID] == 1 {
			out = append(out, n)
		}
	}
	return out
}
