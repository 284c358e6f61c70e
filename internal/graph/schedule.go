package graph

import "sort"

// OrderedNode is one entry of the computed build order
type OrderedNode struct {
	*Node

	// Fallback marks a node placed by the cycle fallback rather than by
	// the indegree pass. Such nodes keep their original discovery position
	// relative to each other but carry no ordering guarantee relative to
	// their cyclic dependencies.
	Fallback bool
}

// Order computes the deterministic build order via a modified Kahn's
// algorithm. The ready sequence is kept sorted ascending by the key
// (containing directory, full path), so independent files from the same
// directory schedule adjacently. Nodes left over when the ready sequence
// drains are part of reference cycles; they are appended in original
// discovery order, so the output always contains every node exactly once
// and the pass terminates even on cyclic input.
func (g *Graph) Order() []OrderedNode {
	indegree := make([]int, len(g.indegree))
	copy(indegree, g.indegree)

	byKey := func(a, b int) bool {
		if g.Nodes[a].Dir != g.Nodes[b].Dir {
			return g.Nodes[a].Dir < g.Nodes[b].Dir
		}
		return g.Nodes[a].Path < g.Nodes[b].Path
	}

	var ready []int
	for i, deg := range indegree {
		if deg == 0 {
			ready = append(ready, i)
		}
	}
	sort.Slice(ready, func(x, y int) bool { return byKey(ready[x], ready[y]) })

	out := make([]OrderedNode, 0, len(g.Nodes))
	placed := make([]bool, len(g.Nodes))

	for len(ready) > 0 {
		u := ready[0]
		ready = ready[1:]
		out = append(out, OrderedNode{Node: g.Nodes[u]})
		placed[u] = true

		deps := append([]int(nil), g.dependents[u]...)
		sort.Slice(deps, func(x, y int) bool { return byKey(deps[x], deps[y]) })
		for _, v := range deps {
			indegree[v]--
			if indegree[v] == 0 {
				ready = append(ready, v)
				sort.Slice(ready, func(x, y int) bool { return byKey(ready[x], ready[y]) })
			}
		}
	}

	// Cycle fallback: remaining nodes in discovery order
	for i, node := range g.Nodes {
		if !placed[i] {
			out = append(out, OrderedNode{Node: node, Fallback: true})
		}
	}

	return out
}
