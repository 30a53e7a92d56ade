package graph

// markLoops flags in-component edges that are redundant shortcuts.
//
// Inside a strongly connected component two objects are mutually derivable,
// which renders as a visual cycle even though one direction is usually the
// "real" production edge and the other an incidental shortcut. For an
// action edge p→i (i is the recipe join) and an output c of i with a lower
// complexity than p, the join's output edge i→c is a shortcut if c can get
// back to p within the component at a cost no greater than the complexity
// gap. A longer return path means the downward edge is informative and
// stays. The known awkward case: Straw is more complex than a Basket made
// from Reed, and the Straw→Basket edge must survive.
//
// Looping edges are only hidden from views; they keep participating in the
// graph and in complexity values.
func (g *Graph) markLoops() {
	type candidate struct {
		parent int // the more complex in-component ancestor
		child  int // the cheaper in-component output
		edge   int // join→child edge to flag
	}
	var candidates []candidate

	for i := range g.nodes {
		for _, eid := range g.in[i] {
			e := g.edges[eid]
			if g.scc[e.From] != g.scc[i] || !isActionEdge(e.Kind) {
				continue
			}
			parent := e.From
			parentWeight := g.nodes[parent].Complexity.weight()
			for _, out := range g.out[i] {
				child := g.edges[out].To
				if g.scc[child] != g.scc[i] {
					continue
				}
				if g.nodes[child].Complexity.weight() < parentWeight {
					candidates = append(candidates, candidate{parent: parent, child: child, edge: out})
				}
			}
		}
	}

	for _, c := range candidates {
		dist := g.componentDistances(c.child)
		diff := g.nodes[c.parent].Complexity.weight() - g.nodes[c.child].Complexity.weight()
		if d := dist[c.parent]; d >= 0 && d <= diff {
			g.edges[c.edge].Looping = true
		}
	}
}

// isActionEdge reports whether the edge represents a real player action.
// Tool, join-output and category edges never start a pruning candidate.
func isActionEdge(k EdgeKind) bool {
	switch k {
	case EdgeBareHands, EdgeInteract, EdgeNatural, EdgeDrop, EdgeConsume:
		return true
	}
	return false
}

// componentDistances computes the shortest edge-cost distance from start to
// every node of start's component, ignoring edges that leave the component.
// Unvisited nodes stay at -1.
func (g *Graph) componentDistances(start int) []int {
	dist := make([]int, len(g.nodes))
	for i := range dist {
		dist[i] = -1
	}
	dist[start] = 0

	work := []int{start}
	for len(work) > 0 {
		current := work[len(work)-1]
		work = work[:len(work)-1]

		for _, eid := range g.out[current] {
			e := g.edges[eid]
			if g.scc[e.To] != g.scc[start] {
				continue
			}
			next := dist[current] + e.Cost()
			if dist[e.To] == -1 || next < dist[e.To] {
				dist[e.To] = next
				work = append(work, e.To)
			}
		}
	}
	return dist
}
