package graph

// tarjan partitions the nodes into strongly connected components and
// returns the component id of every node. One pass, O(V+E). Component ids
// are assigned in reverse topological order: a component only points at
// components with smaller ids.
//
// The traversal keeps an explicit frame stack instead of recursing, so
// databanks with deep craft chains cannot blow the call stack.
func (g *Graph) tarjan() []int {
	const unvisited = -1

	n := len(g.nodes)
	indices := make([]int, n)
	lowLink := make([]int, n)
	scc := make([]int, n)
	onStack := make([]bool, n)
	for i := range indices {
		indices[i] = unvisited
		scc[i] = unvisited
	}

	index := 0
	sccIndex := 0
	var stack []int

	// frame holds one in-progress node and the position of the next
	// outgoing edge to examine.
	type frame struct {
		node int
		next int
	}
	var frames []frame

	for start := range g.nodes {
		if indices[start] != unvisited {
			continue
		}
		frames = append(frames, frame{node: start})

		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			node := f.node

			if f.next == 0 {
				indices[node] = index
				lowLink[node] = index
				index++
				stack = append(stack, node)
				onStack[node] = true
			}

			descended := false
			for f.next < len(g.out[node]) {
				child := g.edges[g.out[node][f.next]].To
				f.next++
				if indices[child] == unvisited {
					frames = append(frames, frame{node: child})
					descended = true
					break
				}
				if onStack[child] {
					lowLink[node] = min(lowLink[node], indices[child])
				}
			}
			if descended {
				continue
			}

			if lowLink[node] == indices[node] {
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					scc[w] = sccIndex
					if w == node {
						break
					}
				}
				sccIndex++
			}

			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1].node
				lowLink[parent] = min(lowLink[parent], lowLink[node])
			}
		}
	}
	return scc
}
