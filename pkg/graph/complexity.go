package graph

import "math"

// weightUnreached is the internal numeric stand-in for "no path exists".
// It only participates in comparisons, never in arithmetic that could
// overflow.
const weightUnreached = math.MaxInt / 2

type complexityState uint8

const (
	// stateUnset: a transition node no input has reached yet. Distinct
	// from unreached: an unset join has never been visited at all.
	stateUnset complexityState = iota
	// stateUnreached: an object node with no path from natural objects.
	stateUnreached
	stateReached
)

// Complexity is the tri-state cost of obtaining a node: not yet visited
// (transition joins only), unreachable, or reached with a concrete minimum
// action count.
type Complexity struct {
	state complexityState
	v     int
}

// Reached creates a settled complexity with the given action count.
func Reached(v int) Complexity { return Complexity{state: stateReached, v: v} }

func unsetComplexity() Complexity     { return Complexity{state: stateUnset} }
func unreachedComplexity() Complexity { return Complexity{state: stateUnreached} }

// Value returns the action count and whether the node was reached at all.
func (c Complexity) Value() (int, bool) {
	return c.v, c.state == stateReached
}

// Unreached reports whether no construction path exists for the node.
func (c Complexity) Unreached() bool { return c.state == stateUnreached }

// Less orders complexities for parent selection: unset joins sort first,
// then settled values ascending, unreached nodes last.
func (c Complexity) Less(o Complexity) bool { return c.weight() < o.weight() }

// weight returns the numeric value used in comparisons: the settled count,
// a huge sentinel for unreached nodes, and -1 for unset joins.
func (c Complexity) weight() int {
	switch c.state {
	case stateReached:
		return c.v
	case stateUnreached:
		return weightUnreached
	default:
		return -1
	}
}

// relax attempts to lower (or, for joins, combine) the node's complexity
// with a candidate arriving over one incoming edge. It reports whether the
// node should propagate the update to its own children.
//
// Object nodes take the minimum of all candidates: a lower candidate always
// wins and always propagates.
//
// Transition nodes are AND-joins: every input must be available before the
// recipe can fire, but inputs are gathered independently, so the join's
// complexity is the maximum of its inputs, not the sum. The first arriving
// input sets the value but only fires the join if the recipe has a single
// input; later inputs raise the value to the max and always fire, because
// by then every path that first reached the join has already been seen.
func (n *Node) relax(candidate int) bool {
	switch n.Kind {
	case NodeObject:
		if candidate < n.Complexity.weight() {
			n.Complexity = Reached(candidate)
			return true
		}
		return false
	default:
		if _, ok := n.Complexity.Value(); !ok {
			n.Complexity = Reached(candidate)
			return len(n.Transition.Inputs()) == 1
		}
		if v, _ := n.Complexity.Value(); candidate > v {
			n.Complexity = Reached(candidate)
		}
		return true
	}
}

// propagateComplexity runs the label-correcting relaxation from all natural
// objects. Edge weights are 0 or 1, values settle monotonically toward the
// fixpoint and are bounded below by zero, so the work list always drains.
//
// A priority queue buys nothing here: the AND-join update is not a standard
// shortest-path relaxation, and re-visits are cheap.
func (g *Graph) propagateComplexity() {
	var work []int
	for i := range g.nodes {
		if g.nodes[i].Root() {
			work = append(work, i)
		}
	}

	for len(work) > 0 {
		current := work[len(work)-1]
		work = work[:len(work)-1]

		distance, ok := g.nodes[current].Complexity.Value()
		if !ok {
			continue
		}
		for _, eid := range g.out[current] {
			e := g.edges[eid]
			if g.nodes[e.To].relax(distance + e.Cost()) {
				work = append(work, e.To)
			}
		}
	}

	for i := range g.nodes {
		if g.nodes[i].Kind == NodeObject && g.nodes[i].Complexity.Unreached() {
			g.unreached = append(g.unreached, i)
		}
	}
}
