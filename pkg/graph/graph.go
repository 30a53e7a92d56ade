// Package graph builds and decorates the crafting graph of a databank.
//
// Objects and transitions become nodes of a directed graph: each recipe is a
// synthetic join node sitting between its input and output objects, and each
// category membership is a structural edge from member to category. After
// construction the graph is decorated in place with a per-node complexity
// (the minimum number of non-free actions needed to obtain the node from
// natural objects), a strongly-connected-component partition, and a looping
// flag on edges that are redundant shortcuts inside a component.
//
// The graph is immutable once [Build] returns. Nodes and edges are addressed
// by flat indices into arrays owned by the Graph; all cross-references
// between them are plain indices resolved against the owning Graph.
package graph

import (
	"fmt"

	"github.com/craftviz/craftviz/pkg/databank"
)

// NodeKind distinguishes the two closed node variants of the crafting graph.
type NodeKind int

const (
	// NodeObject wraps one databank object.
	NodeObject NodeKind = iota
	// NodeTransition is the synthetic join node of one recipe.
	NodeTransition
)

// Node is a vertex of the crafting graph: either an object or the synthetic
// join node of a transition, depending on Kind. Exactly one of Object and
// Transition is non-nil.
type Node struct {
	Kind       NodeKind
	Object     *databank.Object
	Transition *databank.Transition

	// Complexity is written during construction and read-only afterwards.
	Complexity Complexity
}

// IsObject reports whether the node wraps a databank object.
func (n Node) IsObject() bool { return n.Kind == NodeObject }

// IsTransition reports whether the node is a recipe join node.
func (n Node) IsTransition() bool { return n.Kind == NodeTransition }

// Root reports whether the node is a zero-complexity root (a natural
// object). Unreached nodes are never roots.
func (n Node) Root() bool {
	v, ok := n.Complexity.Value()
	return ok && v == 0
}

// DisplayID returns the stable identifier used when declaring the node to a
// renderer. Object nodes use their object id; transition nodes encode the
// actor/target pair and last-use flags so that distinct recipes for the same
// pair stay distinct.
func (n Node) DisplayID() string {
	switch n.Kind {
	case NodeObject:
		return fmt.Sprintf("%d", n.Object.ID)
	default:
		t := n.Transition
		id := fmt.Sprintf("t%sp%s", displayObjID(t.Actor), displayObjID(t.Target))
		if t.LastUseActor {
			id += "LA"
		}
		if t.LastUseTarget {
			id += "LT"
		}
		return id
	}
}

// Label returns the human-readable node label: the object name, or "+" for
// the tiny recipe join nodes.
func (n Node) Label() string {
	if n.Kind == NodeObject {
		return n.Object.Name
	}
	return "+"
}

// displayObjID formats an object reference for a display id. Negative
// sentinels are prefixed with 'm' since '-' is not safe in renderer names.
func displayObjID(id int) string {
	if id < 0 {
		return fmt.Sprintf("m%d", -id)
	}
	return fmt.Sprintf("%d", id)
}

// EdgeKind classifies an edge of the crafting graph.
type EdgeKind int

const (
	// EdgeNatural connects the target of a spontaneous transition to its join node.
	EdgeNatural EdgeKind = iota
	// EdgeBareHands connects an input worked with empty hands to its join node.
	EdgeBareHands
	// EdgeInteract connects an input of a non-consuming interaction to its join node.
	EdgeInteract
	// EdgeDrop connects a dropped object to its join node.
	EdgeDrop
	// EdgeConsume connects an input that the recipe uses up to its join node.
	EdgeConsume
	// EdgeTool connects an input that survives the recipe (also an output).
	EdgeTool
	// EdgeTransition connects a join node to a net-new output object.
	EdgeTransition
	// EdgeCategory connects a member object to its category object.
	EdgeCategory
)

// String returns the lower-case kind name, used as a style tag by renderers.
func (k EdgeKind) String() string {
	switch k {
	case EdgeNatural:
		return "natural"
	case EdgeBareHands:
		return "bare-hands"
	case EdgeInteract:
		return "interact"
	case EdgeDrop:
		return "drop"
	case EdgeConsume:
		return "consume"
	case EdgeTool:
		return "tool"
	case EdgeTransition:
		return "transition"
	default:
		return "category"
	}
}

// Cost returns the edge weight for complexity propagation. Spontaneous
// decay and recipe outputs are free; every other edge is one action.
func (k EdgeKind) Cost() int {
	if k == EdgeNatural || k == EdgeTransition {
		return 0
	}
	return 1
}

// Edge is a directed connection between two nodes, addressed by index.
type Edge struct {
	From int
	To   int
	Kind EdgeKind

	// Transition back-references the recipe that produced an input edge.
	// It is nil for category and join-to-output edges.
	Transition *databank.Transition

	// Looping marks redundant in-component shortcuts. Looping edges stay
	// in the graph and in complexity computation; views hide them.
	Looping bool
}

// Cost returns the edge weight for complexity propagation.
func (e Edge) Cost() int { return e.Kind.Cost() }

// Duration formats the transition's decay timer as a human-readable label.
// It returns "" for edges without a timed transition.
func (e Edge) Duration() string {
	if e.Transition == nil {
		return ""
	}
	return FormatDuration(e.Transition.AutoDecaySeconds)
}

// FormatDuration formats a decay timer in seconds as a human-readable
// label. Zero means no timer; negative timers count in-game epochs.
func FormatDuration(secs int) string {
	switch {
	case secs == 0:
		return ""
	case secs < 0:
		return fmt.Sprintf("%d epoch", -secs)
	case secs%60 == 0:
		return fmt.Sprintf("%d min", secs/60)
	default:
		return fmt.Sprintf("%d s", secs)
	}
}

// Graph owns the node and edge arenas of one databank plus the derived
// adjacency indices. It is immutable after Build returns.
type Graph struct {
	nodes []Node
	edges []Edge

	out       [][]int // node index -> outgoing edge indices
	in        [][]int // node index -> incoming edge indices
	objToNode map[int]int
	scc       []int // node index -> component id, reverse topological order
	unreached []int // object node indices with no path from naturals
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node returns a copy of the node at index i.
func (g *Graph) Node(i int) Node { return g.nodes[i] }

// Edge returns a copy of the edge at index i.
func (g *Graph) Edge(i int) Edge { return g.edges[i] }

// Outgoing returns the outgoing edge indices of node i.
// The returned slice is owned by the graph and must not be modified.
func (g *Graph) Outgoing(i int) []int { return g.out[i] }

// Incoming returns the incoming edge indices of node i.
// The returned slice is owned by the graph and must not be modified.
func (g *Graph) Incoming(i int) []int { return g.in[i] }

// NodeForObject returns the node index wrapping the given object id.
func (g *Graph) NodeForObject(objID int) (int, bool) {
	i, ok := g.objToNode[objID]
	return i, ok
}

// ComponentOf returns the strongly-connected-component id of node i.
// Component ids are assigned in reverse topological order.
func (g *Graph) ComponentOf(i int) int { return g.scc[i] }

// Unreached returns the object node indices that have no construction path
// from any natural object. The slice is owned by the graph.
func (g *Graph) Unreached() []int { return g.unreached }

// finish derives the adjacency indices from the edge list. Called once,
// after all nodes and edges exist.
func (g *Graph) finish() {
	g.out = make([][]int, len(g.nodes))
	g.in = make([][]int, len(g.nodes))
	for i, e := range g.edges {
		g.out[e.From] = append(g.out[e.From], i)
		g.in[e.To] = append(g.in[e.To], i)
	}
}
