package graph

import (
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/craftviz/craftviz/pkg/databank"
	"github.com/craftviz/craftviz/pkg/errors"
)

// Build constructs the fully decorated crafting graph of a databank: nodes
// and edges, complexity values, component partition and looping flags. The
// logger receives one warning per object that has no construction path; it
// may be nil.
//
// Build fails if a transition or category references an object id that the
// databank did not load. That is corrupt input, not a gap to skip.
func Build(bank *databank.Databank, logger *log.Logger) (*Graph, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	g := &Graph{objToNode: make(map[int]int)}
	if err := g.create(bank); err != nil {
		return nil, err
	}
	g.finish()

	g.propagateComplexity()
	for _, i := range g.unreached {
		logger.Warnf("object %d (%s) is unreachable from natural objects",
			g.nodes[i].Object.ID, g.nodes[i].Object.Name)
	}

	g.scc = g.tarjan()
	g.markLoops()
	return g, nil
}

// create materializes nodes and edges from the databank entities.
func (g *Graph) create(bank *databank.Databank) error {
	// One object node per positive id, in id order so node indices are
	// stable across loads. Id 0 and the negative sentinels are transition
	// kind markers, never nodes.
	ids := make([]int, 0, len(bank.Objects))
	for id := range bank.Objects {
		if id > 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	for _, id := range ids {
		obj := bank.Objects[id]
		g.objToNode[id] = len(g.nodes)
		c := unreachedComplexity()
		if obj.Natural {
			c = Reached(0)
		}
		g.nodes = append(g.nodes, Node{Kind: NodeObject, Object: obj, Complexity: c})
	}

	// Category edges: each member satisfies the category requirement.
	for _, id := range ids {
		obj := bank.Objects[id]
		for _, member := range obj.Members {
			from, ok := g.objToNode[member]
			if !ok {
				return errors.New(errors.ErrCodeMissingObject,
					"category %d (%s) references unknown object %d", obj.ID, obj.Name, member)
			}
			g.edges = append(g.edges, Edge{From: from, To: g.objToNode[id], Kind: EdgeCategory})
		}
	}

	// One join node per transition, wired to its inputs and net-new outputs.
	for _, t := range bank.Transitions {
		node := len(g.nodes)
		g.nodes = append(g.nodes, Node{Kind: NodeTransition, Transition: t, Complexity: unsetComplexity()})

		inputs := t.Inputs()
		outputs := t.Outputs()

		for _, out := range outputs {
			if contains(inputs, out) {
				continue
			}
			to, ok := g.objToNode[out]
			if !ok {
				return errors.New(errors.ErrCodeMissingObject,
					"transition %d_%d produces unknown object %d", t.Actor, t.Target, out)
			}
			g.edges = append(g.edges, Edge{From: node, To: to, Kind: EdgeTransition})
		}

		for _, in := range inputs {
			from, ok := g.objToNode[in]
			if !ok {
				return errors.New(errors.ErrCodeMissingObject,
					"transition %d_%d consumes unknown object %d", t.Actor, t.Target, in)
			}
			kind := inputEdgeKind(t.Kind)
			if kind == EdgeConsume && contains(outputs, in) {
				// The recipe keeps the object: a tool, not an ingredient.
				kind = EdgeTool
			}
			g.edges = append(g.edges, Edge{From: from, To: node, Kind: kind, Transition: t})
		}
	}
	return nil
}

// inputEdgeKind maps a transition kind to the edge kind of its input edges.
// Craft inputs start as consume; the caller downgrades reused inputs to tool.
func inputEdgeKind(k databank.Kind) EdgeKind {
	switch k {
	case databank.KindNatural:
		return EdgeNatural
	case databank.KindBareHands:
		return EdgeBareHands
	case databank.KindInteract:
		return EdgeInteract
	case databank.KindDrop:
		return EdgeDrop
	default:
		return EdgeConsume
	}
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
