package graph

import (
	"testing"

	"github.com/craftviz/craftviz/pkg/databank"
)

// cycleBank builds the minimal two-object cycle: Stone Block is made from
// Stone, and smashing a Stone Block gives the Stone back.
func cycleBank(t *testing.T) *databank.Databank {
	return bank(t,
		[]*databank.Object{
			{ID: 1, Name: "Stone", Natural: true},
			{ID: 2, Name: "Stone Block"},
		},
		[5]int{0, 1, 0, 2, 0},
		[5]int{0, 2, 0, 1, 0},
	)
}

func TestTarjan_CyclePartition(t *testing.T) {
	b := cycleBank(t)
	b.Objects[3] = &databank.Object{ID: 3, Name: "Bystander", Natural: true}
	g := mustBuild(t, b)

	stone, _ := g.NodeForObject(1)
	block, _ := g.NodeForObject(2)
	bystander, _ := g.NodeForObject(3)

	if g.ComponentOf(stone) != g.ComponentOf(block) {
		t.Error("stone and block are mutually derivable, want one component")
	}
	if g.ComponentOf(bystander) == g.ComponentOf(stone) {
		t.Error("bystander must not share the cycle's component")
	}

	// Both joins sit on the cycle too.
	for i := 0; i < g.NodeCount(); i++ {
		if g.Node(i).IsTransition() && g.ComponentOf(i) != g.ComponentOf(stone) {
			t.Errorf("join node %d outside the cycle component", i)
		}
	}
}

func TestTarjan_ReverseTopologicalOrder(t *testing.T) {
	// Every cross-component edge must point at a component with a smaller id.
	b := bank(t,
		[]*databank.Object{
			{ID: 1, Name: "Stone", Natural: true},
			{ID: 2, Name: "Stone Block"},
			{ID: 3, Name: "Stone Wall"},
			{ID: 4, Name: "Fort"},
		},
		[5]int{0, 1, 0, 2, 0},
		[5]int{0, 2, 0, 3, 0},
		[5]int{0, 3, 0, 2, 0}, // block and wall cycle
		[5]int{0, 3, 0, 4, 0},
	)
	g := mustBuild(t, b)

	for i := 0; i < g.EdgeCount(); i++ {
		e := g.Edge(i)
		from, to := g.ComponentOf(e.From), g.ComponentOf(e.To)
		if from != to && from <= to {
			t.Errorf("edge %d crosses components %d -> %d, want strictly decreasing ids",
				i, from, to)
		}
	}
}

func TestMarkLoops_TwoCycleThreshold(t *testing.T) {
	// Stone (complexity 0) and Stone Block (complexity 1) differ by exactly
	// one action and the return path inside the component also costs one, so
	// the backward join→Stone edge hits the threshold and is flagged.
	g := mustBuild(t, cycleBank(t))

	var looping []Edge
	for i := 0; i < g.EdgeCount(); i++ {
		if g.Edge(i).Looping {
			looping = append(looping, g.Edge(i))
		}
	}
	if len(looping) != 1 {
		t.Fatalf("looping edges = %d, want 1", len(looping))
	}
	e := looping[0]
	if e.Kind != EdgeTransition {
		t.Errorf("looping edge kind = %v, want transition", e.Kind)
	}
	if dst := g.Node(e.To); !dst.IsObject() || dst.Object.ID != 1 {
		t.Errorf("looping edge points at %s, want the Stone", dst.Label())
	}

	// Pruning must not disconnect anything: every settled object stays
	// reachable from the roots over non-looping edges.
	assertReachableWithoutLoops(t, g)
}

func TestMarkLoops_KeepsLongReturnPath(t *testing.T) {
	// Straw (cheaply made from Hay) converts to a Basket, and a Basket can
	// be worked back into Straw only through an intermediate step. The
	// complexity gap is 1 but the return path costs 2, so the Straw→Basket
	// edge is informative and must survive.
	b := bank(t,
		[]*databank.Object{
			{ID: 1, Name: "Reed", Natural: true},
			{ID: 2, Name: "Basket"},
			{ID: 3, Name: "Hay", Natural: true},
			{ID: 4, Name: "Straw"},
			{ID: 5, Name: "Loose Fibers"},
			{ID: 6, Name: "Dry Hay"},
		},
		[5]int{0, 1, 0, 2, 0}, // Reed -> Basket
		[5]int{0, 3, 0, 6, 0}, // Hay -> Dry Hay
		[5]int{0, 6, 0, 4, 0}, // Dry Hay -> Straw
		[5]int{0, 4, 0, 2, 0}, // Straw -> Basket
		[5]int{0, 2, 0, 5, 0}, // Basket -> Loose Fibers
		[5]int{0, 5, 0, 4, 0}, // Loose Fibers -> Straw
	)
	g := mustBuild(t, b)

	for i := 0; i < g.EdgeCount(); i++ {
		e := g.Edge(i)
		if !e.Looping {
			continue
		}
		t.Errorf("edge %d (%s -> %s) flagged looping, want none",
			i, g.Node(e.From).Label(), g.Node(e.To).Label())
	}
}

// assertReachableWithoutLoops walks the graph from its roots skipping
// looping edges and fails for any settled object left unvisited.
func assertReachableWithoutLoops(t *testing.T, g *Graph) {
	t.Helper()

	seen := make([]bool, g.NodeCount())
	var work []int
	for i := 0; i < g.NodeCount(); i++ {
		if g.Node(i).Root() {
			seen[i] = true
			work = append(work, i)
		}
	}
	for len(work) > 0 {
		current := work[len(work)-1]
		work = work[:len(work)-1]
		for _, eid := range g.Outgoing(current) {
			e := g.Edge(eid)
			if e.Looping || seen[e.To] {
				continue
			}
			seen[e.To] = true
			work = append(work, e.To)
		}
	}

	for i := 0; i < g.NodeCount(); i++ {
		n := g.Node(i)
		if _, ok := n.Complexity.Value(); !ok || !n.IsObject() {
			continue
		}
		if !seen[i] {
			t.Errorf("object %d (%s) unreachable once looping edges are hidden",
				n.Object.ID, n.Object.Name)
		}
	}
}
