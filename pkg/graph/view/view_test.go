package view

import (
	"testing"

	"github.com/craftviz/craftviz/pkg/databank"
	"github.com/craftviz/craftviz/pkg/errors"
	"github.com/craftviz/craftviz/pkg/graph"
)

func buildGraph(t *testing.T, objects []*databank.Object, transitions ...[5]int) *graph.Graph {
	t.Helper()
	b := &databank.Databank{Objects: map[int]*databank.Object{
		databank.BareHandsID: {ID: databank.BareHandsID, Name: "Bare Hands", Natural: true},
	}}
	for _, o := range objects {
		b.Objects[o.ID] = o
	}
	for _, raw := range transitions {
		tr, err := databank.NewTransition(raw[0], raw[1], raw[2], raw[3], raw[4])
		if err != nil {
			t.Fatalf("NewTransition(%v) error: %v", raw, err)
		}
		b.Transitions = append(b.Transitions, tr)
	}
	g, err := graph.Build(b, nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return g
}

func objNode(t *testing.T, g *graph.Graph, id int) int {
	t.Helper()
	i, ok := g.NodeForObject(id)
	if !ok {
		t.Fatalf("no node for object %d", id)
	}
	return i
}

func TestLeadingTo_KeepsOnlyAncestors(t *testing.T) {
	g := buildGraph(t,
		[]*databank.Object{
			{ID: 1, Name: "Stone", Natural: true},
			{ID: 2, Name: "Stone Block"},
			{ID: 3, Name: "Stone Wall"},
			{ID: 4, Name: "Hut"},
		},
		[5]int{0, 1, 0, 2, 0},
		[5]int{0, 2, 0, 3, 0},
		[5]int{0, 2, 0, 4, 0}, // sibling branch, not an ancestor of the wall
	)
	v := New(g, DefaultOptions())
	if err := v.LeadingTo(3); err != nil {
		t.Fatalf("LeadingTo(3) error: %v", err)
	}

	for _, id := range []int{1, 2, 3} {
		if v.NodeHidden(objNode(t, g, id)) {
			t.Errorf("object %d should stay visible", id)
		}
	}
	if !v.NodeHidden(objNode(t, g, 4)) {
		t.Error("the hut is not an ancestor of the wall, should be hidden")
	}
}

func TestLeadingTo_UnknownObject(t *testing.T) {
	g := buildGraph(t, []*databank.Object{{ID: 1, Name: "Stone", Natural: true}})
	v := New(g, DefaultOptions())
	err := v.LeadingTo(999)
	if err == nil {
		t.Fatal("LeadingTo(999) should fail")
	}
	if !errors.Is(err, errors.ErrCodeUnknownObject) {
		t.Errorf("error code = %q, want UNKNOWN_OBJECT", errors.GetCode(err))
	}
}

func TestLeadingTo_LeastComplexParentPicksCheapRecipe(t *testing.T) {
	g := buildGraph(t,
		[]*databank.Object{
			{ID: 1, Name: "Stone", Natural: true},
			{ID: 2, Name: "Stone Block"},
			{ID: 3, Name: "Carved Block"},
			{ID: 4, Name: "Figurine"},
		},
		[5]int{0, 1, 0, 2, 0},
		[5]int{0, 2, 0, 3, 0},
		[5]int{0, 3, 0, 4, 0}, // three actions via the carved block
		[5]int{0, 1, 0, 4, 0}, // one action straight from stone
	)
	v := New(g, DefaultOptions())
	if err := v.LeadingTo(4); err != nil {
		t.Fatalf("LeadingTo(4) error: %v", err)
	}

	if v.NodeHidden(objNode(t, g, 1)) {
		t.Error("the stone feeds the cheap recipe, should be visible")
	}
	if !v.NodeHidden(objNode(t, g, 3)) {
		t.Error("the carved-block detour should be hidden")
	}
}

func TestLeadingTo_NaturalParentMode(t *testing.T) {
	objects := []*databank.Object{
		{ID: 1, Name: "Ore", Natural: true},
		{ID: 2, Name: "Ingot", Natural: true},
		{ID: 3, Name: "Coin"},
	}
	transitions := [][5]int{
		{0, 1, 0, 2, 0}, // ore can also be worked into an ingot
		{0, 2, 0, 3, 0},
	}

	t.Run("no parents stops at naturals", func(t *testing.T) {
		g := buildGraph(t, objects, transitions...)
		v := New(g, DefaultOptions())
		if err := v.LeadingTo(3); err != nil {
			t.Fatal(err)
		}
		if v.NodeHidden(objNode(t, g, 2)) {
			t.Error("the ingot is a direct ancestor, should be visible")
		}
		if !v.NodeHidden(objNode(t, g, 1)) {
			t.Error("climbing past a natural object should stop")
		}
	})

	t.Run("all parents climbs through naturals", func(t *testing.T) {
		g := buildGraph(t, objects, transitions...)
		opts := DefaultOptions()
		opts.Natural = AllParents
		v := New(g, opts)
		if err := v.LeadingTo(3); err != nil {
			t.Fatal(err)
		}
		if v.NodeHidden(objNode(t, g, 1)) {
			t.Error("ore should be visible with AllParents on naturals")
		}
	})
}

func TestLeadingTo_MaxDistance(t *testing.T) {
	g := buildGraph(t,
		[]*databank.Object{
			{ID: 1, Name: "Stone", Natural: true},
			{ID: 2, Name: "Stone Block"},
			{ID: 3, Name: "Stone Wall"},
			{ID: 4, Name: "Fort"},
		},
		[5]int{0, 1, 0, 2, 0},
		[5]int{0, 2, 0, 3, 0},
		[5]int{0, 3, 0, 4, 0},
	)
	opts := DefaultOptions()
	opts.MaxDistance = 2
	v := New(g, opts)
	if err := v.LeadingTo(4); err != nil {
		t.Fatal(err)
	}

	// Joins count as hops too: the wall sits two hops up, the block four.
	if v.NodeHidden(objNode(t, g, 3)) {
		t.Error("the wall is within reach, should be visible")
	}
	if !v.NodeHidden(objNode(t, g, 2)) {
		t.Error("the block is beyond the distance cap, should be hidden")
	}
}

func TestLayout_ContractsSimpleJoins(t *testing.T) {
	g := buildGraph(t,
		[]*databank.Object{
			{ID: 1, Name: "Stone", Natural: true},
			{ID: 2, Name: "Stone Block"},
		},
		[5]int{0, 1, 0, 2, 0},
	)
	l := New(g, DefaultOptions()).Layout()

	var join int
	for i := 0; i < g.NodeCount(); i++ {
		if g.Node(i).IsTransition() {
			join = i
		}
	}
	if l.NodeVisible(join) {
		t.Error("a one-in one-out join should be contracted away")
	}

	stone := objNode(t, g, 1)
	block := objNode(t, g, 2)
	var drawn int
	for eid := 0; eid < g.EdgeCount(); eid++ {
		from, to, ok := l.EdgeEndpoints(eid)
		if !ok {
			continue
		}
		drawn++
		if from != stone || to != block {
			t.Errorf("edge %d drawn as %d -> %d, want %d -> %d", eid, from, to, stone, block)
		}
	}
	if drawn != 1 {
		t.Errorf("drawn edges = %d, want 1 (stone -> block direct)", drawn)
	}
}

func TestLayout_KeepsMultiInputJoins(t *testing.T) {
	g := buildGraph(t,
		[]*databank.Object{
			{ID: 1, Name: "Stone", Natural: true},
			{ID: 2, Name: "Stick", Natural: true},
			{ID: 3, Name: "Hatchet"},
		},
		[5]int{1, 2, 0, 3, 0},
	)
	l := New(g, DefaultOptions()).Layout()

	for i := 0; i < g.NodeCount(); i++ {
		if g.Node(i).IsTransition() && !l.NodeVisible(i) {
			t.Error("a two-input join carries information, must stay visible")
		}
	}
}
