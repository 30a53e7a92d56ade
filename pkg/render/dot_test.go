package render

import (
	"strings"
	"testing"

	"github.com/craftviz/craftviz/pkg/databank"
	"github.com/craftviz/craftviz/pkg/graph"
	"github.com/craftviz/craftviz/pkg/graph/view"
)

func buildLayout(t *testing.T, objects []*databank.Object, transitions ...[5]int) *view.Layout {
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
	return view.New(g, view.DefaultOptions()).Layout()
}

func TestToDOT_TwoInputRecipe(t *testing.T) {
	l := buildLayout(t,
		[]*databank.Object{
			{ID: 1, Name: "Stone", Natural: true},
			{ID: 2, Name: "Stick", Natural: true},
			{ID: 3, Name: "Hatchet"},
		},
		[5]int{1, 2, 1, 3, 0}, // the stone survives as a tool
	)
	dot := ToDOT(l)

	if !strings.HasPrefix(dot, "digraph G {\n") || !strings.HasSuffix(dot, "}") {
		t.Fatalf("malformed digraph:\n%s", dot)
	}
	for _, want := range []string{
		`1 [label="Stone",color=green];`,
		`2 [label="Stick",color=green];`,
		`3 [label="Hatchet"];`,
		`t1p2 [label="+",shape=record,width=.05,height=.05,fontsize=6];`,
		`t1p2 -> 3 [label="",color="grey"];`,
		`1 -> t1p2 [label="",color="black"];`,
		`2 -> t1p2 [label="",color="red"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_ContractsSimpleJoin(t *testing.T) {
	l := buildLayout(t,
		[]*databank.Object{
			{ID: 1, Name: "Berry Bush", Natural: true},
			{ID: 2, Name: "Fresh Berry"},
			{ID: 3, Name: "Dried Berry"},
		},
		[5]int{0, 1, 0, 2, 0},
		[5]int{-1, 2, 0, 3, 120},
	)
	dot := ToDOT(l)

	if strings.Contains(dot, "t0p1") || strings.Contains(dot, "tm1p2") {
		t.Errorf("one-in one-out joins should be contracted:\n%s", dot)
	}
	if !strings.Contains(dot, `1 -> 2 [label="",color="blue"];`) {
		t.Errorf("DOT missing the contracted picking edge:\n%s", dot)
	}
	if !strings.Contains(dot, `2 -> 3 [label="2 min",color="green"];`) {
		t.Errorf("DOT missing the contracted decay edge:\n%s", dot)
	}
}
