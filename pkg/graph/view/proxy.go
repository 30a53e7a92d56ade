package view

import "github.com/craftviz/craftviz/pkg/graph"

// Layout is the drawable projection of a view. Join nodes with exactly one
// parent and one child carry no information of their own, so the layout
// contracts them away: the join disappears and edges into it are redirected
// to its single output.
type Layout struct {
	v     *View
	proxy map[int]int
}

// Layout computes the proxy contraction of the view's current state.
func (v *View) Layout() *Layout {
	proxy := make(map[int]int)
	for i := 0; i < v.g.NodeCount(); i++ {
		if !v.g.Node(i).IsTransition() {
			continue
		}
		if len(v.parents(i)) != 1 {
			continue
		}
		if kids := v.children(i); len(kids) == 1 {
			proxy[i] = kids[0]
		}
	}
	return &Layout{v: v, proxy: proxy}
}

// Graph returns the underlying graph.
func (l *Layout) Graph() *graph.Graph { return l.v.Graph() }

// NodeVisible reports whether node i should be drawn: not hidden by the
// view and not contracted away.
func (l *Layout) NodeVisible(i int) bool {
	if l.v.NodeHidden(i) {
		return false
	}
	_, contracted := l.proxy[i]
	return !contracted
}

// EdgeEndpoints resolves edge eid through the contraction and reports
// whether the edge should be drawn. Edges that collapse onto themselves or
// touch a hidden node are dropped.
func (l *Layout) EdgeEndpoints(eid int) (from, to int, ok bool) {
	if l.v.EdgeHidden(eid) {
		return 0, 0, false
	}
	e := l.v.Graph().Edge(eid)
	from = l.resolve(e.From)
	to = l.resolve(e.To)
	if from == to || l.v.NodeHidden(from) || l.v.NodeHidden(to) {
		return 0, 0, false
	}
	return from, to, true
}

func (l *Layout) resolve(i int) int {
	if p, ok := l.proxy[i]; ok {
		return p
	}
	return i
}
