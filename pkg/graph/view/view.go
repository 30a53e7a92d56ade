// Package view projects a crafting graph down to the part worth drawing.
//
// A View starts as the whole graph minus its looping edges and is then
// restricted to the ancestor closure of one target object: everything that
// can, directly or indirectly, be turned into the target. How far the
// closure climbs is governed per node class by a ParentMode, so a view can
// for example stop at natural objects instead of dragging in the recipe of
// every pebble.
package view

import (
	"github.com/craftviz/craftviz/pkg/errors"
	"github.com/craftviz/craftviz/pkg/graph"
)

// ParentMode decides which incoming connections of a node a view follows.
type ParentMode int

const (
	// AllParents keeps every incoming connection. Transition join nodes
	// always use this mode: hiding a recipe input would misrepresent it.
	AllParents ParentMode = iota
	// LeastComplexParent keeps only the cheapest way to obtain the node.
	LeastComplexParent
	// OnlyExistingParents contributes no ancestors of its own, but keeps
	// edges from ancestors the view pulled in for other reasons.
	OnlyExistingParents
	// NoParents hides every incoming connection of the node.
	NoParents
)

// String returns the mode name as used in config files and flags.
func (m ParentMode) String() string {
	switch m {
	case AllParents:
		return "all"
	case LeastComplexParent:
		return "least-complex"
	case OnlyExistingParents:
		return "existing"
	default:
		return "none"
	}
}

// Options are the per-class parent modes and the traversal radius of a view.
type Options struct {
	// MaxDistance bounds the ancestor climb in hops from the target.
	// Zero or negative means unbounded.
	MaxDistance int

	// Natural applies to zero-complexity objects, Categories to category
	// objects, Default to everything else.
	Natural    ParentMode
	Categories ParentMode
	Default    ParentMode
}

// DefaultOptions returns the modes tuned for readable craft trees: stop at
// natural objects, show category members only when already present, and
// keep just the cheapest recipe everywhere else.
func DefaultOptions() Options {
	return Options{
		MaxDistance: 50,
		Natural:     NoParents,
		Categories:  OnlyExistingParents,
		Default:     LeastComplexParent,
	}
}

// View is a graph with some nodes and edges hidden. The zero value is not
// usable; construct with New.
type View struct {
	g    *graph.Graph
	opts Options

	hiddenNodes []bool
	hiddenEdges []bool
}

// New returns a view of the whole graph with its looping edges hidden.
func New(g *graph.Graph, opts Options) *View {
	v := &View{
		g:           g,
		opts:        opts,
		hiddenNodes: make([]bool, g.NodeCount()),
		hiddenEdges: make([]bool, g.EdgeCount()),
	}
	for i := 0; i < g.EdgeCount(); i++ {
		if g.Edge(i).Looping {
			v.hiddenEdges[i] = true
		}
	}
	return v
}

// Graph returns the underlying graph.
func (v *View) Graph() *graph.Graph { return v.g }

// LeadingTo restricts the view to the ancestor closure of one object: only
// nodes from which the object can be derived stay visible, up to the
// configured distance. The target itself always stays.
func (v *View) LeadingTo(objID int) error {
	start, ok := v.g.NodeForObject(objID)
	if !ok {
		return errors.New(errors.ErrCodeUnknownObject, "no object with id %d", objID)
	}

	// Hide the incoming edges of NoParents nodes up front, so fringe nodes
	// of the traversal do not render with their recipes attached.
	for i := 0; i < v.g.NodeCount(); i++ {
		if v.parentMode(i) != NoParents {
			continue
		}
		for _, eid := range v.g.Incoming(i) {
			v.hiddenEdges[eid] = true
		}
	}

	// Distance is the maximum hop count over all downward paths to the
	// target, so a node keeps climbing as long as some path still has
	// budget. Revisits with a larger distance re-expand the node; the
	// MaxDistance cap bounds the growth.
	visited := make([]bool, v.g.NodeCount())
	distances := make([]int, v.g.NodeCount())
	visited[start] = true

	work := []int{start}
	for len(work) > 0 {
		current := work[len(work)-1]
		work = work[:len(work)-1]

		distance := distances[current]
		if v.opts.MaxDistance <= 0 {
			distance = -1
		}
		if distance > v.opts.MaxDistance {
			continue
		}
		for _, parent := range v.parents(current) {
			switch {
			case !visited[parent]:
				visited[parent] = true
				distances[parent] = distance + 1
				work = append(work, parent)
			case distances[parent] < distance+1:
				distances[parent] = distance + 1
				work = append(work, parent)
			}
		}
	}

	for i := range visited {
		if !visited[i] {
			v.hiddenNodes[i] = true
		}
	}
	return nil
}

// NodeHidden reports whether node i is hidden from the view.
func (v *View) NodeHidden(i int) bool { return v.hiddenNodes[i] }

// EdgeHidden reports whether edge i is hidden from the view.
func (v *View) EdgeHidden(i int) bool { return v.hiddenEdges[i] }

// parentMode returns the mode governing node i's incoming connections.
func (v *View) parentMode(i int) ParentMode {
	n := v.g.Node(i)
	if n.IsTransition() {
		return AllParents
	}
	if c, ok := n.Complexity.Value(); ok && c == 0 {
		return v.opts.Natural
	}
	if n.Object.Category {
		return v.opts.Categories
	}
	return v.opts.Default
}

// allParents returns every visible upstream neighbor of node i, ignoring
// the node's own parent mode.
func (v *View) allParents(i int) []int {
	var parents []int
	for _, eid := range v.g.Incoming(i) {
		if v.hiddenEdges[eid] {
			continue
		}
		p := v.g.Edge(eid).From
		if !v.hiddenNodes[p] {
			parents = append(parents, p)
		}
	}
	return parents
}

// parents returns the upstream neighbors node i admits under its mode.
func (v *View) parents(i int) []int {
	switch v.parentMode(i) {
	case NoParents, OnlyExistingParents:
		return nil
	case AllParents:
		return v.allParents(i)
	default:
		all := v.allParents(i)
		if len(all) == 0 {
			return nil
		}
		chosen := all[0]
		for _, p := range all[1:] {
			if v.g.Node(p).Complexity.Less(v.g.Node(chosen).Complexity) {
				chosen = p
			}
		}
		return []int{chosen}
	}
}

// children returns the visible downstream neighbors of node i that accept i
// as one of their parents. A child governed by LeastComplexParent only
// counts when i is the chosen parent.
func (v *View) children(i int) []int {
	var kids []int
	for _, eid := range v.g.Outgoing(i) {
		if v.hiddenEdges[eid] {
			continue
		}
		child := v.g.Edge(eid).To
		if v.hiddenNodes[child] {
			continue
		}
		for _, p := range v.parents(child) {
			if p == i {
				kids = append(kids, child)
				break
			}
		}
	}
	return kids
}
