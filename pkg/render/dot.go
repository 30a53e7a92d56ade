// Package render turns a crafting-graph view into Graphviz output.
//
// ToDOT emits the DOT source; RenderSVG, RenderPNG and RenderPDF rasterize
// it. Edge colors encode the action kind: green for spontaneous decay, blue
// for bare hands, purple for interactions, brown for drops, red for consumed
// ingredients, black for tools, grey for recipe outputs and yellow for
// category membership.
package render

import (
	"bytes"
	"fmt"

	"github.com/craftviz/craftviz/pkg/graph"
	"github.com/craftviz/craftviz/pkg/graph/view"
)

// ToDOT converts the layout to Graphviz DOT source. Zero-complexity objects
// are colored green; recipe join nodes render as tiny "+" records.
func ToDOT(l *view.Layout) string {
	g := l.Graph()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	for i := 0; i < g.NodeCount(); i++ {
		if !l.NodeVisible(i) {
			continue
		}
		fmt.Fprintf(&buf, "    %s;\n", nodeDecl(g.Node(i)))
	}
	for eid := 0; eid < g.EdgeCount(); eid++ {
		from, to, ok := l.EdgeEndpoints(eid)
		if !ok {
			continue
		}
		e := g.Edge(eid)
		fmt.Fprintf(&buf, "    %s -> %s [label=\"%s\",color=\"%s\"];\n",
			g.Node(from).DisplayID(), g.Node(to).DisplayID(),
			e.Duration(), edgeColor(e.Kind))
	}
	buf.WriteString("}")
	return buf.String()
}

func nodeDecl(n graph.Node) string {
	if n.IsTransition() {
		return fmt.Sprintf("%s [label=\"+\",shape=record,width=.05,height=.05,fontsize=6]",
			n.DisplayID())
	}
	color := ""
	if n.Root() {
		color = ",color=green"
	}
	return fmt.Sprintf("%s [label=\"%s\"%s]", n.DisplayID(), n.Label(), color)
}

func edgeColor(k graph.EdgeKind) string {
	switch k {
	case graph.EdgeNatural:
		return "green"
	case graph.EdgeBareHands:
		return "blue"
	case graph.EdgeInteract:
		return "purple"
	case graph.EdgeDrop:
		return "brown"
	case graph.EdgeConsume:
		return "red"
	case graph.EdgeTool:
		return "black"
	case graph.EdgeTransition:
		return "grey"
	default:
		return "yellow"
	}
}
