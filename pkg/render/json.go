package render

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/craftviz/craftviz/pkg/graph/view"
)

type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

type jsonNode struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Kind       string `json:"kind"`
	Complexity *int   `json:"complexity,omitempty"`
	Root       bool   `json:"root,omitempty"`
}

type jsonEdge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Kind     string `json:"kind"`
	Duration string `json:"duration,omitempty"`
}

// WriteJSON encodes the layout as JSON and writes it to w. The output lists
// the drawn nodes (with label, kind and complexity) and the drawn edges with
// their action kind, mirroring what ToDOT emits.
func WriteJSON(l *view.Layout, w io.Writer) error {
	g := l.Graph()

	out := jsonGraph{Nodes: []jsonNode{}, Edges: []jsonEdge{}}
	for i := 0; i < g.NodeCount(); i++ {
		if !l.NodeVisible(i) {
			continue
		}
		n := g.Node(i)
		jn := jsonNode{
			ID:    n.DisplayID(),
			Label: n.Label(),
			Kind:  "join",
			Root:  n.Root(),
		}
		if n.IsObject() {
			jn.Kind = "object"
			if v, ok := n.Complexity.Value(); ok {
				jn.Complexity = &v
			}
		}
		out.Nodes = append(out.Nodes, jn)
	}
	for eid := 0; eid < g.EdgeCount(); eid++ {
		from, to, ok := l.EdgeEndpoints(eid)
		if !ok {
			continue
		}
		e := g.Edge(eid)
		out.Edges = append(out.Edges, jsonEdge{
			From:     g.Node(from).DisplayID(),
			To:       g.Node(to).DisplayID(),
			Kind:     e.Kind.String(),
			Duration: e.Duration(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&out)
}

// ToJSON encodes the layout as an indented JSON document.
func ToJSON(l *view.Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(l, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
