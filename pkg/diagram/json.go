package diagram

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// document is the canonical JSON serialization of a diagram. The format is
// human-readable and round-trip safe: import → layout/route → export →
// re-import produces identical results because element order is normalized
// to lexical ID order on write.
type document struct {
	Nodes []nodeDoc `json:"nodes"`
	Edges []edgeDoc `json:"edges"`
}

type nodeDoc struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Shape string `json:"shape,omitempty"`
	Text  string `json:"text,omitempty"`
}

type edgeDoc struct {
	ID    string `json:"id"`
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
	Style string `json:"style,omitempty"`
}

// WriteJSON encodes the diagram as indented JSON and writes it to w.
// Nodes and edges are emitted in lexical ID order.
func WriteJSON(d *Diagram, w io.Writer) error {
	out := document{
		Nodes: make([]nodeDoc, 0, d.NodeCount()),
		Edges: make([]edgeDoc, 0, d.EdgeCount()),
	}
	for _, id := range d.NodeIDs() {
		n, _ := d.Node(id)
		out.Nodes = append(out.Nodes, nodeDoc{ID: id, Label: n.Label, Shape: string(n.Shape), Text: n.Text})
	}
	for _, id := range d.EdgeIDs() {
		e, _ := d.Edge(id)
		out.Edges = append(out.Edges, edgeDoc{ID: id, From: e.From, To: e.To, Label: e.Label, Style: e.Style})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode diagram: %w", err)
	}
	return nil
}

// ReadJSON decodes a diagram from JSON read from r.
// Duplicate or empty IDs are rejected with the position of the offending
// element in the input.
func ReadJSON(r io.Reader) (*Diagram, error) {
	var in document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("decode diagram: %w", err)
	}

	d := New()
	for i, n := range in.Nodes {
		node := Node{Label: n.Label, Shape: Shape(n.Shape), Text: n.Text}
		if err := d.AddNode(n.ID, node); err != nil {
			return nil, fmt.Errorf("node %d (%q): %w", i, n.ID, err)
		}
	}
	for i, e := range in.Edges {
		edge := Edge{From: e.From, To: e.To, Label: e.Label, Style: e.Style}
		if err := d.AddEdge(e.ID, edge); err != nil {
			return nil, fmt.Errorf("edge %d (%q): %w", i, e.ID, err)
		}
	}
	return d, nil
}

// ReadFile reads a diagram from a JSON file on disk.
func ReadFile(path string) (*Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open diagram file: %w", err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteFile writes the diagram to a JSON file on disk.
func WriteFile(d *Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create diagram file: %w", err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}
