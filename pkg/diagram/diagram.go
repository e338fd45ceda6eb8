// Package diagram defines the flowchart graph model consumed by the layout
// and routing engines.
//
// A [Diagram] is an ordered collection of nodes and directed edges, both
// keyed by opaque string identifiers. Identifier ordering is lexical and is
// the sole source of tie-break determinism downstream: every iteration
// surface ([Diagram.NodeIDs], [Diagram.EdgeIDs]) returns identifiers in
// sorted order, never in insertion or hash order. Two diagrams that are
// equal as sets of nodes and edges therefore produce byte-identical layout
// and routing results regardless of the order in which they were built.
//
// The layout and routing engines treat a Diagram as read-only input; nothing
// in this repository mutates a Diagram after construction except through its
// own Add methods.
package diagram

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidID is returned by [Diagram.AddNode] and [Diagram.AddEdge]
	// when the identifier is empty.
	ErrInvalidID = errors.New("identifier must not be empty")

	// ErrDuplicateID is returned by [Diagram.AddNode] and [Diagram.AddEdge]
	// when the identifier is already present.
	ErrDuplicateID = errors.New("duplicate identifier")
)

// Shape names a node's visual shape. The engine carries shapes through
// untouched; they only matter to downstream renderers.
type Shape string

const (
	ShapeBox     Shape = "box"
	ShapeRounded Shape = "rounded"
	ShapeDiamond Shape = "diamond"
)

// Node is a flowchart vertex. The zero value is a valid unlabeled box.
type Node struct {
	Label string // Display label (defaults to the node's ID when empty)
	Shape Shape  // Visual shape hint, empty means ShapeBox
	Text  string // Free-form body text
}

// Edge is a directed connection between two nodes. Endpoints are node IDs;
// they are not checked for existence here, so that validation can report a
// precise error naming the edge and the offending endpoint at layout time.
type Edge struct {
	From  string // Source node ID
	To    string // Destination node ID
	Label string // Optional edge label
	Style string // Optional style hint ("dashed", ...)
}

// Diagram is an ordered node/edge graph. The zero value is not usable;
// call [New].
type Diagram struct {
	nodes map[string]Node
	edges map[string]Edge

	// Sorted ID slices, maintained incrementally so iteration is O(1)
	// per call and always lexical.
	nodeIDs []string
	edgeIDs []string
}

// New creates an empty diagram.
func New() *Diagram {
	return &Diagram{
		nodes: make(map[string]Node),
		edges: make(map[string]Edge),
	}
}

// AddNode inserts a node under the given ID.
// Returns ErrInvalidID for an empty ID or ErrDuplicateID if the ID is taken.
func (d *Diagram) AddNode(id string, n Node) error {
	if id == "" {
		return ErrInvalidID
	}
	if _, exists := d.nodes[id]; exists {
		return ErrDuplicateID
	}
	d.nodes[id] = n
	d.nodeIDs = insertSorted(d.nodeIDs, id)
	return nil
}

// AddEdge inserts an edge under the given ID. Endpoint existence is not
// validated here; see the package comment on [Edge].
func (d *Diagram) AddEdge(id string, e Edge) error {
	if id == "" {
		return ErrInvalidID
	}
	if _, exists := d.edges[id]; exists {
		return ErrDuplicateID
	}
	d.edges[id] = e
	d.edgeIDs = insertSorted(d.edgeIDs, id)
	return nil
}

// Node returns the node with the given ID and whether it exists.
func (d *Diagram) Node(id string) (Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Edge returns the edge with the given ID and whether it exists.
func (d *Diagram) Edge(id string) (Edge, bool) {
	e, ok := d.edges[id]
	return e, ok
}

// HasNode reports whether a node with the given ID exists.
func (d *Diagram) HasNode(id string) bool {
	_, ok := d.nodes[id]
	return ok
}

// NodeIDs returns all node IDs in lexical order.
// The returned slice must not be modified.
func (d *Diagram) NodeIDs() []string { return d.nodeIDs }

// EdgeIDs returns all edge IDs in lexical order.
// The returned slice must not be modified.
func (d *Diagram) EdgeIDs() []string { return d.edgeIDs }

// NodeCount returns the number of nodes.
func (d *Diagram) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// insertSorted inserts id into the sorted slice ids, keeping it sorted.
func insertSorted(ids []string, id string) []string {
	i, _ := slices.BinarySearch(ids, id)
	return slices.Insert(ids, i, id)
}
