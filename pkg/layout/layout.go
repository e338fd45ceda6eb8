// Package layout assigns every node of a flowchart diagram to a layer and an
// index within that layer.
//
// Layer assignment is longest-path layering over a deterministic topological
// order: for every edge u→v the destination ends up in a strictly greater
// layer than the source, and nodes with no incoming edges sit at layer 0.
// In-layer ordering is a single downward barycenter sweep seeded by lexical
// ID order, which reduces edge crossings without any iterative fixpoint.
//
// Every tie-break in the package is lexical on node IDs, so [Build] is fully
// deterministic: permuting the insertion order of nodes or edges cannot
// change the result.
package layout

import "github.com/gridflow-dev/gridflow/pkg/diagram"

// Placement is a node's position in the layered layout.
type Placement struct {
	Layer int // Layer number, 0 = sources, increasing toward sinks
	Index int // Position within the layer, 0-based left to right
}

// Layout is the result of layering and ordering a diagram. Every node of the
// diagram appears in exactly one layer at exactly one index; layers are
// numbered from 0 with no gaps.
type Layout struct {
	// Layers holds node IDs per layer, in final in-layer order.
	Layers [][]string

	// Placements maps each node ID to its (layer, index) pair. It is the
	// inverse of Layers and always consistent with it.
	Placements map[string]Placement
}

// Build validates the diagram and computes its layered layout.
//
// Build fails with *UnknownNodeError when an edge references a node that is
// not in the diagram, and with *CycleError when the graph is not acyclic.
// No partial layout is returned on failure. Routing (package route) must not
// be attempted without a successful layout.
func Build(d *diagram.Diagram) (*Layout, error) {
	if d.NodeCount() == 0 {
		return &Layout{Placements: map[string]Placement{}}, nil
	}

	order, succ, err := topoOrder(d)
	if err != nil {
		return nil, err
	}

	depth := assignLayers(order, succ)
	layers := orderLayers(d, depth)

	placements := make(map[string]Placement, d.NodeCount())
	for li, layer := range layers {
		for i, id := range layer {
			placements[id] = Placement{Layer: li, Index: i}
		}
	}
	return &Layout{Layers: layers, Placements: placements}, nil
}
