package layout

import (
	"cmp"
	"slices"

	"github.com/gridflow-dev/gridflow/pkg/diagram"
)

// barycenter is a node's average predecessor position, kept as an exact
// fraction so ordering never depends on floating-point rounding.
type barycenter struct {
	sum   int // Sum of predecessor positions in the previous layer
	count int // Number of predecessors found in the previous layer
}

// less compares two barycenters by cross-multiplication:
// a.sum/a.count < b.sum/b.count  ⇔  a.sum*b.count < b.sum*a.count.
// Nodes without positioned predecessors sort after all positioned nodes.
func (a barycenter) less(b barycenter) bool {
	if a.count == 0 || b.count == 0 {
		return a.count != 0 && b.count == 0
	}
	return a.sum*b.count < b.sum*a.count
}

func (a barycenter) equal(b barycenter) bool {
	if a.count == 0 || b.count == 0 {
		return a.count == 0 && b.count == 0
	}
	return a.sum*b.count == b.sum*a.count
}

// orderLayers groups nodes by depth and orders each layer.
//
// Every layer is seeded with lexical ID order. Then, from the second layer
// down, nodes are re-sorted by the barycenter of their direct predecessors'
// positions in the previous layer's current order. This is a single downward
// sweep, not an iterative fixpoint; ties break lexically.
func orderLayers(d *diagram.Diagram, depth map[string]int) [][]string {
	maxDepth := 0
	for _, l := range depth {
		maxDepth = max(maxDepth, l)
	}
	layers := make([][]string, maxDepth+1)
	for _, id := range d.NodeIDs() {
		l := depth[id]
		layers[l] = append(layers[l], id)
	}
	// NodeIDs is sorted, so each layer starts in lexical order.

	// Direct predecessors per node, for barycenter computation.
	preds := make(map[string][]string, d.NodeCount())
	for _, eid := range d.EdgeIDs() {
		e, _ := d.Edge(eid)
		preds[e.To] = append(preds[e.To], e.From)
	}

	for li := 1; li < len(layers); li++ {
		pos := make(map[string]int, len(layers[li-1]))
		for i, id := range layers[li-1] {
			pos[id] = i
		}

		bary := make(map[string]barycenter, len(layers[li]))
		for _, id := range layers[li] {
			var b barycenter
			for _, p := range preds[id] {
				if i, ok := pos[p]; ok {
					b.sum += i
					b.count++
				}
			}
			bary[id] = b
		}

		slices.SortFunc(layers[li], func(a, b string) int {
			ba, bb := bary[a], bary[b]
			if ba.equal(bb) {
				return cmp.Compare(a, b)
			}
			if ba.less(bb) {
				return -1
			}
			return 1
		})
	}
	return layers
}
