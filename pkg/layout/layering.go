package layout

import (
	"slices"

	"github.com/gridflow-dev/gridflow/pkg/diagram"
)

// topoOrder validates edge endpoints and produces a deterministic topological
// order of all node IDs plus the sorted adjacency (successor) lists.
//
// The order is a variant of Kahn's algorithm: the ready set is re-sorted on
// every pick so the lexically smallest ready node always comes next. Edges
// are examined in lexical edge-ID order, so the first invalid endpoint
// reported is stable across runs.
func topoOrder(d *diagram.Diagram) (order []string, succ map[string][]string, err error) {
	succ = make(map[string][]string, d.NodeCount())
	inDegree := make(map[string]int, d.NodeCount())

	for _, eid := range d.EdgeIDs() {
		e, _ := d.Edge(eid)
		if !d.HasNode(e.From) {
			return nil, nil, &UnknownNodeError{Edge: eid, Role: RoleSource, Node: e.From}
		}
		if !d.HasNode(e.To) {
			return nil, nil, &UnknownNodeError{Edge: eid, Role: RoleDestination, Node: e.To}
		}
		succ[e.From] = append(succ[e.From], e.To)
		inDegree[e.To]++
	}
	// Destinations sorted lexically per source; a node can appear more than
	// once when parallel edges exist, which longest-path layering tolerates.
	for from := range succ {
		slices.Sort(succ[from])
	}

	ready := make([]string, 0, d.NodeCount())
	for _, id := range d.NodeIDs() {
		if inDegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	order = make([]string, 0, d.NodeCount())
	for len(ready) > 0 {
		slices.Sort(ready)
		curr := ready[0]
		ready = ready[1:]
		order = append(order, curr)

		for _, next := range succ[curr] {
			inDegree[next]--
			if inDegree[next] == 0 {
				ready = append(ready, next)
			}
		}
	}

	if len(order) < d.NodeCount() {
		// Whatever kept positive in-degree is exactly the set of cycle
		// participants.
		var stuck []string
		for _, id := range d.NodeIDs() {
			if inDegree[id] > 0 {
				stuck = append(stuck, id)
			}
		}
		return nil, nil, &CycleError{Nodes: stuck}
	}
	return order, succ, nil
}

// assignLayers computes longest-path depths over a topological order.
// All nodes seed at layer 0; walking the order and relaxing layer[v] to
// layer[u]+1 for each edge u→v yields the longest path from any source,
// which guarantees layer(v) > layer(u) for every edge.
func assignLayers(order []string, succ map[string][]string) map[string]int {
	depth := make(map[string]int, len(order))
	for _, u := range order {
		for _, v := range succ[u] {
			if d := depth[u] + 1; d > depth[v] {
				depth[v] = d
			}
		}
	}
	return depth
}
