package route

import (
	"fmt"
	"slices"

	"github.com/gridflow-dev/gridflow/pkg/diagram"
	"github.com/gridflow-dev/gridflow/pkg/layout"
)

// Density gate: the weighted router only pays off once enough edges exist to
// make shared corridors likely. Sparse diagrams route every edge with the
// hard-constraint BFS.
const softMinEdges = 4

// EdgeRoute pairs an edge ID with its routed polyline.
type EdgeRoute struct {
	ID     string  `json:"id"`
	Points []Point `json:"points"`
}

// router carries the per-call routing state: the shared obstacle projection,
// the congestion grid, and the reusable search scratch. One router serves
// exactly one top-level call; independent calls share nothing and may run
// concurrently.
type router struct {
	obstacles *projection
	occupancy *congestionGrid
	scratch   *scratch

	queue []int32    // hard router BFS queue
	arena []softNode // soft router state arena
	pq    softQueue  // soft router priority queue
}

func newRouter(l *layout.Layout) *router {
	pr := project(l)
	return &router{
		obstacles: pr,
		occupancy: newCongestionGrid(pr.bounds),
		scratch:   newScratch(pr.bounds),
	}
}

// All routes every edge of the diagram against the given layout and returns
// the polylines keyed by edge ID. The layout must have been produced by
// [layout.Build] for the same diagram; a node that appears in an edge but has
// no placement is a programming-contract violation and panics.
//
// All is pure and deterministic: identical inputs produce byte-identical
// polylines, independent of node/edge insertion order.
func All(d *diagram.Diagram, l *layout.Layout) map[string][]Point {
	return compute(d, l)
}

// AllOrdered routes every edge and returns the results in the diagram's own
// edge-iteration order, for renderer hot paths that want a stable slice
// rather than a map. The polylines are byte-identical to [All]'s for the
// same edge.
func AllOrdered(d *diagram.Diagram, l *layout.Layout) []EdgeRoute {
	routes := compute(d, l)
	out := make([]EdgeRoute, 0, len(routes))
	for _, id := range d.EdgeIDs() {
		out = append(out, EdgeRoute{ID: id, Points: routes[id]})
	}
	return out
}

// compute performs the single routing pass: edges sorted by (source,
// destination, edge ID) — never declaration order — each routed hard or soft
// per the density gate, with the congestion grid updated after every
// accepted route.
func compute(d *diagram.Diagram, l *layout.Layout) map[string][]Point {
	r := newRouter(l)

	ids := slices.Clone(d.EdgeIDs())
	slices.SortFunc(ids, func(a, b string) int {
		ea, _ := d.Edge(a)
		eb, _ := d.Edge(b)
		if ea.From != eb.From {
			if ea.From < eb.From {
				return -1
			}
			return 1
		}
		if ea.To != eb.To {
			if ea.To < eb.To {
				return -1
			}
			return 1
		}
		if a < b {
			return -1
		}
		return 1
	})

	dense := d.EdgeCount() >= softMinEdges &&
		(d.EdgeCount() > d.NodeCount() || d.EdgeCount()*2 >= d.NodeCount())

	routes := make(map[string][]Point, len(ids))
	for _, id := range ids {
		e, _ := d.Edge(id)
		start := mustAnchor(l, e.From)
		goal := mustAnchor(l, e.To)

		blocked := r.obstacles.forEdge(e.From, e.To, start, goal)

		var path []Point
		if dense {
			path = r.softRoute(start, goal, blocked)
		} else {
			path = r.hardRoute(start, goal, blocked)
		}

		r.occupancy.mark(path)
		routes[id] = compress(path)
	}
	return routes
}

// mustAnchor resolves a node's grid anchor. A missing placement means the
// layout and diagram are out of sync, which is a caller bug, not a
// recoverable condition.
func mustAnchor(l *layout.Layout, node string) Point {
	p, ok := l.Placements[node]
	if !ok {
		panic(fmt.Sprintf("route: node %q has no placement in layout", node))
	}
	return anchor(p)
}
