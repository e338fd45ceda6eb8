package route

import (
	"slices"

	"github.com/gridflow-dev/gridflow/pkg/layout"
)

const (
	// footprintRadius expands a node anchor into its 3×3 keep-out rectangle.
	footprintRadius = 1

	// boundsMargin pads the projection's bounding box in every direction.
	boundsMargin = 4

	// hardRetryMargin is the extra padding the hard router allows itself
	// when the first search fails.
	hardRetryMargin = 20

	// softRetryMargin is the larger extra padding the weighted router
	// allows itself when the first search fails.
	softRetryMargin = 24
)

// anchor converts a placement into its grid point. Layers advance along x,
// in-layer indices along y; the factor 2 reserves every odd coordinate as
// street space.
func anchor(p layout.Placement) Point {
	return Point{X: p.Layer * 2, Y: p.Index * 2}
}

// projection is the obstacle map derived from a layout: the set of occupied
// cells, the node(s) owning each cell, and a padded bounding box covering
// them all. It is recomputed once per routing call and shared read-only
// across all edges of that call.
type projection struct {
	owners map[Point][]string // occupied cell -> owning node IDs, sorted
	bounds Rect
}

// project expands every placed node's anchor into its 3×3 footprint.
// Overlapping footprints record multiple owners per cell.
func project(l *layout.Layout) *projection {
	pr := &projection{owners: make(map[Point][]string)}
	first := true
	for _, layer := range l.Layers {
		for _, id := range layer {
			a := anchor(l.Placements[id])
			if first {
				pr.bounds = Rect{a.X, a.Y, a.X, a.Y}
				first = false
			}
			for dx := -footprintRadius; dx <= footprintRadius; dx++ {
				for dy := -footprintRadius; dy <= footprintRadius; dy++ {
					c := Point{a.X + dx, a.Y + dy}
					pr.owners[c] = append(pr.owners[c], id)
					pr.bounds = pr.bounds.include(c)
				}
			}
		}
	}
	pr.bounds = pr.bounds.expand(boundsMargin)
	for c := range pr.owners {
		slices.Sort(pr.owners[c])
	}
	return pr
}

// foreignCell reports whether cell c belongs to the footprint of any node
// other than the given two endpoints.
func (pr *projection) foreignCell(c Point, from, to string) bool {
	owners, ok := pr.owners[c]
	if !ok {
		return false
	}
	for _, o := range owners {
		if o != from && o != to {
			return true
		}
	}
	return false
}

// forEdge derives the per-edge obstacle set: the global occupied cells minus
// (a) cells owned exclusively by the edge's own endpoints and (b) the
// force-clear exit cells next to each endpoint. The force-clear step moves
// one street unit from each anchor toward the other endpoint — along x when
// the horizontal offset dominates, along y otherwise — so an endpoint always
// has at least one exit even when boxed in by other nodes' footprints.
func (pr *projection) forEdge(from, to string, a, b Point) map[Point]bool {
	blocked := make(map[Point]bool, len(pr.owners))
	for c := range pr.owners {
		if pr.foreignCell(c, from, to) {
			blocked[c] = true
		}
	}
	for _, c := range forceClearCells(a, b) {
		delete(blocked, c)
	}
	return blocked
}

// forceClearCells computes the guaranteed exit cell adjacent to each anchor.
// Self-loops (a == b) have no preferred direction and clear nothing.
func forceClearCells(a, b Point) []Point {
	if a == b {
		return nil
	}
	return []Point{exitStep(a, b), exitStep(b, a)}
}

// exitStep is the one-street-step move from anchor a toward anchor b.
func exitStep(a, b Point) Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	if abs(dx) >= abs(dy) && dx != 0 {
		return Point{a.X + sign(dx), a.Y}
	}
	return Point{a.X, a.Y + sign(dy)}
}
