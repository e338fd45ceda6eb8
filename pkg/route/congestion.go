package route

const (
	// maxOccupancy caps the per-cell congestion counter.
	maxOccupancy = 8

	// blockedOccupancy hard-blocks a cell for the weighted router,
	// independent of cost, except at a route's own endpoints.
	blockedOccupancy = 9

	// Weights applied by congestion marking: a routed cell itself and its
	// four neighbors.
	cellWeight     = 2
	neighborWeight = 1
)

// congestionGrid is a dense per-cell occupancy counter parallel to the
// projection's bounding box. It is rebuilt fresh for every top-level routing
// call, written to after each edge's route is accepted, and read only by the
// weighted router's congestion penalty. Cells outside the box read as 0 and
// ignore writes.
type congestionGrid struct {
	bounds Rect
	cells  []byte
}

func newCongestionGrid(bounds Rect) *congestionGrid {
	return &congestionGrid{
		bounds: bounds,
		cells:  make([]byte, bounds.width()*bounds.height()),
	}
}

func (g *congestionGrid) index(p Point) int {
	return (p.Y-g.bounds.MinY)*g.bounds.width() + (p.X - g.bounds.MinX)
}

// at returns the occupancy of p, 0 outside the grid.
func (g *congestionGrid) at(p Point) int {
	if !g.bounds.contains(p) {
		return 0
	}
	return int(g.cells[g.index(p)])
}

// bump adds w to the cell's occupancy, capped at maxOccupancy. Node cells
// never accumulate occupancy; only streets do.
func (g *congestionGrid) bump(p Point, w int) {
	if !g.bounds.contains(p) || p.isNodeCell() {
		return
	}
	i := g.index(p)
	v := int(g.cells[i]) + w
	if v > maxOccupancy {
		v = maxOccupancy
	}
	g.cells[i] = byte(v)
}

// mark records an accepted route into the grid: every cell of the
// cell-by-cell path gains cellWeight and each of its four neighbors gains
// neighborWeight. This greedy online accumulation is what steers later edges
// away from corridors already in use; earlier edges are never revisited.
func (g *congestionGrid) mark(path []Point) {
	for _, p := range path {
		g.bump(p, cellWeight)
		g.bump(Point{p.X + 1, p.Y}, neighborWeight)
		g.bump(Point{p.X - 1, p.Y}, neighborWeight)
		g.bump(Point{p.X, p.Y + 1}, neighborWeight)
		g.bump(Point{p.X, p.Y - 1}, neighborWeight)
	}
}
