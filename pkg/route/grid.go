// Package route computes collision-avoiding orthogonal polylines for every
// edge of a laid-out flowchart diagram.
//
// Nodes occupy only even (x, y) coordinates of an integer routing grid:
// x = layer*2 and y = index*2. A coordinate with both components even is a
// "node cell"; every other coordinate is a "street" that edges may traverse.
// Each placed node projects a 3×3 keep-out footprint around its anchor, and
// edges are routed through the remaining streets one at a time, in a fixed
// stable order, by either a breadth-first hard-constraint router or a
// congestion-aware weighted router.
//
// The whole pass is purely functional over its inputs and byte-for-byte
// deterministic: identical diagrams (as sets, regardless of insertion order)
// always produce identical routes. Routing never fails; unreachable pairs
// fall back to deterministic 2–4 point polylines.
package route

// Point is an integer coordinate on the routing grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// isNodeCell reports whether both coordinates are even, i.e. the cell is
// reserved for node anchors and their footprints rather than routing.
func (p Point) isNodeCell() bool {
	return p.X%2 == 0 && p.Y%2 == 0
}

// add returns p translated by d.
func (p Point) add(d Point) Point {
	return Point{p.X + d.X, p.Y + d.Y}
}

// Rect is an inclusive axis-aligned bounding box on the routing grid.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// contains reports whether p lies within the rectangle, borders included.
func (r Rect) contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// expand grows the rectangle by n cells in every direction.
func (r Rect) expand(n int) Rect {
	return Rect{r.MinX - n, r.MinY - n, r.MaxX + n, r.MaxY + n}
}

// include grows the rectangle to cover p.
func (r Rect) include(p Point) Rect {
	return Rect{
		MinX: min(r.MinX, p.X),
		MinY: min(r.MinY, p.Y),
		MaxX: max(r.MaxX, p.X),
		MaxY: max(r.MaxY, p.Y),
	}
}

func (r Rect) width() int  { return r.MaxX - r.MinX + 1 }
func (r Rect) height() int { return r.MaxY - r.MinY + 1 }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// manhattan is the L1 distance between two points. It is an admissible
// heuristic for the weighted router because every unit of travel costs at
// least one and the bend/congestion terms are non-negative.
func manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// compress removes collinear interior points from a cell-by-cell path,
// leaving only the endpoints and the turning points.
func compress(path []Point) []Point {
	if len(path) <= 2 {
		return path
	}
	out := make([]Point, 0, len(path))
	out = append(out, path[0])
	for i := 1; i < len(path)-1; i++ {
		prev, curr, next := path[i-1], path[i], path[i+1]
		sameX := prev.X == curr.X && curr.X == next.X
		sameY := prev.Y == curr.Y && curr.Y == next.Y
		if !sameX && !sameY {
			out = append(out, curr)
		}
	}
	return append(out, path[len(path)-1])
}

// expandSegments walks a compressed polyline cell by cell, re-inserting the
// intermediate points of each straight segment. Used when a fallback shape
// needs per-cell scoring or congestion marking.
func expandSegments(points []Point) []Point {
	if len(points) == 0 {
		return nil
	}
	out := []Point{points[0]}
	for i := 1; i < len(points); i++ {
		from, to := points[i-1], points[i]
		step := Point{sign(to.X - from.X), sign(to.Y - from.Y)}
		for p := from; p != to; {
			p = p.add(step)
			out = append(out, p)
		}
	}
	return out
}
