package route

// The scored fallback: when even the expanded weighted search cannot connect
// a pair, six fixed polyline shapes are scored against the obstacle and
// congestion state and the least-bad one wins. Routing therefore never fails;
// a single unreachable pair must not abort rendering of a whole diagram.

// fallbackScore orders candidate shapes. Lower tuples are better; the
// comparison is strictly lexicographic.
type fallbackScore struct {
	collisions int // cells inside the per-edge obstacle set
	nodeCells  int // parity-invalid node-cell crossings
	congestion int // summed occupancy along the shape
	bends      int
	length     int
}

func (a fallbackScore) better(b fallbackScore) bool {
	if a.collisions != b.collisions {
		return a.collisions < b.collisions
	}
	if a.nodeCells != b.nodeCells {
		return a.nodeCells < b.nodeCells
	}
	if a.congestion != b.congestion {
		return a.congestion < b.congestion
	}
	if a.bends != b.bends {
		return a.bends < b.bends
	}
	return a.length < b.length
}

// scoredFallback picks the best of six candidate shapes: the two direct
// L-bends and four overshoot detours that swing one street pair past the
// far side of an axis before coming back. Ties keep the earlier candidate,
// so the choice is deterministic.
func (r *router) scoredFallback(start, goal Point, blocked map[Point]bool) []Point {
	if start == goal {
		return []Point{start}
	}

	loX := min(start.X, goal.X) - 2
	hiX := max(start.X, goal.X) + 2
	loY := min(start.Y, goal.Y) - 2
	hiY := max(start.Y, goal.Y) + 2

	candidates := [][]Point{
		{start, {goal.X, start.Y}, goal},
		{start, {start.X, goal.Y}, goal},
		{start, {hiX, start.Y}, {hiX, goal.Y}, goal},
		{start, {loX, start.Y}, {loX, goal.Y}, goal},
		{start, {start.X, hiY}, {goal.X, hiY}, goal},
		{start, {start.X, loY}, {goal.X, loY}, goal},
	}

	var best []Point
	var bestScore fallbackScore
	for _, shape := range candidates {
		path := expandSegments(shape)
		score := r.scoreShape(path, start, goal, blocked)
		if best == nil || score.better(bestScore) {
			best = path
			bestScore = score
		}
	}
	return best
}

// scoreShape walks a cell-by-cell path and tallies its score. Endpoints are
// exempt from the collision and node-cell counts, matching step legality.
func (r *router) scoreShape(path []Point, start, goal Point, blocked map[Point]bool) fallbackScore {
	score := fallbackScore{length: len(path) - 1}
	for i, p := range path {
		score.congestion += r.occupancy.at(p)
		if p == start || p == goal {
			continue
		}
		if blocked[p] {
			score.collisions++
		}
		if p.isNodeCell() {
			score.nodeCells++
		}
		if i > 0 && i < len(path)-1 {
			prev, next := path[i-1], path[i+1]
			if !(prev.X == p.X && p.X == next.X) && !(prev.Y == p.Y && p.Y == next.Y) {
				score.bends++
			}
		}
	}
	return score
}
