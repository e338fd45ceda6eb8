package route

// The hard-constraint router: a 4-directional breadth-first search that
// produces one canonical shortest collision-free path per (start, goal,
// obstacle-set) triple. Determinism comes from the goal-biased neighbor
// visitation order, never from map iteration.

// legalStep reports whether a step may land on p. Node cells and obstacle
// cells are only enterable when they are the route's own start or goal.
func legalStep(p, start, goal Point, blocked map[Point]bool, bounds Rect) bool {
	if !bounds.contains(p) {
		return false
	}
	if p == start || p == goal {
		return true
	}
	if p.isNodeCell() {
		return false
	}
	return !blocked[p]
}

// neighborOrder returns the four unit steps from curr in canonical order:
// the axis with the larger remaining offset toward goal first, then the
// other goal-ward axis, then the remaining directions in the fixed detour
// order (vertical before horizontal).
func neighborOrder(curr, goal Point) [4]Point {
	dx, dy := goal.X-curr.X, goal.Y-curr.Y

	var order [4]Point
	n := 0
	push := func(d Point) {
		for i := 0; i < n; i++ {
			if order[i] == d {
				return
			}
		}
		order[n] = d
		n++
	}

	if abs(dx) > abs(dy) {
		if dx != 0 {
			push(Point{sign(dx), 0})
		}
		if dy != 0 {
			push(Point{0, sign(dy)})
		}
	} else {
		if dy != 0 {
			push(Point{0, sign(dy)})
		}
		if dx != 0 {
			push(Point{sign(dx), 0})
		}
	}
	// Fixed detour order: vertical before horizontal.
	push(Point{0, -1})
	push(Point{0, 1})
	push(Point{-1, 0})
	push(Point{1, 0})
	return order
}

// hardRoute finds a collision-free polyline from start to goal, retrying
// once with a wider bounding box before falling back to the deterministic
// 2–3 point shape. It never fails.
func (r *router) hardRoute(start, goal Point, blocked map[Point]bool) []Point {
	if path, ok := r.bfs(start, goal, blocked, r.obstacles.bounds); ok {
		return path
	}
	if path, ok := r.bfs(start, goal, blocked, r.obstacles.bounds.expand(hardRetryMargin)); ok {
		return path
	}
	return expandSegments(simpleFallback(start, goal))
}

// bfs runs the breadth-first search within bounds. The returned path is
// cell-by-cell, start and goal inclusive.
func (r *router) bfs(start, goal Point, blocked map[Point]bool, bounds Rect) ([]Point, bool) {
	if start == goal {
		return []Point{start}, true
	}
	if !bounds.contains(start) || !bounds.contains(goal) {
		return nil, false
	}

	s := r.scratch
	s.nextGen()
	s.visit(start, -1)

	queue := r.queue[:0]
	queue = append(queue, s.cellIndex(start))
	defer func() { r.queue = queue }()

	for head := 0; head < len(queue); head++ {
		curr := s.cellAt(queue[head])

		for _, d := range neighborOrder(curr, goal) {
			next := curr.add(d)
			if !legalStep(next, start, goal, blocked, bounds) {
				continue
			}
			if !s.visit(next, s.cellIndex(curr)) {
				continue
			}
			if next == goal {
				return s.walkBack(goal), true
			}
			queue = append(queue, s.cellIndex(next))
		}
	}
	return nil, false
}

// walkBack reconstructs the path ending at goal from the predecessor links.
func (s *scratch) walkBack(goal Point) []Point {
	var rev []Point
	for i := s.cellIndex(goal); i >= 0; i = s.prev[i] {
		rev = append(rev, s.cellAt(i))
	}
	path := make([]Point, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}

// simpleFallback is the deterministic last-resort polyline: the point itself
// when start equals goal, a straight segment when the two share an axis, and
// otherwise a single right-angle bend through the goal's x and the start's y.
func simpleFallback(start, goal Point) []Point {
	switch {
	case start == goal:
		return []Point{start}
	case start.X == goal.X || start.Y == goal.Y:
		return []Point{start, goal}
	default:
		return []Point{start, {goal.X, start.Y}, goal}
	}
}
