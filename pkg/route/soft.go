package route

import "container/heap"

// The soft-occupancy weighted router: a best-first search over a
// (cell, arrival-direction) state space that trades a little extra length
// for fewer bends and less corridor sharing. The arrival-direction dimension
// lets the cost function charge direction changes without path history.
//
// Transitions move two street-units at a time through a required midpoint:
// either straight (±2 along one axis) or around a corner (±1 on each axis).
// Node anchors sit at even-even coordinates, so the straight jumps keep the
// walk on the odd-coordinate street lattice while the corner jumps are what
// connect a route's own endpoints to that lattice — the shared node-cell
// legality rule makes corner landings illegal anywhere else.

type direction uint8

const (
	dirNone direction = iota
	dirHorizontal
	dirVertical
)

// directionCount sizes per-(cell, direction) scratch arrays.
const directionCount = 3

const (
	bendWeight       = 12
	congestionWeight = 16
	jumpLength       = 2
)

// jump is one candidate transition: the midpoint stepped through, the
// destination, and the arrival direction (the heading of the final
// street-unit).
type jump struct {
	mid, dest Point
	dir       direction
}

// unitSteps in the fixed detour order used throughout the package.
var unitSteps = [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

func axisOf(d Point) direction {
	if d.Y == 0 {
		return dirHorizontal
	}
	return dirVertical
}

// jumpsFrom enumerates the twelve transitions out of a cell: four straight
// jumps and eight corner jumps. Enumeration order never influences results;
// every tie is resolved by the comparator below.
func jumpsFrom(c Point, buf []jump) []jump {
	buf = buf[:0]
	for _, d := range unitSteps {
		mid := c.add(d)
		buf = append(buf, jump{mid: mid, dest: mid.add(d), dir: axisOf(d)})
		for _, e := range unitSteps {
			if e.X*d.X+e.Y*d.Y != 0 {
				continue // parallel or opposite, not a corner
			}
			buf = append(buf, jump{mid: mid, dest: mid.add(e), dir: axisOf(e)})
		}
	}
	return buf
}

// softNode is one reached state in the arena. The arena index doubles as the
// deterministic "parent-state index" tie-break.
type softNode struct {
	cell   Point
	dir    direction
	via    Point // midpoint of the jump that reached this state
	parent int32 // arena index of the predecessor state, -1 for the start

	length     int32
	bends      int32
	congestion int32
	weighted   int32 // length + bends*bendWeight + congestion*congestionWeight
}

// better reports whether candidate a should replace b for the same state.
// The comparison covers the full cost tuple and then the parent index and
// midpoint coordinates, so the outcome is independent of insertion order.
func (a *softNode) better(b *softNode) bool {
	if a.weighted != b.weighted {
		return a.weighted < b.weighted
	}
	if a.bends != b.bends {
		return a.bends < b.bends
	}
	if a.congestion != b.congestion {
		return a.congestion < b.congestion
	}
	if a.length != b.length {
		return a.length < b.length
	}
	if a.parent != b.parent {
		return a.parent < b.parent
	}
	if a.via.X != b.via.X {
		return a.via.X < b.via.X
	}
	return a.via.Y < b.via.Y
}

// softItem is a priority-queue entry. Entries carry a copy of the node's
// cost fields at push time; stale entries are skipped on pop.
type softItem struct {
	estimate   int32 // weighted + admissible Manhattan remainder
	weighted   int32
	bends      int32
	congestion int32
	length     int32
	parent     int32
	via        Point
	node       int32 // arena index
}

type softQueue []softItem

func (q softQueue) Len() int { return len(q) }

func (q softQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.estimate != b.estimate {
		return a.estimate < b.estimate
	}
	if a.weighted != b.weighted {
		return a.weighted < b.weighted
	}
	if a.bends != b.bends {
		return a.bends < b.bends
	}
	if a.congestion != b.congestion {
		return a.congestion < b.congestion
	}
	if a.length != b.length {
		return a.length < b.length
	}
	if a.parent != b.parent {
		return a.parent < b.parent
	}
	if a.via.X != b.via.X {
		return a.via.X < b.via.X
	}
	return a.via.Y < b.via.Y
}

func (q softQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *softQueue) Push(x any) { *q = append(*q, x.(softItem)) }

func (q *softQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// softRoute finds the lowest-weighted-cost polyline from start to goal.
// It tries the direct two-jump shortcut first, then the open search within
// the base box, the expanded box, and the base box again, before handing
// over to the scored fallback. It never fails.
func (r *router) softRoute(start, goal Point, blocked map[Point]bool) []Point {
	if path, ok := r.diagonalShortcut(start, goal, blocked); ok {
		return path
	}
	base := r.obstacles.bounds
	if path, ok := r.softSearch(start, goal, blocked, base); ok {
		return path
	}
	if path, ok := r.softSearch(start, goal, blocked, base.expand(softRetryMargin)); ok {
		return path
	}
	if path, ok := r.softSearch(start, goal, blocked, base); ok {
		return path
	}
	return r.scoredFallback(start, goal, blocked)
}

// jumpLegal applies the hard router's step legality to a jump's midpoint and
// destination, plus the occupancy hard-block: a cell whose congestion has
// reached blockedOccupancy is impassable regardless of cost, except at the
// route's own endpoints.
func (r *router) jumpLegal(p, start, goal Point, blocked map[Point]bool, bounds Rect) bool {
	if !legalStep(p, start, goal, blocked, bounds) {
		return false
	}
	if p == start || p == goal {
		return true
	}
	return r.occupancy.at(p) < blockedOccupancy
}

// diagonalShortcut handles the very common case of a goal exactly one
// diagonal away (offset ±2, ±2): two corner jumps through the single street
// intersection between the endpoints. Up to four midpoint combinations are
// scored with the search's own cost function and the best legal one is
// returned directly, avoiding an open search.
func (r *router) diagonalShortcut(start, goal Point, blocked map[Point]bool) ([]Point, bool) {
	dx, dy := goal.X-start.X, goal.Y-start.Y
	if abs(dx) != 2 || abs(dy) != 2 {
		return nil, false
	}
	corner := Point{start.X + sign(dx), start.Y + sign(dy)}
	bounds := r.obstacles.bounds
	if !r.jumpLegal(corner, start, goal, blocked, bounds) {
		return nil, false
	}

	entries := [2]Point{{start.X + sign(dx), start.Y}, {start.X, start.Y + sign(dy)}}
	exits := [2]Point{{goal.X - sign(dx), goal.Y}, {goal.X, goal.Y - sign(dy)}}

	var best *softNode
	var bestPath []Point
	for _, m1 := range entries {
		if !r.jumpLegal(m1, start, goal, blocked, bounds) {
			continue
		}
		arr1 := axisOf(Point{corner.X - m1.X, corner.Y - m1.Y})
		for _, m2 := range exits {
			if !r.jumpLegal(m2, start, goal, blocked, bounds) {
				continue
			}
			arr2 := axisOf(Point{goal.X - m2.X, goal.Y - m2.Y})

			cand := softNode{
				cell:       goal,
				via:        m1,
				length:     2 * jumpLength,
				congestion: int32(r.occupancy.at(m1) + r.occupancy.at(corner) + r.occupancy.at(m2) + r.occupancy.at(goal)),
			}
			if arr1 != arr2 {
				cand.bends = 1
			}
			cand.weighted = cand.length + cand.bends*bendWeight + cand.congestion*congestionWeight
			if best == nil || shortcutBetter(&cand, m2, best, bestPath[3]) {
				c := cand
				best = &c
				bestPath = []Point{start, m1, corner, m2, goal}
			}
		}
	}
	if best == nil {
		return nil, false
	}
	return bestPath, true
}

// shortcutBetter orders shortcut candidates: full cost tuple first, then the
// two midpoints' coordinates.
func shortcutBetter(a *softNode, am2 Point, b *softNode, bm2 Point) bool {
	if a.weighted != b.weighted {
		return a.weighted < b.weighted
	}
	if a.bends != b.bends {
		return a.bends < b.bends
	}
	if a.congestion != b.congestion {
		return a.congestion < b.congestion
	}
	if a.via.X != b.via.X {
		return a.via.X < b.via.X
	}
	if a.via.Y != b.via.Y {
		return a.via.Y < b.via.Y
	}
	if am2.X != bm2.X {
		return am2.X < bm2.X
	}
	return am2.Y < bm2.Y
}

// softSearch runs the weighted A* within bounds. The returned path is
// cell-by-cell, start and goal inclusive.
func (r *router) softSearch(start, goal Point, blocked map[Point]bool, bounds Rect) ([]Point, bool) {
	if start == goal {
		return []Point{start}, true
	}
	if !bounds.contains(start) || !bounds.contains(goal) {
		return nil, false
	}

	s := r.scratch
	s.nextGen()
	r.arena = r.arena[:0]
	r.pq = r.pq[:0]

	r.arena = append(r.arena, softNode{cell: start, dir: dirNone, via: start, parent: -1})
	s.setStateSlot(start, dirNone, 0)
	heap.Push(&r.pq, softItem{estimate: int32(manhattan(start, goal)), parent: -1, via: start, node: 0})

	var jumps []jump
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(softItem)
		n := r.arena[item.node]
		if item.weighted != n.weighted || item.bends != n.bends ||
			item.congestion != n.congestion || item.length != n.length ||
			item.parent != n.parent || item.via != n.via {
			continue // superseded by a better path to the same state
		}
		if n.cell == goal {
			return r.rebuild(item.node, start), true
		}

		jumps = jumpsFrom(n.cell, jumps)
		for _, j := range jumps {
			if !r.jumpLegal(j.mid, start, goal, blocked, bounds) ||
				!r.jumpLegal(j.dest, start, goal, blocked, bounds) {
				continue
			}
			cand := softNode{
				cell:       j.dest,
				dir:        j.dir,
				via:        j.mid,
				parent:     item.node,
				length:     n.length + jumpLength,
				bends:      n.bends,
				congestion: n.congestion + int32(r.occupancy.at(j.mid)+r.occupancy.at(j.dest)),
			}
			if n.dir != dirNone && n.dir != j.dir {
				cand.bends++ // the first move is free
			}
			cand.weighted = cand.length + cand.bends*bendWeight + cand.congestion*congestionWeight
			r.relax(goal, cand)
		}
	}
	return nil, false
}

// relax records cand as the best-known path to its state if it beats the
// incumbent, pushing a fresh queue entry either way.
func (r *router) relax(goal Point, cand softNode) {
	s := r.scratch
	slot := s.stateSlot(cand.cell, cand.dir)
	if slot < 0 {
		slot = int32(len(r.arena))
		r.arena = append(r.arena, cand)
		s.setStateSlot(cand.cell, cand.dir, slot)
	} else {
		if !cand.better(&r.arena[slot]) {
			return
		}
		r.arena[slot] = cand
	}
	heap.Push(&r.pq, softItem{
		estimate:   cand.weighted + int32(manhattan(cand.cell, goal)),
		weighted:   cand.weighted,
		bends:      cand.bends,
		congestion: cand.congestion,
		length:     cand.length,
		parent:     cand.parent,
		via:        cand.via,
		node:       slot,
	})
}

// rebuild reconstructs the cell-by-cell path ending at the given arena node.
func (r *router) rebuild(idx int32, start Point) []Point {
	var rev []Point
	for i := idx; i >= 0; i = r.arena[i].parent {
		n := r.arena[i]
		if n.parent < 0 {
			break
		}
		rev = append(rev, n.cell, n.via)
	}
	path := make([]Point, 0, len(rev)+1)
	path = append(path, start)
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, rev[i])
	}
	return path
}
