package route

// scratch holds the per-call search buffers, sized once for the widest
// bounding box any retry may use and shared by every edge routed in one
// top-level call. Instead of wiping the arrays between searches, nextGen
// bumps a generation counter and stale entries are treated as unvisited.
// This is purely a performance optimization; results are identical to
// allocating fresh buffers per edge.
type scratch struct {
	bounds Rect // widest box, base projection bounds + softRetryMargin

	gen      uint32
	seen     []uint32 // hard router: visit generation per cell
	prev     []int32  // hard router: predecessor cell index per cell
	stateGen []uint32 // soft router: visit generation per (cell, direction)
	stateIdx []int32  // soft router: arena index per (cell, direction)
}

func newScratch(base Rect) *scratch {
	b := base.expand(softRetryMargin)
	n := b.width() * b.height()
	return &scratch{
		bounds:   b,
		seen:     make([]uint32, n),
		prev:     make([]int32, n),
		stateGen: make([]uint32, n*directionCount),
		stateIdx: make([]int32, n*directionCount),
	}
}

// nextGen invalidates all previous search state.
func (s *scratch) nextGen() {
	s.gen++
}

func (s *scratch) cellIndex(p Point) int32 {
	return int32((p.Y-s.bounds.MinY)*s.bounds.width() + (p.X - s.bounds.MinX))
}

func (s *scratch) cellAt(i int32) Point {
	w := s.bounds.width()
	return Point{
		X: s.bounds.MinX + int(i)%w,
		Y: s.bounds.MinY + int(i)/w,
	}
}

// visit marks a cell for the hard router and records its predecessor.
// Returns false if the cell was already visited in this generation.
func (s *scratch) visit(p Point, from int32) bool {
	i := s.cellIndex(p)
	if s.seen[i] == s.gen {
		return false
	}
	s.seen[i] = s.gen
	s.prev[i] = from
	return true
}

// stateSlot returns the arena index stored for (cell, direction) in this
// generation, or -1 when the state has not been reached yet.
func (s *scratch) stateSlot(p Point, dir direction) int32 {
	i := s.cellIndex(p)*directionCount + int32(dir)
	if s.stateGen[i] != s.gen {
		return -1
	}
	return s.stateIdx[i]
}

// setStateSlot records the arena index for (cell, direction).
func (s *scratch) setStateSlot(p Point, dir direction, idx int32) {
	i := s.cellIndex(p)*directionCount + int32(dir)
	s.stateGen[i] = s.gen
	s.stateIdx[i] = idx
}
