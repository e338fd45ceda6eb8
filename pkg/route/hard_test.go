package route

import (
	"reflect"
	"testing"
)

// checkPath asserts the basic validity of a cell-by-cell route: correct
// endpoints, unit steps, and no interior node cells or blocked cells.
func checkPath(t *testing.T, path []Point, start, goal Point, blocked map[Point]bool) {
	t.Helper()
	if len(path) == 0 {
		t.Fatal("empty path")
	}
	if path[0] != start {
		t.Errorf("path starts at %v, want %v", path[0], start)
	}
	if path[len(path)-1] != goal {
		t.Errorf("path ends at %v, want %v", path[len(path)-1], goal)
	}
	for i := 1; i < len(path); i++ {
		if manhattan(path[i-1], path[i]) != 1 {
			t.Errorf("step %d: %v -> %v is not a unit step", i, path[i-1], path[i])
		}
	}
	for _, p := range path[1 : len(path)-1] {
		if p.isNodeCell() {
			t.Errorf("interior point %v is a node cell", p)
		}
		if blocked[p] {
			t.Errorf("interior point %v is blocked", p)
		}
	}
}

func TestHardRoute_StartEqualsGoal(t *testing.T) {
	r := newRouter(makeLayout([][]string{{"a"}}))
	got := r.hardRoute(Point{0, 0}, Point{0, 0}, map[Point]bool{})
	want := []Point{{0, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("hardRoute = %v, want %v", got, want)
	}
}

func TestHardRoute_AdjacentNodes(t *testing.T) {
	r := newRouter(makeLayout([][]string{{"a"}, {"b"}}))
	got := r.hardRoute(Point{0, 0}, Point{2, 0}, map[Point]bool{})
	want := []Point{{0, 0}, {1, 0}, {2, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("hardRoute = %v, want %v", got, want)
	}
}

func TestHardRoute_CanonicalDetourAroundNodeCell(t *testing.T) {
	// (0,0) to (4,0): the node cell (2,0) interrupts the straight corridor,
	// so the shortest route is 6 steps. The goal-biased neighbor order makes
	// the northern detour canonical.
	r := newRouter(makeLayout([][]string{{"a"}, {"b"}, {"c"}}))
	got := r.hardRoute(Point{0, 0}, Point{4, 0}, map[Point]bool{})
	want := []Point{{0, 0}, {1, 0}, {1, -1}, {2, -1}, {3, -1}, {3, 0}, {4, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("hardRoute = %v, want %v", got, want)
	}
}

func TestHardRoute_AvoidsForeignFootprint(t *testing.T) {
	l := makeLayout([][]string{{"a"}, {"b"}, {"c"}})
	r := newRouter(l)
	start, goal := Point{0, 0}, Point{4, 0}
	blocked := r.obstacles.forEdge("a", "c", start, goal)

	path := r.hardRoute(start, goal, blocked)
	checkPath(t, path, start, goal, blocked)

	// b's footprint is x 1..3, y -1..1: no interior point may intrude
	// except the force-cleared exits (1,0) and (3,0).
	for _, p := range path[1 : len(path)-1] {
		inFootprint := p.X >= 1 && p.X <= 3 && p.Y >= -1 && p.Y <= 1
		if inFootprint && p != (Point{1, 0}) && p != (Point{3, 0}) {
			t.Errorf("point %v intrudes into b's footprint", p)
		}
	}
}

func TestHardRoute_RetryWithWiderBounds(t *testing.T) {
	// A wall across the full base box forces the first search to fail; the
	// widened retry goes around the wall's ends.
	l := makeLayout([][]string{{"a"}, {"b"}, {"c"}})
	r := newRouter(l)
	start, goal := Point{0, 0}, Point{4, 0}

	blocked := make(map[Point]bool)
	for y := r.obstacles.bounds.MinY; y <= r.obstacles.bounds.MaxY; y++ {
		blocked[Point{1, y}] = true
	}

	if _, ok := r.bfs(start, goal, blocked, r.obstacles.bounds); ok {
		t.Fatal("base search succeeded, wall is not sealing the box")
	}

	path := r.hardRoute(start, goal, blocked)
	checkPath(t, path, start, goal, blocked)
	outside := false
	for _, p := range path {
		if p.Y < r.obstacles.bounds.MinY || p.Y > r.obstacles.bounds.MaxY {
			outside = true
		}
	}
	if !outside {
		t.Error("path never left the base box, expected a detour around the wall")
	}
}

func TestHardRoute_FallbackWhenSealed(t *testing.T) {
	// Wall across the widened box too: only the deterministic fallback
	// shape remains, expanded cell by cell.
	l := makeLayout([][]string{{"a"}, {"b"}, {"c"}})
	r := newRouter(l)
	start, goal := Point{0, 0}, Point{4, 0}

	wide := r.obstacles.bounds.expand(hardRetryMargin)
	blocked := make(map[Point]bool)
	for y := wide.MinY; y <= wide.MaxY; y++ {
		blocked[Point{1, y}] = true
	}

	got := r.hardRoute(start, goal, blocked)
	want := []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("hardRoute = %v, want %v", got, want)
	}
}

func TestNeighborOrder(t *testing.T) {
	tests := []struct {
		name       string
		curr, goal Point
		want       [4]Point
	}{
		{"east dominant", Point{0, 0}, Point{4, 0}, [4]Point{{1, 0}, {0, -1}, {0, 1}, {-1, 0}}},
		{"south dominant", Point{0, 0}, Point{0, 4}, [4]Point{{0, 1}, {0, -1}, {-1, 0}, {1, 0}}},
		{"east then south", Point{0, 0}, Point{3, 2}, [4]Point{{1, 0}, {0, 1}, {0, -1}, {-1, 0}}},
		{"tie goes vertical", Point{0, 0}, Point{2, 2}, [4]Point{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}},
		{"at goal", Point{1, 1}, Point{1, 1}, [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := neighborOrder(tt.curr, tt.goal); got != tt.want {
				t.Errorf("neighborOrder(%v, %v) = %v, want %v", tt.curr, tt.goal, got, tt.want)
			}
		})
	}
}

func TestSimpleFallback(t *testing.T) {
	tests := []struct {
		name        string
		start, goal Point
		want        []Point
	}{
		{"same point", Point{2, 2}, Point{2, 2}, []Point{{2, 2}}},
		{"shared row", Point{0, 0}, Point{6, 0}, []Point{{0, 0}, {6, 0}}},
		{"shared column", Point{0, 0}, Point{0, 4}, []Point{{0, 0}, {0, 4}}},
		{"right angle", Point{0, 0}, Point{4, 2}, []Point{{0, 0}, {4, 0}, {4, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := simpleFallback(tt.start, tt.goal); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("simpleFallback(%v, %v) = %v, want %v", tt.start, tt.goal, got, tt.want)
			}
		})
	}
}

func TestLegalStep(t *testing.T) {
	bounds := Rect{MinX: -5, MinY: -5, MaxX: 5, MaxY: 5}
	start, goal := Point{0, 0}, Point{4, 0}
	blocked := map[Point]bool{{1, 1}: true}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"street", Point{1, 0}, true},
		{"start is its own node cell", Point{0, 0}, true},
		{"goal is its own node cell", Point{4, 0}, true},
		{"other node cell", Point{2, 0}, false},
		{"blocked street", Point{1, 1}, false},
		{"out of bounds", Point{6, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := legalStep(tt.p, start, goal, blocked, bounds); got != tt.want {
				t.Errorf("legalStep(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}
