package route

import (
	"reflect"
	"testing"
)

func TestPoint_IsNodeCell(t *testing.T) {
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{0, 0}, true},
		{Point{2, 4}, true},
		{Point{-2, 0}, true},
		{Point{1, 0}, false},
		{Point{0, 1}, false},
		{Point{1, 1}, false},
		{Point{-1, -3}, false},
		{Point{-2, -4}, true},
	}
	for _, tt := range tests {
		if got := tt.p.isNodeCell(); got != tt.want {
			t.Errorf("isNodeCell(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{MinX: -1, MinY: -1, MaxX: 3, MaxY: 2}
	if !r.contains(Point{-1, -1}) || !r.contains(Point{3, 2}) {
		t.Error("borders must be inside")
	}
	if r.contains(Point{4, 0}) || r.contains(Point{0, -2}) {
		t.Error("points outside must not be contained")
	}
}

func TestRect_Expand(t *testing.T) {
	r := Rect{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}.expand(3)
	want := Rect{MinX: -3, MinY: -3, MaxX: 5, MaxY: 5}
	if r != want {
		t.Errorf("expand(3) = %+v, want %+v", r, want)
	}
}

func TestCompress(t *testing.T) {
	tests := []struct {
		name string
		in   []Point
		want []Point
	}{
		{
			"empty",
			nil,
			nil,
		},
		{
			"single point",
			[]Point{{0, 0}},
			[]Point{{0, 0}},
		},
		{
			"two points",
			[]Point{{0, 0}, {1, 0}},
			[]Point{{0, 0}, {1, 0}},
		},
		{
			"straight run",
			[]Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
			[]Point{{0, 0}, {3, 0}},
		},
		{
			"one bend",
			[]Point{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}},
			[]Point{{0, 0}, {2, 0}, {2, 2}},
		},
		{
			"staircase keeps every corner",
			[]Point{{0, 0}, {1, 0}, {1, 1}, {2, 1}, {2, 2}},
			[]Point{{0, 0}, {1, 0}, {1, 1}, {2, 1}, {2, 2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compress(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("compress(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandSegments(t *testing.T) {
	in := []Point{{0, 0}, {3, 0}, {3, -2}}
	want := []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {3, -1}, {3, -2}}
	if got := expandSegments(in); !reflect.DeepEqual(got, want) {
		t.Errorf("expandSegments(%v) = %v, want %v", in, got, want)
	}
}

func TestExpandSegments_InverseOfCompress(t *testing.T) {
	cellPath := []Point{{0, 0}, {1, 0}, {1, 1}, {1, 2}, {2, 2}, {3, 2}}
	if got := expandSegments(compress(cellPath)); !reflect.DeepEqual(got, cellPath) {
		t.Errorf("expand(compress(p)) = %v, want %v", got, cellPath)
	}
}

func TestManhattan(t *testing.T) {
	if got := manhattan(Point{-1, 2}, Point{3, -1}); got != 7 {
		t.Errorf("manhattan = %d, want 7", got)
	}
}
