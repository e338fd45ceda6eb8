package layout

import (
	"reflect"
	"testing"

	"github.com/gridflow-dev/gridflow/pkg/diagram"
)

func TestOrderLayers_BarycenterReorders(t *testing.T) {
	// Layer 0 is [a, b]. In layer 1, y's only predecessor is b (position 1)
	// and z's only predecessor is a (position 0), so z must come first even
	// though the lexical seed puts y first.
	d := diagram.New()
	mustAdd(t, d.AddNode("a", diagram.Node{}))
	mustAdd(t, d.AddNode("b", diagram.Node{}))
	mustAdd(t, d.AddNode("y", diagram.Node{}))
	mustAdd(t, d.AddNode("z", diagram.Node{}))
	mustAdd(t, d.AddEdge("e1", diagram.Edge{From: "b", To: "y"}))
	mustAdd(t, d.AddEdge("e2", diagram.Edge{From: "a", To: "z"}))

	l, err := Build(d)
	if err != nil {
		t.Fatalf("Build() error = %v, want nil", err)
	}
	want := [][]string{{"a", "b"}, {"z", "y"}}
	if !reflect.DeepEqual(l.Layers, want) {
		t.Errorf("Layers = %v, want %v", l.Layers, want)
	}
}

func TestOrderLayers_FractionalBarycenter(t *testing.T) {
	// y averages positions {0, 1} = 1/2, z sits at exactly 1. The comparison
	// must hold 1/2 < 1 without rounding, so y comes first.
	d := diagram.New()
	mustAdd(t, d.AddNode("a", diagram.Node{}))
	mustAdd(t, d.AddNode("b", diagram.Node{}))
	mustAdd(t, d.AddNode("y", diagram.Node{}))
	mustAdd(t, d.AddNode("z", diagram.Node{}))
	mustAdd(t, d.AddEdge("e1", diagram.Edge{From: "a", To: "y"}))
	mustAdd(t, d.AddEdge("e2", diagram.Edge{From: "b", To: "y"}))
	mustAdd(t, d.AddEdge("e3", diagram.Edge{From: "b", To: "z"}))

	l, err := Build(d)
	if err != nil {
		t.Fatalf("Build() error = %v, want nil", err)
	}
	want := [][]string{{"a", "b"}, {"y", "z"}}
	if !reflect.DeepEqual(l.Layers, want) {
		t.Errorf("Layers = %v, want %v", l.Layers, want)
	}
}

func TestOrderLayers_EqualBarycenterTieBreaksLexically(t *testing.T) {
	// Both children hang off the same single parent: identical barycenters,
	// lexical order decides.
	d := diagram.New()
	mustAdd(t, d.AddNode("a", diagram.Node{}))
	mustAdd(t, d.AddNode("q", diagram.Node{}))
	mustAdd(t, d.AddNode("p", diagram.Node{}))
	mustAdd(t, d.AddEdge("e1", diagram.Edge{From: "a", To: "q"}))
	mustAdd(t, d.AddEdge("e2", diagram.Edge{From: "a", To: "p"}))

	l, err := Build(d)
	if err != nil {
		t.Fatalf("Build() error = %v, want nil", err)
	}
	want := [][]string{{"a"}, {"p", "q"}}
	if !reflect.DeepEqual(l.Layers, want) {
		t.Errorf("Layers = %v, want %v", l.Layers, want)
	}
}

func TestBarycenter_Less(t *testing.T) {
	tests := []struct {
		name string
		a, b barycenter
		want bool
	}{
		{"half before one", barycenter{1, 2}, barycenter{1, 1}, true},
		{"one not before half", barycenter{1, 1}, barycenter{1, 2}, false},
		{"equal fractions", barycenter{2, 4}, barycenter{1, 2}, false},
		{"positioned before unpositioned", barycenter{0, 1}, barycenter{0, 0}, true},
		{"unpositioned after positioned", barycenter{0, 0}, barycenter{0, 1}, false},
		{"both unpositioned", barycenter{0, 0}, barycenter{0, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.less(tt.b); got != tt.want {
				t.Errorf("less(%+v, %+v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestBarycenter_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b barycenter
		want bool
	}{
		{"same fraction different terms", barycenter{1, 2}, barycenter{2, 4}, true},
		{"different fractions", barycenter{1, 2}, barycenter{2, 3}, false},
		{"both unpositioned", barycenter{0, 0}, barycenter{0, 0}, true},
		{"unpositioned vs zero", barycenter{0, 0}, barycenter{0, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.equal(tt.b); got != tt.want {
				t.Errorf("equal(%+v, %+v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestOrderLayers_OnlyPreviousLayerCounts(t *testing.T) {
	// z's predecessors are a (layer 0) and m (layer 1); only m's position in
	// layer 1 feeds z's barycenter when ordering layer 2.
	d := diagram.New()
	mustAdd(t, d.AddNode("a", diagram.Node{}))
	mustAdd(t, d.AddNode("m", diagram.Node{}))
	mustAdd(t, d.AddNode("n", diagram.Node{}))
	mustAdd(t, d.AddNode("y", diagram.Node{}))
	mustAdd(t, d.AddNode("z", diagram.Node{}))
	mustAdd(t, d.AddEdge("e1", diagram.Edge{From: "a", To: "m"}))
	mustAdd(t, d.AddEdge("e2", diagram.Edge{From: "a", To: "n"}))
	mustAdd(t, d.AddEdge("e3", diagram.Edge{From: "n", To: "y"}))
	mustAdd(t, d.AddEdge("e4", diagram.Edge{From: "m", To: "z"}))
	mustAdd(t, d.AddEdge("e5", diagram.Edge{From: "a", To: "z"}))

	l, err := Build(d)
	if err != nil {
		t.Fatalf("Build() error = %v, want nil", err)
	}
	// Layer 1 is [m, n] (equal barycenters, lexical). z follows m (position
	// 0), y follows n (position 1), so layer 2 is [z, y].
	want := [][]string{{"a"}, {"m", "n"}, {"z", "y"}}
	if !reflect.DeepEqual(l.Layers, want) {
		t.Errorf("Layers = %v, want %v", l.Layers, want)
	}
}
