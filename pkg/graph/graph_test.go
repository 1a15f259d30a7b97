package graph

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	bcerrors "github.com/matzehuels/bcalm2dot/pkg/errors"
	"github.com/matzehuels/bcalm2dot/pkg/nucleotide"
)

func TestAppendNode(t *testing.T) {
	g := New()
	if err := g.AppendNode("ACGT", []uint32{5}); err != nil {
		t.Fatalf("AppendNode() error: %v", err)
	}
	if err := g.AppendNode("TTTT", nil); err != nil {
		t.Fatalf("AppendNode() error: %v", err)
	}

	want := []Node{
		{Sequence: "ACGT", Complement: "ACGT", Counts: []uint32{5}, Orientation: Forward},
		{Sequence: "TTTT", Complement: "AAAA", Counts: []uint32{}, Orientation: Forward},
	}
	if diff := cmp.Diff(want, g.Nodes()); diff != "" {
		t.Errorf("Nodes() mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendNodeUnknownNucleotide(t *testing.T) {
	g := New()
	_ = g.AppendNode("ACGT", nil)

	err := g.AppendNode("ACXT", []uint32{1})
	var ue *nucleotide.UnknownError
	if !errors.As(err, &ue) {
		t.Fatalf("AppendNode() error = %v, want *nucleotide.UnknownError", err)
	}
	if ue.Sequence != "ACXT" {
		t.Errorf("UnknownError.Sequence = %q, want %q", ue.Sequence, "ACXT")
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d after failed append, want 1", g.NodeCount())
	}
}

func TestAddLink(t *testing.T) {
	tests := []struct {
		name  string
		build func(g *Graph) bool
		want  []Edge
		added bool
	}{
		{
			name: "source is last node",
			build: func(g *Graph) bool {
				_ = g.AppendNode("A", nil)
				_ = g.AppendNode("C", nil)
				return g.AddLink(Minus, 0, Plus)
			},
			want:  []Edge{{From: 1, To: 0, Start: Minus, End: Plus}},
			added: true,
		},
		{
			name: "forward reference",
			build: func(g *Graph) bool {
				_ = g.AppendNode("A", nil)
				return g.AddLink(Plus, 7, Minus)
			},
			want:  []Edge{{From: 0, To: 7, Start: Plus, End: Minus}},
			added: true,
		},
		{
			name: "self loop dropped",
			build: func(g *Graph) bool {
				_ = g.AppendNode("A", nil)
				_ = g.AppendNode("C", nil)
				return g.AddLink(Plus, 1, Plus)
			},
			added: false,
		},
		{
			name: "no node yet",
			build: func(g *Graph) bool {
				return g.AddLink(Plus, 0, Plus)
			},
			added: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			if got := tt.build(g); got != tt.added {
				t.Errorf("AddLink() = %v, want %v", got, tt.added)
			}
			if diff := cmp.Diff(tt.want, g.Edges()); diff != "" {
				t.Errorf("Edges() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelfLoopDoesNotChangeEdgeCount(t *testing.T) {
	build := func(withSelf bool) *Graph {
		g := New()
		_ = g.AppendNode("AC", nil)
		g.AddLink(Plus, 1, Plus)
		_ = g.AppendNode("GT", nil)
		if withSelf {
			g.AddLink(Minus, 1, Minus)
		}
		g.AddLink(Minus, 0, Minus)
		return g
	}

	if a, b := build(true).EdgeCount(), build(false).EdgeCount(); a != b {
		t.Errorf("EdgeCount with self link = %d, without = %d", a, b)
	}
}

func TestValidate(t *testing.T) {
	g := New()
	_ = g.AppendNode("A", nil)
	g.AddLink(Plus, 1, Plus)
	_ = g.AppendNode("C", nil)
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	g.AddLink(Plus, 5, Plus)
	err := g.Validate()
	if !errors.Is(err, ErrDanglingLink) {
		t.Errorf("Validate() error = %v, want ErrDanglingLink", err)
	}
	if !bcerrors.Is(err, bcerrors.ErrCodeDanglingLink) {
		t.Errorf("code = %v, want %v", bcerrors.GetCode(err), bcerrors.ErrCodeDanglingLink)
	}
}

func TestNode(t *testing.T) {
	g := New()
	_ = g.AppendNode("GG", []uint32{1, 2})

	n, ok := g.Node(0)
	if !ok || n.Complement != "CC" {
		t.Errorf("Node(0) = %+v, %v", n, ok)
	}
	if _, ok := g.Node(1); ok {
		t.Error("Node(1) should be out of range")
	}
	if _, ok := g.Node(-1); ok {
		t.Error("Node(-1) should be out of range")
	}
}

func TestSymbols(t *testing.T) {
	if Forward.Symbol() != Plus || Reverse.Symbol() != Minus {
		t.Error("orientation symbol mapping broken")
	}
	if Plus.Orientation() != Forward || Minus.Orientation() != Reverse {
		t.Error("symbol orientation mapping broken")
	}
	for _, s := range []string{"+", "-"} {
		sym, ok := ParseSymbol(s)
		if !ok || sym.String() != s {
			t.Errorf("ParseSymbol(%q) = %v, %v", s, sym, ok)
		}
	}
	if _, ok := ParseSymbol("*"); ok {
		t.Error("ParseSymbol(*) should fail")
	}
}
