package dot

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/bcalm2dot/pkg/graph"
)

// sample builds the two-node graph
//
//	>1 ab:Z:5 L:+:1:-
//	ACGT
//	>0 ab:Z:3
//	TTTT
func sample(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	if err := g.AppendNode("ACGT", []uint32{5}); err != nil {
		t.Fatal(err)
	}
	g.AddLink(graph.Plus, 1, graph.Minus)
	if err := g.AppendNode("TTTT", []uint32{3}); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestWrite_Oriented(t *testing.T) {
	g := sample(t)
	g.Orient()

	got := String(g, Options{Oriented: true})
	want := "graph genome {\n" +
		"\trankdir=\"LR\";\n" +
		"\t0 [label=\"ACGT\\n(ACGT)\\n[5]\", shape=cds, margin=0.2];\n" +
		"\t1 [label=\"TTTT\\n(AAAA)\\n[3]\", shape=cds, orientation=180, margin=0.2];\n" +
		"\n" +
		"\t0:e -- 1:w;\n" +
		"}\n"
	if got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestWrite_Plain(t *testing.T) {
	g := sample(t)
	g.Orient()

	got := String(g, Options{})
	if strings.Contains(got, "orientation=180") {
		t.Error("plain output should not rotate nodes")
	}
	if strings.Contains(got, "shape=cds") {
		t.Error("plain output should not use cds shape")
	}
	if !strings.Contains(got, "shape=box") {
		t.Error("plain output missing box shape")
	}
}

func TestWrite_PlainWritesEveryEdge(t *testing.T) {
	g := graph.New()
	_ = g.AppendNode("AAC", nil)
	g.AddLink(graph.Plus, 1, graph.Minus)
	_ = g.AppendNode("GGT", nil)
	g.AddLink(graph.Plus, 0, graph.Minus)
	g.Orient()

	if n := countEdges(String(g, Options{})); n != 2 {
		t.Errorf("plain edge lines = %d, want 2", n)
	}
	if n := countEdges(String(g, Options{Oriented: true})); n != 1 {
		t.Errorf("oriented edge lines = %d, want 1", n)
	}
}

func TestWrite_Symbols(t *testing.T) {
	g := sample(t)
	g.Orient()

	got := String(g, Options{Oriented: true, Symbols: true})
	if !strings.Contains(got, "\t0:e -- 1:w [taillabel=\"+\", headlabel=\"-\"];\n") {
		t.Errorf("String() missing annotated edge:\n%s", got)
	}
}

func TestWrite_EmptyCounts(t *testing.T) {
	g := graph.New()
	_ = g.AppendNode("GATC", nil)

	got := String(g, Options{Oriented: true})
	if !strings.Contains(got, `label="GATC\n(GATC)\n[]"`) {
		t.Errorf("String() = %s, want empty count list", got)
	}
}

func TestWrite_Counts(t *testing.T) {
	tests := []struct {
		in   []uint32
		want string
	}{
		{nil, "[]"},
		{[]uint32{7}, "[7]"},
		{[]uint32{2, 2, 3}, "[2, 2, 3]"},
	}
	for _, tt := range tests {
		if got := fmtCounts(tt.in); got != tt.want {
			t.Errorf("fmtCounts(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWrite_DeclarationCounts(t *testing.T) {
	g := graph.New()
	seqs := []string{"AAAA", "CCCC", "GGGG", "TTTT", "ACAC"}
	links := [][]graph.Edge{
		{{To: 1, Start: graph.Plus, End: graph.Plus}, {To: 2, Start: graph.Minus, End: graph.Plus}},
		{{To: 0, Start: graph.Minus, End: graph.Minus}, {To: 3, Start: graph.Plus, End: graph.Minus}},
		{{To: 0, Start: graph.Minus, End: graph.Plus}},
		{{To: 1, Start: graph.Plus, End: graph.Minus}},
		nil,
	}
	for i, s := range seqs {
		_ = g.AppendNode(s, []uint32{uint32(i)})
		for _, l := range links[i] {
			g.AddLink(l.Start, l.To, l.End)
		}
	}
	g.Orient()

	out := String(g, Options{Oriented: true})
	nodeRe := regexp.MustCompile(`(?m)^\t\d+ \[label=`)
	if n := len(nodeRe.FindAllString(out, -1)); n != g.NodeCount() {
		t.Errorf("node declarations = %d, want %d", n, g.NodeCount())
	}
	if n := countEdges(out); n != g.EligibleCount() {
		t.Errorf("edge declarations = %d, want %d", n, g.EligibleCount())
	}
}

func TestWrite_Deterministic(t *testing.T) {
	g := sample(t)
	g.Orient()
	a := String(g, Options{Oriented: true, Symbols: true})
	b := String(g, Options{Oriented: true, Symbols: true})
	if a != b {
		t.Error("String() is not deterministic")
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWrite_Error(t *testing.T) {
	want := errors.New("disk full")
	if err := Write(failingWriter{want}, sample(t), Options{}); !errors.Is(err, want) {
		t.Errorf("Write() error = %v, want %v", err, want)
	}
}

func countEdges(s string) int {
	return strings.Count(s, " -- ")
}
