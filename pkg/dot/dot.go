package dot

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/bcalm2dot/pkg/graph"
)

// Options configures DOT generation.
type Options struct {
	// Oriented draws node orientation and writes only eligible edges.
	Oriented bool
	// Symbols annotates edges with their start and end symbols.
	Symbols bool
}

const (
	shapeOriented = "cds"
	shapePlain    = "box"
)

// Write serializes g to w. It returns the first write error.
func Write(w io.Writer, g *graph.Graph, opts Options) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("graph genome {\n")
	bw.WriteString("\trankdir=\"LR\";\n")

	for i, n := range g.Nodes() {
		fmt.Fprintf(bw, "\t%d [%s];\n", i, strings.Join(nodeAttrs(n, opts), ", "))
	}

	bw.WriteString("\n")
	for _, e := range g.Edges() {
		if opts.Oriented && !g.Eligible(e) {
			continue
		}
		fmt.Fprintf(bw, "\t%d:e -- %d:w", e.From, e.To)
		if opts.Symbols {
			fmt.Fprintf(bw, " [taillabel=%q, headlabel=%q]", e.Start.String(), e.End.String())
		}
		bw.WriteString(";\n")
	}
	bw.WriteString("}\n")

	// bufio.Writer keeps the first error and reports it on Flush.
	return bw.Flush()
}

// String returns the DOT serialization of g.
func String(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	_ = Write(&buf, g, opts)
	return buf.String()
}

func nodeAttrs(n graph.Node, opts Options) []string {
	shape := shapePlain
	if opts.Oriented {
		shape = shapeOriented
	}
	attrs := []string{
		fmt.Sprintf(`label="%s\n(%s)\n%s"`, n.Sequence, n.Complement, fmtCounts(n.Counts)),
		"shape=" + shape,
	}
	if opts.Oriented && n.Orientation == graph.Reverse {
		attrs = append(attrs, "orientation=180")
	}
	return append(attrs, "margin=0.2")
}

// fmtCounts renders counts as a bracketed, comma separated list.
func fmtCounts(counts []uint32) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = strconv.FormatUint(uint64(c), 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
