package graph

import (
	stderrors "errors"
	"fmt"

	"github.com/matzehuels/bcalm2dot/pkg/errors"
	"github.com/matzehuels/bcalm2dot/pkg/nucleotide"
)

// ErrDanglingLink is returned by [Graph.Validate] when an edge points at a
// node index that was never appended.
var ErrDanglingLink = stderrors.New("link to unknown node")

// Symbol is a link directionality symbol: '+' (forward) or '-' (reverse).
type Symbol byte

const (
	Plus  Symbol = '+'
	Minus Symbol = '-'
)

// ParseSymbol converts a single-character string into a Symbol.
func ParseSymbol(s string) (Symbol, bool) {
	switch s {
	case "+":
		return Plus, true
	case "-":
		return Minus, true
	}
	return 0, false
}

// Orientation returns the node orientation this symbol selects.
func (s Symbol) Orientation() Orientation {
	if s == Minus {
		return Reverse
	}
	return Forward
}

func (s Symbol) String() string { return string(rune(s)) }

// Orientation is the strand a node is drawn on.
type Orientation int

const (
	// Forward is the default orientation of every new node.
	Forward Orientation = iota
	Reverse
)

// Symbol returns the effective directionality symbol of the orientation.
func (o Orientation) Symbol() Symbol {
	if o == Reverse {
		return Minus
	}
	return Plus
}

func (o Orientation) String() string {
	if o == Reverse {
		return "reverse"
	}
	return "forward"
}

// Node is one unitig of the assembly.
type Node struct {
	Sequence    string      // unitig sequence over A, C, G, T
	Complement  string      // reverse complement of Sequence
	Counts      []uint32    // abundance counts, empty when absent
	Orientation Orientation // Forward until changed by Orient
}

// Edge links two nodes by arena index.
type Edge struct {
	From  int    // index of the declaring node
	To    int    // index of the target node
	Start Symbol // side of From the link leaves
	End   Symbol // side of To the link enters
}

func (e Edge) String() string {
	return fmt.Sprintf("%d%s -> %d%s", e.From, e.Start, e.To, e.End)
}

// Graph is an arena of nodes plus index-based edges.
//
// The zero value is an empty graph ready for use.
type Graph struct {
	nodes []Node
	edges []Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// AppendNode appends a forward node for seq with the given abundance counts.
// If seq contains a character outside A, C, G, T the graph is left unchanged
// and a *nucleotide.UnknownError is returned.
func (g *Graph) AppendNode(seq string, counts []uint32) error {
	compl, err := nucleotide.ReverseComplement(seq)
	if err != nil {
		return err
	}
	if counts == nil {
		counts = []uint32{}
	}
	g.nodes = append(g.nodes, Node{
		Sequence:    seq,
		Complement:  compl,
		Counts:      counts,
		Orientation: Forward,
	})
	return nil
}

// AddLink records a link from the most recently appended node to node to.
// It reports whether an edge was stored: self-links and links declared
// before any node exists are dropped.
func (g *Graph) AddLink(start Symbol, to int, end Symbol) bool {
	from := len(g.nodes) - 1
	if from < 0 || from == to {
		return false
	}
	g.edges = append(g.edges, Edge{From: from, To: to, Start: start, End: end})
	return true
}

// Validate checks that every edge endpoint refers to an existing node.
// Forward references are legal while building, so this runs once the whole
// input has been read.
func (g *Graph) Validate() error {
	for i, e := range g.edges {
		if e.To < 0 || e.To >= len(g.nodes) {
			return errors.Wrap(errors.ErrCodeDanglingLink, ErrDanglingLink,
				"edge %d (%s): graph has %d nodes", i, e, len(g.nodes))
		}
	}
	return nil
}

// Nodes returns the node arena in index order.
// The slice is shared with the graph; callers must not append to it.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []Edge { return g.edges }

// Node returns a pointer to node i, or false if i is out of range.
func (g *Graph) Node(i int) (*Node, bool) {
	if i < 0 || i >= len(g.nodes) {
		return nil, false
	}
	return &g.nodes[i], true
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of stored edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }
