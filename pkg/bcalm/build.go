package bcalm

import (
	"context"
	"io"

	"github.com/matzehuels/bcalm2dot/pkg/errors"
	"github.com/matzehuels/bcalm2dot/pkg/graph"
)

// ReadGraph builds a graph from the records in r. Each record becomes the
// next node and its links become edges from that node; self-links are
// dropped by the graph. Nucleotide failures are reported with the line of
// the offending sequence.
//
// ReadGraph does not validate forward references; call [graph.Graph.Validate]
// on the result.
func ReadGraph(ctx context.Context, r io.Reader) (*graph.Graph, error) {
	g := graph.New()
	err := Read(ctx, r, func(rec Record) error {
		return AddRecord(g, rec)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// AddRecord appends rec to g as a new node followed by its links.
func AddRecord(g *graph.Graph, rec Record) error {
	if err := g.AppendNode(rec.Sequence, rec.Counts); err != nil {
		return errors.WrapLine(errors.ErrCodeUnknownNucleotide, rec.SequenceLine(), err, "node %d", g.NodeCount())
	}
	for _, l := range rec.Links {
		g.AddLink(l.Start, l.Target, l.End)
	}
	return nil
}
