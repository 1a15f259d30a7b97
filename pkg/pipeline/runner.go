package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bcalm2dot/pkg/bcalm"
	"github.com/matzehuels/bcalm2dot/pkg/dot"
	"github.com/matzehuels/bcalm2dot/pkg/errors"
	"github.com/matzehuels/bcalm2dot/pkg/graph"
	"github.com/matzehuels/bcalm2dot/pkg/observability"
)

// Runner executes conversions. It holds no per-run state, so one Runner can
// serve several goroutines.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Convert reads a BCALM dump from r and writes DOT to w.
func (r *Runner) Convert(ctx context.Context, in io.Reader, w io.Writer, opts Options) (*Result, error) {
	result := &Result{}
	hooks := observability.Pipeline()

	// Stage 1: Parse
	hooks.OnParseStart(ctx)
	parseStart := time.Now()
	g, err := bcalm.ReadGraph(ctx, in)
	if err != nil {
		hooks.OnParseComplete(ctx, 0, 0, time.Since(parseStart), err)
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Graph = g
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Nodes = g.NodeCount()
	result.Stats.Edges = g.EdgeCount()
	hooks.OnParseComplete(ctx, result.Stats.Nodes, result.Stats.Edges, result.Stats.ParseTime, nil)

	r.Logger.Debug("parsed graph",
		"nodes", result.Stats.Nodes,
		"edges", result.Stats.Edges,
		"duration", result.Stats.ParseTime)

	// Stage 2: Validate
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	// Stage 3: Orient
	if opts.Oriented {
		result.Stats.Oriented = r.Orient(g)
		result.Stats.Eligible = g.EligibleCount()
		hooks.OnOrientComplete(ctx, result.Stats.Oriented, result.Stats.Eligible)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: Emit
	emitStart := time.Now()
	err = dot.Write(w, g, opts.dotOptions())
	result.Stats.EmitTime = time.Since(emitStart)
	hooks.OnEmitComplete(ctx, result.Stats.EmitTime, err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "write dot")
	}

	r.Logger.Debug("wrote dot",
		"oriented", opts.Oriented,
		"symbols", opts.Symbols,
		"duration", result.Stats.EmitTime)

	return result, nil
}

// Orient resolves node orientations and logs how many were fixed.
func (r *Runner) Orient(g *graph.Graph) int {
	n := g.Orient()
	r.Logger.Debug("oriented graph",
		"fixed", n,
		"eligible_edges", g.EligibleCount())
	return n
}
