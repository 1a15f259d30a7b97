// Package pipeline runs the BCALM to DOT conversion.
//
// The pipeline consists of four stages:
//
//  1. Parse: read BCALM records into a [graph.Graph]
//  2. Validate: reject links to nodes that were never declared
//  3. Orient: fix node orientations so links read "+ -" (skipped when
//     Options.Oriented is false)
//  4. Emit: write the graph as Graphviz DOT
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Convert(ctx, in, out, pipeline.Options{Oriented: true})
//	if err != nil {
//	    return err
//	}
//	logger.Info("done", "nodes", result.Stats.Nodes)
package pipeline

import (
	"time"

	"github.com/matzehuels/bcalm2dot/pkg/dot"
	"github.com/matzehuels/bcalm2dot/pkg/graph"
)

// Options controls a conversion.
type Options struct {
	// Oriented runs the orientation stage and draws only "+ -" links.
	Oriented bool

	// Symbols annotates each drawn edge with its link symbols.
	Symbols bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{Oriented: true}
}

func (o Options) dotOptions() dot.Options {
	return dot.Options{Oriented: o.Oriented, Symbols: o.Symbols}
}

// Result holds the outcome of a conversion.
type Result struct {
	// Graph is the parsed (and possibly oriented) graph.
	Graph *graph.Graph

	// Stats contains counts and timings.
	Stats Stats
}

// Stats contains conversion statistics.
type Stats struct {
	Nodes    int
	Edges    int
	Eligible int // edges written in oriented mode
	Oriented int // nodes whose orientation was fixed by a link

	ParseTime time.Duration
	EmitTime  time.Duration
}
