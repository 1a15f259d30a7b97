// Package dot serializes a BCALM graph as an undirected Graphviz DOT graph.
//
// # Output
//
// The graph is laid out left to right. Each node is labelled with its
// sequence, its reverse complement in parentheses and its abundance counts:
//
//	graph genome {
//		rankdir="LR";
//		0 [label="ACGT\n(ACGT)\n[5]", shape=cds, margin=0.2];
//		1 [label="TTTT\n(AAAA)\n[3]", shape=cds, orientation=180, margin=0.2];
//
//		0:e -- 1:w;
//	}
//
// # Modes
//
// With [Options.Oriented] set, nodes are drawn as arrow-like "cds" shapes,
// reverse nodes are rotated by 180 degrees, and only eligible edges (see
// graph.Graph.Eligible) are written, so each bidirected link appears once.
// Without it, nodes are plain boxes and every stored edge is written.
//
// [Options.Symbols] adds the link's start and end symbols as tail and head
// labels.
//
// The output depends only on the graph and the options.
package dot
