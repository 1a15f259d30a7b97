// Package graph holds the in-memory de Bruijn graph built from a BCALM dump.
//
// # Model
//
// Nodes live in an append-only arena and are addressed by their position,
// which is also the BCALM unitig id (the n-th sequence line is node n-1).
// Edges store plain indices into that arena rather than node pointers:
//
//	g := graph.New()
//	_ = g.AppendNode("ACGT", []uint32{5})
//	_ = g.AppendNode("TTTT", []uint32{3})
//	g.AddLink(graph.Plus, 1, graph.Minus) // source is always the last node
//
// Links are bidirected in BCALM: each end carries a [Symbol] saying which
// strand of the node it attaches to. [Graph.AddLink] silently drops links
// whose target is the node being declared.
//
// # Orientation
//
// Every node starts [Forward]. [Graph.Orient] performs one left-to-right
// pass over the edges and flips targets to match the link symbols. The pass
// is order-dependent and does not iterate to a fixpoint; nodes that are
// reached only through conflicting edges keep their default orientation.
//
// # Concurrency
//
// A Graph is not safe for concurrent use.
package graph
