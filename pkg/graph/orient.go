package graph

// Eligible reports whether e is drawn in oriented output: the source node's
// effective symbol must match the edge's start symbol. For a bidirected link
// declared from both ends this selects at most one of the two edges.
func (g *Graph) Eligible(e Edge) bool {
	return g.nodes[e.From].Orientation.Symbol() == e.Start
}

// EligibleCount returns the number of edges for which [Graph.Eligible] holds.
func (g *Graph) EligibleCount() int {
	n := 0
	for _, e := range g.edges {
		if g.Eligible(e) {
			n++
		}
	}
	return n
}

// Orient assigns node orientations with a single pass over the edges in
// insertion order, starting from all nodes [Forward]. For every eligible
// edge whose target has not been fixed earlier in the pass, the target takes
// the orientation named by the end symbol and both endpoints become fixed.
// It returns the number of targets that were set.
//
// The pass is not a fixpoint propagation: the outcome depends on edge order,
// and nodes only reachable through later edges may keep the default
// orientation.
//
// Orient must only run on a graph that passed [Graph.Validate].
func (g *Graph) Orient() int {
	g.ResetOrientation()
	fixed := make([]bool, len(g.nodes))
	set := 0
	for _, e := range g.edges {
		if !g.Eligible(e) || fixed[e.To] {
			continue
		}
		g.nodes[e.To].Orientation = e.End.Orientation()
		fixed[e.From] = true
		fixed[e.To] = true
		set++
	}
	return set
}

// ResetOrientation puts every node back to Forward.
func (g *Graph) ResetOrientation() {
	for i := range g.nodes {
		g.nodes[i].Orientation = Forward
	}
}
