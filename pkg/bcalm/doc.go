// Package bcalm reads the FASTA-like unitig dump written by the BCALM 2
// de Bruijn graph compactor.
//
// # Format
//
// Records are exactly two lines: a header starting with '>' followed by the
// unitig sequence. Line wrapping is not allowed, so even (0-based) lines are
// always headers and odd lines always sequences:
//
//	>0 LN:i:34 KC:i:12 km:f:2.0 L:+:1:- L:-:3:+ ab:Z:2 2 3
//	ACGTAGCTAGCATCGATCAGCTAGCTAGCGGACT
//	>1 LN:i:31 ab:Z:5
//	TTTTTTTTTTTTTTTTTTTTTTTTTTTTTTT
//
// Two header fields are interpreted; everything else is ignored:
//
//   - ab:Z:<n>( <n>)*   per-k-mer abundance counts
//   - L:<s>:<id>:<s>    a link to unitig <id>; each <s> is '+' or '-'
//
// A record's position in the file is its node id; the numeric id after '>'
// is not read.
//
// # Usage
//
// Stream records with [Read], or build a graph directly:
//
//	g, err := bcalm.ReadGraph(ctx, f)
//	if err != nil {
//	    var se *bcalm.SyntaxError
//	    if errors.As(err, &se) {
//	        fmt.Println("bad line", se.Line)
//	    }
//	}
//
// All errors carry a code from pkg/errors and, where it makes sense, the
// 1-based line number they refer to.
package bcalm
