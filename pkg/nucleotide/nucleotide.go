// Package nucleotide maps DNA bases to their Watson-Crick complements.
//
// Only the four canonical upper-case bases are recognised. BCALM writes
// unitigs in this alphabet, so anything else (IUPAC codes, lower case, N)
// is treated as corrupt input rather than silently translated.
package nucleotide

import (
	"fmt"

	"github.com/matzehuels/bcalm2dot/pkg/errors"
)

var complement = [256]byte{
	'A': 'T',
	'C': 'G',
	'G': 'C',
	'T': 'A',
}

// Complement returns the complement of base (A<->T, C<->G).
// The boolean is false when base is not one of A, C, G, T.
func Complement(base byte) (byte, bool) {
	c := complement[base]
	return c, c != 0
}

// Valid reports whether every character of seq is a recognised base.
// The empty sequence is valid.
func Valid(seq string) bool {
	for i := 0; i < len(seq); i++ {
		if complement[seq[i]] == 0 {
			return false
		}
	}
	return true
}

// UnknownError reports a sequence containing a character that is not a
// recognised base. It carries the whole offending sequence so callers do not
// need to re-scan it.
type UnknownError struct {
	Sequence string // the sequence being complemented
	Index    int    // byte offset of the first bad character
	Base     byte   // the bad character
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown nucleotide %q at position %d in sequence %q", e.Base, e.Index, e.Sequence)
}

// Code implements errors.Coder.
func (e *UnknownError) Code() errors.Code { return errors.ErrCodeUnknownNucleotide }

// ReverseComplement returns the reverse complement of seq.
// On the first unrecognised character it returns an *UnknownError and no
// partial result.
func ReverseComplement(seq string) (string, error) {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b := seq[n-1-i]
		c, ok := Complement(b)
		if !ok {
			return "", &UnknownError{Sequence: seq, Index: n - 1 - i, Base: b}
		}
		out[i] = c
	}
	return string(out), nil
}
