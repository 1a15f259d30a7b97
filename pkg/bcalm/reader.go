package bcalm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/bcalm2dot/pkg/errors"
	"github.com/matzehuels/bcalm2dot/pkg/graph"
)

// HeaderMarker starts every header line.
const HeaderMarker = '>'

// maxLine bounds a single line; long unitigs are written on one line.
const maxLine = 64 * 1024 * 1024

var (
	countRe = regexp.MustCompile(`ab:Z:(\d+(?: \d+)*)`)
	linkRe  = regexp.MustCompile(`L:([+-]):(\d+):([+-])`)
)

// Link is a link descriptor parsed from a header.
type Link struct {
	Start  graph.Symbol
	Target int
	End    graph.Symbol
}

// Record is one header/sequence pair.
type Record struct {
	Line     int    // 1-based line number of the header
	Header   string // header text including the leading '>'
	Sequence string
	Counts   []uint32 // empty when the header has no ab:Z field
	Links    []Link
}

// SequenceLine returns the 1-based line number of the sequence.
func (r Record) SequenceLine() int { return r.Line + 1 }

// SyntaxError reports a line that breaks the header/sequence alternation.
type SyntaxError struct {
	Line   int    // 1-based
	Text   string // offending line
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Code implements errors.Coder.
func (e *SyntaxError) Code() errors.Code { return errors.ErrCodeSyntax }

// LineNumber returns the 1-based line the error refers to.
func (e *SyntaxError) LineNumber() int { return e.Line }

// CountError reports an abundance or link field whose number does not fit.
type CountError struct {
	Line  int
	Field string // "ab:Z" or "L"
	Value string
	Err   error
}

func (e *CountError) Error() string {
	return fmt.Sprintf("line %d: malformed %s value %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *CountError) Unwrap() error { return e.Err }

// Code implements errors.Coder.
func (e *CountError) Code() errors.Code {
	if e.Field == "L" {
		return errors.ErrCodeMalformedLink
	}
	return errors.ErrCodeMalformedCount
}

// LineNumber returns the 1-based line the error refers to.
func (e *CountError) LineNumber() int { return e.Line }

// Read parses BCALM records from r and calls emit for each complete record,
// in file order. It stops at the first error, whether from the input or
// from emit. Read checks ctx between records.
func Read(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		pending *Record
		index   int
	)
	for ; sc.Scan(); index++ {
		line := strings.TrimSuffix(sc.Text(), "\r")
		lineNo := index + 1

		if index%2 == 0 {
			if len(line) == 0 || line[0] != HeaderMarker {
				return &SyntaxError{Line: lineNo, Text: line, Reason: "expected header starting with '>'"}
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			rec, err := parseHeader(lineNo, line)
			if err != nil {
				return err
			}
			pending = &rec
			continue
		}

		if len(line) > 0 && line[0] == HeaderMarker {
			return &SyntaxError{Line: lineNo, Text: line, Reason: "two headers in a row"}
		}
		if len(line) == 0 {
			return &SyntaxError{Line: lineNo, Text: line, Reason: "empty sequence"}
		}
		pending.Sequence = line
		if err := emit(*pending); err != nil {
			return err
		}
		pending = nil
	}
	if err := sc.Err(); err != nil {
		return errors.WrapLine(errors.ErrCodeIO, index+1, err, "read input")
	}
	if pending != nil {
		return &SyntaxError{Line: pending.Line, Text: pending.Header, Reason: "header without sequence"}
	}
	return nil
}

// parseHeader extracts abundance counts and link descriptors from a header.
func parseHeader(lineNo int, header string) (Record, error) {
	rec := Record{Line: lineNo, Header: header, Counts: []uint32{}}

	if m := countRe.FindStringSubmatch(header); m != nil {
		for _, s := range strings.Split(m[1], " ") {
			n, err := strconv.ParseUint(s, 10, 32)
			if err != nil {
				return Record{}, &CountError{Line: lineNo, Field: "ab:Z", Value: s, Err: err}
			}
			rec.Counts = append(rec.Counts, uint32(n))
		}
	}

	for _, m := range linkRe.FindAllStringSubmatch(header, -1) {
		target, err := strconv.Atoi(m[2])
		if err != nil {
			return Record{}, &CountError{Line: lineNo, Field: "L", Value: m[2], Err: err}
		}
		start, _ := graph.ParseSymbol(m[1])
		end, _ := graph.ParseSymbol(m[3])
		rec.Links = append(rec.Links, Link{Start: start, Target: target, End: end})
	}
	return rec, nil
}
