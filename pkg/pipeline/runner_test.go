package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	bcerrors "github.com/matzehuels/bcalm2dot/pkg/errors"
	"github.com/matzehuels/bcalm2dot/pkg/graph"
)

const sample = ">0 LN:i:4 ab:Z:5 L:+:1:-\nACGT\n>1 ab:Z:3\nTTTT\n"

func quietRunner() *Runner {
	return NewRunner(log.New(&bytes.Buffer{}))
}

func TestConvert(t *testing.T) {
	var out bytes.Buffer
	res, err := quietRunner().Convert(context.Background(), strings.NewReader(sample), &out, DefaultOptions())
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	want := "graph genome {\n" +
		"\trankdir=\"LR\";\n" +
		"\t0 [label=\"ACGT\\n(ACGT)\\n[5]\", shape=cds, margin=0.2];\n" +
		"\t1 [label=\"TTTT\\n(AAAA)\\n[3]\", shape=cds, orientation=180, margin=0.2];\n" +
		"\n" +
		"\t0:e -- 1:w;\n" +
		"}\n"
	if got := out.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}

	if res.Stats.Nodes != 2 || res.Stats.Edges != 1 {
		t.Errorf("Stats nodes/edges = %d/%d, want 2/1", res.Stats.Nodes, res.Stats.Edges)
	}
	if res.Stats.Eligible != 1 {
		t.Errorf("Stats.Eligible = %d, want 1", res.Stats.Eligible)
	}
	if res.Stats.Oriented != 1 {
		t.Errorf("Stats.Oriented = %d, want 1", res.Stats.Oriented)
	}
	if n, _ := res.Graph.Node(1); n.Orientation != graph.Reverse {
		t.Errorf("node 1 orientation = %v, want reverse", n.Orientation)
	}
}

func TestConvertUnoriented(t *testing.T) {
	var out bytes.Buffer
	res, err := quietRunner().Convert(context.Background(), strings.NewReader(sample), &out, Options{})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if res.Stats.Oriented != 0 {
		t.Errorf("Stats.Oriented = %d, want 0", res.Stats.Oriented)
	}
	if strings.Contains(out.String(), "orientation=180") {
		t.Error("unoriented output should not rotate nodes")
	}
}

func TestConvertEmpty(t *testing.T) {
	var out bytes.Buffer
	if _, err := quietRunner().Convert(context.Background(), strings.NewReader(""), &out, DefaultOptions()); err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if want := "graph genome {\n\trankdir=\"LR\";\n\n}\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  bcerrors.Code
	}{
		{"missing header", "ACGT\n>0\nACGT\n", bcerrors.ErrCodeSyntax},
		{"unknown nucleotide", ">0\nACNT\n", bcerrors.ErrCodeUnknownNucleotide},
		{"bad count", ">0 ab:Z:99999999999\nACGT\n", bcerrors.ErrCodeMalformedCount},
		{"dangling link", ">0 L:+:7:-\nACGT\n", bcerrors.ErrCodeDanglingLink},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := quietRunner().Convert(context.Background(), strings.NewReader(tt.input), &out, DefaultOptions())
			if err == nil {
				t.Fatal("Convert() should fail")
			}
			if got := bcerrors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
			if out.Len() != 0 {
				t.Errorf("output should be empty on error, got %q", out.String())
			}
		})
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestConvertWriteError(t *testing.T) {
	_, err := quietRunner().Convert(context.Background(), strings.NewReader(sample), failWriter{}, DefaultOptions())
	if !bcerrors.Is(err, bcerrors.ErrCodeIO) {
		t.Errorf("Convert() error = %v, want IO_FAILURE", err)
	}
}

func TestConvertCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := quietRunner().Convert(ctx, strings.NewReader(sample), &out, DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

func TestNewRunnerDefaultLogger(t *testing.T) {
	if r := NewRunner(nil); r.Logger == nil {
		t.Error("NewRunner(nil) should set a logger")
	}
}
