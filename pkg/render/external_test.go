package render

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/bcalm2dot/pkg/errors"
)

func stubLookup(t *testing.T, onPath map[string]string, files []string) {
	t.Helper()
	origLook, origExists := lookPath, fileExists
	t.Cleanup(func() { lookPath, fileExists = origLook, origExists })

	lookPath = func(name string) (string, error) {
		if p, ok := onPath[name]; ok {
			return p, nil
		}
		return "", exec.ErrNotFound
	}
	fileExists = func(path string) bool { return slices.Contains(files, path) }
}

func TestFindDot(t *testing.T) {
	known := knownPaths(runtime.GOOS)

	tests := []struct {
		name     string
		override string
		onPath   map[string]string
		files    []string
		want     Command
		wantErr  bool
	}{
		{
			name:     "override with prefix",
			override: "/usr/bin/env dot",
			want:     Command{Path: "/usr/bin/env", Args: []string{"dot"}},
		},
		{
			name:   "on PATH",
			onPath: map[string]string{"dot": "/opt/graphviz/bin/dot"},
			want:   Command{Path: "/opt/graphviz/bin/dot"},
		},
		{
			name:  "well-known location",
			files: []string{known[len(known)-1]},
			want:  Command{Path: known[len(known)-1]},
		},
		{
			name:    "not found",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubLookup(t, tt.onPath, tt.files)
			got, err := FindDot(tt.override)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeRendererNotFound) {
					t.Errorf("FindDot() error = %v, want %v", err, errors.ErrCodeRendererNotFound)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindDot() error: %v", err)
			}
			if got.Path != tt.want.Path || !slices.Equal(got.Args, tt.want.Args) {
				t.Errorf("FindDot() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseCommandEmpty(t *testing.T) {
	if _, err := ParseCommand("   "); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("ParseCommand() error = %v", err)
	}
}

func TestArgv(t *testing.T) {
	c := Command{Path: "/usr/bin/env", Args: []string{"dot"}}
	got := c.Argv("out.gv", "svg", []string{"-Gdpi=150", "-v"})
	want := []string{"dot", "-O", "-Gdpi=150", "-v", "-Tsvg", "out.gv"}
	if !slices.Equal(got, want) {
		t.Errorf("Argv() = %v, want %v", got, want)
	}
	if s := c.String(); s != "/usr/bin/env dot" {
		t.Errorf("String() = %q", s)
	}
}

// fakeDot writes a shell script that records its arguments.
func fakeDot(t *testing.T, exitCode int) (Command, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub requires a POSIX shell")
	}
	dir := t.TempDir()
	record := filepath.Join(dir, "args")
	script := filepath.Join(dir, "dot")
	body := "#!/bin/sh\n" +
		"for a in \"$@\"; do echo \"$a\" >> " + record + "; done\n" +
		"echo 'boom' >&2\n" +
		"exit " + string(rune('0'+exitCode)) + "\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
	return Command{Path: script}, record
}

func TestRun(t *testing.T) {
	c, record := fakeDot(t, 0)
	if err := c.Run(context.Background(), "graph.gv", "png", []string{"-Nfontsize=8"}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	data, err := os.ReadFile(record)
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Fields(string(data))
	want := []string{"-O", "-Nfontsize=8", "-Tpng", "graph.gv"}
	if !slices.Equal(got, want) {
		t.Errorf("dot invoked with %v, want %v", got, want)
	}
}

func TestRunFailure(t *testing.T) {
	c, _ := fakeDot(t, 3)
	err := c.Run(context.Background(), "graph.gv", "svg", nil)
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Fatalf("Run() error = %v, want %v", err, errors.ErrCodeRenderFailed)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Run() error = %q, want captured stderr", err.Error())
	}
}

func TestRunEmptyFormat(t *testing.T) {
	err := Command{Path: "dot"}.Run(context.Background(), "graph.gv", "", nil)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Run() error = %v, want %v", err, errors.ErrCodeInvalidFormat)
	}
}
