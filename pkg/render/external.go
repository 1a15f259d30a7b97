package render

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/matzehuels/bcalm2dot/pkg/errors"
	"github.com/matzehuels/bcalm2dot/pkg/observability"
)

// DotPathEnv names the environment variable that overrides dot discovery.
const DotPathEnv = "DOT_PATH"

// OverwriteFlag makes dot write <input>.<format> next to the input file.
const OverwriteFlag = "-O"

// Hooks for tests.
var (
	lookPath   = exec.LookPath
	fileExists = func(path string) bool {
		info, err := os.Stat(path)
		return err == nil && !info.IsDir()
	}
)

// Command is an external dot invocation prefix, for example
// {Path: "/usr/bin/env", Args: ["dot"]}.
type Command struct {
	Path string
	Args []string
}

// ParseCommand splits a DOT_PATH-style value on whitespace.
func ParseCommand(s string) (Command, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Command{}, errors.New(errors.ErrCodeInvalidConfig, "empty dot command")
	}
	return Command{Path: fields[0], Args: fields[1:]}, nil
}

// String returns the command prefix as it would be typed in a shell.
func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// FindDot locates the dot executable. A non-empty override (usually the
// value of DOT_PATH) is used as-is; otherwise dot is looked up on PATH and
// then in well-known install locations for the current OS.
func FindDot(override string) (Command, error) {
	if strings.TrimSpace(override) != "" {
		return ParseCommand(override)
	}
	for _, name := range []string{"dot", "dot.exe"} {
		if path, err := lookPath(name); err == nil {
			return Command{Path: path}, nil
		}
	}
	for _, path := range knownPaths(runtime.GOOS) {
		if fileExists(path) {
			return Command{Path: path}, nil
		}
	}
	return Command{}, errors.New(errors.ErrCodeRendererNotFound,
		"dot executable not found; install Graphviz, add it to PATH or set %s", DotPathEnv)
}

func knownPaths(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"/opt/homebrew/bin/dot", "/usr/local/bin/dot"}
	case "windows":
		return []string{`C:\Program Files\Graphviz\bin\dot.exe`, `C:\Program Files (x86)\Graphviz\bin\dot.exe`}
	default:
		return []string{"/usr/bin/dot", "/usr/local/bin/dot"}
	}
}

// Argv returns the arguments passed to c.Path: the prefix arguments, the
// overwrite flag, extra, the format flag and finally the input file.
func (c Command) Argv(input, format string, extra []string) []string {
	argv := make([]string, 0, len(c.Args)+len(extra)+3)
	argv = append(argv, c.Args...)
	argv = append(argv, OverwriteFlag)
	argv = append(argv, extra...)
	argv = append(argv, "-T"+format)
	return append(argv, input)
}

// Run invokes dot on input and waits for it to finish. input must be a
// complete, closed DOT file.
func (c Command) Run(ctx context.Context, input, format string, extra []string) (err error) {
	if format == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "dot output format must not be empty")
	}
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, observability.EngineDot, format)
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, observability.EngineDot, format, time.Since(start), err)
	}()

	cmd := exec.CommandContext(ctx, c.Path, c.Argv(input, format, extra)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "%s", c)
		}
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "%s: %s", c, msg)
	}
	return nil
}
