package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/matzehuels/bcalm2dot/pkg/errors"
	"github.com/matzehuels/bcalm2dot/pkg/pipeline"
	"github.com/matzehuels/bcalm2dot/pkg/render"
)

// stdioPath selects stdin or stdout.
const stdioPath = "-"

// convertOptions holds the flags of the convert command.
type convertOptions struct {
	input        string
	output       string
	dotType      string
	dotArgs      []string
	render       string
	renderOutput string
	oriented     bool
	symbols      bool
	check        bool
	noCache      bool
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert [INPUT] [-- DOT OPTIONS...]",
		Short: "Convert a BCALM unitig file to Graphviz DOT",
		Long: `Convert a BCALM unitig file to Graphviz DOT.

INPUT is read from stdin when omitted or "-". The DOT document is written to
--output, which defaults to INPUT with its extension replaced by .gv (stdout
when reading stdin).

With --dot TYPE the external Graphviz dot is run on the output file as
"dot -O [DOT OPTIONS] -TTYPE FILE", producing FILE.TYPE. Set DOT_PATH to
choose the executable, e.g. DOT_PATH="/usr/bin/env dot".`,
		Example: `  bcalm2dot convert unitigs.fa
  bcalm2dot convert unitigs.fa -o graph.gv -d svg -- -Gdpi=150
  cat unitigs.fa | bcalm2dot convert --symbols > graph.gv
  bcalm2dot convert unitigs.fa --render png`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			positional, dotArgs := splitDotArgs(args, cmd.ArgsLenAtDash())
			if len(positional) > 1 {
				return errors.New(errors.ErrCodeInvalidInput,
					"expected at most one input file, got %d (pass dot options after --)", len(positional))
			}
			if len(positional) == 1 {
				opts.input = positional[0]
			}
			opts.dotArgs = dotArgs
			c.applyConfig(cmd, &opts)
			return c.runConvert(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output DOT file (- for stdout)")
	cmd.Flags().StringVarP(&opts.dotType, "dot", "d", "", "run Graphviz dot on the output with this -T type (e.g. svg, png)")
	cmd.Flags().StringVarP(&opts.render, "render", "r", "", "render in-process to this format (svg, png, jpg, dot)")
	cmd.Flags().StringVar(&opts.renderOutput, "render-output", "", "rendered file path (default OUTPUT.FORMAT)")
	cmd.Flags().BoolVar(&opts.oriented, "oriented", true, "orient nodes and draw only + - links")
	cmd.Flags().BoolVar(&opts.symbols, "symbols", false, "label edges with their link symbols")
	cmd.Flags().BoolVar(&opts.check, "check", false, "parse the emitted DOT with Graphviz")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// splitDotArgs separates positional arguments from options after "--".
func splitDotArgs(args []string, dash int) (positional, dotArgs []string) {
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

// applyConfig fills options the user did not set on the command line from
// the loaded config file.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *convertOptions) {
	cfg := c.Config
	flags := cmd.Flags()
	if !flags.Changed("oriented") {
		opts.oriented = cfg.Oriented
	}
	if !flags.Changed("symbols") {
		opts.symbols = cfg.Symbols
	}
	if !flags.Changed("no-cache") {
		opts.noCache = !cfg.Render.Cache
	}
	toFile := !isStdio(opts.output) || (opts.output == "" && !isStdio(opts.input))
	if !flags.Changed("dot") && cfg.Dot.Format != "" {
		if toFile {
			opts.dotType = cfg.Dot.Format
		} else {
			c.Logger.Debug("ignoring configured dot format for stdout output", "format", cfg.Dot.Format)
		}
	}
	if opts.dotType != "" && len(opts.dotArgs) == 0 {
		opts.dotArgs = cfg.Dot.Args
	}
	if !flags.Changed("render") && cfg.Render.Format != "" {
		if toFile || opts.renderOutput != "" {
			opts.render = cfg.Render.Format
		} else {
			c.Logger.Debug("ignoring configured render format for stdout output", "format", cfg.Render.Format)
		}
	}
}

func isStdio(path string) bool {
	return path == "" || path == stdioPath
}

// resolveOutput returns the DOT output path, or "" for stdout.
func resolveOutput(opts convertOptions) (string, error) {
	switch {
	case opts.output == stdioPath:
		return "", nil
	case opts.output != "":
		return opts.output, nil
	case isStdio(opts.input):
		return "", nil
	}
	out := defaultOutputPath(opts.input)
	if filepath.Clean(out) == filepath.Clean(opts.input) {
		return "", errors.New(errors.ErrCodeInvalidInput,
			"default output %s would overwrite the input; pass --output", out)
	}
	return out, nil
}

// runConvert executes the convert command.
func (c *CLI) runConvert(ctx context.Context, opts convertOptions) error {
	logger := loggerFromContext(ctx)

	outPath, err := resolveOutput(opts)
	if err != nil {
		return err
	}
	if err := validateConvert(opts, outPath); err != nil {
		return err
	}

	var dotCmd render.Command
	if opts.dotType != "" {
		if dotCmd, err = render.FindDot(c.Config.Dot.Path); err != nil {
			return err
		}
		logger.Debug("found dot", "command", dotCmd)
	}

	in, err := c.openInput(opts.input)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := c.openOutput(outPath)
	if err != nil {
		return err
	}

	// Keep a copy of the DOT document for in-process checks and rendering.
	var doc bytes.Buffer
	var w io.Writer = out
	if opts.check || opts.render != "" {
		w = io.MultiWriter(out, &doc)
	}

	prog := newProgress(logger)
	runner := pipeline.NewRunner(logger)
	res, err := runner.Convert(ctx, in, w, pipeline.Options{
		Oriented: opts.oriented,
		Symbols:  opts.symbols,
	})
	if closeErr := out.Close(); closeErr != nil {
		err = multierr.Append(err, errors.Wrap(errors.ErrCodeIO, closeErr, "close %s", displayPath(outPath)))
	}
	if err != nil {
		if outPath != "" {
			_ = os.Remove(outPath)
		}
		return err
	}
	prog.done("converted", "input", displayPath(opts.input))

	if outPath != "" {
		printSuccess("Wrote %s", outPath)
		printStats(res.Stats.Nodes, res.Stats.Edges, res.Stats.Eligible, opts.oriented)
	}

	if opts.check {
		if err := render.Validate(doc.Bytes()); err != nil {
			return err
		}
		logger.Info("DOT output parsed by Graphviz")
	}

	if opts.render != "" {
		if err := c.renderInProcess(ctx, opts, outPath, doc.Bytes()); err != nil {
			return err
		}
	}

	if opts.dotType != "" {
		dotProg := newProgress(logger)
		spin := startSpinner(ctx, "running "+dotCmd.String())
		err := dotCmd.Run(ctx, outPath, opts.dotType, opts.dotArgs)
		spin.stop()
		if err != nil {
			return err
		}
		dotProg.done("ran dot", "type", opts.dotType)
		printFile(outPath+"."+opts.dotType, false)
	}
	return nil
}

// validateConvert rejects flag combinations before any input is read.
func validateConvert(opts convertOptions, outPath string) error {
	if opts.dotType != "" && outPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--dot needs a file output; pass --output")
	}
	if len(opts.dotArgs) > 0 && opts.dotType == "" {
		return errors.New(errors.ErrCodeInvalidInput, "dot options given without --dot")
	}
	if opts.render != "" {
		if err := render.ValidateFormat(opts.render); err != nil {
			return err
		}
		if outPath == "" && opts.renderOutput == "" {
			return errors.New(errors.ErrCodeInvalidInput, "--render with stdout output needs --render-output")
		}
	}
	return nil
}

// renderInProcess renders doc with the embedded Graphviz through the cache.
func (c *CLI) renderInProcess(ctx context.Context, opts convertOptions, outPath string, doc []byte) (err error) {
	logger := loggerFromContext(ctx)
	format := render.NormalizeFormat(opts.render)

	store, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, store.Close()) }()

	renderer := render.NewRenderer(store, c.Config.Render.TTL.Duration, logger)
	spin := startSpinner(ctx, "rendering "+format)
	data, cached, err := renderer.Render(ctx, doc, format)
	spin.stop()
	if err != nil {
		return err
	}

	path := opts.renderOutput
	if path == "" {
		path = outPath + "." + format
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	printFile(path, cached)
	return nil
}

func (c *CLI) openInput(path string) (io.ReadCloser, error) {
	if isStdio(path) {
		return io.NopCloser(c.In), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open input")
	}
	return f, nil
}

func (c *CLI) openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{c.Out}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create output")
	}
	return f, nil
}

func displayPath(path string) string {
	if isStdio(path) {
		return "<stdio>"
	}
	return path
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
