// Package render turns DOT source into images.
//
// # In-process rendering
//
// [Renderer] uses github.com/goccy/go-graphviz, a WebAssembly build of
// Graphviz, so no system installation is needed:
//
//	r := render.NewRenderer(cache.NewNullCache(), 0, logger)
//	svg, cached, err := r.Render(ctx, dotSource, render.FormatSVG)
//
// Results are stored in a cache.Cache keyed by the format and a hash of the
// DOT source, so re-rendering an unchanged graph is free.
//
// # External dot
//
// [FindDot] locates a system "dot" executable, honouring the DOT_PATH
// environment variable, and [Command.Run] invokes it on a DOT file that has
// already been written:
//
//	dot, err := render.FindDot(os.Getenv("DOT_PATH"))
//	err = dot.Run(ctx, "graph.gv", "svg", nil) // writes graph.gv.svg
//
// The external path supports every output format of the installed Graphviz
// and any extra command-line options.
package render
