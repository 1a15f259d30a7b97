package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bcalm2dot/pkg/cache"
	"github.com/matzehuels/bcalm2dot/pkg/errors"
	"github.com/matzehuels/bcalm2dot/pkg/observability"
)

// In-process output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatJPG = "jpg"
	FormatDOT = "dot" // laid-out DOT with coordinates (xdot)
)

var formats = map[string]graphviz.Format{
	FormatSVG: graphviz.SVG,
	FormatPNG: graphviz.PNG,
	FormatJPG: graphviz.JPG,
	FormatDOT: graphviz.XDOT,
}

// Formats returns the supported in-process formats in sorted order.
func Formats() []string {
	out := make([]string, 0, len(formats))
	for f := range formats {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// NormalizeFormat lower-cases format and maps aliases ("jpeg", "xdot").
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case "jpeg":
		return FormatJPG
	case "xdot", "gv":
		return FormatDOT
	}
	return f
}

// ValidateFormat returns an INVALID_FORMAT error for unsupported formats.
func ValidateFormat(format string) error {
	if _, ok := formats[NormalizeFormat(format)]; !ok {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid render format %q (must be one of %s)", format, strings.Join(Formats(), ", "))
	}
	return nil
}

// cacheKeyType prefixes render cache keys.
const cacheKeyType = "render"

// Renderer renders DOT source with the embedded Graphviz and caches results.
type Renderer struct {
	Cache  cache.Cache
	TTL    time.Duration
	Logger *log.Logger
}

// NewRenderer creates a renderer. A nil cache disables caching, a nil logger
// uses log.Default() and a non-positive ttl uses cache.DefaultTTL.
func NewRenderer(c cache.Cache, ttl time.Duration, logger *log.Logger) *Renderer {
	if c == nil {
		c = cache.NewNullCache()
	}
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{Cache: c, TTL: ttl, Logger: logger}
}

// Render converts dot to format. The boolean reports a cache hit.
// Cache failures are logged and otherwise ignored.
func (r *Renderer) Render(ctx context.Context, dot []byte, format string) ([]byte, bool, error) {
	format = NormalizeFormat(format)
	if err := ValidateFormat(format); err != nil {
		return nil, false, err
	}

	cacheHooks := observability.Cache()
	key := cache.Key(cacheKeyType, format, cache.Hash(dot))
	if data, hit, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	} else if hit {
		cacheHooks.OnCacheHit(ctx, cacheKeyType)
		r.Logger.Debug("render cache hit", "format", format, "bytes", len(data))
		return data, true, nil
	}
	cacheHooks.OnCacheMiss(ctx, cacheKeyType)

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, observability.EngineGraphviz, format)
	start := time.Now()
	data, err := renderBytes(ctx, dot, formats[format])
	hooks.OnRenderComplete(ctx, observability.EngineGraphviz, format, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Debug("rendered", "format", format, "bytes", len(data), "duration", time.Since(start))

	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	} else {
		cacheHooks.OnCacheSet(ctx, cacheKeyType, len(data))
	}
	return data, false, nil
}

// Validate parses dot with Graphviz and reports syntax errors.
func Validate(dot []byte) error {
	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	if g == nil {
		return errors.New(errors.ErrCodeRenderFailed, "parse DOT: empty graph")
	}
	return g.Close()
}

func renderBytes(ctx context.Context, dot []byte, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
	}
	if format == graphviz.SVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the image scales with its
// container: Graphviz emits pt-based width/height and an offset viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	loc := svgTagRe.FindIndex(svg)
	if loc == nil {
		return svg
	}
	out := make([]byte, 0, len(svg))
	out = append(out, svg[:loc[0]]...)
	out = append(out, root...)
	return append(out, svg[loc[1]:]...)
}
