package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bcalm2dot/pkg/observability"
)

// logHooks reports observability events as debug log lines.
type logHooks struct {
	observability.NoopPipelineHooks
	logger *log.Logger
}

// registerLogHooks routes pipeline, render and cache events to logger.
func registerLogHooks(logger *log.Logger) {
	h := &logHooks{logger: logger}
	observability.SetPipelineHooks(h)
	observability.SetRenderHooks(h)
	observability.SetCacheHooks(h)
}

func (h *logHooks) OnOrientComplete(_ context.Context, fixed, eligible int) {
	h.logger.Debug("orientation resolved", "fixed", fixed, "drawn", eligible)
}

func (h *logHooks) OnEmitComplete(_ context.Context, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("emit failed", "duration", d, "err", err)
	}
}

func (h *logHooks) OnRenderStart(_ context.Context, engine, format string) {
	h.logger.Debug("render started", "engine", engine, "format", format)
}

func (h *logHooks) OnRenderComplete(_ context.Context, engine, format string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "engine", engine, "format", format, "duration", d, "err", err)
		return
	}
	h.logger.Debug("render finished", "engine", engine, "format", format, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
