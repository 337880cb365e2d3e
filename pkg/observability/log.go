package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug log line. The CLI registers it
// when --verbose is set.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to logger, or to log.Default() if nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnGenerateStart(_ context.Context, width, height int, seed int64) {
	h.Logger.Debug("generate start", "width", width, "height", height, "seed", seed)
}

func (h *LogHooks) OnGenerateComplete(_ context.Context, width, height int, seed int64, d time.Duration, err error) {
	h.done("generate", d, err, "width", width, "height", height, "seed", seed)
}

func (h *LogHooks) OnSolveStart(_ context.Context, mode string) {
	h.Logger.Debug("solve start", "mode", mode)
}

func (h *LogHooks) OnSolveComplete(_ context.Context, mode string, steps, pathLength int, d time.Duration, err error) {
	h.done("solve", d, err, "mode", mode, "steps", steps, "path", pathLength)
}

func (h *LogHooks) OnRenderStart(_ context.Context, format string) {
	h.Logger.Debug("render start", "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.done("render", d, err, "format", format, "bytes", size)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Debug("http", "method", method, "route", route, "status", status, "elapsed", d.Round(time.Microsecond))
}

func (h *LogHooks) OnSessionCreate(_ context.Context, id string, width, height int) {
	h.Logger.Debug("session created", "id", id, "width", width, "height", height)
}

func (h *LogHooks) OnSessionEvict(_ context.Context, id, reason string) {
	h.Logger.Debug("session evicted", "id", id, "reason", reason)
}

func (h *LogHooks) done(stage string, d time.Duration, err error, kv ...any) {
	kv = append(kv, "elapsed", d.Round(time.Microsecond))
	if err != nil {
		h.Logger.Warn(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.Logger.Debug(stage+" done", kv...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
