package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/mazewalk/pkg/export"
	"github.com/matzehuels/mazewalk/pkg/observability"
)

// renderFormat produces one artifact and reports it to the pipeline hooks.
func renderFormat(ctx context.Context, scene export.Scene, format export.Format, opts Options) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, string(format))
	start := time.Now()

	data, err := export.Render(ctx, scene, format, opts.dotOptions())
	hooks.OnRenderComplete(ctx, string(format), len(data), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	opts.Logger.Debug("rendered", "format", format, "bytes", len(data), "maze", opts.String())
	return data, nil
}
