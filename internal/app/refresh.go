package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/linear"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/engine/orchestrator"
)

// RefreshOptions configure a one-shot refresh.
type RefreshOptions struct {
	// Threshold overrides the configured staleness threshold when positive.
	Threshold time.Duration
	// JSON prints the snapshot as JSON instead of the report.
	JSON bool
}

// Refresh runs one cycle in the foreground and prints its snapshot.
// Rejections are returned as errors that satisfy IsRejection.
func (a *App) Refresh(ctx context.Context, opts RefreshOptions) (*domain.RefreshResult, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	var renderer ports.Renderer
	if !opts.JSON {
		renderer = linear.NewRenderer(a.stdout, a.stderr)
	}

	eng := a.newEngine(cfg, renderer)
	defer eng.close(ctx)

	result, err := eng.orch.RunCycle(ctx, orchestrator.CycleOptions{Threshold: opts.Threshold})
	if err != nil {
		return nil, err
	}

	if opts.JSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return result, enc.Encode(result)
	}

	renderer.OnResult(result)
	return result, nil
}
