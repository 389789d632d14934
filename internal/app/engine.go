package app

import (
	"context"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/cache"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/edsm"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/filelock"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/httpclient"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/inara"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/process"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/registry"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/telemetry"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/build"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/engine/orchestrator"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/engine/ratelimit"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/engine/resolver"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/engine/staleness"
)

const instrumentationName = "edppm"

// engine is the set of config-dependent components behind one orchestrator.
type engine struct {
	layout domain.Layout
	orch   *orchestrator.Orchestrator
	store  *cache.Store
	tracer *telemetry.OTelTracer
}

// newEngine assembles sources, limiters, caches and the orchestrator for cfg.
// Spans are forwarded to renderer when it is not nil.
func (a *App) newEngine(cfg *domain.Config, renderer ports.Renderer) *engine {
	layout := cfg.Layout()

	client := httpclient.New(cfg.RequestTimeout, build.UserAgent())
	if a.transport != nil {
		client.WithTransport(a.transport)
	}

	coords := edsm.New(client, cfg.CoordinateSource.URL, cfg.CoordinateSource.RateLimitPause)
	fresh := inara.New(client, cfg.FreshnessSource.URL, cfg.FreshnessSource.RateLimitPause)

	res := resolver.New(coords, ratelimit.New(cfg.CoordinateSource.MinInterval), a.logger)
	tracker := staleness.New(fresh, ratelimit.New(cfg.FreshnessSource.MinInterval), a.logger, cfg.RecheckCooldown)
	store := cache.New(layout)

	orch := orchestrator.New(
		registry.New(layout.RegistryPath()),
		store,
		res,
		tracker,
		a.logger,
		orchestrator.Settings{
			Threshold:          cfg.Threshold,
			MinRefreshInterval: cfg.MinRefreshInterval,
			PointCap:           cfg.PointCap,
		},
	).WithLock(filelock.New(layout.LockPath())).
		WithCycleStamp(filelock.NewStamp(layout.LastRefreshPath()))

	if a.process != nil {
		orch.WithProcessDetector(a.process)
	} else {
		orch.WithProcessDetector(process.New(cfg.CompanionProcess, a.logger))
	}

	if a.recorder != nil {
		orch.WithMetrics(a.recorder)
	}

	e := &engine{layout: layout, orch: orch, store: store}
	if renderer != nil {
		e.tracer = telemetry.NewOTelTracer(instrumentationName).
			WithProvider(telemetry.NewProvider(renderer), instrumentationName)
		orch.WithTracer(e.tracer)
	}
	return e
}

// close waits for in-flight cycles and flushes telemetry.
func (e *engine) close(ctx context.Context) {
	e.orch.Wait()
	if e.tracer != nil {
		sctx, cancel := shutdownContext(ctx)
		defer cancel()
		_ = e.tracer.Shutdown(sctx)
	}
}
