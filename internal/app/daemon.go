package app

import (
	"context"
	"fmt"
	"os"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/daemon"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/metrics"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/engine/orchestrator"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// daemonEngine exposes the orchestrator to the daemon server.
type daemonEngine struct {
	orch *orchestrator.Orchestrator
}

var _ daemon.Engine = daemonEngine{}

func (e daemonEngine) StartRefresh(ctx context.Context) error {
	return e.orch.StartCycle(ctx, orchestrator.CycleOptions{})
}

func (e daemonEngine) Latest() *domain.RefreshResult {
	return e.orch.Latest()
}

func (e daemonEngine) Refreshing() bool {
	return e.orch.State() == orchestrator.Running
}

// ServeDaemon runs the daemon in the foreground: the RPC server, the auto-refresh loop,
// the registry watcher and, when configured, the metrics endpoint.
func (a *App) ServeDaemon(ctx context.Context) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	layout := cfg.Layout()
	if err := os.MkdirAll(layout.Root, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create data directory"), "path", layout.Root)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eng := a.newEngine(cfg, nil)
	defer eng.close(ctx)

	lifecycle := daemon.NewLifecycle(cfg.Daemon.IdleTimeout)
	server := daemon.NewServer(layout, lifecycle, daemonEngine{orch: eng.orch}, a.logger)
	triggers, trigger := newTrigger()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// A shutdown request or idle timeout stops everything else.
		defer cancel()
		return server.Serve(gctx)
	})

	g.Go(func() error {
		return a.refreshLoop(gctx, eng, loopConfig{
			interval: cfg.AutoRefresh,
			triggers: triggers,
			onResult: func(r *domain.RefreshResult) {
				a.logger.Info("refresh complete: " + summary(r))
				if r.PersistErr != "" {
					a.logger.Warn("cache not saved: " + r.PersistErr)
				}
			},
			onNotice: a.logger.Info,
		})
	})

	g.Go(func() error {
		return a.watchRegistry(gctx, layout, trigger)
	})

	if addr := cfg.Daemon.MetricsAddr; addr != "" && a.recorder != nil {
		g.Go(func() error {
			a.logger.Info(fmt.Sprintf("serving metrics on %s", addr))
			return metrics.Serve(gctx, addr, metrics.NewRouter(a.recorder, eng.orch.Latest, a.logger))
		})
	}

	return g.Wait()
}

// DaemonStatus reports the daemon state and its latest snapshot.
// A daemon that is not running yields a status with Running unset and a nil snapshot.
func (a *App) DaemonStatus(ctx context.Context) (*ports.DaemonStatus, *domain.RefreshResult, error) {
	if !a.connector.IsRunning() {
		return &ports.DaemonStatus{}, nil, nil
	}

	client, err := a.connector.Dial(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = client.Close() }()

	status, err := client.Status(ctx)
	if err != nil {
		return nil, nil, err
	}

	snapshot, err := client.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	return status, snapshot, nil
}

// DaemonRefresh asks the daemon to start a cycle, spawning it first if needed.
func (a *App) DaemonRefresh(ctx context.Context) error {
	client, err := a.connector.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	return client.Refresh(ctx)
}

// StopDaemon asks a running daemon to shut down. It reports false if none was running.
func (a *App) StopDaemon(ctx context.Context) (bool, error) {
	if !a.connector.IsRunning() {
		return false, nil
	}

	client, err := a.connector.Dial(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = client.Close() }()

	if err := client.Shutdown(ctx); err != nil {
		return false, err
	}
	return true, nil
}
