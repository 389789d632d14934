package app

import (
	"context"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/watcher"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/engine/orchestrator"
)

// loopConfig configures the auto-refresh loop shared by watch and the daemon.
type loopConfig struct {
	interval  time.Duration
	threshold time.Duration
	triggers  <-chan struct{}
	onResult  func(*domain.RefreshResult)
	onNotice  func(string)
}

// refreshLoop starts a cycle immediately, then on every tick and trigger, and hands
// published snapshots to onResult until ctx is done.
func (a *App) refreshLoop(ctx context.Context, eng *engine, cfg loopConfig) error {
	start := func() {
		err := eng.orch.StartCycle(ctx, orchestrator.CycleOptions{Threshold: cfg.threshold})
		if err == nil {
			return
		}
		if !IsRejection(err) {
			a.logger.Error(err)
		}
		cfg.onNotice(rejectionNotice(err))
	}

	start()

	ticker := time.NewTicker(cfg.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			eng.orch.Wait()
			return nil
		case <-ticker.C:
			start()
		case <-cfg.triggers:
			start()
		case result := <-eng.orch.Results():
			cfg.onResult(result)
		}
	}
}

// watchRegistry triggers a refresh whenever the registry file changes.
// It returns once the watcher is stopped.
func (a *App) watchRegistry(ctx context.Context, layout domain.Layout, trigger func()) error {
	if a.watcher == nil {
		<-ctx.Done()
		return nil
	}

	if err := a.watcher.Start(ctx, layout.RegistryPath()); err != nil {
		return err
	}

	debouncer := watcher.NewDebouncer(domain.DefaultRegistryDebounceWindow, func(_ []string) {
		a.logger.Debug("registry changed, refreshing")
		trigger()
	})
	defer debouncer.Stop()

	go func() {
		<-ctx.Done()
		_ = a.watcher.Stop()
	}()

	for event := range a.watcher.Events() {
		debouncer.Add(event.Path)
	}
	return nil
}

// newTrigger returns a coalescing trigger channel and the function that fires it.
func newTrigger() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	return ch, func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
