package app

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/detector"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/linear"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/tui"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// WatchOptions configure the watch session.
type WatchOptions struct {
	// Threshold overrides the configured staleness threshold when positive.
	Threshold time.Duration
	// OutputMode is "auto", "tui" or "linear".
	OutputMode string
}

// Watch refreshes on a timer, on request and on registry changes until ctx is done
// or the user quits the interactive view.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
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

	triggers, trigger := newTrigger()

	mode := detector.ResolveMode(detector.DetectEnvironment(a.stderr), opts.OutputMode)
	var renderer ports.Renderer
	if mode == detector.ModeTUI {
		model := tui.NewModel(a.stderr, trigger)
		if a.disableTick {
			model = model.WithDisableTick()
		}
		teaOpts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
		renderer = tui.NewRenderer(&model, teaOpts...)
	} else {
		renderer = linear.NewRenderer(a.stdout, a.stderr)
	}

	if err := renderer.Start(ctx); err != nil {
		return err
	}

	eng := a.newEngine(cfg, renderer)

	g, gctx := errgroup.WithContext(ctx)

	if mode == detector.ModeTUI {
		// Quitting the view ends the session.
		g.Go(func() error {
			defer cancel()
			if err := renderer.Wait(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		return a.refreshLoop(gctx, eng, loopConfig{
			interval:  cfg.AutoRefresh,
			threshold: opts.Threshold,
			triggers:  triggers,
			onResult:  renderer.OnResult,
			onNotice:  renderer.OnNotice,
		})
	})

	g.Go(func() error {
		return a.watchRegistry(gctx, layout, trigger)
	})

	err = g.Wait()
	eng.close(ctx)
	_ = renderer.Stop()
	if mode != detector.ModeTUI {
		_ = renderer.Wait()
	}
	return err
}
