// Package app implements the application layer for edppm.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/metrics"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	connector    ports.DaemonConnector
	watcher      ports.Watcher
	recorder     *metrics.Recorder

	dataDir     string
	verbose     bool
	stdout      io.Writer
	stderr      io.Writer
	transport   http.RoundTripper
	process     ports.ProcessDetector
	teaOptions  []tea.ProgramOption
	disableTick bool
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	connector ports.DaemonConnector,
	watcher ports.Watcher,
	recorder *metrics.Recorder,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		connector:    connector,
		watcher:      watcher,
		recorder:     recorder,
		dataDir:      domain.DefaultDataPath(),
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// WithDataDir overrides the data directory.
func (a *App) WithDataDir(dir string) *App {
	a.dataDir = dir
	return a
}

// WithVerbose forces debug logging regardless of the configured level.
func (a *App) WithVerbose(verbose bool) *App {
	a.verbose = verbose
	return a
}

// WithOutput redirects reports and progress.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithTransport replaces the HTTP transport used by the sources.
// This is primarily used for testing.
func (a *App) WithTransport(rt http.RoundTripper) *App {
	a.transport = rt
	return a
}

// WithProcessDetector replaces the companion process detector.
func (a *App) WithProcessDetector(p ports.ProcessDetector) *App {
	a.process = p
	return a
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithDisableTick disables the TUI clock.
func (a *App) WithDisableTick() *App {
	a.disableTick = true
	return a
}

// GlobalOptions are the settings shared by every command.
type GlobalOptions struct {
	// DataDir overrides the data directory when not empty.
	DataDir string
	Verbose bool
}

// Configure applies the command line settings shared by every command.
func (a *App) Configure(opts GlobalOptions) {
	if opts.DataDir != "" {
		a.dataDir = opts.DataDir
	}
	a.verbose = opts.Verbose
}

// DataDir returns the data directory the App operates on.
func (a *App) DataDir() string {
	return a.dataDir
}

type levelSetter interface {
	SetLevel(level slog.Level)
}

func (a *App) loadConfig() (*domain.Config, error) {
	cfg, err := a.configLoader.Load(a.dataDir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if ls, ok := a.logger.(levelSetter); ok {
		level := cfg.LogLevel
		if a.verbose {
			level = slog.LevelDebug
		}
		ls.SetLevel(level)
	}
	return cfg, nil
}

// rejectionNotice renders a StartCycle error as a short status line.
func rejectionNotice(err error) string {
	var cooldown *domain.CooldownError
	switch {
	case errors.As(err, &cooldown):
		return fmt.Sprintf("cooldown %s", cooldown.Remaining.Round(time.Second))
	case errors.Is(err, domain.ErrConcurrentRefreshRejected):
		return "refresh already running"
	default:
		return fmt.Sprintf("refresh failed: %v", err)
	}
}

// IsRejection reports whether err is a refresh rejection rather than a failure.
func IsRejection(err error) bool {
	return errors.Is(err, domain.ErrCooldownActive) || errors.Is(err, domain.ErrConcurrentRefreshRejected)
}

// summary renders the one-line form of a snapshot used in logs and daemon status.
func summary(r *domain.RefreshResult) string {
	return fmt.Sprintf("%d current, %d outdated, %d unknown, route %d stops (%.2f ly)",
		len(r.Current), len(r.Outdated), len(r.Unknown), len(r.Route), r.RouteDistance)
}

const shutdownTimeout = 5 * time.Second

func shutdownContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
}
