package daemon

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	pollInterval    = 100 * time.Millisecond
	maxPollDuration = 5 * time.Second
	pingTimeout     = time.Second
)

var _ ports.DaemonConnector = (*Connector)(nil)

// Connector implements ports.DaemonConnector.
type Connector struct {
	layout         domain.Layout
	executablePath string
}

// NewConnector creates a connector for the daemon of layout.
func NewConnector(layout domain.Layout) (*Connector, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine executable path")
	}
	return &Connector{layout: layout, executablePath: exe}, nil
}

// Dial returns a client to a running daemon.
func (c *Connector) Dial(ctx context.Context) (ports.DaemonClient, error) {
	client, err := Dial(c.layout.DaemonSocketPath())
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDaemonUnavailable.Error()), "socket", c.layout.DaemonSocketPath())
	}
	return client, nil
}

// Connect returns a client, spawning the daemon if necessary.
func (c *Connector) Connect(ctx context.Context) (ports.DaemonClient, error) {
	if client, err := c.Dial(ctx); err == nil {
		return client, nil
	}

	if err := c.Spawn(ctx); err != nil {
		return nil, err
	}

	client, err := c.Dial(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "daemon started but is not responsive")
	}
	return client, nil
}

// IsRunning checks if the daemon is running and responsive.
func (c *Connector) IsRunning() bool {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return c.isRunningWithCtx(ctx)
}

func (c *Connector) isRunningWithCtx(ctx context.Context) bool {
	client, err := c.Dial(ctx)
	if err != nil {
		return false
	}
	_ = client.Close()
	return true
}

// Spawn starts the daemon process in the background and waits until it answers.
func (c *Connector) Spawn(ctx context.Context) error {
	root, err := filepath.Abs(c.layout.Root)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve data directory")
	}
	if err := os.MkdirAll(root, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create daemon directory")
	}

	logPath := domain.NewLayout(root).DebugLogPath()
	//nolint:gosec // G304: logPath is the data directory plus a constant
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, domain.PrivateFilePerm)
	if err != nil {
		return zerr.Wrap(err, "failed to open daemon log")
	}

	//nolint:gosec // G204: executablePath is our own binary, args are fixed literals
	cmd := exec.Command(c.executablePath, "daemon", "serve")
	cmd.Env = append(os.Environ(), domain.DataDirEnv+"="+root)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	detach(cmd)

	if err := cmd.Start(); err != nil {
		_ = logFile.Close()
		return zerr.Wrap(err, "failed to spawn daemon")
	}

	go func() {
		_ = cmd.Wait()
		_ = logFile.Close()
	}()

	return c.waitForDaemonStartup(ctx)
}

func (c *Connector) waitForDaemonStartup(ctx context.Context) error {
	deadline := time.Now().Add(maxPollDuration)
	for time.Now().Before(deadline) {
		if c.isRunningWithCtx(ctx) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
	return zerr.With(domain.ErrDaemonUnavailable, "reason", "daemon failed to start within timeout")
}
