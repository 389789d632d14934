package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/cmd/edppm/commands"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/app"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/build"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockApp struct {
	global       app.GlobalOptions
	refreshFunc  func(ctx context.Context, opts app.RefreshOptions) (*domain.RefreshResult, error)
	watchFunc    func(ctx context.Context, opts app.WatchOptions) error
	cleanFunc    func(ctx context.Context, opts app.CleanOptions) error
	serveCalled  bool
	status       *ports.DaemonStatus
	snapshot     *domain.RefreshResult
	daemonErr    error
	stopped      bool
	refreshCalls int
}

func (m *mockApp) Configure(opts app.GlobalOptions) {
	m.global = opts
}

func (m *mockApp) Refresh(ctx context.Context, opts app.RefreshOptions) (*domain.RefreshResult, error) {
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx, opts)
	}
	return &domain.RefreshResult{}, nil
}

func (m *mockApp) Watch(ctx context.Context, opts app.WatchOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) ServeDaemon(_ context.Context) error {
	m.serveCalled = true
	return nil
}

func (m *mockApp) DaemonStatus(_ context.Context) (*ports.DaemonStatus, *domain.RefreshResult, error) {
	if m.status == nil {
		return &ports.DaemonStatus{}, nil, m.daemonErr
	}
	return m.status, m.snapshot, m.daemonErr
}

func (m *mockApp) DaemonRefresh(_ context.Context) error {
	m.refreshCalls++
	return m.daemonErr
}

func (m *mockApp) StopDaemon(_ context.Context) (bool, error) {
	return m.stopped, m.daemonErr
}

func execute(t *testing.T, mock *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Refresh(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.RefreshOptions
		mock := &mockApp{
			refreshFunc: func(_ context.Context, opts app.RefreshOptions) (*domain.RefreshResult, error) {
				captured = opts
				return &domain.RefreshResult{}, nil
			},
		}

		_, err := execute(t, mock, "refresh", "--json", "--threshold", "12", "--verbose", "--data-dir", "/tmp/edppm")
		require.NoError(t, err)
		assert.True(t, captured.JSON)
		assert.Equal(t, 12*time.Hour, captured.Threshold)
		assert.Equal(t, app.GlobalOptions{DataDir: "/tmp/edppm", Verbose: true}, mock.global)
	})

	t.Run("threshold accepts durations", func(t *testing.T) {
		var captured app.RefreshOptions
		mock := &mockApp{
			refreshFunc: func(_ context.Context, opts app.RefreshOptions) (*domain.RefreshResult, error) {
				captured = opts
				return &domain.RefreshResult{}, nil
			},
		}

		_, err := execute(t, mock, "refresh", "-t", "90m")
		require.NoError(t, err)
		assert.Equal(t, 90*time.Minute, captured.Threshold)
		assert.False(t, captured.JSON)
	})

	t.Run("rejects invalid threshold", func(t *testing.T) {
		mock := &mockApp{
			refreshFunc: func(_ context.Context, _ app.RefreshOptions) (*domain.RefreshResult, error) {
				panic("should not be called")
			},
		}

		_, err := execute(t, mock, "refresh", "--threshold", "soon")
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrInvalidConfig.Error())
	})

	t.Run("returns error on refresh failure", func(t *testing.T) {
		mock := &mockApp{
			refreshFunc: func(_ context.Context, _ app.RefreshOptions) (*domain.RefreshResult, error) {
				return nil, errors.New("simulated error")
			},
		}

		_, err := execute(t, mock, "refresh")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Watch(t *testing.T) {
	t.Run("defaults to auto", func(t *testing.T) {
		var captured app.WatchOptions
		mock := &mockApp{
			watchFunc: func(_ context.Context, opts app.WatchOptions) error {
				captured = opts
				return nil
			},
		}

		_, err := execute(t, mock, "watch")
		require.NoError(t, err)
		assert.Equal(t, "auto", captured.OutputMode)
		assert.Zero(t, captured.Threshold)
	})

	t.Run("ci forces linear", func(t *testing.T) {
		var captured app.WatchOptions
		mock := &mockApp{
			watchFunc: func(_ context.Context, opts app.WatchOptions) error {
				captured = opts
				return nil
			},
		}

		_, err := execute(t, mock, "watch", "-o", "tui", "--ci", "--threshold", "2h")
		require.NoError(t, err)
		assert.Equal(t, "linear", captured.OutputMode)
		assert.Equal(t, 2*time.Hour, captured.Threshold)
	})
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.CleanOptions
	}{
		{name: "default cleans both", args: []string{"clean"}, want: app.CleanOptions{Coordinates: true, Freshness: true}},
		{name: "coords only", args: []string{"clean", "--coords"}, want: app.CleanOptions{Coordinates: true}},
		{name: "freshness only", args: []string{"clean", "-f"}, want: app.CleanOptions{Freshness: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured app.CleanOptions
			mock := &mockApp{
				cleanFunc: func(_ context.Context, opts app.CleanOptions) error {
					captured = opts
					return nil
				},
			}

			_, err := execute(t, mock, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, captured)
		})
	}
}

func TestCommands_Daemon(t *testing.T) {
	t.Run("serve", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, mock, "daemon", "serve")
		require.NoError(t, err)
		assert.True(t, mock.serveCalled)
	})

	t.Run("status not running", func(t *testing.T) {
		out, err := execute(t, &mockApp{}, "daemon", "status")
		require.NoError(t, err)
		assert.Equal(t, "daemon not running\n", out)
	})

	t.Run("status running", func(t *testing.T) {
		mock := &mockApp{
			status: &ports.DaemonStatus{Running: true, PID: 4242, Uptime: 90 * time.Second, IdleRemaining: time.Hour},
			snapshot: &domain.RefreshResult{
				Current:       []string{"Sol"},
				Outdated:      []string{"Lave"},
				Unknown:       []string{"Achenar"},
				Missing:       []string{"Achenar"},
				Route:         []string{"Lave"},
				RouteDistance: 0,
				CompletedAt:   time.Date(3311, time.March, 1, 12, 0, 0, 0, time.UTC),
			},
		}

		out, err := execute(t, mock, "daemon", "status")
		require.NoError(t, err)
		assert.Contains(t, out, "daemon running (pid 4242)")
		assert.Contains(t, out, "uptime          1m30s")
		assert.Contains(t, out, "idle remaining  1h0m0s")
		assert.Contains(t, out, "refreshing      no")
		assert.Contains(t, out, "last refresh    3311-03-01 12:00:00 UTC")
		assert.Contains(t, out, "1 current, 1 outdated, 1 unknown")
		assert.Contains(t, out, "route           1 stops, 0.00 ly")
		assert.Contains(t, out, "missing coords  1")
	})

	t.Run("status without snapshot", func(t *testing.T) {
		mock := &mockApp{status: &ports.DaemonStatus{Running: true, Refreshing: true}}
		out, err := execute(t, mock, "daemon", "status")
		require.NoError(t, err)
		assert.Contains(t, out, "refreshing      yes")
		assert.Contains(t, out, "last refresh    never")
	})

	t.Run("refresh", func(t *testing.T) {
		mock := &mockApp{}
		out, err := execute(t, mock, "daemon", "refresh")
		require.NoError(t, err)
		assert.Equal(t, 1, mock.refreshCalls)
		assert.Equal(t, "refresh started\n", out)
	})

	t.Run("refresh rejected", func(t *testing.T) {
		mock := &mockApp{daemonErr: domain.ErrConcurrentRefreshRejected}
		_, err := execute(t, mock, "daemon", "refresh")
		require.ErrorIs(t, err, domain.ErrConcurrentRefreshRejected)
	})

	t.Run("stop", func(t *testing.T) {
		out, err := execute(t, &mockApp{stopped: true}, "daemon", "stop")
		require.NoError(t, err)
		assert.Equal(t, "daemon stopped\n", out)

		out, err = execute(t, &mockApp{}, "daemon", "stop")
		require.NoError(t, err)
		assert.Equal(t, "daemon not running\n", out)
	})
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "edppm version "+build.Version)
}

func TestCommands_GlobalShorthands(t *testing.T) {
	t.Run("version flag", func(t *testing.T) {
		out, err := execute(t, &mockApp{}, "--version")
		require.NoError(t, err)
		assert.Contains(t, out, "edppm version "+build.Version)
	})

	t.Run("verbose shorthand reaches subcommands", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, mock, "-v", "-d", "/tmp/edppm", "refresh")
		require.NoError(t, err)
		assert.Equal(t, app.GlobalOptions{DataDir: "/tmp/edppm", Verbose: true}, mock.global)
	})

	t.Run("verbose shorthand after subcommand", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, mock, "refresh", "-v")
		require.NoError(t, err)
		assert.True(t, mock.global.Verbose)
	})
}
