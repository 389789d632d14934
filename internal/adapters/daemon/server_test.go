package daemon_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/daemon"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fakeEngine struct {
	latest     atomic.Pointer[domain.RefreshResult]
	refreshing atomic.Bool
	startErr   error
	started    atomic.Int32
}

func (f *fakeEngine) StartRefresh(context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started.Add(1)
	return nil
}

func (f *fakeEngine) Latest() *domain.RefreshResult { return f.latest.Load() }
func (f *fakeEngine) Refreshing() bool              { return f.refreshing.Load() }

// shortLayout keeps the socket path below the platform limit.
func shortLayout(t *testing.T) domain.Layout {
	t.Helper()
	dir, err := os.MkdirTemp("", "edppm")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return domain.NewLayout(dir)
}

func startServer(t *testing.T, engine daemon.Engine) (domain.Layout, *daemon.Client, <-chan struct{}) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	layout := shortLayout(t)
	srv := daemon.NewServer(layout, daemon.NewLifecycle(0), engine, logger)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		assert.NoError(t, srv.Serve(ctx))
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})

	require.Eventually(t, func() bool {
		_, err := os.Stat(layout.DaemonSocketPath())
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	client, err := daemon.Dial(layout.DaemonSocketPath())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return layout, client, stopped
}

func TestServer_StatusAndSnapshot(t *testing.T) {
	engine := &fakeEngine{}
	layout, client, _ := startServer(t, engine)
	ctx := context.Background()

	require.NoError(t, client.Ping(ctx))
	assert.FileExists(t, layout.DaemonPIDPath())

	snap, err := client.Snapshot(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap, "no cycle has completed")

	completed := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	want := &domain.RefreshResult{
		Coordinates:   map[string]domain.Coordinate{"Sol": {}, "Lave": {X: 75.75, Y: 48.75, Z: 70.75}},
		Route:         []string{"Sol", "Lave"},
		RouteDistance: 121.5,
		Current:       []string{},
		Outdated:      []string{"Sol", "Lave"},
		Unknown:       []string{"Diso"},
		Missing:       []string{"Diso"},
		Counters:      domain.Counters{CoordinatesCached: 2, FreshnessFetched: 3, FreshnessFailures: 1},
		Threshold:     24 * time.Hour,
		StartedAt:     completed.Add(-time.Minute),
		CompletedAt:   completed,
	}
	engine.latest.Store(want)
	engine.refreshing.Store(true)

	snap, err = client.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, snap)

	st, err := client.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st.Running)
	assert.True(t, st.Refreshing)
	assert.Equal(t, os.Getpid(), st.PID)
	assert.Equal(t, completed.Unix(), st.LastRefresh.Unix())
	assert.Zero(t, st.IdleRemaining)
}

func TestServer_RefreshRejections(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(t *testing.T, err error)
	}{
		{
			name: "cooldown",
			err:  domain.NewCooldownError(9 * time.Second),
			check: func(t *testing.T, err error) {
				var cooldown *domain.CooldownError
				require.ErrorAs(t, err, &cooldown)
				assert.Equal(t, 9*time.Second, cooldown.Remaining)
				require.ErrorIs(t, err, domain.ErrCooldownActive)
			},
		},
		{
			name: "concurrent",
			err:  zerr.Wrap(domain.ErrConcurrentRefreshRejected, "refresh running in another process"),
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, domain.ErrConcurrentRefreshRejected)
			},
		},
		{
			name: "internal",
			err:  errors.New("disk on fire"),
			check: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "disk on fire")
				assert.NotErrorIs(t, err, domain.ErrCooldownActive)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client, _ := startServer(t, &fakeEngine{startErr: tt.err})
			tt.check(t, client.Refresh(context.Background()))
		})
	}
}

func TestServer_RefreshStarts(t *testing.T) {
	engine := &fakeEngine{}
	_, client, _ := startServer(t, engine)

	require.NoError(t, client.Refresh(context.Background()))
	assert.Equal(t, int32(1), engine.started.Load())
}

func TestServer_Shutdown(t *testing.T) {
	layout, client, stopped := startServer(t, &fakeEngine{})

	require.NoError(t, client.Shutdown(context.Background()))

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.NoFileExists(t, layout.DaemonSocketPath())
	assert.NoFileExists(t, layout.DaemonPIDPath())
}

func TestConnector_DialWithoutDaemon(t *testing.T) {
	layout := shortLayout(t)
	c, err := daemon.NewConnector(layout)
	require.NoError(t, err)

	_, err = c.Dial(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrDaemonUnavailable.Error())
	assert.False(t, c.IsRunning())
}

func TestConnector_DialRunningDaemon(t *testing.T) {
	layout, _, _ := startServer(t, &fakeEngine{})
	c, err := daemon.NewConnector(layout)
	require.NoError(t, err)

	client, err := c.Dial(context.Background())
	require.NoError(t, err)
	defer func() { _ = client.Close() }()
	assert.True(t, c.IsRunning())
}
