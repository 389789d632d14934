package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/config"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/metrics"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/app"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testConfig = `
min_refresh_interval: 0s
coordinate_source:
  min_interval: 1ms
  rate_limit_pause: 1ms
freshness_source:
  min_interval: 1ms
  rate_limit_pause: 1ms
`

const testRegistry = `{
  "Sol": {"x": 0, "y": 0, "z": 0},
  "Lave": {"coords": {"x": 75.75, "y": 48.75, "z": 70.75}},
  "Diso": {},
  "Achenar": {}
}`

// upstream answers EDSM and Inara queries from fixed tables.
type upstream struct {
	coords     map[string]string
	pages      map[string]string
	edsmCalls  atomic.Int32
	inaraCalls atomic.Int32
}

func newUpstream() *upstream {
	return &upstream{
		coords: map[string]string{
			"Diso":    `{"name":"Diso","coords":{"x":72.15625,"y":48.75,"z":68.25}}`,
			"Achenar": `[]`,
		},
		pages: map[string]string{
			"Sol":     `<html><body><p>Updated 12 Mar 3311, 9:41 PM</p></body></html>`,
			"Lave":    `<html><body><p>Updated 1 Jan 2000, 1:00 pm</p></body></html>`,
			"Diso":    `<html><body><p>Updated 3 Feb 2001, 11:15 am</p></body></html>`,
			"Achenar": `<html><body><p>No data</p></body></html>`,
		},
	}
}

func (u *upstream) RoundTrip(req *http.Request) (*http.Response, error) {
	q := req.URL.Query()
	var body string
	switch {
	case q.Has("systemName"):
		u.edsmCalls.Add(1)
		body = u.coords[q.Get("systemName")]
		if body == "" {
			body = `[]`
		}
	default:
		u.inaraCalls.Add(1)
		body = u.pages[q.Get("search")]
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Status:     http.StatusText(http.StatusOK),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

type fixture struct {
	app       *app.App
	dir       string
	upstream  *upstream
	connector *mocks.MockDaemonConnector
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	process := mocks.NewMockProcessDetector(ctrl)
	process.EXPECT().Running(gomock.Any()).Return(true).AnyTimes()

	connector := mocks.NewMockDaemonConnector(ctrl)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(testConfig), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.RegistryFileName), []byte(testRegistry), 0o600))

	f := &fixture{
		dir:       dir,
		upstream:  newUpstream(),
		connector: connector,
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
	}
	f.app = app.New(config.NewLoader(logger), logger, connector, nil, metrics.NewRecorder()).
		WithDataDir(dir).
		WithOutput(f.stdout, f.stderr).
		WithTransport(f.upstream).
		WithProcessDetector(process)
	return f
}

func TestApp_Refresh_JSON(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	result, err := f.app.Refresh(context.Background(), app.RefreshOptions{JSON: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"Sol"}, result.Current)
	assert.ElementsMatch(t, []string{"Lave", "Diso"}, result.Outdated)
	assert.Equal(t, []string{"Achenar"}, result.Unknown)
	assert.Equal(t, []string{"Achenar"}, result.Missing)
	assert.ElementsMatch(t, []string{"Lave", "Diso"}, result.Route)
	assert.Positive(t, result.RouteDistance)
	assert.True(t, result.CompanionRunning)
	assert.False(t, result.Interrupted)
	assert.Empty(t, result.PersistErr)

	assert.Equal(t, domain.Counters{
		CoordinatesFromHint: 2,
		CoordinatesFetched:  1,
		CoordinateFailures:  1,
		FreshnessFetched:    4,
	}, result.Counters)

	var printed domain.RefreshResult
	require.NoError(t, json.Unmarshal(f.stdout.Bytes(), &printed))
	assert.Equal(t, result.Route, printed.Route)
	assert.Equal(t, result.Missing, printed.Missing)

	assert.FileExists(t, filepath.Join(f.dir, domain.CoordinateCacheFileName))
	assert.FileExists(t, filepath.Join(f.dir, domain.FreshnessCacheFileName))
}

func TestApp_Refresh_UsesCaches(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.app.Refresh(ctx, app.RefreshOptions{JSON: true})
	require.NoError(t, err)
	edsm, inara := f.upstream.edsmCalls.Load(), f.upstream.inaraCalls.Load()

	second, err := f.app.Refresh(ctx, app.RefreshOptions{JSON: true})
	require.NoError(t, err)

	// Only the system without coordinates or freshness information is asked again.
	assert.Equal(t, edsm+1, f.upstream.edsmCalls.Load())
	assert.Equal(t, inara+1, f.upstream.inaraCalls.Load())
	assert.Equal(t, domain.Counters{
		CoordinatesCached:  3,
		CoordinateFailures: 1,
		FreshnessFetched:   1,
		FreshnessSkipped:   2,
	}, second.Counters)
	assert.ElementsMatch(t, []string{"Lave", "Diso"}, second.Outdated)
}

func TestApp_Refresh_CooldownSpansInvocations(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	config := strings.Replace(testConfig, "min_refresh_interval: 0s", "min_refresh_interval: 1h", 1)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, domain.ConfigFileName), []byte(config), 0o600))
	ctx := context.Background()

	_, err := f.app.Refresh(ctx, app.RefreshOptions{JSON: true})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(f.dir, domain.LastRefreshFileName))
	calls := f.upstream.edsmCalls.Load() + f.upstream.inaraCalls.Load()

	// Each one-shot refresh builds a fresh engine; the recorded start still gates it.
	_, err = f.app.Refresh(ctx, app.RefreshOptions{JSON: true})
	require.ErrorIs(t, err, domain.ErrCooldownActive)
	assert.True(t, app.IsRejection(err))
	assert.Equal(t, calls, f.upstream.edsmCalls.Load()+f.upstream.inaraCalls.Load())
}

func TestApp_Refresh_Report(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.app.Refresh(context.Background(), app.RefreshOptions{})
	require.NoError(t, err)

	out := f.stdout.String()
	assert.Contains(t, out, "Route (2 stops")
	assert.Contains(t, out, "Missing coordinates (1)")
	assert.Contains(t, out, "  - Achenar (unknown)")
	assert.Contains(t, out, "Current (1)")
	assert.Contains(t, out, "Companion   running")
	assert.Contains(t, f.stderr.String(), "[refresh]")
}

func TestApp_Refresh_ThresholdOverride(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	// A century makes every dated page current.
	result, err := f.app.Refresh(context.Background(), app.RefreshOptions{
		Threshold: 100 * 365 * 24 * time.Hour,
		JSON:      true,
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Sol", "Lave", "Diso"}, result.Current)
	assert.Empty(t, result.Outdated)
	assert.Empty(t, result.Route)
}

func TestApp_Refresh_InvalidConfig(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, domain.ConfigFileName), []byte("threshold: -1h\n"), 0o600))

	_, err := f.app.Refresh(context.Background(), app.RefreshOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.Zero(t, f.upstream.edsmCalls.Load())
}

func TestApp_Clean(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.app.Refresh(ctx, app.RefreshOptions{JSON: true})
	require.NoError(t, err)

	require.NoError(t, f.app.Clean(ctx, app.CleanOptions{Coordinates: true}))
	assert.NoFileExists(t, filepath.Join(f.dir, domain.CoordinateCacheFileName))
	assert.FileExists(t, filepath.Join(f.dir, domain.FreshnessCacheFileName))

	require.NoError(t, f.app.Clean(ctx, app.CleanOptions{Coordinates: true, Freshness: true}))
	assert.NoFileExists(t, filepath.Join(f.dir, domain.FreshnessCacheFileName))
	assert.FileExists(t, filepath.Join(f.dir, domain.RegistryFileName))
}

func TestApp_DaemonStatus_NotRunning(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.connector.EXPECT().IsRunning().Return(false)

	status, snapshot, err := f.app.DaemonStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Running)
	assert.Nil(t, snapshot)
}

func TestApp_DaemonStatus_Running(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	client := mocks.NewMockDaemonClient(ctrl)

	want := &domain.RefreshResult{Current: []string{"Sol"}}
	f.connector.EXPECT().IsRunning().Return(true)
	f.connector.EXPECT().Dial(gomock.Any()).Return(client, nil)
	client.EXPECT().Status(gomock.Any()).Return(&ports.DaemonStatus{Running: true, PID: 42}, nil)
	client.EXPECT().Snapshot(gomock.Any()).Return(want, nil)
	client.EXPECT().Close().Return(nil)

	status, snapshot, err := f.app.DaemonStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Running)
	assert.Equal(t, 42, status.PID)
	assert.Same(t, want, snapshot)
}

func TestApp_DaemonRefresh(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	client := mocks.NewMockDaemonClient(ctrl)

	f.connector.EXPECT().Connect(gomock.Any()).Return(client, nil)
	client.EXPECT().Refresh(gomock.Any()).Return(domain.NewCooldownError(0))
	client.EXPECT().Close().Return(nil)

	err := f.app.DaemonRefresh(context.Background())
	require.Error(t, err)
	assert.True(t, app.IsRejection(err))
}

func TestApp_StopDaemon(t *testing.T) {
	t.Parallel()

	t.Run("not running", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.connector.EXPECT().IsRunning().Return(false)

		stopped, err := f.app.StopDaemon(context.Background())
		require.NoError(t, err)
		assert.False(t, stopped)
	})

	t.Run("running", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctrl := gomock.NewController(t)
		client := mocks.NewMockDaemonClient(ctrl)

		f.connector.EXPECT().IsRunning().Return(true)
		f.connector.EXPECT().Dial(gomock.Any()).Return(client, nil)
		client.EXPECT().Shutdown(gomock.Any()).Return(nil)
		client.EXPECT().Close().Return(nil)

		stopped, err := f.app.StopDaemon(context.Background())
		require.NoError(t, err)
		assert.True(t, stopped)
	})
}

func TestIsRejection(t *testing.T) {
	t.Parallel()

	assert.True(t, app.IsRejection(domain.NewCooldownError(5)))
	assert.True(t, app.IsRejection(domain.ErrConcurrentRefreshRejected))
	assert.False(t, app.IsRejection(domain.ErrNetworkFailure))
	assert.False(t, app.IsRejection(nil))
}

// cancelWriter cancels a context once the written output contains marker.
type cancelWriter struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	marker string
	cancel context.CancelFunc
}

func (w *cancelWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, err := w.buf.Write(p)
	if strings.Contains(w.buf.String(), w.marker) {
		w.cancel()
	}
	return n, err
}

func (w *cancelWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestApp_Watch_Linear(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stdout := &cancelWriter{marker: "Completed", cancel: cancel}
	f.app.WithOutput(stdout, io.Discard)

	err := f.app.Watch(ctx, app.WatchOptions{OutputMode: "linear"})
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "Route (2 stops")
	assert.Contains(t, out, "Missing coordinates (1)")
	assert.FileExists(t, filepath.Join(f.dir, domain.FreshnessCacheFileName))
}
