package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/config"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), domain.FilePerm)
	require.NoError(t, err)
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := newLoader(t).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultConfig(dir), cfg)
	assert.Equal(t, 24*time.Hour, cfg.Threshold)
	assert.Equal(t, 1500*time.Millisecond, cfg.FreshnessSource.MinInterval)
}

func TestLoader_OverridesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `
threshold: 12h
point_cap: 40
log_level: debug
freshness_source:
  min_interval: 2s
daemon:
  idle_timeout: 30m
  metrics_addr: "127.0.0.1:9464"
`)

	cfg, err := newLoader(t).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 12*time.Hour, cfg.Threshold)
	assert.Equal(t, 40, cfg.PointCap)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.FreshnessSource.MinInterval)
	assert.Equal(t, domain.DefaultFreshnessURL, cfg.FreshnessSource.URL, "unset keys keep defaults")
	assert.Equal(t, domain.DefaultFreshnessRetryPause, cfg.FreshnessSource.RateLimitPause)
	assert.Equal(t, 30*time.Minute, cfg.Daemon.IdleTimeout)
	assert.Equal(t, "127.0.0.1:9464", cfg.Daemon.MetricsAddr)
	assert.Equal(t, domain.DefaultRecheckCooldown, cfg.RecheckCooldown)
}

func TestLoader_EmptyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "")

	cfg, err := newLoader(t).Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(dir), cfg)
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{name: "invalid yaml", content: "threshold: [", errContains: domain.ErrConfigParseFailed.Error()},
		{name: "unknown key", content: "treshold: 1h", errContains: domain.ErrConfigParseFailed.Error()},
		{name: "bare number duration", content: "threshold: 24", errContains: domain.ErrConfigParseFailed.Error()},
		{name: "zero threshold", content: "threshold: 0s", errContains: domain.ErrInvalidConfig.Error()},
		{name: "auto refresh too short", content: "auto_refresh: 30s", errContains: domain.ErrInvalidConfig.Error()},
		{name: "negative point cap", content: "point_cap: -1", errContains: domain.ErrInvalidConfig.Error()},
		{name: "bad url", content: "coordinate_source:\n  url: ftp://example.com", errContains: domain.ErrInvalidConfig.Error()},
		{name: "bad log level", content: "log_level: chatty", errContains: domain.ErrInvalidConfig.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := newLoader(t).Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoader_MapFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		domain.ConfigFileName: {Data: []byte("recheck_cooldown: 2h\ncompanion_process: EDMC\n")},
	}
	loader := newLoader(t).WithFS(config.NewMapFSAdapter("/data", fsys))

	cfg, err := loader.Load("/data")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.RecheckCooldown)
	assert.Equal(t, "EDMC", cfg.CompanionProcess)
	assert.Equal(t, "/data", cfg.DataDir)
}

func TestParseThreshold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  time.Duration
		ok    bool
	}{
		{input: "24h", want: 24 * time.Hour, ok: true},
		{input: "90m", want: 90 * time.Minute, ok: true},
		{input: "48", want: 48 * time.Hour, ok: true},
		{input: "1.5", want: 90 * time.Minute, ok: true},
		{input: "0", ok: false},
		{input: "-3h", ok: false},
		{input: "soon", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := config.ParseThreshold(tt.input)
			if !tt.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
