package domain

import (
	"log/slog"
	"time"
)

// Defaults taken over from the original planner.
const (
	DefaultThreshold          = 24 * time.Hour
	DefaultRecheckCooldown    = 6 * time.Hour
	DefaultPointCap           = 80
	DefaultMinRefreshInterval = 15 * time.Second
	DefaultRequestTimeout     = 20 * time.Second
	DefaultAutoRefresh        = 15 * time.Minute
	MinAutoRefresh            = time.Minute

	DefaultCoordinateURL          = "https://www.edsm.net/api-v1/system"
	DefaultCoordinateMinInterval  = 250 * time.Millisecond
	DefaultCoordinateRetryPause   = 5 * time.Second
	DefaultFreshnessURL           = "https://inara.cz/elite/starsystem/"
	DefaultFreshnessMinInterval   = 1500 * time.Millisecond
	DefaultFreshnessRetryPause    = 10 * time.Second
	DefaultCompanionProcess       = "edmarketconnector.exe"
	DefaultRegistryDebounceWindow = 500 * time.Millisecond
)

// SourceConfig configures one external source.
type SourceConfig struct {
	URL            string
	MinInterval    time.Duration
	RateLimitPause time.Duration
}

// DaemonConfig configures the background daemon.
type DaemonConfig struct {
	IdleTimeout time.Duration
	MetricsAddr string
}

// Config is the validated runtime configuration.
type Config struct {
	DataDir            string
	Threshold          time.Duration
	RecheckCooldown    time.Duration
	PointCap           int
	MinRefreshInterval time.Duration
	RequestTimeout     time.Duration
	AutoRefresh        time.Duration
	CompanionProcess   string
	LogLevel           slog.Level
	CoordinateSource   SourceConfig
	FreshnessSource    SourceConfig
	Daemon             DaemonConfig
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig(dataDir string) *Config {
	return &Config{
		DataDir:            dataDir,
		Threshold:          DefaultThreshold,
		RecheckCooldown:    DefaultRecheckCooldown,
		PointCap:           DefaultPointCap,
		MinRefreshInterval: DefaultMinRefreshInterval,
		RequestTimeout:     DefaultRequestTimeout,
		AutoRefresh:        DefaultAutoRefresh,
		CompanionProcess:   DefaultCompanionProcess,
		LogLevel:           slog.LevelInfo,
		CoordinateSource: SourceConfig{
			URL:            DefaultCoordinateURL,
			MinInterval:    DefaultCoordinateMinInterval,
			RateLimitPause: DefaultCoordinateRetryPause,
		},
		FreshnessSource: SourceConfig{
			URL:            DefaultFreshnessURL,
			MinInterval:    DefaultFreshnessMinInterval,
			RateLimitPause: DefaultFreshnessRetryPause,
		},
	}
}

// Layout returns the file layout of the configured data directory.
func (c *Config) Layout() Layout {
	return NewLayout(c.DataDir)
}
