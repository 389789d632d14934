package config

import "time"

// File represents the structure of the edppm.yaml configuration file.
// Durations are Go duration strings such as "24h" or "1.5s".
type File struct {
	Threshold          time.Duration `yaml:"threshold"`
	RecheckCooldown    time.Duration `yaml:"recheck_cooldown"`
	PointCap           int           `yaml:"point_cap"`
	MinRefreshInterval time.Duration `yaml:"min_refresh_interval"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	AutoRefresh        time.Duration `yaml:"auto_refresh"`
	CompanionProcess   string        `yaml:"companion_process"`
	LogLevel           string        `yaml:"log_level"`
	CoordinateSource   SourceDTO     `yaml:"coordinate_source"`
	FreshnessSource    SourceDTO     `yaml:"freshness_source"`
	Daemon             DaemonDTO     `yaml:"daemon"`
}

// SourceDTO configures one external source.
type SourceDTO struct {
	URL            string        `yaml:"url"`
	MinInterval    time.Duration `yaml:"min_interval"`
	RateLimitPause time.Duration `yaml:"rate_limit_pause"`
}

// DaemonDTO configures the background daemon.
type DaemonDTO struct {
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MetricsAddr string        `yaml:"metrics_addr"`
}
