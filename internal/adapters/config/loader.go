// Package config provides the configuration loader for edppm.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file in the data directory.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS()}
}

// WithFS replaces the filesystem the loader reads from.
func (l *Loader) WithFS(fsys FileSystem) *Loader {
	l.FS = fsys
	return l
}

// Load reads edppm.yaml from dataDir. A missing file yields the defaults.
func (l *Loader) Load(dataDir string) (*domain.Config, error) {
	cfg := domain.DefaultConfig(dataDir)
	configPath := cfg.Layout().ConfigPath()

	if _, err := l.FS.Stat(configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.Logger.Debug(fmt.Sprintf("no %s in %s, using defaults", domain.ConfigFileName, dataDir))
			return cfg, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	file := fromDomain(cfg)
	if err := l.readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if err := file.apply(cfg); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if cfg.RecheckCooldown > cfg.Threshold {
		l.Logger.Warn(fmt.Sprintf(
			"recheck_cooldown %s exceeds threshold %s; outdated systems will be rechecked rarely",
			cfg.RecheckCooldown, cfg.Threshold,
		))
	}
	return cfg, nil
}

func (l *Loader) readAndUnmarshalYAML(configPath string, target *File) error {
	data, err := l.FS.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}

func fromDomain(cfg *domain.Config) File {
	return File{
		Threshold:          cfg.Threshold,
		RecheckCooldown:    cfg.RecheckCooldown,
		PointCap:           cfg.PointCap,
		MinRefreshInterval: cfg.MinRefreshInterval,
		RequestTimeout:     cfg.RequestTimeout,
		AutoRefresh:        cfg.AutoRefresh,
		CompanionProcess:   cfg.CompanionProcess,
		LogLevel:           cfg.LogLevel.String(),
		CoordinateSource: SourceDTO{
			URL:            cfg.CoordinateSource.URL,
			MinInterval:    cfg.CoordinateSource.MinInterval,
			RateLimitPause: cfg.CoordinateSource.RateLimitPause,
		},
		FreshnessSource: SourceDTO{
			URL:            cfg.FreshnessSource.URL,
			MinInterval:    cfg.FreshnessSource.MinInterval,
			RateLimitPause: cfg.FreshnessSource.RateLimitPause,
		},
		Daemon: DaemonDTO{
			IdleTimeout: cfg.Daemon.IdleTimeout,
			MetricsAddr: cfg.Daemon.MetricsAddr,
		},
	}
}

// apply validates f and copies it onto cfg.
func (f *File) apply(cfg *domain.Config) error {
	checks := []struct {
		key string
		ok  bool
	}{
		{"threshold", f.Threshold > 0},
		{"recheck_cooldown", f.RecheckCooldown >= 0},
		{"point_cap", f.PointCap >= 0},
		{"min_refresh_interval", f.MinRefreshInterval >= 0},
		{"request_timeout", f.RequestTimeout > 0},
		{"auto_refresh", f.AutoRefresh >= domain.MinAutoRefresh},
		{"companion_process", strings.TrimSpace(f.CompanionProcess) != ""},
		{"coordinate_source.min_interval", f.CoordinateSource.MinInterval >= 0},
		{"coordinate_source.rate_limit_pause", f.CoordinateSource.RateLimitPause >= 0},
		{"freshness_source.min_interval", f.FreshnessSource.MinInterval >= 0},
		{"freshness_source.rate_limit_pause", f.FreshnessSource.RateLimitPause >= 0},
		{"daemon.idle_timeout", f.Daemon.IdleTimeout >= 0},
	}
	for _, c := range checks {
		if !c.ok {
			return zerr.With(domain.ErrInvalidConfig, "key", c.key)
		}
	}

	if err := validateURL("coordinate_source.url", f.CoordinateSource.URL); err != nil {
		return err
	}
	if err := validateURL("freshness_source.url", f.FreshnessSource.URL); err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(f.LogLevel)); err != nil {
		return zerr.With(domain.ErrInvalidConfig, "key", "log_level")
	}

	cfg.Threshold = f.Threshold
	cfg.RecheckCooldown = f.RecheckCooldown
	cfg.PointCap = f.PointCap
	cfg.MinRefreshInterval = f.MinRefreshInterval
	cfg.RequestTimeout = f.RequestTimeout
	cfg.AutoRefresh = f.AutoRefresh
	cfg.CompanionProcess = strings.TrimSpace(f.CompanionProcess)
	cfg.LogLevel = level
	cfg.CoordinateSource = domain.SourceConfig(f.CoordinateSource)
	cfg.FreshnessSource = domain.SourceConfig(f.FreshnessSource)
	cfg.Daemon = domain.DaemonConfig(f.Daemon)
	return nil
}

func validateURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return zerr.With(domain.ErrInvalidConfig, "key", key)
	}
	return nil
}

// ParseThreshold parses a threshold given on the command line. Bare numbers are hours.
func ParseThreshold(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d, nil
	}
	if hours, err := strconv.ParseFloat(s, 64); err == nil && hours > 0 {
		return time.Duration(hours * float64(time.Hour)), nil
	}
	return 0, zerr.With(domain.ErrInvalidConfig, "threshold", s)
}
