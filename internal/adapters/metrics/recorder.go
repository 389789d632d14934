// Package metrics exposes refresh activity as Prometheus metrics and serves the daemon's HTTP status surface.
package metrics

import (
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "edppm"

var _ ports.Metrics = (*Recorder)(nil)

// Recorder implements ports.Metrics on a private Prometheus registry.
type Recorder struct {
	registry      *prometheus.Registry
	cycles        *prometheus.CounterVec
	rejections    *prometheus.CounterVec
	duration      prometheus.Histogram
	systems       *prometheus.GaugeVec
	lookups       *prometheus.CounterVec
	routeDistance prometheus.Gauge
	routeStops    prometheus.Gauge
	lastCompleted prometheus.Gauge
}

// NewRecorder creates a Recorder with Go runtime and process collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_cycles_total",
			Help:      "Refresh cycles that ran to the end, by outcome.",
		}, []string{"outcome"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_rejections_total",
			Help:      "Refresh starts that were rejected, by reason.",
		}, []string{"reason"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Wall time of refresh cycles.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		systems: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "systems",
			Help:      "Systems per freshness class in the latest cycle.",
		}, []string{"class"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Coordinate and freshness lookups, by source and result.",
		}, []string{"source", "result"}),
		routeDistance: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "route_distance_ly",
			Help:      "Length of the latest route in light years.",
		}),
		routeStops: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "route_stops",
			Help:      "Number of stops on the latest route.",
		}),
		lastCompleted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_refresh_timestamp_seconds",
			Help:      "Completion time of the latest cycle.",
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.cycles, r.rejections, r.duration, r.systems, r.lookups,
		r.routeDistance, r.routeStops, r.lastCompleted,
	)
	return r
}

// Registry returns the registry the metrics are registered on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveCycle records a completed cycle.
func (r *Recorder) ObserveCycle(result *domain.RefreshResult, duration time.Duration) {
	outcome := "completed"
	if result.Interrupted {
		outcome = "interrupted"
	}
	r.cycles.WithLabelValues(outcome).Inc()
	r.duration.Observe(duration.Seconds())

	r.systems.WithLabelValues(domain.Current.String()).Set(float64(len(result.Current)))
	r.systems.WithLabelValues(domain.Outdated.String()).Set(float64(len(result.Outdated)))
	r.systems.WithLabelValues(domain.Unknown.String()).Set(float64(len(result.Unknown)))

	c := result.Counters
	r.lookups.WithLabelValues("coordinates", "cached").Add(float64(c.CoordinatesCached))
	r.lookups.WithLabelValues("coordinates", "hint").Add(float64(c.CoordinatesFromHint))
	r.lookups.WithLabelValues("coordinates", "fetched").Add(float64(c.CoordinatesFetched))
	r.lookups.WithLabelValues("coordinates", "failed").Add(float64(c.CoordinateFailures))
	r.lookups.WithLabelValues("freshness", "fetched").Add(float64(c.FreshnessFetched))
	r.lookups.WithLabelValues("freshness", "skipped").Add(float64(c.FreshnessSkipped))
	r.lookups.WithLabelValues("freshness", "failed").Add(float64(c.FreshnessFailures))

	r.routeDistance.Set(result.RouteDistance)
	r.routeStops.Set(float64(len(result.Route)))
	r.lastCompleted.Set(float64(result.CompletedAt.Unix()))
}

// ObserveRejection records a rejected cycle start.
func (r *Recorder) ObserveRejection(reason string) {
	r.rejections.WithLabelValues(reason).Inc()
}
