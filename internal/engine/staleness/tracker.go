// Package staleness classifies systems by the age of their upstream information
// and decides when the freshness source must be asked again.
package staleness

import (
	"context"
	"fmt"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/engine/ratelimit"
)

// Decision is the action taken for one system in a cycle.
type Decision int

const (
	// FetchNow asks the freshness source.
	FetchNow Decision = iota
	// Fresh means the system is current and no fetch is needed.
	Fresh
	// SkipCooldown means the system is outdated but was checked too recently to ask again.
	SkipCooldown
)

func (d Decision) String() string {
	switch d {
	case FetchNow:
		return "fetch"
	case Fresh:
		return "fresh"
	default:
		return "skip"
	}
}

// Decide evaluates the recheck table for rec at now.
//
//	info absent                                              -> FetchNow
//	info >= now-threshold                                    -> Fresh
//	info <  now-threshold, checked absent or >= cooldown ago -> FetchNow
//	info <  now-threshold, checked < cooldown ago            -> SkipCooldown
func Decide(rec domain.FreshnessRecord, now time.Time, threshold, cooldown time.Duration) Decision {
	if !rec.HasInfo() {
		return FetchNow
	}
	if !rec.InfoUpdated.Before(now.Add(-threshold)) {
		return Fresh
	}
	if rec.LastChecked.IsZero() || !rec.LastChecked.After(now.Add(-cooldown)) {
		return FetchNow
	}
	return SkipCooldown
}

// Classify returns the classification of rec at now.
func Classify(rec domain.FreshnessRecord, now time.Time, threshold time.Duration) domain.Classification {
	switch {
	case !rec.HasInfo():
		return domain.Unknown
	case rec.InfoUpdated.Before(now.Add(-threshold)):
		return domain.Outdated
	default:
		return domain.Current
	}
}

// Latest parses every candidate and returns the most recent one.
func Latest(candidates []string, loc *time.Location) (time.Time, bool) {
	var best time.Time
	for _, c := range candidates {
		t, ok := domain.ParseInfoTimestamp(c, loc)
		if ok && t.After(best) {
			best = t
		}
	}
	return best, !best.IsZero()
}

// Check is the outcome of tracking one system.
type Check struct {
	Record   domain.FreshnessRecord
	Decision Decision
	Class    domain.Classification
	// Err is set when a fetch was attempted and failed.
	Err error
}

// Tracker applies the recheck policy and talks to the freshness source.
type Tracker struct {
	source   ports.FreshnessSource
	limiter  *ratelimit.Limiter
	logger   ports.Logger
	cooldown time.Duration
	loc      *time.Location
}

// New creates a Tracker with a fixed recheck cooldown.
func New(source ports.FreshnessSource, limiter *ratelimit.Limiter, logger ports.Logger, cooldown time.Duration) *Tracker {
	return &Tracker{
		source:   source,
		limiter:  limiter,
		logger:   logger,
		cooldown: cooldown,
		loc:      time.Local,
	}
}

// WithLocation sets the zone freshness timestamps are interpreted in.
func (t *Tracker) WithLocation(loc *time.Location) *Tracker {
	t.loc = loc
	return t
}

// Cooldown returns the recheck cooldown.
func (t *Tracker) Cooldown() time.Duration {
	return t.cooldown
}

// Check decides whether name needs a fetch, performs it if so and classifies the result.
// A fetch attempt always stamps LastChecked with now. InfoUpdated only changes
// when at least one candidate parses.
func (t *Tracker) Check(
	ctx context.Context,
	name string,
	rec domain.FreshnessRecord,
	now time.Time,
	threshold time.Duration,
) Check {
	decision := Decide(rec, now, threshold, t.cooldown)
	if decision != FetchNow {
		return Check{Record: rec, Decision: decision, Class: Classify(rec, now, threshold)}
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return Check{Record: rec, Decision: decision, Class: Classify(rec, now, threshold), Err: err}
	}

	rec.LastChecked = now
	candidates, err := t.source.FetchFreshness(ctx, name)
	if err != nil {
		t.logger.Debug(fmt.Sprintf("freshness for %s unavailable: %v", name, err))
		return Check{Record: rec, Decision: decision, Class: Classify(rec, now, threshold), Err: err}
	}

	if latest, ok := Latest(candidates, t.loc); ok {
		rec.InfoUpdated = latest
	}
	return Check{Record: rec, Decision: decision, Class: Classify(rec, now, threshold)}
}
