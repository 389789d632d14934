// Package resolver produces system coordinates from the cache, registry hints or the coordinate source.
package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/engine/ratelimit"
)

// Outcome tells where a resolved coordinate came from.
type Outcome int

const (
	// Cached means the coordinate was already cached. No network call was made.
	Cached Outcome = iota
	// FromHint means the coordinate was taken from the registry and cached.
	FromHint
	// Fetched means the coordinate source answered and the result was cached.
	Fetched
	// Failed means no coordinate is known this cycle. Nothing was cached.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Cached:
		return "cached"
	case FromHint:
		return "hint"
	case Fetched:
		return "fetched"
	default:
		return "failed"
	}
}

// HintLookup returns a coordinate embedded in the registry. *domain.Registry implements it.
type HintLookup interface {
	Hint(name string) (domain.Coordinate, bool)
}

// Resolver resolves coordinates cache first. Known coordinates are never re-fetched.
type Resolver struct {
	source  ports.CoordinateSource
	limiter *ratelimit.Limiter
	logger  ports.Logger
	now     func() time.Time
}

// New creates a Resolver that throttles source through limiter.
func New(source ports.CoordinateSource, limiter *ratelimit.Limiter, logger ports.Logger) *Resolver {
	return &Resolver{
		source:  source,
		limiter: limiter,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock replaces the clock used to stamp fetched coordinates.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve returns the coordinate of name, recording new coordinates in cache.
// It never returns an error: a failed lookup reports Failed and leaves cache untouched,
// so the system is retried next cycle.
func (r *Resolver) Resolve(
	ctx context.Context,
	name string,
	hints HintLookup,
	cache domain.CoordinateCache,
) (domain.Coordinate, Outcome) {
	if rec, ok := cache[name]; ok {
		return rec.Coordinate, Cached
	}

	if hints != nil {
		if c, ok := hints.Hint(name); ok {
			cache[name] = domain.CoordinateRecord{
				Coordinate: c,
				Source:     domain.OriginHint,
				FetchedAt:  r.now(),
			}
			return c, FromHint
		}
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return domain.Coordinate{}, Failed
	}

	c, err := r.source.FetchCoordinates(ctx, name)
	if err != nil {
		r.logger.Debug(fmt.Sprintf("coordinates for %s unavailable: %v", name, err))
		return domain.Coordinate{}, Failed
	}

	cache[name] = domain.CoordinateRecord{
		Coordinate: c,
		Source:     domain.OriginFetched,
		FetchedAt:  r.now(),
	}
	return c, Fetched
}
