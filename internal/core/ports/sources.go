package ports

import (
	"context"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
)

//go:generate mockgen -source=sources.go -destination=mocks/mock_sources.go -package=mocks

// CoordinateSource looks up the position of a system.
type CoordinateSource interface {
	// FetchCoordinates returns the coordinate of name or an error.
	// Implementations bound the request with a timeout.
	FetchCoordinates(ctx context.Context, name string) (domain.Coordinate, error)
}

// FreshnessSource looks up when a system's information was last updated.
type FreshnessSource interface {
	// FetchFreshness returns every timestamp-like string found for name, in document order.
	// An empty slice with a nil error means the source answered but had no timestamps.
	FetchFreshness(ctx context.Context, name string) ([]string, error)
}
