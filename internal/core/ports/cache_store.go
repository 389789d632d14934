package ports

import "github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"

// CacheStore persists the coordinate and freshness documents.
// Missing documents load as empty caches. Saves are atomic.
//
//go:generate mockgen -source=cache_store.go -destination=mocks/mock_cache_store.go -package=mocks
type CacheStore interface {
	// LoadCoordinates reads the coordinate document.
	LoadCoordinates() (domain.CoordinateCache, error)
	// LoadFreshness reads the freshness document.
	LoadFreshness() (domain.FreshnessCache, error)
	// SaveCoordinates replaces the coordinate document.
	SaveCoordinates(cache domain.CoordinateCache) error
	// SaveFreshness replaces the freshness document.
	SaveFreshness(cache domain.FreshnessCache) error
	// Clear removes the selected documents.
	Clear(coordinates, freshness bool) error
}
