package domain

import "time"

// FreshnessRecord tracks when a system's information was last updated upstream
// and when it was last checked. A zero time means absent.
type FreshnessRecord struct {
	InfoUpdated time.Time
	LastChecked time.Time
}

// HasInfo reports whether an upstream update time is known.
func (r FreshnessRecord) HasInfo() bool {
	return !r.InfoUpdated.IsZero()
}

// FreshnessCache maps system names to their freshness records.
type FreshnessCache map[string]FreshnessRecord

// Clone returns a shallow copy of the cache.
func (c FreshnessCache) Clone() FreshnessCache {
	out := make(FreshnessCache, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Classification is the freshness class of a system for one cycle.
type Classification int

const (
	// Unknown means no upstream update time is known.
	Unknown Classification = iota
	// Outdated means the upstream update time is older than the threshold.
	Outdated
	// Current means the upstream update time is within the threshold.
	Current
)

func (c Classification) String() string {
	switch c {
	case Current:
		return "current"
	case Outdated:
		return "outdated"
	default:
		return "unknown"
	}
}

// ParseClassification is the inverse of Classification.String.
func ParseClassification(s string) (Classification, bool) {
	switch s {
	case "current":
		return Current, true
	case "outdated":
		return Outdated, true
	case "unknown":
		return Unknown, true
	default:
		return Unknown, false
	}
}

// NeedsAttention reports whether the class is Outdated or Unknown.
func (c Classification) NeedsAttention() bool {
	return c != Current
}
