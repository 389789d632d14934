package domain

import (
	"slices"
	"time"
)

// Counters summarises the work done by one refresh cycle.
type Counters struct {
	CoordinatesCached   int `json:"coordinates_cached"`
	CoordinatesFromHint int `json:"coordinates_from_hint"`
	CoordinatesFetched  int `json:"coordinates_fetched"`
	CoordinateFailures  int `json:"coordinate_failures"`
	FreshnessFetched    int `json:"freshness_fetched"`
	FreshnessSkipped    int `json:"freshness_skipped"`
	FreshnessFailures   int `json:"freshness_failures"`
}

// RefreshResult is the snapshot published at the end of a refresh cycle.
// A published result is never modified; readers may share it freely.
type RefreshResult struct {
	Coordinates      map[string]Coordinate `json:"coordinates"`
	Route            []string              `json:"route"`
	RouteDistance    float64               `json:"route_distance"`
	Current          []string              `json:"current"`
	Outdated         []string              `json:"outdated"`
	Unknown          []string              `json:"unknown"`
	Missing          []string              `json:"missing_coordinates"`
	Counters         Counters              `json:"counters"`
	Threshold        time.Duration         `json:"threshold"`
	CompanionRunning bool                  `json:"companion_running"`
	Interrupted      bool                  `json:"interrupted"`
	PersistErr       string                `json:"persist_error,omitempty"`
	StartedAt        time.Time             `json:"started_at"`
	CompletedAt      time.Time             `json:"completed_at"`
}

// Attention returns Outdated and Unknown systems, sorted by name.
func (r *RefreshResult) Attention() []string {
	out := make([]string, 0, len(r.Outdated)+len(r.Unknown))
	out = append(out, r.Outdated...)
	out = append(out, r.Unknown...)
	slices.Sort(out)
	return out
}

// ClassOf returns the classification of name and whether it was part of the cycle.
func (r *RefreshResult) ClassOf(name string) (Classification, bool) {
	switch {
	case slices.Contains(r.Current, name):
		return Current, true
	case slices.Contains(r.Outdated, name):
		return Outdated, true
	case slices.Contains(r.Unknown, name):
		return Unknown, true
	default:
		return Unknown, false
	}
}

// Total returns the number of systems classified in the cycle.
func (r *RefreshResult) Total() int {
	return len(r.Current) + len(r.Outdated) + len(r.Unknown)
}
