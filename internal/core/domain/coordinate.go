package domain

import (
	"math"
	"time"
)

// Coordinate is a point in galactic space, in light years.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Distance returns the Euclidean distance between c and o.
func (c Coordinate) Distance(o Coordinate) float64 {
	dx := c.X - o.X
	dy := c.Y - o.Y
	dz := c.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// CoordinateOrigin records where a coordinate was learned from.
type CoordinateOrigin string

const (
	// OriginHint marks a coordinate embedded in the system registry.
	OriginHint CoordinateOrigin = "hint"
	// OriginFetched marks a coordinate returned by the coordinate source.
	OriginFetched CoordinateOrigin = "fetched"
)

// CoordinateRecord is a cached coordinate. Once present it is never re-fetched.
type CoordinateRecord struct {
	Coordinate
	Source    CoordinateOrigin
	FetchedAt time.Time
}

// CoordinateCache maps system names to their known coordinates.
type CoordinateCache map[string]CoordinateRecord

// Clone returns a shallow copy of the cache.
func (c CoordinateCache) Clone() CoordinateCache {
	out := make(CoordinateCache, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
