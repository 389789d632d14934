// Package route orders systems into a short open path.
//
// The path is built greedily by nearest neighbour and, up to a point cap, refined with 2-opt.
// The first system of the input is always the first stop.
package route

import (
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
)

// epsilon absorbs floating point noise when comparing path lengths.
const epsilon = 1e-9

// Optimize returns a visiting order for names. Names without a coordinate in coords are ignored.
// Inputs longer than pointCap keep the nearest neighbour order.
func Optimize(names []string, coords map[string]domain.Coordinate, pointCap int) []string {
	known := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := coords[name]; ok {
			known = append(known, name)
		}
	}

	path := NearestNeighbor(known, coords)
	if len(path) > pointCap {
		return path
	}
	return TwoOpt(path, coords)
}

// NearestNeighbor starts at names[0] and repeatedly steps to the closest unvisited system.
// Ties go to the system that appears first in names.
func NearestNeighbor(names []string, coords map[string]domain.Coordinate) []string {
	if len(names) < 2 {
		return append([]string(nil), names...)
	}

	remaining := append([]string(nil), names[1:]...)
	path := make([]string, 0, len(names))
	path = append(path, names[0])

	for len(remaining) > 0 {
		here := coords[path[len(path)-1]]
		best := 0
		bestDist := here.Distance(coords[remaining[0]])
		for i := 1; i < len(remaining); i++ {
			if d := here.Distance(coords[remaining[i]]); d < bestDist {
				best, bestDist = i, d
			}
		}
		path = append(path, remaining[best])
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return path
}

// TwoOpt improves path by reversing segments path[i..j] (1 <= i < j) while that shortens it.
// Each pass applies the single best improving reversal and scans again from the start.
// The result is never longer than path, and an already optimal path is returned unchanged.
func TwoOpt(path []string, coords map[string]domain.Coordinate) []string {
	out := append([]string(nil), path...)
	n := len(out)
	if n < 3 {
		return out
	}

	for {
		bestI, bestJ := -1, -1
		bestDelta := -epsilon
		for i := 1; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				if d := reversalDelta(out, coords, i, j); d < bestDelta {
					bestI, bestJ, bestDelta = i, j, d
				}
			}
		}
		if bestI < 0 {
			return out
		}
		reverse(out[bestI : bestJ+1])
	}
}

// reversalDelta is the change in path length if path[i..j] were reversed.
// Only the edges at the segment boundaries change.
func reversalDelta(path []string, coords map[string]domain.Coordinate, i, j int) float64 {
	before, first, last := coords[path[i-1]], coords[path[i]], coords[path[j]]
	delta := before.Distance(last) - before.Distance(first)
	if j+1 < len(path) {
		after := coords[path[j+1]]
		delta += first.Distance(after) - last.Distance(after)
	}
	return delta
}

func reverse(s []string) {
	for a, b := 0, len(s)-1; a < b; a, b = a+1, b-1 {
		s[a], s[b] = s[b], s[a]
	}
}

// Length returns the summed distance between consecutive stops of path.
func Length(path []string, coords map[string]domain.Coordinate) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += coords[path[i-1]].Distance(coords[path[i]])
	}
	return total
}
