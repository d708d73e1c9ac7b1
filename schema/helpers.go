package schema

import "sort"

// SortPoints returns a copy of the points ordered by ascending TimeMs.
// The sort is stable so points sharing a timestamp keep their relative order.
func SortPoints(points []DataPoint) []DataPoint {
	out := make([]DataPoint, len(points))
	copy(out, points)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimeMs < out[j].TimeMs
	})
	return out
}

// MaxTimeMs returns the largest timestamp among the points, or -1 when the
// slice is empty.
func MaxTimeMs(points []DataPoint) int64 {
	maxTime := int64(-1)
	for _, p := range points {
		if p.TimeMs > maxTime {
			maxTime = p.TimeMs
		}
	}
	return maxTime
}

// InBounds reports whether every point's value lies within the definition's
// hard bounds. Used by tests and import validation.
func InBounds(def SignalDefinition, points []DataPoint) bool {
	for _, p := range points {
		if p.Value < def.Min || p.Value > def.Max {
			return false
		}
	}
	return true
}
