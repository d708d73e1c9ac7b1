package core

import "github.com/openvitals/vitaline/schema"

// InterpolateAt evaluates the curve described by the control points at a
// single timestamp. With no points the signal's default applies, with one
// point its value holds everywhere, and with two or more the bracketing pair
// is interpolated linearly. Outside the first and last point the nearest
// point's value is held rather than extrapolated. The result is exact at a
// control point's own timestamp.
func InterpolateAt(points []schema.DataPoint, def schema.SignalDefinition, timeMs int64) float64 {
	switch len(points) {
	case 0:
		return def.Default
	case 1:
		return points[0].Value
	}

	if timeMs <= points[0].TimeMs {
		return points[0].Value
	}
	last := points[len(points)-1]
	if timeMs >= last.TimeMs {
		return last.Value
	}

	for i := 1; i < len(points); i++ {
		p1, p2 := points[i-1], points[i]
		if timeMs < p1.TimeMs || timeMs > p2.TimeMs {
			continue
		}
		if timeMs == p1.TimeMs {
			return p1.Value
		}
		if timeMs == p2.TimeMs {
			return p2.Value
		}
		span := p2.TimeMs - p1.TimeMs
		if span == 0 {
			return p2.Value
		}
		frac := float64(timeMs-p1.TimeMs) / float64(span)
		return p1.Value + (p2.Value-p1.Value)*frac
	}

	// Unreachable for sorted points, but the default is a safe answer.
	return def.Default
}

// lerp interpolates between two samples at the target timestamp. Shared by
// the rate-change resampler, which uses the same formula as InterpolateAt.
func lerp(before, after schema.DataPoint, timeMs int64) float64 {
	span := after.TimeMs - before.TimeMs
	if span == 0 {
		return after.Value
	}
	frac := float64(timeMs-before.TimeMs) / float64(span)
	return before.Value + (after.Value-before.Value)*frac
}

// RegenerateData rebuilds the full dense sample array from the control points.
// It is a pure function of (controlPoints, definition, grid); edits never
// patch the dense array incrementally. A sample that falls exactly on a
// control point's timestamp carries the user-modified flag, since control
// points are the user's deliberate edits.
func RegenerateData(points []schema.DataPoint, def schema.SignalDefinition, durationSec int, sampleRateMs int64) []schema.DataPoint {
	controlTimes := make(map[int64]struct{}, len(points))
	for _, p := range points {
		controlTimes[p.TimeMs] = struct{}{}
	}

	times := GridTimes(durationSec, sampleRateMs)
	data := make([]schema.DataPoint, len(times))
	for i, t := range times {
		_, onControl := controlTimes[t]
		data[i] = schema.DataPoint{
			TimeMs:       t,
			Value:        def.Clamp(InterpolateAt(points, def, t)),
			UserModified: onControl,
		}
	}
	return data
}

// BaselineData builds a dense array filled with the signal's default value.
func BaselineData(def schema.SignalDefinition, durationSec int, sampleRateMs int64) []schema.DataPoint {
	return RegenerateData(nil, def, durationSec, sampleRateMs)
}
