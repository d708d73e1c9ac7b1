package core

import "github.com/openvitals/vitaline/schema"

// ResampleDuration rebuilds the dense array for a new duration with the
// sample rate unchanged. Samples whose timestamps survive are copied
// verbatim, including the user-modified flag; new trailing timestamps get
// baseline points. This is an extend/truncate, never a re-interpolation.
// Callers extending the timeline follow up with Cascade.
func ResampleDuration(data []schema.DataPoint, def schema.SignalDefinition, newDurationSec int, sampleRateMs int64) []schema.DataPoint {
	existing := make(map[int64]schema.DataPoint, len(data))
	for _, p := range data {
		existing[p.TimeMs] = p
	}

	times := GridTimes(newDurationSec, sampleRateMs)
	out := make([]schema.DataPoint, len(times))
	for i, t := range times {
		if p, ok := existing[t]; ok {
			out[i] = p
			continue
		}
		out[i] = schema.DataPoint{TimeMs: t, Value: def.Default}
	}
	return out
}

// ResampleRate rebuilds the dense array for a new sample rate with the
// duration unchanged. Exact-timestamp matches are copied verbatim; other
// timestamps interpolate linearly between the nearest samples strictly
// before and strictly after. An interpolated sample inherits the
// user-modified flag when either source was modified. With only one
// neighbor its value is held; with none, the default applies.
//
// Policy note: this resamples the raw dense data. The alternative of
// regenerating from control points would discard manual per-sample edits,
// so it is deliberately not used.
func ResampleRate(data []schema.DataPoint, def schema.SignalDefinition, durationSec int, newSampleRateMs int64) []schema.DataPoint {
	return ResampleToGrid(data, def, durationSec, newSampleRateMs)
}

// ResampleToGrid projects arbitrary time-ordered samples onto the grid given
// by duration and rate, using the rate-change rules above. The CSV importer
// uses it to align imported rows with the inferred grid.
func ResampleToGrid(data []schema.DataPoint, def schema.SignalDefinition, durationSec int, sampleRateMs int64) []schema.DataPoint {
	sorted := schema.SortPoints(data)
	exact := make(map[int64]schema.DataPoint, len(sorted))
	for _, p := range sorted {
		exact[p.TimeMs] = p
	}

	times := GridTimes(durationSec, sampleRateMs)
	out := make([]schema.DataPoint, len(times))
	for i, t := range times {
		if p, ok := exact[t]; ok {
			out[i] = schema.DataPoint{TimeMs: t, Value: p.Value, UserModified: p.UserModified}
			continue
		}
		out[i] = synthesizeAt(sorted, def, t)
	}
	return out
}

// synthesizeAt builds the sample for a grid timestamp with no exact match.
func synthesizeAt(sorted []schema.DataPoint, def schema.SignalDefinition, timeMs int64) schema.DataPoint {
	before, hasBefore := neighborBefore(sorted, timeMs)
	after, hasAfter := neighborAfter(sorted, timeMs)

	switch {
	case hasBefore && hasAfter:
		return schema.DataPoint{
			TimeMs:       timeMs,
			Value:        def.Clamp(lerp(before, after, timeMs)),
			UserModified: before.UserModified || after.UserModified,
		}
	case hasBefore:
		return schema.DataPoint{TimeMs: timeMs, Value: before.Value, UserModified: before.UserModified}
	case hasAfter:
		return schema.DataPoint{TimeMs: timeMs, Value: after.Value, UserModified: after.UserModified}
	default:
		return schema.DataPoint{TimeMs: timeMs, Value: def.Default}
	}
}

// neighborBefore returns the nearest sample strictly before the timestamp.
func neighborBefore(sorted []schema.DataPoint, timeMs int64) (schema.DataPoint, bool) {
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].TimeMs < timeMs {
			return sorted[i], true
		}
	}
	return schema.DataPoint{}, false
}

// neighborAfter returns the nearest sample strictly after the timestamp.
func neighborAfter(sorted []schema.DataPoint, timeMs int64) (schema.DataPoint, bool) {
	for _, p := range sorted {
		if p.TimeMs > timeMs {
			return p, true
		}
	}
	return schema.DataPoint{}, false
}
