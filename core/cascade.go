package core

import "github.com/openvitals/vitaline/schema"

// Cascade propagates the user's last deliberate edit into samples created by
// a duration increase. Among samples at or before prevMaxTimeMs it finds the
// rightmost user-modified one; if none exists, or a modified sample sits
// strictly after it, nothing happens. Otherwise the offset of that edit from
// baseline is added to every new non-modified trailing sample, clamped to
// bounds. The offset generalizes "the vital stayed elevated by X" rather
// than freezing the last value.
//
// The activation condition is a heuristic for "the last edit is still in
// effect at the end of the timeline". It is a policy choice, kept as is.
func Cascade(data []schema.DataPoint, def schema.SignalDefinition, prevMaxTimeMs int64) []schema.DataPoint {
	lastModIdx := -1
	for i, p := range data {
		if p.TimeMs > prevMaxTimeMs {
			break
		}
		if p.UserModified {
			lastModIdx = i
		}
	}
	if lastModIdx < 0 {
		return data
	}
	for _, p := range data[lastModIdx+1:] {
		if p.UserModified {
			return data
		}
	}

	delta := data[lastModIdx].Value - def.Default
	out := make([]schema.DataPoint, len(data))
	copy(out, data)
	for i := range out {
		if out[i].TimeMs <= prevMaxTimeMs || out[i].UserModified {
			continue
		}
		out[i].Value = def.Clamp(def.Default + delta)
	}
	return out
}
