package core

import (
	"fmt"

	"github.com/openvitals/vitaline/schema"
)

// Actions are pure transitions: each takes the current timeline snapshot and
// returns a new one, leaving the input untouched. Values are clamped, never
// rejected; only unknown signal keys and out-of-range indices are errors.

// NewTimeline returns an empty timeline on the given grid.
func NewTimeline(durationSec int, sampleRateMs int64) schema.Timeline {
	return schema.Timeline{
		DurationSec:  durationSec,
		SampleRateMs: sampleRateMs,
		Signals:      make(map[schema.SignalKey]*schema.SignalState),
	}
}

// SelectSignals reconciles the selected signal set. Newly selected signals
// get baseline data and the next stacking order; signals missing from the
// selection are hidden, not deleted; re-selected signals become visible
// again with their prior data intact.
func SelectSignals(t schema.Timeline, keys []schema.SignalKey) (schema.Timeline, error) {
	for _, key := range keys {
		if !schema.IsValidKey(key) {
			return t, fmt.Errorf("unknown signal key: %s", key)
		}
	}

	next := t.Clone()
	selected := make(map[schema.SignalKey]struct{}, len(keys))
	for _, key := range keys {
		selected[key] = struct{}{}
	}

	for key, state := range next.Signals {
		_, keep := selected[key]
		state.Visible = keep
	}
	for _, key := range keys {
		if _, exists := next.Signals[key]; exists {
			continue
		}
		def := schema.MustDefinition(key)
		next.Signals[key] = &schema.SignalState{
			Data:    BaselineData(def, next.DurationSec, next.SampleRateMs),
			Visible: true,
			Order:   next.NextOrder(),
		}
	}
	return next, nil
}

// SetDuration changes the timeline duration and extends or truncates every
// signal's dense data, cascading the last edit into newly created samples.
func SetDuration(t schema.Timeline, durationSec int) schema.Timeline {
	next := t.Clone()
	prevMax := MaxGridTimeMs(next.DurationSec, next.SampleRateMs)
	next.DurationSec = durationSec

	for key, state := range next.Signals {
		def := schema.MustDefinition(key)
		data := ResampleDuration(state.Data, def, durationSec, next.SampleRateMs)
		state.Data = Cascade(data, def, prevMax)
	}
	return next
}

// SetSampleRate changes the grid spacing and resamples every signal's dense
// data onto the new grid.
func SetSampleRate(t schema.Timeline, sampleRateMs int64) schema.Timeline {
	next := t.Clone()
	next.SampleRateMs = sampleRateMs

	for key, state := range next.Signals {
		def := schema.MustDefinition(key)
		state.Data = ResampleRate(state.Data, def, next.DurationSec, sampleRateMs)
	}
	return next
}

// AddControlPoint inserts a user anchor for the signal, clamped to the grid's
// time range and the signal's bounds, and regenerates the dense data.
func AddControlPoint(t schema.Timeline, key schema.SignalKey, point schema.DataPoint) (schema.Timeline, error) {
	next, state, def, err := signalForEdit(t, key)
	if err != nil {
		return t, err
	}

	state.ControlPoints = schema.SortPoints(append(state.ControlPoints, clampPoint(next, def, point)))
	state.Data = RegenerateData(state.ControlPoints, def, next.DurationSec, next.SampleRateMs)
	return next, nil
}

// MoveControlPoint replaces the control point at the given index, re-sorts
// by time and regenerates the dense data.
func MoveControlPoint(t schema.Timeline, key schema.SignalKey, index int, point schema.DataPoint) (schema.Timeline, error) {
	next, state, def, err := signalForEdit(t, key)
	if err != nil {
		return t, err
	}
	if index < 0 || index >= len(state.ControlPoints) {
		return t, fmt.Errorf("control point index %d out of range for %s", index, key)
	}

	state.ControlPoints[index] = clampPoint(next, def, point)
	state.ControlPoints = schema.SortPoints(state.ControlPoints)
	state.Data = RegenerateData(state.ControlPoints, def, next.DurationSec, next.SampleRateMs)
	return next, nil
}

// DeleteControlPoint removes the control point at the given index and
// regenerates the dense data.
func DeleteControlPoint(t schema.Timeline, key schema.SignalKey, index int) (schema.Timeline, error) {
	next, state, def, err := signalForEdit(t, key)
	if err != nil {
		return t, err
	}
	if index < 0 || index >= len(state.ControlPoints) {
		return t, fmt.Errorf("control point index %d out of range for %s", index, key)
	}

	state.ControlPoints = append(state.ControlPoints[:index], state.ControlPoints[index+1:]...)
	state.Data = RegenerateData(state.ControlPoints, def, next.DurationSec, next.SampleRateMs)
	return next, nil
}

// ResetSignal clears the signal's control points and restores baseline data.
// Visibility, order and zoom are untouched.
func ResetSignal(t schema.Timeline, key schema.SignalKey) (schema.Timeline, error) {
	next, state, def, err := signalForEdit(t, key)
	if err != nil {
		return t, err
	}

	state.ControlPoints = nil
	state.Data = BaselineData(def, next.DurationSec, next.SampleRateMs)
	return next, nil
}

// ToggleVisibility flips the signal's visibility. No data is recomputed.
func ToggleVisibility(t schema.Timeline, key schema.SignalKey) (schema.Timeline, error) {
	next, state, _, err := signalForEdit(t, key)
	if err != nil {
		return t, err
	}
	state.Visible = !state.Visible
	return next, nil
}

// SetZoom replaces the signal's view state. No data is recomputed.
func SetZoom(t schema.Timeline, key schema.SignalKey, zoom *schema.Zoom) (schema.Timeline, error) {
	next, state, _, err := signalForEdit(t, key)
	if err != nil {
		return t, err
	}
	if zoom == nil {
		state.Zoom = nil
	} else {
		z := *zoom
		state.Zoom = &z
	}
	return next, nil
}

// signalForEdit clones the timeline and resolves the signal state targeted
// by an edit.
func signalForEdit(t schema.Timeline, key schema.SignalKey) (schema.Timeline, *schema.SignalState, schema.SignalDefinition, error) {
	def, ok := schema.GetDefinition(key)
	if !ok {
		return t, nil, def, fmt.Errorf("unknown signal key: %s", key)
	}
	next := t.Clone()
	state, ok := next.Signals[key]
	if !ok {
		return t, nil, def, fmt.Errorf("signal %s is not selected", key)
	}
	return next, state, def, nil
}

// clampPoint constrains a control point to the timeline's time range and the
// signal's value bounds.
func clampPoint(t schema.Timeline, def schema.SignalDefinition, point schema.DataPoint) schema.DataPoint {
	maxTime := int64(t.DurationSec) * 1000
	if point.TimeMs < 0 {
		point.TimeMs = 0
	}
	if point.TimeMs > maxTime {
		point.TimeMs = maxTime
	}
	point.Value = def.Clamp(point.Value)
	point.UserModified = true
	return point
}
