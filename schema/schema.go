// Package schema has the signal catalog, models and shared types for all parts of vitaline.
package schema

// DataPoint is a single timestamped sample or control point of a signal.
type DataPoint struct {
	TimeMs       int64   // Milliseconds since the start of the timeline
	Value        float64 // Sample value, always clamped to the signal's [Min, Max]
	UserModified bool    // True when the value stems from a deliberate user edit
}

// Zoom is per-signal view state. It is carried with the signal because it
// survives re-renders, but it never influences any data computation.
type Zoom struct {
	Scale       float64 // Zoom factor, 1.0 is the unzoomed view
	StartTimeMs int64   // Left edge of the visible window
	EndTimeMs   int64   // Right edge of the visible window
}

// SignalState holds everything the engine tracks for one selected signal.
type SignalState struct {
	Data          []DataPoint // Dense samples, one per grid tick, strictly increasing TimeMs
	ControlPoints []DataPoint // Sparse user anchors, strictly increasing TimeMs
	Visible       bool        // Hidden signals keep their data and control points
	Order         int         // Stacking and selection order, assigned on first selection
	Zoom          *Zoom       // Optional view state, nil when unzoomed
}

// Clone returns a deep copy of the signal state.
func (s *SignalState) Clone() *SignalState {
	out := &SignalState{
		Data:          make([]DataPoint, len(s.Data)),
		ControlPoints: make([]DataPoint, len(s.ControlPoints)),
		Visible:       s.Visible,
		Order:         s.Order,
	}
	copy(out.Data, s.Data)
	copy(out.ControlPoints, s.ControlPoints)
	if s.Zoom != nil {
		z := *s.Zoom
		out.Zoom = &z
	}
	return out
}

// Timeline is the aggregate edited by the engine: a shared time grid plus one
// state per selected signal. Transitions treat it as an immutable snapshot;
// every mutation works on a Clone and publishes the copy.
type Timeline struct {
	DurationSec  int                        // Total duration in seconds
	SampleRateMs int64                      // Grid spacing in milliseconds
	Signals      map[SignalKey]*SignalState // Keyed by catalog signal key
}

// Clone returns a deep copy of the timeline.
func (t Timeline) Clone() Timeline {
	out := Timeline{
		DurationSec:  t.DurationSec,
		SampleRateMs: t.SampleRateMs,
		Signals:      make(map[SignalKey]*SignalState, len(t.Signals)),
	}
	for key, state := range t.Signals {
		out.Signals[key] = state.Clone()
	}
	return out
}

// NextOrder returns the stacking order for the next newly selected signal.
func (t Timeline) NextOrder() int {
	next := 0
	for _, state := range t.Signals {
		if state.Order >= next {
			next = state.Order + 1
		}
	}
	return next
}

// SignalDefinition is the immutable catalog entry for one signal.
type SignalDefinition struct {
	Unit    string  // Display unit, e.g. "bpm" or "mmHg"
	Min     float64 // Hard lower bound, values are clamped here
	Max     float64 // Hard upper bound, values are clamped here
	Default float64 // Baseline value used when no control points exist
	Step    float64 // Snap step for UI drags, 0 means continuous
	// Soft bounds mark the "normal" band for display shading. They are only
	// meaningful when HasSoftBand is true.
	SoftLow     float64
	SoftHigh    float64
	HasSoftBand bool
}

// Clamp constrains a value to the definition's hard bounds.
func (d SignalDefinition) Clamp(v float64) float64 {
	if v < d.Min {
		return d.Min
	}
	if v > d.Max {
		return d.Max
	}
	return v
}
