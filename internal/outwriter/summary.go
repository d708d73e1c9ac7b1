package outwriter

import (
	"math"
	"sort"

	"github.com/openvitals/vitaline/schema"
)

// SignalSummary carries the per-signal statistics shown in the summary table
// and in JSON output.
type SignalSummary struct {
	Key           schema.SignalKey `json:"key"`
	Unit          string           `json:"unit"`
	Visible       bool             `json:"visible"`
	Samples       int              `json:"samples"`
	ControlPoints int              `json:"controlPoints"`
	Min           float64          `json:"min"`
	Max           float64          `json:"max"`
	Mean          float64          `json:"mean"`
	LastValue     float64          `json:"lastValue"`

	// OutOfBand counts samples outside the signal's normal band. Zero for
	// signals with no band.
	OutOfBand int `json:"outOfBand"`
}

// ComputeSummaries returns one summary per signal, ordered by stacking order.
// Hidden signals are included so the table always shows the full selection.
func ComputeSummaries(t schema.Timeline) []SignalSummary {
	keys := make([]schema.SignalKey, 0, len(t.Signals))
	for key := range t.Signals {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return t.Signals[keys[i]].Order < t.Signals[keys[j]].Order
	})

	summaries := make([]SignalSummary, 0, len(keys))
	for _, key := range keys {
		state := t.Signals[key]
		def := schema.MustDefinition(key)
		s := SignalSummary{
			Key:           key,
			Unit:          def.Unit,
			Visible:       state.Visible,
			Samples:       len(state.Data),
			ControlPoints: len(state.ControlPoints),
		}
		if len(state.Data) > 0 {
			minV, maxV, sum := math.Inf(1), math.Inf(-1), 0.0
			for _, p := range state.Data {
				minV = math.Min(minV, p.Value)
				maxV = math.Max(maxV, p.Value)
				sum += p.Value
				if def.HasSoftBand && (p.Value < def.SoftLow || p.Value > def.SoftHigh) {
					s.OutOfBand++
				}
			}
			s.Min = minV
			s.Max = maxV
			s.Mean = sum / float64(len(state.Data))
			s.LastValue = state.Data[len(state.Data)-1].Value
		}
		summaries = append(summaries, s)
	}
	return summaries
}
