package core

import (
	"fmt"

	"github.com/openvitals/vitaline/internal/contract"
	"github.com/openvitals/vitaline/schema"
)

// BuildScenario constructs a timeline by replaying a scenario through the
// store transitions, so every invariant the interactive path enforces also
// holds for scripted construction. Grid fields missing from the scenario
// fall back to the config's grid.
func BuildScenario(sc *contract.Scenario, cfg *contract.Config) (schema.Timeline, error) {
	durationSec := sc.Duration
	if durationSec <= 0 {
		durationSec = cfg.DurationSec
	}
	sampleRateMs := sc.SampleRate
	if sampleRateMs <= 0 {
		sampleRateMs = cfg.SampleRateMs
	}

	keys := make([]schema.SignalKey, 0, len(sc.Signals))
	for _, sig := range sc.Signals {
		key, ok := schema.MatchSignalKey(sig.Key)
		if !ok {
			return schema.Timeline{}, fmt.Errorf("scenario selects unknown signal %q", sig.Key)
		}
		keys = append(keys, key)
	}

	tl, err := SelectSignals(NewTimeline(durationSec, sampleRateMs), keys)
	if err != nil {
		return schema.Timeline{}, err
	}

	for i, sig := range sc.Signals {
		key := keys[i]
		for _, cp := range sig.ControlPoints {
			timeMs, err := contract.ParseTimeCell(cp.Time)
			if err != nil {
				return schema.Timeline{}, fmt.Errorf("signal %s: %w", key, err)
			}
			tl, err = AddControlPoint(tl, key, schema.DataPoint{TimeMs: timeMs, Value: cp.Value})
			if err != nil {
				return schema.Timeline{}, err
			}
		}
		if sig.Hidden {
			if tl, err = ToggleVisibility(tl, key); err != nil {
				return schema.Timeline{}, err
			}
		}
	}
	return tl, nil
}

// DefaultTimeline builds the baseline timeline for the config's selection.
func DefaultTimeline(cfg *contract.Config) (schema.Timeline, error) {
	return SelectSignals(NewTimeline(cfg.DurationSec, cfg.SampleRateMs), cfg.Keys)
}
