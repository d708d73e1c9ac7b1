package core

import (
	"testing"

	"github.com/openvitals/vitaline/schema"
	"github.com/stretchr/testify/assert"
)

func TestCascadeSpreadsDeltaIntoNewSamples(t *testing.T) {
	// HR default 70, one control point at t=60s with value 90, duration
	// extended from 120s to 180s: every new sample continues at 90.
	tl := NewTimeline(120, 1000)
	tl, err := SelectSignals(tl, []schema.SignalKey{schema.SignalHR})
	assert.NoError(t, err)
	tl, err = AddControlPoint(tl, schema.SignalHR, schema.DataPoint{TimeMs: 60000, Value: 90})
	assert.NoError(t, err)

	tl = SetDuration(tl, 180)
	data := tl.Signals[schema.SignalHR].Data
	assert.Len(t, data, 181)
	for _, p := range data {
		if p.TimeMs <= 120000 {
			continue
		}
		assert.Equal(t, 90.0, p.Value, "t=%d", p.TimeMs)
		assert.False(t, p.UserModified, "t=%d", p.TimeMs)
	}
}

func TestCascadeNoModifiedSamples(t *testing.T) {
	def := schema.MustDefinition(schema.SignalHR)
	data := ResampleDuration(BaselineData(def, 10, 1000), def, 20, 1000)

	out := Cascade(data, def, 10000)
	assert.Equal(t, data, out)
}

func TestCascadeInconsistentStateDoesNothing(t *testing.T) {
	def := schema.MustDefinition(schema.SignalHR)
	data := BaselineData(def, 20, 1000)
	data[5].Value = 90
	data[5].UserModified = true
	// A modified sample beyond the previous maximum should not occur during
	// normal editing; the cascade backs off entirely.
	data[15].Value = 100
	data[15].UserModified = true

	out := Cascade(data, def, 10000)
	assert.Equal(t, data, out)
}

func TestCascadeAddsOffsetNotLastValue(t *testing.T) {
	def := schema.MustDefinition(schema.SignalRR) // default 14
	data := ResampleDuration(func() []schema.DataPoint {
		d := BaselineData(def, 10, 1000)
		d[8].Value = 20 // delta +6
		d[8].UserModified = true
		return d
	}(), def, 20, 1000)

	out := Cascade(data, def, 10000)
	for _, p := range out {
		if p.TimeMs <= 10000 {
			continue
		}
		assert.Equal(t, 20.0, p.Value, "t=%d", p.TimeMs) // 14 + 6
	}
	// Samples at or before the old end are untouched
	assert.Equal(t, 14.0, out[9].Value)
}

func TestCascadeClampsToBounds(t *testing.T) {
	def := schema.MustDefinition(schema.SignalSpO2) // default 98, max 100
	data := ResampleDuration(func() []schema.DataPoint {
		d := BaselineData(def, 10, 1000)
		d[9].Value = 100 // delta +2, default+delta would exceed max
		d[9].UserModified = true
		return d
	}(), def, 20, 1000)

	out := Cascade(data, def, 10000)
	for _, p := range out {
		if p.TimeMs <= 10000 {
			continue
		}
		assert.Equal(t, 100.0, p.Value, "t=%d", p.TimeMs)
	}
}

func TestCascadeSkipsModifiedTrailingSamples(t *testing.T) {
	def := schema.MustDefinition(schema.SignalHR)
	data := BaselineData(def, 20, 1000)
	data[5].Value = 90
	data[5].UserModified = true

	out := Cascade(data, def, 20000)
	// prevMax covers the whole array: no sample lies beyond it, so values
	// stay put even though a modified sample exists.
	assert.Equal(t, data, out)
}
