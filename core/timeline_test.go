package core

import (
	"testing"

	"github.com/openvitals/vitaline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectHR(t *testing.T) schema.Timeline {
	t.Helper()
	tl, err := SelectSignals(NewTimeline(120, 1000), []schema.SignalKey{schema.SignalHR})
	require.NoError(t, err)
	return tl
}

func TestSelectSignalsCreatesBaselineState(t *testing.T) {
	tl, err := SelectSignals(NewTimeline(30, 1000), schema.DefaultScenarioKeys)
	require.NoError(t, err)
	assert.Len(t, tl.Signals, 4)

	orders := make(map[int]bool)
	for _, key := range schema.DefaultScenarioKeys {
		state := tl.Signals[key]
		require.NotNil(t, state, "missing state for %s", key)
		assert.True(t, state.Visible)
		assert.Empty(t, state.ControlPoints)
		assert.Len(t, state.Data, 31)
		assert.Equal(t, schema.MustDefinition(key).Default, state.Data[0].Value)
		assert.False(t, orders[state.Order], "duplicate order %d", state.Order)
		orders[state.Order] = true
	}
}

func TestSelectSignalsRejectsUnknownKey(t *testing.T) {
	_, err := SelectSignals(NewTimeline(30, 1000), []schema.SignalKey{"bogus"})
	assert.Error(t, err)
}

func TestSelectSignalsHidesAndRestores(t *testing.T) {
	tl, err := SelectSignals(NewTimeline(30, 1000), []schema.SignalKey{schema.SignalHR, schema.SignalSpO2})
	require.NoError(t, err)
	tl, err = AddControlPoint(tl, schema.SignalSpO2, schema.DataPoint{TimeMs: 10000, Value: 92})
	require.NoError(t, err)

	// Deselect SpO2: hidden, not deleted
	tl, err = SelectSignals(tl, []schema.SignalKey{schema.SignalHR})
	require.NoError(t, err)
	require.NotNil(t, tl.Signals[schema.SignalSpO2])
	assert.False(t, tl.Signals[schema.SignalSpO2].Visible)
	assert.Len(t, tl.Signals[schema.SignalSpO2].ControlPoints, 1)

	// Re-select: visible again with prior data intact
	tl, err = SelectSignals(tl, []schema.SignalKey{schema.SignalHR, schema.SignalSpO2})
	require.NoError(t, err)
	assert.True(t, tl.Signals[schema.SignalSpO2].Visible)
	assert.Len(t, tl.Signals[schema.SignalSpO2].ControlPoints, 1)
}

func TestActionsPreserveGridInvariant(t *testing.T) {
	tl := selectHR(t)

	check := func(label string) {
		t.Helper()
		for key, state := range tl.Signals {
			want := SampleCount(tl.DurationSec, tl.SampleRateMs) + 1
			assert.Len(t, state.Data, want, "%s: %s", label, key)
			for i, p := range state.Data {
				assert.Equal(t, int64(i)*tl.SampleRateMs, p.TimeMs, "%s: %s[%d]", label, key, i)
			}
			assert.True(t, schema.InBounds(schema.MustDefinition(key), state.Data), "%s: %s", label, key)
		}
	}

	var err error
	tl, err = AddControlPoint(tl, schema.SignalHR, schema.DataPoint{TimeMs: 45000, Value: 130})
	require.NoError(t, err)
	check("add control point")

	tl = SetDuration(tl, 300)
	check("extend duration")

	tl = SetSampleRate(tl, 500)
	check("halve sample rate")

	tl = SetSampleRate(tl, 2000)
	check("coarsen sample rate")

	tl = SetDuration(tl, 60)
	check("truncate duration")
}

func TestAddControlPointClamps(t *testing.T) {
	tl := selectHR(t)

	tl, err := AddControlPoint(tl, schema.SignalHR, schema.DataPoint{TimeMs: 999999999, Value: 500})
	require.NoError(t, err)

	cp := tl.Signals[schema.SignalHR].ControlPoints
	require.Len(t, cp, 1)
	assert.Equal(t, int64(120000), cp[0].TimeMs) // clamped to duration
	assert.Equal(t, 220.0, cp[0].Value)          // clamped to max
	assert.True(t, cp[0].UserModified)
}

func TestAddControlPointKeepsOrder(t *testing.T) {
	tl := selectHR(t)

	var err error
	for _, p := range []schema.DataPoint{
		{TimeMs: 60000, Value: 90},
		{TimeMs: 10000, Value: 80},
		{TimeMs: 30000, Value: 85},
	} {
		tl, err = AddControlPoint(tl, schema.SignalHR, p)
		require.NoError(t, err)
	}

	cp := tl.Signals[schema.SignalHR].ControlPoints
	require.Len(t, cp, 3)
	assert.Equal(t, int64(10000), cp[0].TimeMs)
	assert.Equal(t, int64(30000), cp[1].TimeMs)
	assert.Equal(t, int64(60000), cp[2].TimeMs)
}

func TestMoveControlPointResorts(t *testing.T) {
	tl := selectHR(t)

	var err error
	tl, err = AddControlPoint(tl, schema.SignalHR, schema.DataPoint{TimeMs: 10000, Value: 80})
	require.NoError(t, err)
	tl, err = AddControlPoint(tl, schema.SignalHR, schema.DataPoint{TimeMs: 60000, Value: 90})
	require.NoError(t, err)

	// Drag the first point past the second
	tl, err = MoveControlPoint(tl, schema.SignalHR, 0, schema.DataPoint{TimeMs: 90000, Value: 75})
	require.NoError(t, err)

	cp := tl.Signals[schema.SignalHR].ControlPoints
	assert.Equal(t, int64(60000), cp[0].TimeMs)
	assert.Equal(t, int64(90000), cp[1].TimeMs)

	// Dense data reflects the new curve exactly at the moved point
	assert.Equal(t, 75.0, tl.Signals[schema.SignalHR].Data[90].Value)
}

func TestMoveControlPointIndexOutOfRange(t *testing.T) {
	tl := selectHR(t)
	_, err := MoveControlPoint(tl, schema.SignalHR, 0, schema.DataPoint{TimeMs: 0, Value: 80})
	assert.Error(t, err)
}

func TestDeleteControlPointRegenerates(t *testing.T) {
	tl := selectHR(t)

	var err error
	tl, err = AddControlPoint(tl, schema.SignalHR, schema.DataPoint{TimeMs: 30000, Value: 120})
	require.NoError(t, err)
	tl, err = DeleteControlPoint(tl, schema.SignalHR, 0)
	require.NoError(t, err)

	assert.Empty(t, tl.Signals[schema.SignalHR].ControlPoints)
	for _, p := range tl.Signals[schema.SignalHR].Data {
		assert.Equal(t, 70.0, p.Value)
		assert.False(t, p.UserModified)
	}
}

func TestResetSignalKeepsVisibilityAndOrder(t *testing.T) {
	tl, err := SelectSignals(NewTimeline(60, 1000), []schema.SignalKey{schema.SignalHR, schema.SignalRR})
	require.NoError(t, err)
	tl, err = AddControlPoint(tl, schema.SignalRR, schema.DataPoint{TimeMs: 5000, Value: 22})
	require.NoError(t, err)
	tl, err = ToggleVisibility(tl, schema.SignalRR)
	require.NoError(t, err)

	order := tl.Signals[schema.SignalRR].Order
	tl, err = ResetSignal(tl, schema.SignalRR)
	require.NoError(t, err)

	state := tl.Signals[schema.SignalRR]
	assert.Empty(t, state.ControlPoints)
	assert.False(t, state.Visible) // reset does not touch visibility
	assert.Equal(t, order, state.Order)
	for _, p := range state.Data {
		assert.Equal(t, 14.0, p.Value)
	}
}

func TestSetZoomAndToggleVisibilityLeaveDataAlone(t *testing.T) {
	tl := selectHR(t)
	before := tl.Signals[schema.SignalHR].Data

	tl, err := SetZoom(tl, schema.SignalHR, &schema.Zoom{Scale: 2, StartTimeMs: 0, EndTimeMs: 60000})
	require.NoError(t, err)
	tl, err = ToggleVisibility(tl, schema.SignalHR)
	require.NoError(t, err)

	assert.Equal(t, before, tl.Signals[schema.SignalHR].Data)
	assert.NotNil(t, tl.Signals[schema.SignalHR].Zoom)
	assert.False(t, tl.Signals[schema.SignalHR].Visible)

	tl, err = SetZoom(tl, schema.SignalHR, nil)
	require.NoError(t, err)
	assert.Nil(t, tl.Signals[schema.SignalHR].Zoom)
}

func TestActionsDoNotMutateInput(t *testing.T) {
	tl := selectHR(t)
	snapshot := tl.Clone()

	_, err := AddControlPoint(tl, schema.SignalHR, schema.DataPoint{TimeMs: 5000, Value: 90})
	require.NoError(t, err)
	_ = SetDuration(tl, 600)
	_ = SetSampleRate(tl, 250)

	assert.Equal(t, snapshot, tl)
}
