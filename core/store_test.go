package core

import (
	"sync"
	"testing"

	"github.com/openvitals/vitaline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	tl, err := SelectSignals(NewTimeline(120, 1000), []schema.SignalKey{schema.SignalHR})
	require.NoError(t, err)
	return NewStore(tl)
}

func TestStoreSnapshotIsIsolated(t *testing.T) {
	s := newTestStore(t)
	snap := s.Snapshot()
	snap.Signals[schema.SignalHR].Data[0].Value = 999

	assert.Equal(t, 70.0, s.Snapshot().Signals[schema.SignalHR].Data[0].Value)
}

func TestStoreUndoRedo(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddControlPoint(schema.SignalHR, schema.DataPoint{TimeMs: 10000, Value: 90}))
	require.NoError(t, s.SetDuration(240))

	assert.Equal(t, 240, s.Snapshot().DurationSec)

	assert.True(t, s.Undo())
	assert.Equal(t, 120, s.Snapshot().DurationSec)
	assert.Len(t, s.Snapshot().Signals[schema.SignalHR].ControlPoints, 1)

	assert.True(t, s.Undo())
	assert.Empty(t, s.Snapshot().Signals[schema.SignalHR].ControlPoints)

	assert.True(t, s.Redo())
	assert.Len(t, s.Snapshot().Signals[schema.SignalHR].ControlPoints, 1)

	assert.True(t, s.Redo())
	assert.Equal(t, 240, s.Snapshot().DurationSec)

	assert.False(t, s.Redo())
}

func TestStoreCommitClearsRedo(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetDuration(240))
	assert.True(t, s.Undo())
	require.NoError(t, s.SetDuration(300))

	assert.False(t, s.Redo())
	assert.Equal(t, 300, s.Snapshot().DurationSec)
}

func TestStoreUndoDepthIsBounded(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < MaxHistoryDepth+10; i++ {
		require.NoError(t, s.SetDuration(121+i))
	}

	undone := 0
	for s.Undo() {
		undone++
	}
	assert.Equal(t, MaxHistoryDepth, undone)
}

func TestStoreFailedActionLeavesStateUntouched(t *testing.T) {
	s := newTestStore(t)
	before := s.Snapshot()

	err := s.AddControlPoint(schema.SignalMAC, schema.DataPoint{TimeMs: 0, Value: 1})
	assert.Error(t, err) // MAC is not selected

	assert.Equal(t, before, s.Snapshot())
	assert.False(t, s.Undo(), "failed action must not create history")
}

func TestStoreReplaceIsAtomicAndUndoable(t *testing.T) {
	s := newTestStore(t)

	imported, err := SelectSignals(NewTimeline(600, 2000), []schema.SignalKey{schema.SignalSpO2})
	require.NoError(t, err)
	s.Replace(imported)

	assert.Equal(t, 600, s.Snapshot().DurationSec)
	assert.True(t, s.Undo())
	assert.Equal(t, 120, s.Snapshot().DurationSec)
}

func TestStoreSerializesConcurrentWriters(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_ = s.AddControlPoint(schema.SignalHR, schema.DataPoint{
					TimeMs: int64(n*20+j) * 500,
					Value:  80,
				})
			}
		}(i)
	}
	wg.Wait()

	snap := s.Snapshot()
	// Every commit was applied in full: the grid invariant held throughout
	assert.Len(t, snap.Signals[schema.SignalHR].Data, SampleCount(120, 1000)+1)
	assert.Len(t, snap.Signals[schema.SignalHR].ControlPoints, 160)
}
