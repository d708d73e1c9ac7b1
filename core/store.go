package core

import (
	"sync"

	"github.com/openvitals/vitaline/schema"
)

// MaxHistoryDepth bounds the undo stack. Older snapshots fall off the bottom.
const MaxHistoryDepth = 50

// Store serializes all mutations of one timeline behind a mutex, so the
// engine keeps the single-writer discipline of the original editing flow.
// Every committed transition pushes the prior snapshot onto a bounded undo
// stack; a new commit clears the redo stack.
type Store struct {
	mu      sync.Mutex
	current schema.Timeline
	undo    []schema.Timeline
	redo    []schema.Timeline
}

// NewStore wraps an initial timeline snapshot.
func NewStore(t schema.Timeline) *Store {
	return &Store{current: t}
}

// Snapshot returns a deep copy of the current timeline.
func (s *Store) Snapshot() schema.Timeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// commit publishes a new snapshot and records the prior one for undo.
func (s *Store) commit(next schema.Timeline) {
	s.undo = append(s.undo, s.current)
	if len(s.undo) > MaxHistoryDepth {
		s.undo = s.undo[len(s.undo)-MaxHistoryDepth:]
	}
	s.redo = nil
	s.current = next
}

// apply runs a fallible transition and commits on success.
func (s *Store) apply(fn func(schema.Timeline) (schema.Timeline, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.current)
	if err != nil {
		return err
	}
	s.commit(next)
	return nil
}

// SelectSignals reconciles the selected signal set.
func (s *Store) SelectSignals(keys []schema.SignalKey) error {
	return s.apply(func(t schema.Timeline) (schema.Timeline, error) {
		return SelectSignals(t, keys)
	})
}

// SetDuration resizes the timeline, cascading the last edit forward.
func (s *Store) SetDuration(durationSec int) error {
	return s.apply(func(t schema.Timeline) (schema.Timeline, error) {
		return SetDuration(t, durationSec), nil
	})
}

// SetSampleRate changes the grid spacing.
func (s *Store) SetSampleRate(sampleRateMs int64) error {
	return s.apply(func(t schema.Timeline) (schema.Timeline, error) {
		return SetSampleRate(t, sampleRateMs), nil
	})
}

// AddControlPoint inserts a user anchor and regenerates the signal.
func (s *Store) AddControlPoint(key schema.SignalKey, point schema.DataPoint) error {
	return s.apply(func(t schema.Timeline) (schema.Timeline, error) {
		return AddControlPoint(t, key, point)
	})
}

// MoveControlPoint relocates an existing anchor.
func (s *Store) MoveControlPoint(key schema.SignalKey, index int, point schema.DataPoint) error {
	return s.apply(func(t schema.Timeline) (schema.Timeline, error) {
		return MoveControlPoint(t, key, index, point)
	})
}

// DeleteControlPoint removes an anchor.
func (s *Store) DeleteControlPoint(key schema.SignalKey, index int) error {
	return s.apply(func(t schema.Timeline) (schema.Timeline, error) {
		return DeleteControlPoint(t, key, index)
	})
}

// ResetSignal restores a signal to baseline.
func (s *Store) ResetSignal(key schema.SignalKey) error {
	return s.apply(func(t schema.Timeline) (schema.Timeline, error) {
		return ResetSignal(t, key)
	})
}

// ToggleVisibility flips a signal's visibility.
func (s *Store) ToggleVisibility(key schema.SignalKey) error {
	return s.apply(func(t schema.Timeline) (schema.Timeline, error) {
		return ToggleVisibility(t, key)
	})
}

// SetZoom replaces a signal's view state.
func (s *Store) SetZoom(key schema.SignalKey, zoom *schema.Zoom) error {
	return s.apply(func(t schema.Timeline) (schema.Timeline, error) {
		return SetZoom(t, key, zoom)
	})
}

// Replace swaps in an externally built timeline as one atomic commit. The
// CSV importer uses it so a failed parse never leaves partial state behind.
func (s *Store) Replace(t schema.Timeline) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(t)
}

// Undo reverts the most recent commit. It reports whether anything changed.
func (s *Store) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return false
	}
	s.redo = append(s.redo, s.current)
	s.current = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	return true
}

// Redo re-applies the most recently undone commit.
func (s *Store) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redo) == 0 {
		return false
	}
	s.undo = append(s.undo, s.current)
	s.current = s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	return true
}
