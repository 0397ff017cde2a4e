// Package handoff moves complete gain matrices from control goroutines to the
// audio callback without the callback ever waiting on a lock.
package handoff

import (
	"sync"

	"github.com/peragwin/xmatrix/audio/matrix"
)

// Slot holds at most one pending matrix. Publishing again before the audio
// side adopts replaces the pending value.
type Slot struct {
	mu      sync.Mutex
	pending *matrix.Gains
	ready   bool
}

// NewSlot allocates a slot for NxN matrices.
func NewSlot(n int) (*Slot, error) {
	g, err := matrix.New(n)
	if err != nil {
		return nil, err
	}
	return &Slot{pending: g}, nil
}

// Publish stores candidate as the pending update. It may block briefly
// while the audio side is copying out.
func (s *Slot) Publish(candidate *matrix.Gains) {
	s.mu.Lock()
	s.pending.CopyFrom(candidate)
	s.ready = true
	s.mu.Unlock()
}

// TryAdopt copies a pending update into dst and reports whether one was
// taken. It never blocks: if the control side holds the lock it returns
// false and the update is picked up on a later call.
func (s *Slot) TryAdopt(dst *matrix.Gains) bool {
	if !s.mu.TryLock() {
		return false
	}
	ok := s.ready
	if ok {
		dst.CopyFrom(s.pending)
		s.ready = false
	}
	s.mu.Unlock()
	return ok
}

// Pending reports whether an update is waiting. Intended for tests and
// diagnostics; it takes the lock.
func (s *Slot) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}
